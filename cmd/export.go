package cmd

import (
	"context"
	"fmt"
	"os"

	"stockcount/core/config"
	"stockcount/core/database"
	"stockcount/core/logger"
	"stockcount/core/storage"

	"stockcount/feature/export"
	"stockcount/feature/inventory"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormat string
	exportOutput string
	exportUpload bool
)

// exportCmd renders the persisted counting session as a report without
// starting the server.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the counting session as a report",
	Long: `Loads the persisted inventory snapshot and renders it as a CSV or
XLSX report.

Examples:
  # Write the CSV report next to the binary
  stockcount export

  # XLSX to a specific path
  stockcount export --format xlsx --output /tmp/count.xlsx

  # Upload to object storage instead of writing a file
  stockcount export --upload`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Report format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "Output file path (defaults to the artifact name)")
	exportCmd.Flags().BoolVar(&exportUpload, "upload", false, "Upload to object storage instead of writing a file")
	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	inventoryFeature, err := inventory.NewFeature(cfg.Inventory, db, l)
	if err != nil {
		return fmt.Errorf("failed to initialize inventory: %w", err)
	}
	store := inventoryFeature.Store()
	if err := store.Load(ctx); err != nil {
		return fmt.Errorf("failed to load inventory snapshot: %w", err)
	}

	var client storage.Client
	if exportUpload {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := export.NewService(store, client, cfg.Storage.Bucket, cfg.Export, l)
	artifact, err := svc.Generate(export.Format(exportFormat))
	if err != nil {
		return err
	}

	if exportUpload {
		objectName, err := svc.Upload(ctx, artifact)
		if err != nil {
			return err
		}
		l.Info("Report uploaded",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("object", objectName))
		return nil
	}

	path := exportOutput
	if path == "" {
		path = artifact.Filename
	}
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	l.Info("Report written",
		zap.String("path", path),
		zap.Int("bytes", len(artifact.Data)))
	return nil
}

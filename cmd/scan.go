package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"stockcount/core/config"
	"stockcount/core/database"
	"stockcount/core/logger"

	"stockcount/feature/detection"
	"stockcount/feature/inventory"
	"stockcount/feature/product"
	"stockcount/feature/scan"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	scanSnapshotURL string
	scanDeviceClass string
)

// scanCmd runs the headless scan loop: poll the camera snapshot
// endpoint, recognize barcodes and count them without the HTTP server.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the headless scan loop",
	Long: `Continuously captures frames from the camera snapshot endpoint,
recognizes barcodes and counts them into the inventory.

Examples:
  # Scan with the configured snapshot endpoint
  stockcount scan

  # Scan a specific camera at mobile cadence
  stockcount scan --snapshot-url http://cam:8080/still --device mobile`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanSnapshotURL, "snapshot-url", "", "Camera snapshot endpoint (overrides config)")
	scanCmd.Flags().StringVar(&scanDeviceClass, "device", "", "Device class: mobile or desktop (overrides config)")
	RootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()
	zap.ReplaceGlobals(l)

	if scanSnapshotURL != "" {
		cfg.Detection.SnapshotURL = scanSnapshotURL
	}
	if scanDeviceClass != "" {
		cfg.Detection.DeviceClass = scanDeviceClass
	}
	if cfg.Detection.SnapshotURL == "" {
		return fmt.Errorf("no snapshot endpoint configured, set --snapshot-url or DETECTION_SNAPSHOT_URL")
	}

	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		l.Warn("Optional database connection failed, snapshots disabled", zap.Error(err))
	} else {
		db = conn
	}

	products := product.NewService(cfg.Product, l)
	inventoryFeature, err := inventory.NewFeature(cfg.Inventory, db, l)
	if err != nil {
		return fmt.Errorf("failed to initialize inventory: %w", err)
	}
	store := inventoryFeature.Store()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Load(ctx); err != nil {
		l.Warn("Failed to load inventory snapshot, starting empty", zap.Error(err))
	}

	source := detection.NewSnapshotSource(cfg.Detection.SnapshotURL, cfg.Detection.Facing, cfg.Detection.Timeout())
	recognizer := detection.NewHTTPRecognizer(cfg.Detection.DecodeURL, cfg.Detection.Timeout())
	loop := detection.NewLoop(cfg.Detection, source, recognizer, l)

	pipeline := scan.NewService(products, store, l)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		l.Info("Stopping scan loop...")
		cancel()
	}()

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	l.Info("Scan loop started",
		zap.String("snapshot", cfg.Detection.SnapshotURL),
		zap.String("device", cfg.Detection.DeviceClass))
	pipeline.Consume(ctx, loop.Candidates())

	if err := <-loopErr; err != nil && ctx.Err() == nil {
		return fmt.Errorf("scan loop failed: %w", err)
	}

	stats := loop.Stats()
	l.Info("Scan loop stopped",
		zap.Uint64("attempts", stats.Attempts),
		zap.Uint64("successes", stats.Successes))
	return nil
}

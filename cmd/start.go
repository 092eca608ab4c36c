package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stockcount/core/config"
	"stockcount/core/database"
	"stockcount/core/loader"
	"stockcount/core/logger"
	"stockcount/core/metrics"
	"stockcount/core/middleware/auth"
	"stockcount/core/middleware/rayid"
	"stockcount/core/storage"

	"stockcount/feature/detection"
	"stockcount/feature/export"
	"stockcount/feature/inventory"
	"stockcount/feature/product"
	"stockcount/feature/scan"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "stockcount/docs/swagger"
)

// @title Stock Count API
// @version 1.0
// @description API for barcode scan-to-inventory counting.
// @host localhost:8080
// @BasePath /api

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the stock count server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		// Without it the count lives in memory only.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed, snapshots disabled", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to snapshot database")
		}

		// 4. Connect to Storage (Optional)
		// Without it exports download only, uploads are rejected.
		var store storage.Client
		if client, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Optional storage client failed, export uploads disabled", zap.Error(err))
		} else {
			store = client
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Build Features
		productFeature := product.NewFeature(cfg.Product, logg)
		detectionFeature := detection.NewFeature(cfg.Detection, logg)
		inventoryFeature, err := inventory.NewFeature(cfg.Inventory, db, logg)
		if err != nil {
			logg.Fatal("Failed to initialize inventory", zap.Error(err))
		}
		scanFeature := scan.NewFeature(productFeature.Service(), inventoryFeature.Store(), logg)
		exportFeature := export.NewFeature(inventoryFeature.Store(), store, cfg.Storage.Bucket, cfg.Export, logg)

		// Restore the previous counting session if one was persisted.
		if err := inventoryFeature.Store().Load(context.Background()); err != nil {
			logg.Warn("Failed to load inventory snapshot, starting empty", zap.Error(err))
		}

		mgr := loader.NewManager()
		mgr.Register(productFeature)
		mgr.Register(detectionFeature)
		mgr.Register(inventoryFeature)
		mgr.Register(scanFeature)
		mgr.Register(exportFeature)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation and Metrics (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", metrics.Handler())

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features under the API prefix
		api := app.Group("/api")
		if err := mgr.LoadAll(api); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

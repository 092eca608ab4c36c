package export

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"stockcount/core/storage"
	"stockcount/feature/inventory"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the export feature. client may be nil to disable
// uploads.
func NewFeature(store *inventory.Store, client storage.Client, bucket string, cfg Config, logger *zap.Logger) *Feature {
	service := NewService(store, client, bucket, cfg, logger)
	return &Feature{
		service: service,
		handler: NewHandler(service, logger),
	}
}

// Service exposes report generation for the CLI exporter.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "export"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

package scan

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"stockcount/feature/inventory"
	"stockcount/feature/product"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the scan feature over the product service and
// inventory store.
func NewFeature(products *product.Service, store *inventory.Store, logger *zap.Logger) *Feature {
	service := NewService(products, store, logger)
	return &Feature{
		service: service,
		handler: NewHandler(service, logger),
	}
}

// Service exposes the pipeline for the headless scan loop.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "scan"
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

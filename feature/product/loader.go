package product

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the product lookup feature.
func NewFeature(cfg Config, logger *zap.Logger) *Feature {
	svc := NewService(cfg, logger)
	return &Feature{service: svc, handler: NewHandler(svc, logger)}
}

// Service exposes the product service for wiring into the scan pipeline.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "product"
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

package detection

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	recognizer Recognizer
	handler    *Handler
}

// NewFeature creates the detection feature over the configured
// recognition boundary.
func NewFeature(cfg Config, logger *zap.Logger) *Feature {
	rec := NewHTTPRecognizer(cfg.DecodeURL, cfg.Timeout())
	return &Feature{
		recognizer: rec,
		handler:    NewHandler(rec, logger),
	}
}

// Recognizer exposes the recognition boundary for the headless loop.
func (f *Feature) Recognizer() Recognizer {
	return f.recognizer
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "detection"
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

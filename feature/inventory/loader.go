package inventory

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	store   *Store
	handler *Handler
}

// NewFeature creates the inventory feature. db may be nil; the store
// then runs memory-only and nothing survives a restart.
func NewFeature(cfg Config, db *gorm.DB, logger *zap.Logger) (*Feature, error) {
	var repo Repository
	if db != nil {
		r, err := NewGormRepository(db, cfg, logger)
		if err != nil {
			return nil, err
		}
		repo = r
	} else {
		logger.Warn("Inventory persistence disabled, running memory-only")
	}

	store := NewStore(repo, logger)
	return &Feature{
		store:   store,
		handler: NewHandler(store, logger),
	}, nil
}

// Store exposes the aggregation store for the scan pipeline and export.
func (f *Feature) Store() *Store {
	return f.store
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "inventory"
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

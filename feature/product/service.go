package product

import (
	"context"
	"errors"

	"stockcount/feature/barcode"

	"go.uber.org/zap"
)

// ErrInvalidBarcode means the input failed validation and was never sent
// to the lookup boundary. The Validation carries the details.
var ErrInvalidBarcode = errors.New("invalid barcode")

// Service ties the validator, cache and resolver together behind one
// lookup entry point.
type Service struct {
	cache    *Cache
	resolver *Resolver
	logger   *zap.Logger
}

// NewService creates the product service and its cache/resolver pair.
func NewService(cfg Config, logger *zap.Logger) *Service {
	cache := NewCache(cfg.CacheTTL())
	return &Service{
		cache:    cache,
		resolver: NewResolver(cfg, cache, logger),
		logger:   logger,
	}
}

// Lookup validates a raw barcode and resolves it to a catalog product.
// The returned Validation is always populated; when it is invalid the
// error is ErrInvalidBarcode and no lookup was attempted.
func (s *Service) Lookup(ctx context.Context, raw string) (*Product, barcode.Validation, error) {
	v := barcode.Validate(raw)
	if !v.IsValid {
		return nil, v, ErrInvalidBarcode
	}

	p, err := s.resolver.Resolve(ctx, v.Normalized)
	if err != nil {
		s.logger.Warn("Product lookup failed",
			zap.String("barcode", v.Normalized),
			zap.Error(err))
		return nil, v, err
	}

	return p, v, nil
}

// CacheStats reports current cache effectiveness.
func (s *Service) CacheStats() CacheStats {
	return s.cache.Stats()
}

// InvalidateCache drops every cached product.
func (s *Service) InvalidateCache() {
	s.cache.Clear()
}

package product

import (
	"errors"

	"stockcount/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for product lookups.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the product routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/products")
	group.Get("/lookup", h.HandleLookup)
	group.Get("/cache/stats", h.HandleCacheStats)
	group.Delete("/cache", h.HandleCacheClear)
}

// HandleLookup resolves a barcode to a catalog product.
// @Summary Lookup Product by Barcode
// @Description Validates the barcode and resolves it against the catalog, using the TTL cache and retry policy.
// @Tags products
// @Produce json
// @Param barcode query string true "Raw or normalized barcode"
// @Success 200 {object} map[string]interface{} "Product payload"
// @Failure 400 {object} map[string]interface{} "Validation failure with suggestions"
// @Failure 404 {object} map[string]interface{} "No catalog match"
// @Failure 502 {object} map[string]interface{} "Lookup boundary failure"
// @Router /products/lookup [get]
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	raw := c.Query("barcode")

	p, validation, err := h.service.Lookup(c.Context(), raw)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidBarcode):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success":    false,
				"error":      "invalid barcode",
				"validation": validation,
			})
		case errors.Is(err, ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"error":   "product not found",
				"barcode": validation.Normalized,
			})
		case errors.Is(err, ErrTransport), errors.Is(err, ErrServer):
			l.Error("Lookup boundary failure", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		default:
			l.Error("Lookup failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       p,
		"validation": validation,
	})
}

// HandleCacheStats reports product cache statistics.
// @Summary Product Cache Statistics
// @Tags products
// @Produce json
// @Success 200 {object} CacheStats
// @Router /products/cache/stats [get]
func (h *Handler) HandleCacheStats(c *fiber.Ctx) error {
	return c.JSON(h.service.CacheStats())
}

// HandleCacheClear drops all cached products.
// @Summary Clear Product Cache
// @Tags products
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /products/cache [delete]
func (h *Handler) HandleCacheClear(c *fiber.Ctx) error {
	h.service.InvalidateCache()
	return c.JSON(fiber.Map{"success": true})
}

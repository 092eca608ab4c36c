package scan

import (
	"errors"

	"stockcount/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"stockcount/feature/product"
)

// Handler handles HTTP requests for scan submissions.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the scan routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/scan")
	group.Post("/", h.HandleScan)
	group.Get("/preview", h.HandlePreview)
}

// HandleScan submits one scan: barcode plus quantity input.
// @Summary Submit a Scan
// @Description Validates the barcode, resolves the product and folds the quantity into the inventory record for its material code.
// @Tags scan
// @Accept json
// @Produce json
// @Param request body Request true "Scan submission"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Invalid barcode or quantity"
// @Failure 404 {object} map[string]interface{} "No catalog match"
// @Failure 409 {object} map[string]interface{} "Superseded by a newer scan"
// @Failure 502 {object} map[string]interface{} "Lookup boundary failure"
// @Router /scan [post]
func (h *Handler) HandleScan(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	result, err := h.service.Process(c.Context(), req)
	if err != nil {
		return h.scanError(c, l, result, err)
	}

	resp := fiber.Map{
		"success": true,
		"data":    result,
	}
	if result.Warning != "" {
		resp["warning"] = result.Warning
	}
	return c.JSON(resp)
}

// HandlePreview resolves a barcode without counting it.
// @Summary Preview a Scan
// @Description Resolves the barcode and returns the unit layout the quantity form should use.
// @Tags scan
// @Produce json
// @Param barcode query string true "Raw or normalized barcode"
// @Success 200 {object} Preview
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /scan/preview [get]
func (h *Handler) HandlePreview(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	preview, err := h.service.PreviewScan(c.Context(), c.Query("barcode"))
	if err != nil {
		var result *Result
		if preview != nil {
			result = &Result{Validation: preview.Validation}
		}
		return h.scanError(c, l, result, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    preview,
	})
}

func (h *Handler) scanError(c *fiber.Ctx, l *zap.Logger, result *Result, err error) error {
	switch {
	case errors.Is(err, product.ErrInvalidBarcode):
		resp := fiber.Map{"success": false, "error": "invalid barcode"}
		if result != nil {
			resp["validation"] = result.Validation
		}
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case errors.Is(err, product.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   "product not found",
		})
	case errors.Is(err, ErrSuperseded):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	case errors.Is(err, product.ErrTransport), errors.Is(err, product.ErrServer):
		l.Error("Lookup boundary failure", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
}

package inventory

import (
	"errors"

	"stockcount/core/logger"
	"stockcount/feature/units"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the inventory store.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(store *Store, log *zap.Logger) *Handler {
	return &Handler{store: store, logger: log}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/", h.HandleList)
	group.Get("/summary", h.HandleSummary)
	group.Get("/search", h.HandleSearch)
	group.Put("/:materialCode/units/:unit", h.HandleSetUnitQuantity)
	group.Delete("/:materialCode", h.HandleRemove)
	group.Delete("/", h.HandleClear)
}

// HandleList returns all records, most recently updated first.
// @Summary List Inventory Records
// @Tags inventory
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /inventory [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	records := h.store.List()
	return c.JSON(fiber.Map{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

// HandleSummary returns the aggregate projection.
// @Summary Inventory Summary
// @Tags inventory
// @Produce json
// @Success 200 {object} Summary
// @Router /inventory/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	return c.JSON(h.store.Summary())
}

// HandleSearch filters records by a free-text term.
// @Summary Search Inventory Records
// @Tags inventory
// @Produce json
// @Param q query string false "Term matched against name, brand, category, material code and barcodes"
// @Success 200 {object} map[string]interface{}
// @Router /inventory/search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	records := h.store.Search(c.Query("q"))
	return c.JSON(fiber.Map{
		"success": true,
		"data":    records,
		"count":   len(records),
	})
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleSetUnitQuantity overwrites one unit counter of a record.
// @Summary Set Unit Quantity
// @Description Manual correction of a single unit counter. The value replaces the counter; it does not accumulate.
// @Tags inventory
// @Accept json
// @Produce json
// @Param materialCode path string true "Material code"
// @Param unit path string true "Unit type (cs, dsp, ea)"
// @Param request body setQuantityRequest true "New counter value"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /inventory/{materialCode}/units/{unit} [put]
func (h *Handler) HandleSetUnitQuantity(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var req setQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "invalid request body",
		})
	}

	rec, err := h.store.SetUnitQuantity(c.Context(),
		c.Params("materialCode"), units.UnitType(c.Params("unit")), req.Quantity)
	if err != nil && !errors.Is(err, ErrPersistence) {
		status := fiber.StatusBadRequest
		if errors.Is(err, ErrNotFound) {
			status = fiber.StatusNotFound
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	resp := fiber.Map{"success": true, "data": rec}
	if err != nil {
		l.Warn("Inventory mutation applied without persistence", zap.Error(err))
		resp["warning"] = err.Error()
	}
	return c.JSON(resp)
}

// HandleRemove deletes a whole record.
// @Summary Remove Inventory Record
// @Tags inventory
// @Produce json
// @Param materialCode path string true "Material code"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /inventory/{materialCode} [delete]
func (h *Handler) HandleRemove(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	err := h.store.Remove(c.Context(), c.Params("materialCode"))
	if err != nil && !errors.Is(err, ErrPersistence) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	resp := fiber.Map{"success": true}
	if err != nil {
		l.Warn("Inventory mutation applied without persistence", zap.Error(err))
		resp["warning"] = err.Error()
	}
	return c.JSON(resp)
}

// HandleClear drops every record and the persisted snapshot.
// @Summary Clear Inventory
// @Tags inventory
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /inventory [delete]
func (h *Handler) HandleClear(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	err := h.store.Clear(c.Context())
	resp := fiber.Map{"success": true}
	if err != nil {
		l.Warn("Inventory cleared without persistence", zap.Error(err))
		resp["warning"] = err.Error()
	}
	return c.JSON(resp)
}

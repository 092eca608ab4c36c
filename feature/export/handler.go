package export

import (
	"errors"
	"fmt"

	"stockcount/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for report exports.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/export", h.HandleExport)
}

// HandleExport renders the current inventory as a downloadable report.
// @Summary Export Inventory Report
// @Description Renders the counting session as CSV or XLSX. With upload=true the artifact goes to object storage and the object name is returned instead of the file.
// @Tags export
// @Produce json
// @Param format query string false "csv (default) or xlsx"
// @Param upload query bool false "Upload to object storage instead of downloading"
// @Success 200 {file} file "Report file or upload receipt"
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /export [get]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	format := Format(c.Query("format", string(FormatCSV)))
	artifact, err := h.service.Generate(format)
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrUnknownFormat) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	if c.QueryBool("upload") {
		objectName, err := h.service.Upload(c.Context(), artifact)
		if err != nil {
			if errors.Is(err, ErrUploadsDisabled) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"success": false,
					"error":   err.Error(),
				})
			}
			l.Error("Export upload failed", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"success": true,
			"object":  objectName,
			"size":    len(artifact.Data),
		})
	}

	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, artifact.Filename))
	return c.Send(artifact.Data)
}

package detection

import (
	"io"
	"time"

	"stockcount/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler exposes single-image recognition over HTTP, for uploaded
// images that bypass the live camera loop.
type Handler struct {
	recognizer Recognizer
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(recognizer Recognizer, log *zap.Logger) *Handler {
	return &Handler{recognizer: recognizer, logger: log}
}

// RegisterRoutes registers the detection routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/detect-barcode", h.HandleDetect)
}

// HandleDetect decodes barcodes from an uploaded image.
// @Summary Detect Barcodes in Image
// @Description Submits an uploaded image to the recognition boundary and returns decoded barcodes.
// @Tags detection
// @Accept mpfd
// @Produce json
// @Param image formData file true "Image file"
// @Success 200 {object} map[string]interface{} "Detection result"
// @Failure 400 {object} map[string]interface{} "Missing or unreadable image"
// @Failure 502 {object} map[string]interface{} "Recognition boundary failure"
// @Router /detect-barcode [post]
func (h *Handler) HandleDetect(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "image file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "could not open uploaded image",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "could not read uploaded image",
		})
	}

	frame := &Frame{
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
		CapturedAt:  time.Now(),
	}

	detections, err := h.recognizer.Detect(c.Context(), frame)
	if err != nil {
		l.Error("Recognition failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"barcodes": detections,
		"found":    len(detections),
	})
}

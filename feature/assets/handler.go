package assets

import (
	"errors"

	"storage-bridge/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the asset catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the asset routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/assets")
	group.Get("/status", h.HandleStatus)
	group.Post("/import", h.HandleImport)
}

// HandleStatus reports where the catalog is expected and whether it exists.
// @Summary Asset Catalog Status
// @Tags assets
// @Produce json
// @Success 200 {object} Status
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /assets/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	status, err := h.service.Status(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(status)
}

// HandleImport imports the catalog.
// @Summary Import Asset Catalog
// @Description Replaces item and mod display names with the catalog stored in object storage.
// @Tags assets
// @Produce json
// @Success 200 {object} Report
// @Failure 404 {object} map[string]string "Catalog not found"
// @Failure 422 {object} map[string]string "Invalid catalog"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /assets/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Import(c.Context())
	switch {
	case errors.Is(err, ErrCatalogMissing):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrInvalidCatalog):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		l.Error("Asset import failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

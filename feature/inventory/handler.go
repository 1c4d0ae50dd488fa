package inventory

import (
	"errors"
	"strings"

	"storage-bridge/core/logger"
	"storage-bridge/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the inventory.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = models.ItemView{}
	return &Handler{service: service}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/inventory")
	group.Get("/items", h.HandleListItems)
	group.Get("/items/:fingerprint", h.HandleGetItem)
	group.Put("/items/:fingerprint/limits", h.HandleUpdateLimits)
	group.Delete("/items/:fingerprint/limits", h.HandleResetLimit)
	group.Get("/stats", h.HandleStats)
	group.Post("/craft", h.HandleCraft)
}

// HandleListItems lists stored items with their limits.
// @Summary List Stored Items
// @Description Lists every stored item with display names and limits. A query filters by fuzzy search.
// @Tags inventory
// @Produce json
// @Param q query string false "Search query"
// @Param sort query string false "amount or lastModified"
// @Param dir query string false "asc or desc (default desc)"
// @Success 200 {array} models.ItemView
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/items [get]
func (h *Handler) HandleListItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	sort := SortField(c.Query("sort"))
	if sort != "" && sort != SortAmount && sort != SortLastModified {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "sort must be amount or lastModified"})
	}
	asc := strings.EqualFold(c.Query("dir"), "asc")

	views, err := h.service.ListItems(c.Context(), strings.TrimSpace(c.Query("q")), sort, asc)
	if err != nil {
		l.Error("Failed to list items", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(views)
}

// HandleGetItem returns one stored item.
// @Summary Get Stored Item
// @Tags inventory
// @Produce json
// @Param fingerprint path string true "Item fingerprint"
// @Success 200 {object} models.ItemView
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/items/{fingerprint} [get]
func (h *Handler) HandleGetItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	view, err := h.service.GetItem(c.Context(), c.Params("fingerprint"))
	if errors.Is(err, ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to get item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(view)
}

// HandleStats returns inventory totals.
// @Summary Inventory Totals
// @Tags inventory
// @Produce json
// @Success 200 {object} models.Stats
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to compute stats", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(stats)
}

// HandleUpdateLimits sets the limits for an item.
// @Summary Update Item Limits
// @Description Sets min and max for a fingerprint. Omitting both deletes the rule. max must exceed min.
// @Tags inventory
// @Accept json
// @Produce json
// @Param fingerprint path string true "Item fingerprint"
// @Param body body LimitInput true "Limits"
// @Success 200 {object} models.ItemLimit
// @Success 204 "Rule deleted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/items/{fingerprint}/limits [put]
func (h *Handler) HandleUpdateLimits(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fingerprint := c.Params("fingerprint")

	var in LimitInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	limit, err := h.service.UpdateLimits(c.Context(), fingerprint, in)
	if errors.Is(err, ErrInvalidLimit) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Failed to update limits", zap.String("fingerprint", fingerprint), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Limits updated", zap.String("fingerprint", fingerprint))
	if limit == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(limit)
}

// HandleResetLimit deletes the limits for an item.
// @Summary Reset Item Limits
// @Tags inventory
// @Param fingerprint path string true "Item fingerprint"
// @Success 204 "Rule deleted"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /inventory/items/{fingerprint}/limits [delete]
func (h *Handler) HandleResetLimit(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	fingerprint := c.Params("fingerprint")

	if err := h.service.ResetLimit(c.Context(), fingerprint); err != nil {
		l.Error("Failed to reset limits", zap.String("fingerprint", fingerprint), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	l.Info("Limits reset", zap.String("fingerprint", fingerprint))
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCraft forwards an operator craft request.
// @Summary Request Craft
// @Tags inventory
// @Accept json
// @Produce json
// @Param body body CraftInput true "Craft request"
// @Success 202 {object} map[string]string
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 503 {object} map[string]string "Storage system not connected"
// @Router /inventory/craft [post]
func (h *Handler) HandleCraft(c *fiber.Ctx) error {
	var in CraftInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	err := h.service.Craft(c.Context(), in)
	switch {
	case errors.Is(err, ErrInvalidCraft):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrNotConnected):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "queued"})
}

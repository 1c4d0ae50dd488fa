package chat

import (
	"errors"

	"storage-bridge/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for chat.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the chat routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/chat")
	group.Get("/", h.HandleList)
	group.Post("/", h.HandlePost)
}

// HandleList returns recent chat messages.
// @Summary Recent Chat
// @Tags chat
// @Produce json
// @Param limit query int false "Maximum messages (default 100)"
// @Success 200 {array} Message
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /chat [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 100)
	if limit <= 0 || limit > 500 {
		limit = 100
	}

	msgs, err := h.service.Recent(c.Context(), limit)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to load chat", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(msgs)
}

// HandlePost stores a message and relays it into the game.
// @Summary Post Chat Message
// @Tags chat
// @Accept json
// @Produce json
// @Param body body PostInput true "Message"
// @Success 201 {object} Message
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /chat [post]
func (h *Handler) HandlePost(c *fiber.Ctx) error {
	var in PostInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	msg, err := h.service.Post(c.Context(), in)
	if errors.Is(err, ErrInvalidMessage) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to post chat", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

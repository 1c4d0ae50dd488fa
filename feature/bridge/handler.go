package bridge

import (
	"github.com/gofiber/fiber/v2"
)

// Status is the body of GET /bridge/status.
type Status struct {
	StorageConnections int          `json:"storageConnections"`
	Observers          int          `json:"observers"`
	Emitted            EmitStats    `json:"emitted"`
	LastCycle          *CycleReport `json:"lastCycle,omitempty"`
}

// Handler exposes bridge state to operators.
type Handler struct {
	processor *Processor
	emitter   *Emitter
	hub       *Hub
}

// NewHandler creates a new HTTP handler.
func NewHandler(processor *Processor, emitter *Emitter, hub *Hub) *Handler {
	return &Handler{processor: processor, emitter: emitter, hub: hub}
}

// RegisterRoutes registers the bridge routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/bridge")
	group.Get("/status", h.HandleStatus)
	group.Post("/evaluate", h.HandleEvaluate)
}

// HandleStatus reports connections, emitter counters and the last cycle.
// @Summary Bridge Status
// @Tags bridge
// @Produce json
// @Success 200 {object} Status
// @Router /bridge/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(Status{
		StorageConnections: h.emitter.Connected(),
		Observers:          h.hub.Count(),
		Emitted:            h.emitter.Stats(),
		LastCycle:          h.processor.LastCycle(),
	})
}

// HandleEvaluate runs a limit sweep now.
// @Summary Evaluate Limits
// @Description Evaluates every rule against the stored inventory and emits the resulting commands.
// @Tags bridge
// @Produce json
// @Success 200 {array} inventory.Decision
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /bridge/evaluate [post]
func (h *Handler) HandleEvaluate(c *fiber.Ctx) error {
	decisions, err := h.processor.Sweep(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(decisions)
}

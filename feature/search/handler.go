package search

import (
	"github.com/gofiber/fiber/v2"
)

// maxLimit caps the number of ids one request may ask for.
const maxLimit = 200

// Response is the body of GET /search.
type Response struct {
	Query   string   `json:"query"`
	ItemIDs []string `json:"itemIds"`
}

// Handler handles HTTP requests for search.
type Handler struct {
	index *Index
}

// NewHandler creates a new HTTP handler.
func NewHandler(index *Index) *Handler {
	return &Handler{index: index}
}

// RegisterRoutes registers the search routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/search", h.HandleSearch)
}

// HandleSearch returns item ids matching a query.
// @Summary Search Items
// @Description Fuzzy search over item id, display name and mod id. Results are ranked and distinct.
// @Tags search
// @Produce json
// @Param q query string true "Query"
// @Param limit query int false "Maximum results (default 50)"
// @Success 200 {object} Response
// @Router /search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	q := c.Query("q")
	ids := h.index.Search(q, limit)
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(Response{Query: q, ItemIDs: ids})
}

package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the RayID.
const HeaderName = "X-Ray-ID"

// LocalsKey is the fiber.Ctx locals key holding the RayID.
const LocalsKey = "ray_id"

// New returns a middleware that assigns every request a RayID.
// A RayID supplied by an upstream proxy in the same header is kept.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}

package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// Header carries the request ID in both directions.
	Header = "X-Ray-ID"
	// LocalsKey is where the request ID is stored on the Fiber context.
	LocalsKey = "ray_id"
)

// New returns a middleware assigning every request a RayID.
// An incoming X-Ray-ID header is reused so callers can correlate their own logs.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(Header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(LocalsKey, id)
		c.Set(Header, id)
		return c.Next()
	}
}

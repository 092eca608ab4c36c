package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the request ID to the client and between services.
const Header = "X-Ray-ID"

// New returns a middleware that tags every request with a RayID. An
// incoming X-Ray-ID is honored so traces survive proxy hops; otherwise
// a fresh UUID is generated. The ID lands in Locals("ray_id") for the
// logger and is echoed in the response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}

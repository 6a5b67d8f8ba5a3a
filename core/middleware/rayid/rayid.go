// Package rayid assigns each request a unique id for tracing.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the request id back to the caller.
const Header = "X-Request-Id"

// Local is the fiber locals key the id is stored under.
const Local = "request_id"

// New returns the request-id middleware. An id supplied by the caller is
// kept, otherwise a fresh one is generated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(Local, rid)
		c.Set(Header, rid)
		return c.Next()
	}
}

package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORS allows any origin and answers preflight requests with an empty 200.
// methods are the methods the endpoint serves.
func CORS(methods ...string) fiber.Handler {
	allowMethods := strings.Join(append(append([]string{}, methods...), fiber.MethodOptions), ", ")

	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderAccessControlAllowOrigin, "*")

		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}

		c.Set(fiber.HeaderAccessControlAllowMethods, allowMethods)
		c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, "+TokenHeader)
		c.Set(fiber.HeaderAccessControlMaxAge, "86400")
		return c.Status(fiber.StatusOK).Send(nil)
	}
}

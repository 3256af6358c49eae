package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/shopfloor/internal/services"
	"github.com/localnerve/shopfloor/internal/types"
)

// TokenHeader carries the session token
const TokenHeader = "X-Auth-Token"

// ClaimsKey is the Locals key holding verified *services.Claims
const ClaimsKey = "claims"

func tokenFrom(c *fiber.Ctx) string {
	token := strings.TrimSpace(c.Get(TokenHeader))
	// tolerate clients that send the bearer scheme in the custom header
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

// RequireToken rejects requests without a valid HS256 token signed with secret
func RequireToken(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}

		token := tokenFrom(c)
		if token == "" {
			return types.Unauthorized("Unauthorized", nil)
		}

		claims, err := services.VerifyToken(secret, token)
		if err != nil {
			log.Printf("Rejected token for %s %s: %v", c.Method(), c.Path(), err)
			return types.Unauthorized("Invalid token", err)
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}

// RequireTokenPresence only checks that a token was sent, it does not verify it
func RequireTokenPresence() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.Next()
		}
		if tokenFrom(c) == "" {
			return types.Unauthorized("Unauthorized", nil)
		}
		return c.Next()
	}
}

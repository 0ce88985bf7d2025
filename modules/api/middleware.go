package api

import (
	"strings"

	"github.com/ashokt15/taskmate/modules/auth"
	"github.com/gofiber/fiber/v2"
)

const (
	// UserContextKey is the key used to store user claims in the Fiber context.
	UserContextKey = "user"
)

// AuthMiddleware resolves the bearer token on every protected route
// and stores the caller's claims in the request context.
func AuthMiddleware(authAdapter auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: "Not authorized, no token",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: "Not authorized, no token",
			})
		}

		claims, err := authAdapter.ResolveToken(c.UserContext(), token)
		if err != nil {
			// A token bound to a deleted account gets its own message;
			// everything else is a generic rejection.
			msg := "Not authorized, token failed"
			if strings.Contains(err.Error(), "user not found") {
				msg = "Not authorized, user not found"
			}
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: msg,
			})
		}

		c.Locals(UserContextKey, claims)

		return c.Next()
	}
}

package middleware

import (
	"errors"
	"strings"

	"go-caixa-pos/internal/service"
	"go-caixa-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth is middleware that validates the JWT token and sets the
// operator in context
func RequireAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// The token is only good while its operator is the one logged in
		current, err := authService.Current(c.UserContext())
		if err != nil {
			if errors.Is(err, service.ErrNotLoggedIn) {
				return c.Status(401).JSON(fiber.Map{"error": "Session ended, please log in again"})
			}
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if current != claims.Email {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (another operator logged in)"})
		}

		c.Locals("operator", claims.Email)
		return c.Next()
	}
}

// Operator returns the operator set by RequireAuth.
func Operator(c *fiber.Ctx) string {
	op, _ := c.Locals("operator").(string)
	return op
}

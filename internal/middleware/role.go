package middleware

import (
	"github.com/carebook/backend/internal/actor"
	"github.com/carebook/backend/internal/dto"
	"github.com/carebook/backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// RequireRole gates a route to the given roles. It runs after JWTProtected,
// so the token in context is already verified.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		act, err := actor.FromRequest(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Success: false,
				Message: "Unauthorized",
			})
		}

		for _, role := range roles {
			if act.Role == role {
				return c.Next()
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Success: false,
			Message: "Role " + string(act.Role) + " is not authorized to access this route",
		})
	}
}

package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// RequireRole ensures the actor ranks at or above the given role.
func RequireRole(minimum domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := ActorFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if !actor.Role.AtLeast(minimum) {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin restricts a route to administrators.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}

// RequireAuthenticated ensures the caller is logged in.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := ActorFromContext(c); !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		return c.Next()
	}
}

package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workorder-service/internal/domain"
	"github.com/spec-kit/workorder-service/internal/repository"
	"github.com/spec-kit/workorder-service/pkg/util"
)

const actorKey = "auth_actor"

// AuthMiddleware validates bearer tokens and resolves the workflow actor.
type AuthMiddleware struct {
	tokens    *TokenManager
	directory repository.DirectoryRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, directory repository.DirectoryRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, directory: directory}
}

// Handle enforces authentication for protected routes. The directory is
// re-checked on every request so a deactivated account loses access before
// its token expires.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return util.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return util.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return util.NewUnauthorized("invalid token")
	}

	user, err := m.directory.GetByUsername(c.Context(), claims.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return util.NewUnauthorized("account not found")
		}
		return util.ToDomainError(err)
	}
	if !user.Active {
		return util.NewUnauthorized("account deactivated")
	}

	c.Locals(actorKey, user.Actor())
	return c.Next()
}

// ActorFromContext retrieves the authenticated actor.
func ActorFromContext(c *fiber.Ctx) (domain.Actor, bool) {
	val := c.Locals(actorKey)
	if val == nil {
		return domain.Actor{}, false
	}
	actor, ok := val.(domain.Actor)
	return actor, ok
}

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/workorder-service/internal/auth"
	"github.com/spec-kit/workorder-service/internal/config"
	"github.com/spec-kit/workorder-service/internal/domain"
	"github.com/spec-kit/workorder-service/internal/repository"
	"github.com/spec-kit/workorder-service/pkg/util"
)

// AuthService is the thin identity collaborator: username/password login
// issuing a token that carries the workflow actor triple, plus admin-gated
// account creation. Session management proper lives outside this service.
type AuthService struct {
	directory  repository.DirectoryRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	DirectoryRepo repository.DirectoryRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg *config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		directory:  deps.DirectoryRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Login authenticates a user and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.directory.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, util.NewStoreFailure(err)
	}
	if !user.Active {
		return nil, "", time.Time{}, util.NewUnauthorized("account deactivated")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, util.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, util.NewInternalError(err)
	}
	return user, token, expiresAt, nil
}

// CreateAccountInput describes a new directory account.
type CreateAccountInput struct {
	Username   string
	RealName   string
	Password   string
	Role       domain.Role
	Department string
}

// CreateAccount registers a directory account. Role defaults to user.
func (s *AuthService) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.User, error) {
	if strings.TrimSpace(input.Username) == "" || strings.TrimSpace(input.Password) == "" {
		return nil, util.NewValidationError("username and password are required", nil)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, util.NewValidationError("unknown role", map[string]any{"role": input.Role})
	}

	if _, err := s.directory.GetByUsername(ctx, input.Username); err == nil {
		return nil, util.NewConstraintViolation("username already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, util.NewStoreFailure(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(input.Username),
		RealName:     strings.TrimSpace(input.RealName),
		PasswordHash: hash,
		Role:         role,
		Department:   input.Department,
		Active:       true,
	}
	if user.RealName == "" {
		user.RealName = user.Username
	}
	if err := s.directory.Create(ctx, user); err != nil {
		return nil, util.NewStoreFailure(err)
	}
	return user, nil
}

// Logout currently no-ops for the stateless JWT approach.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

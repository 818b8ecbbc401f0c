package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/workorder-service/internal/api/dto"
	"github.com/spec-kit/workorder-service/internal/service"
	"github.com/spec-kit/workorder-service/pkg/util"
)

// AuthHandler manages login and account endpoints.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{service: authService}
}

// Login POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return util.NewValidationError("username and password required", nil)
	}

	user, token, expiresAt, err := h.service.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.UserFromDomain(user),
	}})
}

// CreateAccount POST /auth/accounts. Admin only; enforced at the router.
func (h *AuthHandler) CreateAccount(c *fiber.Ctx) error {
	var req dto.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	user, err := h.service.CreateAccount(c.Context(), service.CreateAccountInput{
		Username:   req.Username,
		RealName:   req.RealName,
		Password:   req.Password,
		Role:       req.Role,
		Department: req.Department,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.UserFromDomain(user)})
}

// Logout POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.service.Logout(c.Context(), ""); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "logged_out"}})
}

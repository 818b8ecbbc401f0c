package dto

import (
	"time"

	"github.com/spec-kit/workorder-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the signed token and the actor it encodes.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CreateAccountRequest payload for admin account creation.
type CreateAccountRequest struct {
	Username   string      `json:"username"`
	RealName   string      `json:"real_name"`
	Password   string      `json:"password"`
	Role       domain.Role `json:"role"`
	Department string      `json:"department"`
}

// UserResponse is the public projection of a directory account.
type UserResponse struct {
	Username   string      `json:"username"`
	RealName   string      `json:"real_name"`
	Role       domain.Role `json:"role"`
	Department string      `json:"department"`
}

// UserFromDomain maps a directory entry into its response shape.
func UserFromDomain(user *domain.User) UserResponse {
	return UserResponse{
		Username:   user.Username,
		RealName:   user.RealName,
		Role:       user.Role,
		Department: user.Department,
	}
}

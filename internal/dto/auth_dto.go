package dto

import (
	"time"

	"github.com/kushtati/TRANSG/internal/core/domain"
)

// RegisterRequest defines the payload for registering a company and its
// first DIRECTOR user.
type RegisterRequest struct {
	CompanyName string `json:"companyName" binding:"required,min=2,max=120"`
	Name        string `json:"name" binding:"required,min=2,max=120"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Phone       string `json:"phone" binding:"omitempty,max=32"`
}

// VerifyEmailRequest defines the payload for confirming a verification code.
type VerifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required,len=6,numeric"`
}

// ResendCodeRequest defines the payload for requesting a fresh code.
type ResendCodeRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginRequest defines the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse defines the user data returned to clients.
type UserResponse struct {
	UserID      string     `json:"userID"`
	CompanyID   string     `json:"companyID"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	Verified    bool       `json:"verified"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:      u.UserID,
		CompanyID:   u.CompanyID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		Verified:    u.Verified,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

// AuthResponse is returned by login and verify-email. The credential pair also
// travels as HTTP-only cookies; the access token is duplicated in the body for
// bearer-header clients.
type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// RefreshResponse is returned by a successful refresh.
type RefreshResponse struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// MeResponse is returned by GET /auth/me.
type MeResponse struct {
	User    UserResponse     `json:"user"`
	Company *CompanyResponse `json:"company,omitempty"`
}

package auth

import (
	"github.com/arbrands/storefront-backend/internal/accounts"
)

// RegisterRequest captures the payload for creating an account. Passwords
// shorter than six characters are rejected at decode time.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse contains the signed token and the account it asserts.
type AuthResponse struct {
	Token   string               `json:"token"`
	Account *accounts.AccountDTO `json:"user"`
}

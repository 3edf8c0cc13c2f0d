package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims is the self-contained identity claim carried by the
// signed token: subject account plus the issued/expiry window.
type AccessTokenClaims struct {
	AccountID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims are the claims carried by session JWTs.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID uuid.UUID `json:"user_id"`
}

// VerificationClaims are the claims of an email verification token.
type VerificationClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

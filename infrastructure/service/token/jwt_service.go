package token

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/classconnect/backoffice/application/port/outbound"
	"github.com/classconnect/backoffice/domain/apperror"
)

// JWTService issues and verifies HS256 tokens carrying only identity claims.
// Tokens have no expiry; this is an internal service and the posture is
// deliberate.
type JWTService struct {
	hmacSecret []byte
}

func NewJWTService(secret string) (*JWTService, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret cannot be empty")
	}
	return &JWTService{hmacSecret: []byte(secret)}, nil
}

func (s *JWTService) Issue(id, email string) (string, error) {
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.hmacSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Verify decodes a token back into its identity claims. Every failure mode
// (bad signature, malformed token, unexpected signing method, missing
// claims) collapses into the single token-invalid error.
func (s *JWTService) Verify(tokenString string) (*outbound.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.hmacSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.TokenInvalid()
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperror.TokenInvalid()
	}

	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return nil, apperror.TokenInvalid()
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return nil, apperror.TokenInvalid()
	}

	return &outbound.TokenClaims{ID: id, Email: email}, nil
}

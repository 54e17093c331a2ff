package outbound

import (
	"context"
)

// TokenClaims are the identity claims carried by a bearer token.
type TokenClaims struct {
	ID    string
	Email string
}

// TokenService issues and verifies signed bearer tokens.
type TokenService interface {
	Issue(id, email string) (string, error)
	Verify(token string) (*TokenClaims, error)
}

// PasswordService hashes and verifies credentials.
type PasswordService interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}

// AuthDirectory is the external authorization service that owns user
// block/role state.
type AuthDirectory interface {
	BlockUser(ctx context.Context, userID string, block bool) error
	ChangeRole(ctx context.Context, userID, role string) error
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/classconnect/backoffice/application/port/outbound"
	"github.com/classconnect/backoffice/domain/apperror"
	"github.com/classconnect/backoffice/infrastructure/http/response"
)

type contextKey string

const authClaimsKey contextKey = "auth_claims"

type AuthMiddleware struct {
	tokenService outbound.TokenService
}

func NewAuthMiddleware(tokenService outbound.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: tokenService,
	}
}

// RequireAuth verifies the bearer token and stores the admin claims in the
// request context. Any token failure maps to 400, matching the boundary
// contract for token-invalid.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			response.BadRequest(w, apperror.TokenInvalid().Message)
			return
		}

		claims, err := m.tokenService.Verify(parts[1])
		if err != nil {
			response.BadRequest(w, apperror.MessageOf(err))
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// GetClaims retrieves the verified admin claims from ctx, or nil.
func GetClaims(ctx context.Context) *outbound.TokenClaims {
	if claims, ok := ctx.Value(authClaimsKey).(*outbound.TokenClaims); ok {
		return claims
	}
	return nil
}

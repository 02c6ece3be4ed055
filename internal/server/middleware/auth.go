// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/impactlab/volunteer-matcher/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// identityKey is the context key for storing the authenticated caller.
const identityKey ContextKey = "identity"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (IdentityGetter, error)
}

// IdentityGetter extracts the caller's identity from token claims.
type IdentityGetter interface {
	GetUserID() uuid.UUID
	GetRole() string
}

// AuthMiddleware creates middleware that validates bearer tokens and adds
// the caller's identity to the request context.
func AuthMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Parse Bearer token, case-insensitive prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			identity := types.UserIdentity{
				ID:   claims.GetUserID(),
				Role: claims.GetRole(),
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the authenticated caller from the request context.
func GetIdentity(r *http.Request) (types.UserIdentity, error) {
	identity, ok := r.Context().Value(identityKey).(types.UserIdentity)
	if !ok {
		return types.UserIdentity{}, fmt.Errorf("identity not found in request context")
	}
	return identity, nil
}

// WithIdentity returns a context carrying the given identity. Handler tests
// use this to bypass token validation.
func WithIdentity(ctx context.Context, identity types.UserIdentity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

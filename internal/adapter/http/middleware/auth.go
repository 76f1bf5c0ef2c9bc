package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/compta/internal/domain"
)

// ContextKey is the type for context keys
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user
	UserContextKey ContextKey = "user"
)

// TokenVerifier resolves a bearer token to its user.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the user in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "missing or malformed authorization header")
				return
			}

			user, err := verifier.Verify(r.Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrExpiredToken) {
					writeError(w, http.StatusUnauthorized, "token expired")
					return
				}
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
				ctx = l.With().Str("user", user.Username).Logger().WithContext(ctx)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequirePermission checks the user's role against the request method:
// reads are open to every role, DELETE needs CanDelete and other
// mutations need CanWrite.
func RequirePermission(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		case http.MethodDelete:
			if !user.Role.CanDelete() {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
		default:
			if !user.Role.CanWrite() {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole restricts mutations to one role; reads stay open.
func RequireRole(role domain.Role) func(http.Handler) http.Handler {
	return requireRole(role, false)
}

// RestrictToRole restricts every request, reads included, to one role.
func RestrictToRole(role domain.Role) func(http.Handler) http.Handler {
	return requireRole(role, true)
}

func requireRole(role domain.Role, guardReads bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !guardReads && (r.Method == http.MethodGet || r.Method == http.MethodHead) {
				next.ServeHTTP(w, r)
				return
			}

			user, ok := GetUserFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			if user.Role != role {
				writeError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserFromContext extracts the authenticated user from context
func GetUserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*domain.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

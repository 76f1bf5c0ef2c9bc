package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/compta/internal/domain"
)

type verifierFunc func(ctx context.Context, token string) (*domain.User, error)

func (f verifierFunc) Verify(ctx context.Context, token string) (*domain.User, error) {
	return f(ctx, token)
}

func tokenVerifier() TokenVerifier {
	users := map[string]domain.Role{
		"admin-token":      domain.RoleAdmin,
		"accountant-token": domain.RoleAccountant,
		"viewer-token":     domain.RoleViewer,
	}
	return verifierFunc(func(_ context.Context, token string) (*domain.User, error) {
		if token == "expired-token" {
			return nil, domain.ErrExpiredToken
		}
		role, ok := users[token]
		if !ok {
			return nil, domain.ErrInvalidToken
		}
		return &domain.User{Username: string(role), Role: role}, nil
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected int
	}{
		{name: "missing header", expected: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic abc", expected: http.StatusUnauthorized},
		{name: "empty token", header: "Bearer ", expected: http.StatusUnauthorized},
		{name: "unknown token", header: "Bearer forged", expected: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer expired-token", expected: http.StatusUnauthorized},
		{name: "valid", header: "Bearer viewer-token", expected: http.StatusOK},
		{name: "lowercase scheme", header: "bearer viewer-token", expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var user *domain.User
			h := AuthMiddleware(tokenVerifier())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				user, _ = GetUserFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
			if tt.expected == http.StatusOK && (user == nil || user.Role != domain.RoleViewer) {
				t.Fatalf("expected viewer in context, got %+v", user)
			}
		})
	}
}

func TestRequirePermission(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		method   string
		expected int
	}{
		{name: "viewer reads", token: "viewer-token", method: http.MethodGet, expected: http.StatusOK},
		{name: "viewer cannot write", token: "viewer-token", method: http.MethodPost, expected: http.StatusForbidden},
		{name: "accountant writes", token: "accountant-token", method: http.MethodPut, expected: http.StatusOK},
		{name: "accountant patches", token: "accountant-token", method: http.MethodPatch, expected: http.StatusOK},
		{name: "accountant cannot delete", token: "accountant-token", method: http.MethodDelete, expected: http.StatusForbidden},
		{name: "admin deletes", token: "admin-token", method: http.MethodDelete, expected: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := AuthMiddleware(tokenVerifier())(RequirePermission(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method == http.MethodDelete {
					w.WriteHeader(http.StatusNoContent)
				}
			})))

			req := httptest.NewRequest(tt.method, "/api/v1/invoices/1", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	h := AuthMiddleware(tokenVerifier())(RequireRole(domain.RoleAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))

	for token, expected := range map[string]int{
		"admin-token":      http.StatusOK,
		"accountant-token": http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/bank/accounts", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != expected {
			t.Fatalf("%s: expected %d, got %d", token, expected, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bank/accounts", nil)
	req.Header.Set("Authorization", "Bearer accountant-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("reads must stay open, got %d", rec.Code)
	}
}

func TestRestrictToRole(t *testing.T) {
	h := AuthMiddleware(tokenVerifier())(RestrictToRole(domain.RoleAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})))

	for token, expected := range map[string]int{
		"admin-token":      http.StatusOK,
		"accountant-token": http.StatusForbidden,
		"viewer-token":     http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != expected {
			t.Fatalf("%s: expected %d, got %d", token, expected, rec.Code)
		}
	}
}

func TestRequirePermissionWithoutUser(t *testing.T) {
	rec := httptest.NewRecorder()
	RequirePermission(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

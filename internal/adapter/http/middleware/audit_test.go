package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/iho/compta/internal/domain"
)

func TestAuditContext(t *testing.T) {
	var actor domain.AuditActor
	h := chimiddleware.RequestID(AuthMiddleware(tokenVerifier())(AuditContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = domain.AuditActorFromContext(r.Context())
	}))))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bank/transactions", nil)
	req.RemoteAddr = "192.0.2.44:51000"
	req.Header.Set("Authorization", "Bearer accountant-token")
	req.Header.Set("User-Agent", "compta-cli/1.0")
	req.Header.Set(chimiddleware.RequestIDHeader, "req-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if actor.UserID != "accountant" {
		t.Fatalf("expected accountant, got %q", actor.UserID)
	}
	if actor.IPAddress != "192.0.2.44" || actor.UserAgent != "compta-cli/1.0" || actor.RequestID != "req-42" {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

func TestAuditContextWithoutUser(t *testing.T) {
	var actor domain.AuditActor
	h := AuditContext(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor = domain.AuditActorFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", nil)
	req.RemoteAddr = "10.1.2.3"
	h.ServeHTTP(httptest.NewRecorder(), req)

	if actor.UserID != domain.SystemActor || actor.IPAddress != "10.1.2.3" {
		t.Fatalf("unexpected actor %+v", actor)
	}
}

package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	redislib "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/compta/internal/adapter/http/handler"
	apimiddleware "github.com/iho/compta/internal/adapter/http/middleware"
	redisrepo "github.com/iho/compta/internal/adapter/repository/redis"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1, nil)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotentReplayThroughRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	ledger := &stubLedgerService{}
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.LedgerHandler = handler.NewLedgerHandler(ledger)
		cfg.IdempotencyStore = redisrepo.NewIdempotencyStore(client)
		cfg.IdempotencyTTL = time.Hour
	}))

	body := `{"date":"2024-03-01","account_code":"512000","label":"Apport","debit":"1000","journal":"BQ","piece_number":"BQ-1"}`
	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/entries", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(apimiddleware.IdempotencyKeyHeader, "entry-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", first.Code, first.Body.String())
	}

	second := send()
	if second.Code != http.StatusCreated {
		t.Fatalf("expected replayed 201, got %d", second.Code)
	}
	if second.Header().Get(apimiddleware.IdempotencyReplayHeader) != "true" {
		t.Fatalf("expected replay header")
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replayed body differs: %s vs %s", second.Body.String(), first.Body.String())
	}
	if got := ledger.created.Load(); got != 1 {
		t.Fatalf("expected entry to be booked once, got %d", got)
	}
}

func TestNewRouter_AuthGuardsAPI(t *testing.T) {
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.TokenVerifier = stubVerifier{
			"admin-token":      domain.RoleAdmin,
			"accountant-token": domain.RoleAccountant,
			"viewer-token":     domain.RoleViewer,
		}
	}))

	tests := []struct {
		name     string
		method   string
		path     string
		token    string
		body     string
		expected int
	}{
		{name: "anonymous read", method: http.MethodGet, path: "/api/v1/ledger/consistency", expected: http.StatusUnauthorized},
		{name: "login is public", method: http.MethodPost, path: "/api/v1/auth/login", body: `{`, expected: http.StatusBadRequest},
		{name: "viewer read", method: http.MethodGet, path: "/api/v1/ledger/consistency", token: "viewer-token", expected: http.StatusOK},
		{name: "viewer write", method: http.MethodPost, path: "/api/v1/ledger/accounts", token: "viewer-token", body: `{}`, expected: http.StatusForbidden},
		{name: "accountant bank account", method: http.MethodPost, path: "/api/v1/bank/accounts/", token: "accountant-token", body: `{`, expected: http.StatusForbidden},
		{name: "admin bank account", method: http.MethodPost, path: "/api/v1/bank/accounts/", token: "admin-token", body: `{`, expected: http.StatusBadRequest},
		{name: "accountant delete", method: http.MethodDelete, path: "/api/v1/invoices/inv-1", token: "accountant-token", expected: http.StatusForbidden},
		{name: "accountant company profile", method: http.MethodPut, path: "/api/v1/company/", token: "accountant-token", body: `{`, expected: http.StatusForbidden},
		{name: "admin company profile", method: http.MethodPut, path: "/api/v1/company/", token: "admin-token", body: `{`, expected: http.StatusBadRequest},
		{name: "accountant reads audit trail", method: http.MethodGet, path: "/api/v1/audit/", token: "accountant-token", expected: http.StatusForbidden},
		{name: "admin reads audit trail", method: http.MethodGet, path: "/api/v1/audit/?from=bad", token: "admin-token", expected: http.StatusBadRequest},
		{name: "health stays public", method: http.MethodGet, path: "/health", expected: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d: %s", tt.expected, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.HTTPMetrics = apimiddleware.NewHTTPMetrics(reg)
		cfg.MetricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `http_requests_total{method="GET",path="/health",status="200"} 1`) {
		t.Fatalf("expected request counter in output:\n%s", rec.Body.String())
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/auth/login",
		"POST /api/v1/assets/",
		"GET /api/v1/assets/{id}/depreciation",
		"POST /api/v1/assets/{id}/depreciation",
		"GET /api/v1/assets/{id}/depreciation/schedule",
		"POST /api/v1/assets/{id}/dispose",
		"GET /api/v1/bank/verify",
		"GET /api/v1/bank/accounts/{id}/verify",
		"DELETE /api/v1/bank/accounts/{id}",
		"PATCH /api/v1/bank/transactions/{id}/reconcile",
		"POST /api/v1/ledger/entries/batch",
		"POST /api/v1/ledger/entries/letter",
		"GET /api/v1/ledger/consistency",
		"GET /api/v1/reports/grand-livre",
		"GET /api/v1/reports/export/{type}",
		"PATCH /api/v1/invoices/{id}/payment",
		"POST /api/v1/invoices/next-number",
		"GET /api/v1/vat/compute",
		"GET /api/v1/clients/active",
		"PATCH /api/v1/clients/{id}/toggle-active",
		"GET /api/v1/clients/{id}/invoices",
		"GET /api/v1/clients/{id}/stats",
		"PUT /api/v1/company/",
		"GET /api/v1/revenue/monthly",
		"GET /api/v1/revenue/by-client",
		"GET /api/v1/audit/",
		"GET /api/v1/justificatifs/{id}/download",
		"POST /api/v1/justificatifs/{id}/archive",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	cfg := RouterConfig{
		HealthHandler:       handler.NewHealthHandler(handler.PingerFunc(func(context.Context) error { return nil }), nil),
		AssetHandler:        handler.NewAssetHandler(nil),
		BankHandler:         handler.NewBankHandler(nil, nil),
		LedgerHandler:       handler.NewLedgerHandler(&stubLedgerService{}),
		ReportHandler:       handler.NewReportHandler(nil),
		InvoiceHandler:      handler.NewInvoiceHandler(nil),
		ClientHandler:       handler.NewClientHandler(nil),
		CompanyHandler:      handler.NewCompanyHandler(nil),
		RevenueHandler:      handler.NewRevenueHandler(nil),
		VATHandler:          handler.NewVATHandler(nil),
		JustificatifHandler: handler.NewJustificatifHandler(nil, usecase.DefaultMaxUploadSize),
		AuthHandler:         handler.NewAuthHandler(nil),
		AuditHandler:        handler.NewAuditHandler(nil),
		Logger:              zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// stubLedgerService implements the calls the router tests make; any other
// call panics on the nil embedded interface.
type stubLedgerService struct {
	handler.LedgerService

	created atomic.Int64
}

func (s *stubLedgerService) CreateEntry(_ context.Context, input usecase.CreateEntryInput) (*domain.LedgerEntry, error) {
	s.created.Add(1)
	return &domain.LedgerEntry{
		ID:          "entry-1",
		Date:        input.Date,
		AccountCode: input.AccountCode,
		Label:       input.Label,
		Debit:       input.Debit,
		Credit:      input.Credit,
		Journal:     input.Journal,
		PieceNumber: input.PieceNumber,
		CreatedAt:   time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
	}, nil
}

func (s *stubLedgerService) CheckConsistency(context.Context) (*domain.ConsistencyReport, error) {
	return &domain.ConsistencyReport{Balanced: true}, nil
}

type stubVerifier map[string]domain.Role

func (s stubVerifier) Verify(_ context.Context, token string) (*domain.User, error) {
	role, ok := s[token]
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	return &domain.User{Username: string(role), Role: role}, nil
}

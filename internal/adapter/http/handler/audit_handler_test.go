package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
)

type auditServiceStub struct {
	listFn func(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

func (s *auditServiceStub) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	return s.listFn(ctx, filter)
}

func TestAuditHandler_List(t *testing.T) {
	at := time.Date(2024, time.June, 3, 14, 0, 0, 0, time.UTC)
	var got domain.AuditFilter

	h := NewAuditHandler(&auditServiceStub{
		listFn: func(_ context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
			got = filter
			return []*domain.AuditLog{{
				ID:           "6f1c1a2e-0b7e-4a49-9d0c-2a8c3f1e7b10",
				UserID:       "admin",
				Action:       domain.AuditActionAssetDispose,
				ResourceType: domain.AuditResourceAsset,
				ResourceID:   "a-1",
				AfterState:   domain.JSON{"Version": float64(4)},
				Status:       domain.AuditStatusSuccess,
				CreatedAt:    at,
			}}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/audit?resource_type=asset&resource_id=a-1&action=asset.dispose&from=2024-06-01&to=2024-06-03&limit=10", nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.ResourceType != "asset" || got.ResourceID != "a-1" || got.Action != domain.AuditActionAssetDispose || got.Limit != 10 {
		t.Fatalf("unexpected filter %+v", got)
	}
	if got.StartDate == nil || !got.StartDate.Equal(time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %v", got.StartDate)
	}
	if got.EndDate == nil || !got.EndDate.After(at) {
		t.Fatalf("end date must cover the whole day, got %v", got.EndDate)
	}

	var resp []dto.AuditLogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 1 || resp[0].Action != "asset.dispose" || resp[0].AfterState["Version"] != float64(4) || resp[0].BeforeState != nil {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAuditHandler_ListErrors(t *testing.T) {
	h := NewAuditHandler(&auditServiceStub{
		listFn: func(context.Context, domain.AuditFilter) ([]*domain.AuditLog, error) {
			return nil, domain.ErrInvalidPeriod
		},
	})

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/audit?from=03/06/2024", nil, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed date, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/audit?from=2024-06-03&to=2024-06-01", nil, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an inverted period, got %d", rec.Code)
	}
}

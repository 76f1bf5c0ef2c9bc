package domain

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestMarshalState(t *testing.T) {
	state := MarshalState(struct {
		ID     string
		Amount decimal.Decimal
	}{ID: "a1", Amount: decimal.RequireFromString("12.50")})

	if state["ID"] != "a1" {
		t.Fatalf("expected ID a1, got %v", state["ID"])
	}
	if state["Amount"] != "12.5" {
		t.Fatalf("expected amount as string, got %v", state["Amount"])
	}

	var asset *FixedAsset
	if got := MarshalState(asset); got != nil {
		t.Fatalf("expected nil state for nil pointer, got %v", got)
	}
	if got := MarshalState(nil); got != nil {
		t.Fatalf("expected nil state, got %v", got)
	}
	if got := MarshalState(func() {}); got["error"] == nil {
		t.Fatalf("expected marshal error marker, got %v", got)
	}
	if got := MarshalState(42); got["value"] != "42" {
		t.Fatalf("expected scalar wrapped as value, got %v", got)
	}
}

func TestAuditActorFromContext(t *testing.T) {
	if got := AuditActorFromContext(context.Background()); got.UserID != SystemActor {
		t.Fatalf("expected system actor, got %q", got.UserID)
	}

	ctx := ContextWithAuditActor(context.Background(), AuditActor{
		UserID:    "admin",
		IPAddress: "10.0.0.1",
		UserAgent: "curl/8.0",
		RequestID: "req-1",
	})
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	log := NewAuditLog(ctx, AuditActionClientDelete, AuditResourceClient, "c1", map[string]string{"name": "ACME"}, nil, at)
	if log.UserID != "admin" || log.IPAddress != "10.0.0.1" || log.RequestID != "req-1" || log.UserAgent != "curl/8.0" {
		t.Fatalf("actor not copied: %+v", log)
	}
	if log.Status != AuditStatusSuccess || !log.CreatedAt.Equal(at) {
		t.Fatalf("unexpected status or time: %+v", log)
	}
	if log.BeforeState["name"] != "ACME" || log.AfterState != nil {
		t.Fatalf("unexpected states: before=%v after=%v", log.BeforeState, log.AfterState)
	}
}

package domain

import (
	"context"
	"encoding/json"
	"time"
)

// AuditLog records who changed which accounting record, and how.
type AuditLog struct {
	ID           string
	UserID       string
	Action       AuditAction
	ResourceType string
	ResourceID   string
	IPAddress    string
	UserAgent    string
	RequestID    string
	BeforeState  JSON
	AfterState   JSON
	Status       AuditStatus
	ErrorMessage string
	CreatedAt    time.Time
}

// JSON is a free-form snapshot stored as JSONB.
type JSON map[string]any

// AuditAction names an audited mutation.
type AuditAction string

const (
	AuditActionAssetCreate       AuditAction = "asset.create"
	AuditActionDepreciationPost  AuditAction = "depreciation.post"
	AuditActionAssetDispose      AuditAction = "asset.dispose"
	AuditActionBankAccountDelete AuditAction = "bank_account.delete"
	AuditActionBankTxCreate      AuditAction = "bank_transaction.create"
	AuditActionBankTxUpdate      AuditAction = "bank_transaction.update"
	AuditActionBankTxDelete      AuditAction = "bank_transaction.delete"
	AuditActionClientDelete      AuditAction = "client.delete"
	AuditActionCompanyUpdate     AuditAction = "company.update"
	AuditActionUserLogin         AuditAction = "user.login"
)

// Audited resource types.
const (
	AuditResourceAsset           = "asset"
	AuditResourceBankAccount     = "bank_account"
	AuditResourceBankTransaction = "bank_transaction"
	AuditResourceClient          = "client"
	AuditResourceCompany         = "company"
	AuditResourceUser            = "user"
)

// AuditStatus is the outcome of an audited action.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailure AuditStatus = "failure"
	AuditStatusError   AuditStatus = "error"
)

// AuditFilter narrows an audit log listing. Zero values match everything.
type AuditFilter struct {
	UserID       string
	Action       AuditAction
	ResourceType string
	ResourceID   string
	StartDate    *time.Time
	EndDate      *time.Time
	Limit        int
	Offset       int
}

// MarshalState converts a value to its JSON object form for an audit snapshot.
func MarshalState(v any) JSON {
	if v == nil {
		return nil
	}

	data, err := json.Marshal(v)
	if err != nil {
		return JSON{"error": "failed to marshal state"}
	}

	var state JSON
	if err := json.Unmarshal(data, &state); err != nil {
		return JSON{"value": string(data)}
	}

	return state
}

// AuditActor identifies the origin of a request.
type AuditActor struct {
	UserID    string
	IPAddress string
	UserAgent string
	RequestID string
}

// SystemActor is used when no request actor is attached to the context.
const SystemActor = "system"

type auditActorKey struct{}

// ContextWithAuditActor attaches actor to ctx.
func ContextWithAuditActor(ctx context.Context, actor AuditActor) context.Context {
	return context.WithValue(ctx, auditActorKey{}, actor)
}

// AuditActorFromContext returns the actor attached to ctx, or the system actor.
func AuditActorFromContext(ctx context.Context) AuditActor {
	actor, _ := ctx.Value(auditActorKey{}).(AuditActor)
	if actor.UserID == "" {
		actor.UserID = SystemActor
	}

	return actor
}

// NewAuditLog builds a successful audit entry for the actor found in ctx.
func NewAuditLog(ctx context.Context, action AuditAction, resourceType, resourceID string, before, after any, at time.Time) *AuditLog {
	actor := AuditActorFromContext(ctx)

	return &AuditLog{
		UserID:       actor.UserID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    actor.IPAddress,
		UserAgent:    actor.UserAgent,
		RequestID:    actor.RequestID,
		BeforeState:  MarshalState(before),
		AfterState:   MarshalState(after),
		Status:       AuditStatusSuccess,
		CreatedAt:    at,
	}
}

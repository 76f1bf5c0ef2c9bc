package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/postgres/generated"
	"github.com/iho/compta/internal/usecase"
)

// AuditRepository implements usecase.AuditRepository.
type AuditRepository struct {
	queries *generated.Queries
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db generated.DBTX) *AuditRepository {
	return &AuditRepository{queries: generated.New(db)}
}

// Create inserts an audit entry outside any transaction.
func (r *AuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	return insertAuditLog(ctx, r.queries, log)
}

// CreateTx inserts an audit entry within tx.
func (r *AuditRepository) CreateTx(ctx context.Context, tx usecase.Transaction, log *domain.AuditLog) error {
	return insertAuditLog(ctx, txQueries(tx), log)
}

func insertAuditLog(ctx context.Context, q *generated.Queries, log *domain.AuditLog) error {
	id := uuid.New()
	if log.ID != "" {
		parsed, err := uuid.Parse(log.ID)
		if err != nil {
			return fmt.Errorf("audit log id: %w", err)
		}
		id = parsed
	}

	before, err := stateToJSON(log.BeforeState)
	if err != nil {
		return err
	}
	after, err := stateToJSON(log.AfterState)
	if err != nil {
		return err
	}

	err = q.CreateAuditLog(ctx, generated.CreateAuditLogParams{
		ID:           pgtype.UUID{Bytes: id, Valid: true},
		UserID:       log.UserID,
		Action:       string(log.Action),
		ResourceType: log.ResourceType,
		ResourceID:   log.ResourceID,
		IpAddress:    log.IPAddress,
		UserAgent:    log.UserAgent,
		RequestID:    log.RequestID,
		BeforeState:  before,
		AfterState:   after,
		Status:       string(log.Status),
		ErrorMessage: log.ErrorMessage,
		CreatedAt:    timeToPgTimestamptz(log.CreatedAt),
	})
	if err != nil {
		return err
	}

	log.ID = id.String()

	return nil
}

// List returns audit entries matching filter, newest first.
func (r *AuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	limit, offset := pageParams(filter.Limit, filter.Offset)

	rows, err := r.queries.ListAuditLogs(ctx, generated.ListAuditLogsParams{
		UserID:       filter.UserID,
		Action:       string(filter.Action),
		ResourceType: filter.ResourceType,
		ResourceID:   filter.ResourceID,
		FromTime:     timePtrToPgTimestamptz(filter.StartDate),
		ToTime:       timePtrToPgTimestamptz(filter.EndDate),
		Limit:        limit,
		Offset:       offset,
	})
	if err != nil {
		return nil, err
	}

	logs := make([]*domain.AuditLog, 0, len(rows))
	for _, row := range rows {
		logs = append(logs, rowToAuditLog(row))
	}

	return logs, nil
}

func stateToJSON(state domain.JSON) ([]byte, error) {
	if state == nil {
		return nil, nil
	}

	return json.Marshal(state)
}

func rowToAuditLog(row generated.AuditLog) *domain.AuditLog {
	log := &domain.AuditLog{
		UserID:       row.UserID,
		Action:       domain.AuditAction(row.Action),
		ResourceType: row.ResourceType,
		ResourceID:   row.ResourceID,
		IPAddress:    row.IpAddress,
		UserAgent:    row.UserAgent,
		RequestID:    row.RequestID,
		Status:       domain.AuditStatus(row.Status),
		ErrorMessage: row.ErrorMessage,
		CreatedAt:    row.CreatedAt.Time,
	}
	if row.ID.Valid {
		log.ID = uuid.UUID(row.ID.Bytes).String()
	}

	// A snapshot that no longer decodes is dropped rather than failing the listing.
	if len(row.BeforeState) > 0 {
		_ = json.Unmarshal(row.BeforeState, &log.BeforeState)
	}
	if len(row.AfterState) > 0 {
		_ = json.Unmarshal(row.AfterState, &log.AfterState)
	}

	return log
}

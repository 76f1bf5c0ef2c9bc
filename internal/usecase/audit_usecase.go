package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/metrics"
)

// auditTrail writes audit entries for the use cases. A nil repository disables it.
type auditTrail struct {
	repo    AuditRepository
	metrics *metrics.Metrics
}

// recordTx writes log inside tx so the entry commits or rolls back with the change.
func (a auditTrail) recordTx(ctx context.Context, tx Transaction, log *domain.AuditLog) error {
	if a.repo == nil {
		return nil
	}

	if err := a.repo.CreateTx(ctx, tx, log); err != nil {
		return err
	}

	a.observe(log)

	return nil
}

// record writes log outside any transaction. Failures are logged, not returned.
func (a auditTrail) record(ctx context.Context, log *domain.AuditLog) {
	if a.repo == nil {
		return
	}

	if err := a.repo.Create(ctx, log); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("action", string(log.Action)).
			Str("resource_id", log.ResourceID).
			Msg("audit log not written")
		return
	}

	a.observe(log)
}

func (a auditTrail) observe(log *domain.AuditLog) {
	if a.metrics != nil {
		a.metrics.AuditLogsCreated.WithLabelValues(string(log.Action)).Inc()
	}
}

// AuditUseCase reads the audit trail.
type AuditUseCase struct {
	auditRepo AuditRepository
}

// NewAuditUseCase creates a new AuditUseCase.
func NewAuditUseCase(auditRepo AuditRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// ListAuditLogs returns audit entries, newest first.
func (uc *AuditUseCase) ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.EndDate.Before(*filter.StartDate) {
		return nil, domain.ErrInvalidPeriod
	}

	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.auditRepo.List(ctx, filter)
}

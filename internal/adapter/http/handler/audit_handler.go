package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
)

// AuditService defines the behavior needed by AuditHandler.
type AuditService interface {
	ListAuditLogs(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
}

// AuditHandler serves the audit trail.
type AuditHandler struct {
	auditUC AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC AuditService) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List returns audit entries filtered by user_id, action, resource_type,
// resource_id and the from/to dates, newest first.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.AuditFilter{
		UserID:       q.Get("user_id"),
		Action:       domain.AuditAction(q.Get("action")),
		ResourceType: q.Get("resource_type"),
		ResourceID:   q.Get("resource_id"),
	}
	filter.Limit, filter.Offset = pagination(r)

	from, err := parseDateQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}
	filter.StartDate = from
	if to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		filter.EndDate = &end
	}

	logs, err := h.auditUC.ListAuditLogs(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err, "failed to list audit logs")
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}

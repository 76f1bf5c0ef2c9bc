package dto

import (
	"time"

	"github.com/iho/compta/internal/domain"
)

// AuditLogResponse is one audit trail entry.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	UserID       string         `json:"user_id"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type"`
	ResourceID   string         `json:"resource_id"`
	IPAddress    string         `json:"ip_address,omitempty"`
	UserAgent    string         `json:"user_agent,omitempty"`
	RequestID    string         `json:"request_id,omitempty"`
	BeforeState  map[string]any `json:"before_state,omitempty"`
	AfterState   map[string]any `json:"after_state,omitempty"`
	Status       string         `json:"status"`
	ErrorMessage string         `json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AuditLogsFromDomain converts audit entries.
func AuditLogsFromDomain(logs []*domain.AuditLog) []AuditLogResponse {
	resp := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, AuditLogResponse{
			ID:           l.ID,
			UserID:       l.UserID,
			Action:       string(l.Action),
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			IPAddress:    l.IPAddress,
			UserAgent:    l.UserAgent,
			RequestID:    l.RequestID,
			BeforeState:  l.BeforeState,
			AfterState:   l.AfterState,
			Status:       string(l.Status),
			ErrorMessage: l.ErrorMessage,
			CreatedAt:    l.CreatedAt,
		})
	}

	return resp
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
)

// CreateDeclarationRequest files a VAT declaration for a period.
type CreateDeclarationRequest struct {
	From   Date   `json:"from"`
	To     Date   `json:"to"`
	Status string `json:"status,omitempty"`
}

// Period returns the declared period.
func (r *CreateDeclarationRequest) Period() domain.Period {
	return domain.Period{From: r.From.Time, To: r.To.Time}
}

// VATSummaryResponse is the VAT computation for a period.
type VATSummaryResponse struct {
	From       Date            `json:"from"`
	To         Date            `json:"to"`
	Collected  decimal.Decimal `json:"collected"`
	Deductible decimal.Decimal `json:"deductible"`
	Due        decimal.Decimal `json:"due"`
}

// VATSummaryFromDomain converts a VAT summary.
func VATSummaryFromDomain(s *domain.VATSummary) *VATSummaryResponse {
	return &VATSummaryResponse{
		From:       NewDate(s.Period.From),
		To:         NewDate(s.Period.To),
		Collected:  s.Collected,
		Deductible: s.Deductible,
		Due:        s.Due,
	}
}

// VATDeclarationResponse represents a filed declaration.
type VATDeclarationResponse struct {
	ID         string          `json:"id"`
	From       Date            `json:"from"`
	To         Date            `json:"to"`
	Collected  decimal.Decimal `json:"collected"`
	Deductible decimal.Decimal `json:"deductible"`
	Due        decimal.Decimal `json:"due"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
}

// VATDeclarationFromDomain converts a declaration.
func VATDeclarationFromDomain(d *domain.VATDeclaration) *VATDeclarationResponse {
	return &VATDeclarationResponse{
		ID:         d.ID,
		From:       NewDate(d.Period.From),
		To:         NewDate(d.Period.To),
		Collected:  d.Collected,
		Deductible: d.Deductible,
		Due:        d.Due,
		Status:     string(d.Status),
		CreatedAt:  d.CreatedAt,
	}
}

// VATDeclarationsFromDomain converts declarations.
func VATDeclarationsFromDomain(list []*domain.VATDeclaration) []*VATDeclarationResponse {
	out := make([]*VATDeclarationResponse, len(list))
	for i, d := range list {
		out[i] = VATDeclarationFromDomain(d)
	}
	return out
}

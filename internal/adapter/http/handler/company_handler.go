package handler

import (
	"context"
	"net/http"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
)

// CompanyService defines the behavior needed by CompanyHandler.
type CompanyService interface {
	GetCompany(ctx context.Context) (*domain.Company, error)
	SaveCompany(ctx context.Context, company *domain.Company) (*domain.Company, error)
}

// CompanyHandler serves the company profile.
type CompanyHandler struct {
	companyUC CompanyService
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyUC CompanyService) *CompanyHandler {
	return &CompanyHandler{companyUC: companyUC}
}

// Get returns the company profile.
func (h *CompanyHandler) Get(w http.ResponseWriter, r *http.Request) {
	company, err := h.companyUC.GetCompany(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "failed to get company")
		return
	}

	writeJSON(w, http.StatusOK, dto.CompanyFromDomain(company))
}

// Save creates or replaces the company profile.
func (h *CompanyHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req dto.CompanyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	company, err := h.companyUC.SaveCompany(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, r, err, "failed to save company")
		return
	}

	writeJSON(w, http.StatusOK, dto.CompanyFromDomain(company))
}

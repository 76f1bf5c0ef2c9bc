package handler

import (
	"context"
	"net/http"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
)

// VATService defines the behavior needed by VATHandler.
type VATService interface {
	Compute(ctx context.Context, period domain.Period) (*domain.VATSummary, error)
	CreateDeclaration(ctx context.Context, period domain.Period, status domain.DeclarationStatus) (*domain.VATDeclaration, error)
	ListDeclarations(ctx context.Context, limit, offset int) ([]*domain.VATDeclaration, error)
}

// VATHandler handles VAT computation and declarations.
type VATHandler struct {
	vatUC VATService
}

// NewVATHandler creates a new VATHandler.
func NewVATHandler(vatUC VATService) *VATHandler {
	return &VATHandler{vatUC: vatUC}
}

// Compute returns collected, deductible and due VAT for ?from=&to=.
func (h *VATHandler) Compute(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid period", err.Error())
		return
	}

	summary, err := h.vatUC.Compute(r.Context(), period)
	if err != nil {
		writeDomainError(w, r, err, "failed to compute VAT")
		return
	}

	writeJSON(w, http.StatusOK, dto.VATSummaryFromDomain(summary))
}

// CreateDeclaration files a declaration with the amounts of its period.
func (h *VATHandler) CreateDeclaration(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDeclarationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	declaration, err := h.vatUC.CreateDeclaration(r.Context(), req.Period(), domain.DeclarationStatus(req.Status))
	if err != nil {
		writeDomainError(w, r, err, "failed to create VAT declaration")
		return
	}

	writeJSON(w, http.StatusCreated, dto.VATDeclarationFromDomain(declaration))
}

// ListDeclarations lists declarations, most recent period first.
func (h *VATHandler) ListDeclarations(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	declarations, err := h.vatUC.ListDeclarations(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, err, "failed to list VAT declarations")
		return
	}

	writeJSON(w, http.StatusOK, dto.VATDeclarationsFromDomain(declarations))
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/compta/internal/domain"
)

// VATUseCase computes VAT positions and records declarations.
type VATUseCase struct {
	invoiceRepo InvoiceRepository
	vatRepo     VATRepository
	idGen       IDGenerator
}

// NewVATUseCase creates a new VATUseCase.
func NewVATUseCase(invoiceRepo InvoiceRepository, vatRepo VATRepository, idGen IDGenerator) *VATUseCase {
	return &VATUseCase{
		invoiceRepo: invoiceRepo,
		vatRepo:     vatRepo,
		idGen:       idGen,
	}
}

// Compute returns collected and deductible VAT for invoices issued in period.
func (uc *VATUseCase) Compute(ctx context.Context, period domain.Period) (*domain.VATSummary, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	collected, deductible, err := uc.invoiceRepo.VATTotals(ctx, period)
	if err != nil {
		return nil, err
	}

	return domain.NewVATSummary(period, collected, deductible), nil
}

// CreateDeclaration records a declaration for period. Amounts are always
// computed from invoices.
func (uc *VATUseCase) CreateDeclaration(ctx context.Context, period domain.Period, status domain.DeclarationStatus) (*domain.VATDeclaration, error) {
	if status == "" {
		status = domain.DeclarationInProgress
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidDeclaration, status)
	}

	summary, err := uc.Compute(ctx, period)
	if err != nil {
		return nil, err
	}

	declaration := &domain.VATDeclaration{
		ID:         uc.idGen.Generate(),
		Period:     period,
		Collected:  summary.Collected,
		Deductible: summary.Deductible,
		Due:        summary.Due,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.vatRepo.Create(ctx, declaration); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("declaration_id", declaration.ID).
		Str("due", declaration.Due.String()).
		Msg("vat declaration recorded")

	return declaration, nil
}

// ListDeclarations lists declarations, most recent period first.
func (uc *VATUseCase) ListDeclarations(ctx context.Context, limit, offset int) ([]*domain.VATDeclaration, error) {
	limit, offset, _ = domain.ValidatePagination(limit, offset)
	return uc.vatRepo.List(ctx, limit, offset)
}

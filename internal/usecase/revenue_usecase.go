package usecase

import (
	"context"

	"github.com/iho/compta/internal/domain"
)

// DefaultTopClients is the size of the revenue ranking when no limit is given.
const DefaultTopClients = 10

// RevenueUseCase reports the chiffre d'affaires cashed on sales invoices.
// A zero year covers every year.
type RevenueUseCase struct {
	invoiceRepo InvoiceRepository
}

// NewRevenueUseCase creates a new RevenueUseCase.
func NewRevenueUseCase(invoiceRepo InvoiceRepository) *RevenueUseCase {
	return &RevenueUseCase{invoiceRepo: invoiceRepo}
}

// Monthly groups cashed revenue by month, oldest first.
func (uc *RevenueUseCase) Monthly(ctx context.Context, year int) ([]domain.MonthlyRevenue, error) {
	payments, err := uc.payments(ctx, year)
	if err != nil {
		return nil, err
	}

	return domain.NewMonthlyRevenue(payments), nil
}

// Stats summarises the payments of year.
func (uc *RevenueUseCase) Stats(ctx context.Context, year int) (*domain.RevenueStats, error) {
	payments, err := uc.payments(ctx, year)
	if err != nil {
		return nil, err
	}

	return domain.NewRevenueStats(payments), nil
}

// Years lists the years with cashed revenue, latest first.
func (uc *RevenueUseCase) Years(ctx context.Context) ([]int, error) {
	payments, err := uc.payments(ctx, 0)
	if err != nil {
		return nil, err
	}

	return domain.RevenueYears(payments), nil
}

// ByClient ranks counterparties by cashed revenue. A non-positive limit
// falls back to DefaultTopClients.
func (uc *RevenueUseCase) ByClient(ctx context.Context, year, limit int) ([]domain.ClientRevenue, error) {
	if limit <= 0 {
		limit = DefaultTopClients
	}

	payments, err := uc.payments(ctx, year)
	if err != nil {
		return nil, err
	}

	return domain.NewClientRevenue(payments, limit), nil
}

func (uc *RevenueUseCase) payments(ctx context.Context, year int) ([]domain.SalePayment, error) {
	if year < 0 {
		return nil, domain.ErrInvalidPeriod
	}

	return uc.invoiceRepo.ListSalePayments(ctx, year)
}

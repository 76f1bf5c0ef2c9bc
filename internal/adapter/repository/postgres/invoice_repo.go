package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/postgres/generated"
	"github.com/iho/compta/internal/usecase"
)

// InvoiceRepository implements usecase.InvoiceRepository.
type InvoiceRepository struct {
	queries *generated.Queries
}

// NewInvoiceRepository creates a new InvoiceRepository.
func NewInvoiceRepository(db generated.DBTX) *InvoiceRepository {
	return &InvoiceRepository{queries: generated.New(db)}
}

// Create inserts an invoice within tx. A duplicate number yields domain.ErrInvoiceNumberTaken.
func (r *InvoiceRepository) Create(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error {
	err := txQueries(tx).CreateInvoice(ctx, generated.CreateInvoiceParams{
		ID:                invoice.ID,
		Number:            invoice.Number,
		Type:              string(invoice.Type),
		IssueDate:         timeToPgDate(invoice.IssueDate),
		DueDate:           timePtrToPgDate(invoice.DueDate),
		Counterparty:      invoice.Counterparty,
		CounterpartySiret: invoice.CounterpartySIRET,
		AmountExclTax:     decimalToNumeric(invoice.AmountExclTax),
		VatAmount:         decimalToNumeric(invoice.VATAmount),
		AmountInclTax:     decimalToNumeric(invoice.AmountInclTax),
		PaidAmount:        decimalToNumeric(invoice.PaidAmount),
		RemainingAmount:   decimalToNumeric(invoice.RemainingAmount),
		Status:            string(invoice.Status),
		Category:          invoice.Category,
		Notes:             invoice.Notes,
		CreatedAt:         timeToPgTimestamptz(invoice.CreatedAt),
		UpdatedAt:         timeToPgTimestamptz(invoice.UpdatedAt),
		ClientID:          stringPtrToText(invoice.ClientID),
	})
	if isUniqueViolation(err) {
		return domain.ErrInvoiceNumberTaken
	}
	if isForeignKeyViolation(err) {
		return domain.ErrClientNotFound
	}

	return err
}

// GetByID retrieves an invoice by ID.
func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*domain.Invoice, error) {
	row, err := r.queries.GetInvoiceByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}

		return nil, err
	}

	return rowToInvoice(row), nil
}

// GetByIDForUpdate retrieves an invoice with a FOR UPDATE lock.
func (r *InvoiceRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Invoice, error) {
	row, err := txQueries(tx).GetInvoiceByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}

		return nil, err
	}

	return rowToInvoice(row), nil
}

// Update rewrites every mutable field of the invoice within tx.
func (r *InvoiceRepository) Update(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error {
	n, err := txQueries(tx).UpdateInvoice(ctx, generated.UpdateInvoiceParams{
		ID:                invoice.ID,
		Number:            invoice.Number,
		Type:              string(invoice.Type),
		IssueDate:         timeToPgDate(invoice.IssueDate),
		DueDate:           timePtrToPgDate(invoice.DueDate),
		Counterparty:      invoice.Counterparty,
		CounterpartySiret: invoice.CounterpartySIRET,
		AmountExclTax:     decimalToNumeric(invoice.AmountExclTax),
		VatAmount:         decimalToNumeric(invoice.VATAmount),
		AmountInclTax:     decimalToNumeric(invoice.AmountInclTax),
		PaidAmount:        decimalToNumeric(invoice.PaidAmount),
		RemainingAmount:   decimalToNumeric(invoice.RemainingAmount),
		Status:            string(invoice.Status),
		Category:          invoice.Category,
		Notes:             invoice.Notes,
		UpdatedAt:         timeToPgTimestamptz(invoice.UpdatedAt),
		ClientID:          stringPtrToText(invoice.ClientID),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrInvoiceNumberTaken
		}
		if isForeignKeyViolation(err) {
			return domain.ErrClientNotFound
		}
		return err
	}
	if n == 0 {
		return domain.ErrInvoiceNotFound
	}

	return nil
}

// UpdatePayment stores the paid amount and the derived remaining amount and status.
func (r *InvoiceRepository) UpdatePayment(ctx context.Context, tx usecase.Transaction, invoice *domain.Invoice) error {
	n, err := txQueries(tx).UpdateInvoicePayment(ctx, generated.UpdateInvoicePaymentParams{
		ID:              invoice.ID,
		PaidAmount:      decimalToNumeric(invoice.PaidAmount),
		RemainingAmount: decimalToNumeric(invoice.RemainingAmount),
		Status:          string(invoice.Status),
		UpdatedAt:       timeToPgTimestamptz(invoice.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvoiceNotFound
	}

	return nil
}

// Delete removes an invoice.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteInvoice(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrInvoiceNotFound
	}

	return nil
}

// List returns invoices newest first.
func (r *InvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	params := generated.ListInvoicesParams{
		FromDate: timePtrToPgDate(filter.From),
		ToDate:   timePtrToPgDate(filter.To),
		Search:   filter.Search,
		ClientID: filter.ClientID,
	}
	if filter.Type != nil {
		params.Type = string(*filter.Type)
	}
	if filter.Status != nil {
		params.Status = string(*filter.Status)
	}
	params.Limit, params.Offset = pageParams(filter.Limit, filter.Offset)

	rows, err := r.queries.ListInvoices(ctx, params)
	if err != nil {
		return nil, err
	}

	return rowsToInvoices(rows), nil
}

// ListOverdue returns unpaid invoices whose due date is before asOf.
func (r *InvoiceRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error) {
	rows, err := r.queries.ListOverdueInvoices(ctx, timeToPgDate(asOf))
	if err != nil {
		return nil, err
	}

	return rowsToInvoices(rows), nil
}

// Stats aggregates invoice totals as of asOf.
func (r *InvoiceRepository) Stats(ctx context.Context, asOf time.Time) (*domain.InvoiceStats, error) {
	row, err := r.queries.GetInvoiceStats(ctx, timeToPgDate(asOf))
	if err != nil {
		return nil, err
	}

	return &domain.InvoiceStats{
		TotalSales:     numericToDecimal(row.TotalSales),
		TotalPurchases: numericToDecimal(row.TotalPurchases),
		TotalUnpaid:    numericToDecimal(row.TotalUnpaid),
		UnpaidCount:    row.UnpaidCount,
		OverdueCount:   row.OverdueCount,
		SalesCount:     row.SalesCount,
	}, nil
}

// MaxSequence returns the highest numeric suffix among numbers starting with prefix.
func (r *InvoiceRepository) MaxSequence(ctx context.Context, prefix string) (int, error) {
	n, err := r.queries.GetMaxInvoiceSequence(ctx, prefix)
	if err != nil {
		return 0, err
	}

	return int(n), nil
}

// VATTotals sums the VAT of sales and purchases issued within period.
func (r *InvoiceRepository) VATTotals(ctx context.Context, period domain.Period) (decimal.Decimal, decimal.Decimal, error) {
	row, err := r.queries.GetVATTotals(ctx, generated.GetVATTotalsParams{
		FromDate: timeToPgDate(period.From),
		ToDate:   timeToPgDate(period.To),
	})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(row.Collected), numericToDecimal(row.Deductible), nil
}

// CreatePayment records a change of the paid amount within tx.
func (r *InvoiceRepository) CreatePayment(ctx context.Context, tx usecase.Transaction, payment *domain.InvoicePayment) error {
	err := txQueries(tx).CreateInvoicePayment(ctx, generated.CreateInvoicePaymentParams{
		ID:        payment.ID,
		InvoiceID: payment.InvoiceID,
		Date:      timeToPgDate(payment.Date),
		Amount:    decimalToNumeric(payment.Amount),
		CreatedAt: timeToPgTimestamptz(payment.CreatedAt),
	})
	if isAmountViolation(err) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidAmount, err)
	}

	return err
}

// ListSalePayments returns the payments received on sales invoices, oldest
// first. A zero year returns every year.
func (r *InvoiceRepository) ListSalePayments(ctx context.Context, year int) ([]domain.SalePayment, error) {
	rows, err := r.queries.ListSalePayments(ctx, int32(year))
	if err != nil {
		return nil, err
	}

	payments := make([]domain.SalePayment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, domain.SalePayment{
			InvoiceID:     row.InvoiceID,
			Counterparty:  row.Counterparty,
			Date:          pgDateToTime(row.Date),
			Amount:        numericToDecimal(row.Amount),
			AmountExclTax: numericToDecimal(row.AmountExclTax),
			VATAmount:     numericToDecimal(row.VatAmount),
			AmountInclTax: numericToDecimal(row.AmountInclTax),
		})
	}

	return payments, nil
}

func rowsToInvoices(rows []generated.Invoice) []*domain.Invoice {
	invoices := make([]*domain.Invoice, 0, len(rows))
	for _, row := range rows {
		invoices = append(invoices, rowToInvoice(row))
	}
	return invoices
}

func rowToInvoice(row generated.Invoice) *domain.Invoice {
	return &domain.Invoice{
		ID:                row.ID,
		Number:            row.Number,
		Type:              domain.InvoiceType(row.Type),
		IssueDate:         pgDateToTime(row.IssueDate),
		DueDate:           pgDateToTimePtr(row.DueDate),
		Counterparty:      row.Counterparty,
		CounterpartySIRET: row.CounterpartySiret,
		AmountExclTax:     numericToDecimal(row.AmountExclTax),
		VATAmount:         numericToDecimal(row.VatAmount),
		AmountInclTax:     numericToDecimal(row.AmountInclTax),
		PaidAmount:        numericToDecimal(row.PaidAmount),
		RemainingAmount:   numericToDecimal(row.RemainingAmount),
		Status:            domain.InvoiceStatus(row.Status),
		Category:          row.Category,
		Notes:             row.Notes,
		ClientID:          textToStringPtr(row.ClientID),
		CreatedAt:         row.CreatedAt.Time,
		UpdatedAt:         row.UpdatedAt.Time,
	}
}

// VATRepository implements usecase.VATRepository.
type VATRepository struct {
	queries *generated.Queries
}

// NewVATRepository creates a new VATRepository.
func NewVATRepository(db generated.DBTX) *VATRepository {
	return &VATRepository{queries: generated.New(db)}
}

// Create stores a declaration.
func (r *VATRepository) Create(ctx context.Context, declaration *domain.VATDeclaration) error {
	return r.queries.CreateVATDeclaration(ctx, generated.CreateVATDeclarationParams{
		ID:         declaration.ID,
		PeriodFrom: timeToPgDate(declaration.Period.From),
		PeriodTo:   timeToPgDate(declaration.Period.To),
		Collected:  decimalToNumeric(declaration.Collected),
		Deductible: decimalToNumeric(declaration.Deductible),
		Due:        decimalToNumeric(declaration.Due),
		Status:     string(declaration.Status),
		CreatedAt:  timeToPgTimestamptz(declaration.CreatedAt),
	})
}

// List returns declarations, latest period first.
func (r *VATRepository) List(ctx context.Context, limit, offset int) ([]*domain.VATDeclaration, error) {
	l, o := pageParams(limit, offset)
	rows, err := r.queries.ListVATDeclarations(ctx, generated.ListVATDeclarationsParams{Limit: l, Offset: o})
	if err != nil {
		return nil, err
	}

	declarations := make([]*domain.VATDeclaration, 0, len(rows))
	for _, row := range rows {
		declarations = append(declarations, &domain.VATDeclaration{
			ID:         row.ID,
			Period:     domain.Period{From: pgDateToTime(row.PeriodFrom), To: pgDateToTime(row.PeriodTo)},
			Collected:  numericToDecimal(row.Collected),
			Deductible: numericToDecimal(row.Deductible),
			Due:        numericToDecimal(row.Due),
			Status:     domain.DeclarationStatus(row.Status),
			CreatedAt:  row.CreatedAt.Time,
		})
	}

	return declarations, nil
}

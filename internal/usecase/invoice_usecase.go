package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/metrics"
)

// InvoiceUseCase handles sales and purchase invoices.
type InvoiceUseCase struct {
	txManager   TransactionManager
	invoiceRepo InvoiceRepository
	clientRepo  ClientRepository
	idGen       IDGenerator
	metrics     *metrics.Metrics
	now         func() time.Time
}

// NewInvoiceUseCase creates a new InvoiceUseCase.
func NewInvoiceUseCase(
	txManager TransactionManager,
	invoiceRepo InvoiceRepository,
	clientRepo ClientRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		idGen:       idGen,
		metrics:     metrics,
		now:         time.Now,
	}
}

// InvoiceInput represents the editable fields of an invoice.
type InvoiceInput struct {
	Number            string
	Type              domain.InvoiceType
	IssueDate         time.Time
	DueDate           *time.Time
	Counterparty      string
	CounterpartySIRET string
	AmountExclTax     decimal.Decimal
	VATAmount         decimal.Decimal
	AmountInclTax     decimal.Decimal
	PaidAmount        decimal.Decimal
	Category          string
	Notes             string
	// ClientID links the invoice to a client; its name and SIRET fill an
	// empty counterparty.
	ClientID *string
}

// CreateInvoice records an invoice. An empty number is replaced by the next
// number in the type's sequence. A non-zero paid amount is journaled as a
// payment on the issue date.
func (uc *InvoiceUseCase) CreateInvoice(ctx context.Context, input InvoiceInput) (*domain.Invoice, error) {
	if input.Number == "" && input.Type.IsValid() {
		year := input.IssueDate.Year()
		if input.IssueDate.IsZero() {
			year = uc.now().Year()
		}
		number, err := uc.NextNumber(ctx, input.Type, year)
		if err != nil {
			return nil, err
		}
		input.Number = number
	}
	if err := uc.applyClient(ctx, &input); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	invoice := &domain.Invoice{
		ID:        uc.idGen.Generate(),
		CreatedAt: now,
	}
	applyInvoiceInput(invoice, input, now)

	if err := invoice.Validate(); err != nil {
		return nil, err
	}
	if err := domain.ValidateSIRET(invoice.CounterpartySIRET); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInvoice, err)
	}

	err := uc.inTx(ctx, func(txCtx context.Context, tx Transaction) error {
		if err := uc.invoiceRepo.Create(txCtx, tx, invoice); err != nil {
			return err
		}
		return uc.journalPayment(txCtx, tx, invoice.ID, invoice.PaidAmount, invoice.IssueDate, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvoicesCreated.WithLabelValues(string(invoice.Type)).Inc()
	}

	zerolog.Ctx(ctx).Info().
		Str("invoice_id", invoice.ID).
		Str("number", invoice.Number).
		Str("amount_ttc", invoice.AmountInclTax.String()).
		Msg("invoice created")

	return invoice, nil
}

// UpdateInvoice replaces the fields of an invoice and recomputes its status.
// A change of the paid amount is journaled as a payment dated today.
func (uc *InvoiceUseCase) UpdateInvoice(ctx context.Context, id string, input InvoiceInput) (*domain.Invoice, error) {
	if err := uc.applyClient(ctx, &input); err != nil {
		return nil, err
	}

	var invoice *domain.Invoice
	err := uc.inTx(ctx, func(txCtx context.Context, tx Transaction) error {
		var err error
		invoice, err = uc.invoiceRepo.GetByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}
		previouslyPaid := invoice.PaidAmount

		now := uc.now().UTC()
		applyInvoiceInput(invoice, input, now)

		if err := invoice.Validate(); err != nil {
			return err
		}
		if err := domain.ValidateSIRET(invoice.CounterpartySIRET); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrInvalidInvoice, err)
		}

		if err := uc.invoiceRepo.Update(txCtx, tx, invoice); err != nil {
			return err
		}
		return uc.journalPayment(txCtx, tx, invoice.ID, invoice.PaidAmount.Sub(previouslyPaid), now, now)
	})
	if err != nil {
		return nil, err
	}

	return invoice, nil
}

// applyClient checks the linked client and fills the counterparty from it.
func (uc *InvoiceUseCase) applyClient(ctx context.Context, input *InvoiceInput) error {
	if input.ClientID == nil || *input.ClientID == "" {
		input.ClientID = nil
		return nil
	}
	if uc.clientRepo == nil {
		return domain.ErrClientNotFound
	}

	client, err := uc.clientRepo.GetByID(ctx, *input.ClientID)
	if err != nil {
		return err
	}
	if input.Counterparty == "" {
		input.Counterparty = client.Name
	}
	if input.CounterpartySIRET == "" {
		input.CounterpartySIRET = client.SIRET
	}

	return nil
}

// journalPayment records a change of the paid amount. Zero changes are skipped.
func (uc *InvoiceUseCase) journalPayment(ctx context.Context, tx Transaction, invoiceID string, delta decimal.Decimal, paidOn, now time.Time) error {
	if delta.IsZero() {
		return nil
	}

	return uc.invoiceRepo.CreatePayment(ctx, tx, &domain.InvoicePayment{
		ID:        uc.idGen.Generate(),
		InvoiceID: invoiceID,
		Date:      paidOn,
		Amount:    delta,
		CreatedAt: now,
	})
}

func (uc *InvoiceUseCase) inTx(ctx context.Context, fn func(ctx context.Context, tx Transaction) error) error {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return err
	}
	defer tx.Rollback(txCtx)

	if err := fn(txCtx, tx); err != nil {
		return err
	}

	return tx.Commit(txCtx)
}

func applyInvoiceInput(invoice *domain.Invoice, input InvoiceInput, now time.Time) {
	invoice.Number = input.Number
	invoice.Type = input.Type
	invoice.IssueDate = input.IssueDate
	invoice.DueDate = input.DueDate
	invoice.Counterparty = input.Counterparty
	invoice.CounterpartySIRET = input.CounterpartySIRET
	invoice.AmountExclTax = input.AmountExclTax
	invoice.VATAmount = input.VATAmount
	invoice.AmountInclTax = input.AmountInclTax
	invoice.PaidAmount = input.PaidAmount
	invoice.Category = input.Category
	invoice.Notes = input.Notes
	invoice.ClientID = input.ClientID
	invoice.UpdatedAt = now
	invoice.Refresh(now)
}

// GetInvoice retrieves an invoice by ID.
func (uc *InvoiceUseCase) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return uc.invoiceRepo.GetByID(ctx, id)
}

// ListInvoices lists invoices matching filter, newest first.
func (uc *InvoiceUseCase) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	if filter.Type != nil && !filter.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidInvoice, *filter.Type)
	}
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInvoice, *filter.Status)
	}
	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.invoiceRepo.List(ctx, filter)
}

// DeleteInvoice deletes an invoice.
func (uc *InvoiceUseCase) DeleteInvoice(ctx context.Context, id string) error {
	return uc.invoiceRepo.Delete(ctx, id)
}

// RecordPayment sets the total amount paid on an invoice and recomputes the
// remaining amount and status. The change is journaled as a payment dated
// paidOn, or today when paidOn is nil.
func (uc *InvoiceUseCase) RecordPayment(ctx context.Context, id string, paid decimal.Decimal, paidOn *time.Time) (*domain.Invoice, error) {
	if paid.IsNegative() {
		return nil, fmt.Errorf("%w: paid amount must not be negative", domain.ErrInvalidAmount)
	}

	now := uc.now().UTC()
	date := now
	if paidOn != nil {
		date = *paidOn
	}

	var invoice *domain.Invoice
	err := uc.inTx(ctx, func(txCtx context.Context, tx Transaction) error {
		var err error
		invoice, err = uc.invoiceRepo.GetByIDForUpdate(txCtx, tx, id)
		if err != nil {
			return err
		}

		if paid.GreaterThan(invoice.AmountInclTax) {
			return fmt.Errorf("%w: paid amount exceeds invoice total", domain.ErrInvalidAmount)
		}

		delta := paid.Sub(invoice.PaidAmount)
		invoice.PaidAmount = paid
		invoice.UpdatedAt = now
		invoice.Refresh(now)

		if err := uc.invoiceRepo.UpdatePayment(txCtx, tx, invoice); err != nil {
			return err
		}
		return uc.journalPayment(txCtx, tx, invoice.ID, delta, date, now)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.PaymentsApplied.Inc()
	}

	zerolog.Ctx(ctx).Info().
		Str("invoice_id", invoice.ID).
		Str("paid", paid.String()).
		Str("status", string(invoice.Status)).
		Msg("invoice payment recorded")

	return invoice, nil
}

// ListOverdue returns unpaid invoices whose due date has passed.
func (uc *InvoiceUseCase) ListOverdue(ctx context.Context) ([]*domain.Invoice, error) {
	return uc.invoiceRepo.ListOverdue(ctx, uc.now().UTC())
}

// Stats summarises invoices.
func (uc *InvoiceUseCase) Stats(ctx context.Context) (*domain.InvoiceStats, error) {
	return uc.invoiceRepo.Stats(ctx, uc.now().UTC())
}

// NextNumber returns the next free number for invoices of type t in year.
func (uc *InvoiceUseCase) NextNumber(ctx context.Context, t domain.InvoiceType, year int) (string, error) {
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown type %q", domain.ErrInvalidInvoice, t)
	}
	if year == 0 {
		year = uc.now().Year()
	}

	prefix := fmt.Sprintf("%s-%d-", t.NumberPrefix(), year)

	seq, err := uc.invoiceRepo.MaxSequence(ctx, prefix)
	if err != nil {
		return "", err
	}

	return domain.FormatInvoiceNumber(t, year, seq+1), nil
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/metrics"
	"github.com/iho/compta/internal/usecase"
	"github.com/iho/compta/internal/usecase/mocks"
)

func newInvoiceUseCase(m *metrics.Metrics) (*usecase.InvoiceUseCase, *mocks.MockInvoiceRepository) {
	repo := mocks.NewMockInvoiceRepository()
	return usecase.NewInvoiceUseCase(mocks.NewMockTransactionManager(), repo, mocks.NewMockClientRepository(repo), mocks.NewMockIDGenerator(), m), repo
}

func saleInput() usecase.InvoiceInput {
	due := time.Now().AddDate(0, 1, 0)
	return usecase.InvoiceInput{
		Type:              domain.InvoiceSale,
		IssueDate:         time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		DueDate:           &due,
		Counterparty:      "Boulangerie Martin",
		CounterpartySIRET: "73282932000074",
		AmountExclTax:     decimal.NewFromInt(1000),
		VATAmount:         decimal.NewFromInt(200),
		AmountInclTax:     decimal.NewFromInt(1200),
	}
}

func TestInvoiceUseCase_CreateInvoiceNumbering(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	uc, _ := newInvoiceUseCase(m)

	first, err := uc.CreateInvoice(ctx, saleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := uc.CreateInvoice(ctx, saleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Number != "FAC-2024-0001" || second.Number != "FAC-2024-0002" {
		t.Fatalf("unexpected numbers %s, %s", first.Number, second.Number)
	}

	purchase := saleInput()
	purchase.Type = domain.InvoicePurchase
	bill, err := uc.CreateInvoice(ctx, purchase)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if bill.Number != "ACH-2024-0001" {
		t.Fatalf("expected ACH-2024-0001, got %s", bill.Number)
	}

	explicit := saleInput()
	explicit.Number = "FAC-2024-0042"
	if _, err := uc.CreateInvoice(ctx, explicit); err != nil {
		t.Fatalf("create explicit: %v", err)
	}
	next, err := uc.NextNumber(ctx, domain.InvoiceSale, 2024)
	if err != nil {
		t.Fatalf("next number: %v", err)
	}
	if next != "FAC-2024-0043" {
		t.Fatalf("expected FAC-2024-0043, got %s", next)
	}

	if _, err := uc.CreateInvoice(ctx, explicit); !errors.Is(err, domain.ErrInvoiceNumberTaken) {
		t.Fatalf("expected ErrInvoiceNumberTaken, got %v", err)
	}

	if got := testutil.ToFloat64(m.InvoicesCreated.WithLabelValues("vente")); got != 3 {
		t.Fatalf("expected 3 sales created, got %v", got)
	}
}

func TestInvoiceUseCase_CreateInvoiceValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *usecase.InvoiceInput)
	}{
		{name: "ttc mismatch", mutate: func(in *usecase.InvoiceInput) { in.AmountInclTax = decimal.NewFromInt(1201) }},
		{name: "negative vat", mutate: func(in *usecase.InvoiceInput) {
			in.VATAmount = decimal.NewFromInt(-200)
			in.AmountInclTax = decimal.NewFromInt(800)
		}},
		{name: "missing counterparty", mutate: func(in *usecase.InvoiceInput) { in.Counterparty = " " }},
		{name: "unknown type", mutate: func(in *usecase.InvoiceInput) { in.Type = "avoir" }},
		{name: "missing issue date", mutate: func(in *usecase.InvoiceInput) { in.IssueDate = time.Time{} }},
		{name: "due before issue", mutate: func(in *usecase.InvoiceInput) {
			due := in.IssueDate.AddDate(0, 0, -1)
			in.DueDate = &due
		}},
		{name: "bad siret", mutate: func(in *usecase.InvoiceInput) { in.CounterpartySIRET = "73282932000075" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newInvoiceUseCase(nil)
			input := saleInput()
			input.Number = "FAC-2024-0100"
			tt.mutate(&input)

			if _, err := uc.CreateInvoice(context.Background(), input); !errors.Is(err, domain.ErrInvalidInvoice) {
				t.Fatalf("expected ErrInvalidInvoice, got %v", err)
			}
		})
	}
}

func TestInvoiceUseCase_RecordPayment(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewWithRegisterer(prometheus.NewRegistry())
	uc, _ := newInvoiceUseCase(m)

	invoice, err := uc.CreateInvoice(ctx, saleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if invoice.Status != domain.StatusPending || !invoice.RemainingAmount.Equal(decimal.NewFromInt(1200)) {
		t.Fatalf("unexpected initial state %s / %s", invoice.Status, invoice.RemainingAmount)
	}

	tests := []struct {
		name      string
		paid      int64
		status    domain.InvoiceStatus
		remaining int64
		errorType error
	}{
		{name: "partial", paid: 500, status: domain.StatusPartiallyPaid, remaining: 700},
		{name: "more", paid: 900, status: domain.StatusPartiallyPaid, remaining: 300},
		{name: "full", paid: 1200, status: domain.StatusPaid, remaining: 0},
		{name: "over", paid: 1300, errorType: domain.ErrInvalidAmount},
		{name: "negative", paid: -1, errorType: domain.ErrInvalidAmount},
		{name: "back to zero", paid: 0, status: domain.StatusPending, remaining: 1200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.RecordPayment(ctx, invoice.ID, decimal.NewFromInt(tt.paid), nil)
			if tt.errorType != nil {
				if !errors.Is(err, tt.errorType) {
					t.Fatalf("expected %v, got %v", tt.errorType, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("record payment: %v", err)
			}
			if got.Status != tt.status || !got.RemainingAmount.Equal(decimal.NewFromInt(tt.remaining)) {
				t.Fatalf("expected %s / %d, got %s / %s", tt.status, tt.remaining, got.Status, got.RemainingAmount)
			}

			stored, err := uc.GetInvoice(ctx, invoice.ID)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if !stored.PaidAmount.Equal(decimal.NewFromInt(tt.paid)) {
				t.Fatalf("expected stored paid %d, got %s", tt.paid, stored.PaidAmount)
			}
		})
	}

	if got := testutil.ToFloat64(m.PaymentsApplied); got != 4 {
		t.Fatalf("expected 4 payments applied, got %v", got)
	}

	if _, err := uc.RecordPayment(ctx, "missing", decimal.NewFromInt(1), nil); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestInvoiceUseCase_RecordPaymentDoesNotCommitOnFailure(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockInvoiceRepository()
	txManager := mocks.NewMockTransactionManager()
	uc := usecase.NewInvoiceUseCase(txManager, repo, nil, mocks.NewMockIDGenerator(), nil)

	invoice, err := uc.CreateInvoice(ctx, saleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	committed, rolledBack := false, false
	txManager.BeginFunc = func(context.Context) (usecase.Transaction, error) {
		return &mocks.MockTransaction{
			CommitFunc: func(context.Context) error {
				committed = true
				return nil
			},
			RollbackFunc: func(context.Context) error {
				rolledBack = true
				return nil
			},
		}, nil
	}
	repo.UpdatePaymentFunc = func(context.Context, usecase.Transaction, *domain.Invoice) error {
		return domain.ErrConcurrencyConflict
	}

	if _, err := uc.RecordPayment(ctx, invoice.ID, decimal.NewFromInt(100), nil); !errors.Is(err, domain.ErrConcurrencyConflict) {
		t.Fatalf("expected ErrConcurrencyConflict, got %v", err)
	}
	if committed || !rolledBack {
		t.Fatalf("expected rollback without commit (committed=%v rolledBack=%v)", committed, rolledBack)
	}
}

func TestInvoiceUseCase_OverdueAndStats(t *testing.T) {
	ctx := context.Background()
	uc, _ := newInvoiceUseCase(nil)

	late := saleInput()
	past := time.Now().AddDate(0, 0, -10)
	late.DueDate = &past
	late.IssueDate = past.AddDate(0, -1, 0)
	overdue, err := uc.CreateInvoice(ctx, late)
	if err != nil {
		t.Fatalf("create late: %v", err)
	}
	if overdue.Status != domain.StatusOverdue {
		t.Fatalf("expected overdue status, got %s", overdue.Status)
	}

	current, err := uc.CreateInvoice(ctx, saleInput())
	if err != nil {
		t.Fatalf("create current: %v", err)
	}

	purchase := saleInput()
	purchase.Type = domain.InvoicePurchase
	purchase.AmountExclTax = decimal.NewFromInt(500)
	purchase.VATAmount = decimal.NewFromInt(100)
	purchase.AmountInclTax = decimal.NewFromInt(600)
	purchase.PaidAmount = decimal.NewFromInt(600)
	paid, err := uc.CreateInvoice(ctx, purchase)
	if err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	if paid.Status != domain.StatusPaid {
		t.Fatalf("expected paid status, got %s", paid.Status)
	}

	list, err := uc.ListOverdue(ctx)
	if err != nil {
		t.Fatalf("list overdue: %v", err)
	}
	if len(list) != 1 || list[0].ID != overdue.ID {
		t.Fatalf("expected only %s overdue, got %v", overdue.ID, list)
	}

	stats, err := uc.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.SalesCount != 2 || !stats.TotalSales.Equal(decimal.NewFromInt(2400)) {
		t.Fatalf("unexpected sales stats %+v", stats)
	}
	if !stats.TotalPurchases.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected 600 of purchases, got %s", stats.TotalPurchases)
	}
	if stats.UnpaidCount != 2 || stats.OverdueCount != 1 || !stats.TotalUnpaid.Equal(decimal.NewFromInt(2400)) {
		t.Fatalf("unexpected unpaid stats %+v", stats)
	}

	status := domain.StatusPending
	pending, err := uc.ListInvoices(ctx, domain.InvoiceFilter{Status: &status})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != current.ID {
		t.Fatalf("expected only %s pending, got %v", current.ID, pending)
	}

	bogus := domain.InvoiceStatus("annulee")
	if _, err := uc.ListInvoices(ctx, domain.InvoiceFilter{Status: &bogus}); !errors.Is(err, domain.ErrInvalidInvoice) {
		t.Fatalf("expected ErrInvalidInvoice, got %v", err)
	}
}

func TestInvoiceUseCase_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	uc, _ := newInvoiceUseCase(nil)

	invoice, err := uc.CreateInvoice(ctx, saleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	input := saleInput()
	input.Number = invoice.Number
	input.PaidAmount = decimal.NewFromInt(1200)
	input.Notes = "réglée par virement"

	updated, err := uc.UpdateInvoice(ctx, invoice.ID, input)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != domain.StatusPaid || !updated.RemainingAmount.IsZero() {
		t.Fatalf("expected paid invoice after update, got %s / %s", updated.Status, updated.RemainingAmount)
	}

	found, err := uc.ListInvoices(ctx, domain.InvoiceFilter{Search: "VIREMENT"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(found) != 1 {
		t.Fatalf("expected search hit, got %d", len(found))
	}

	if err := uc.DeleteInvoice(ctx, invoice.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := uc.GetInvoice(ctx, invoice.ID); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
	if _, err := uc.UpdateInvoice(ctx, invoice.ID, input); !errors.Is(err, domain.ErrInvoiceNotFound) {
		t.Fatalf("expected ErrInvoiceNotFound, got %v", err)
	}
}

func TestInvoiceUseCase_PaymentsAreJournaled(t *testing.T) {
	ctx := context.Background()
	uc, repo := newInvoiceUseCase(nil)

	input := saleInput()
	input.PaidAmount = decimal.NewFromInt(200)
	invoice, err := uc.CreateInvoice(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	paidOn := time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC)
	if _, err := uc.RecordPayment(ctx, invoice.ID, decimal.NewFromInt(1200), &paidOn); err != nil {
		t.Fatalf("record payment: %v", err)
	}
	if _, err := uc.RecordPayment(ctx, invoice.ID, decimal.NewFromInt(1200), &paidOn); err != nil {
		t.Fatalf("repeat payment: %v", err)
	}
	if _, err := uc.RecordPayment(ctx, invoice.ID, decimal.NewFromInt(1100), &paidOn); err != nil {
		t.Fatalf("correction: %v", err)
	}

	payments := repo.Payments()
	want := []struct {
		amount int64
		date   time.Time
	}{
		{200, input.IssueDate},
		{1000, paidOn},
		{-100, paidOn},
	}
	if len(payments) != len(want) {
		t.Fatalf("expected %d payments, got %d", len(want), len(payments))
	}
	for i, w := range want {
		if !payments[i].Amount.Equal(decimal.NewFromInt(w.amount)) || !payments[i].Date.Equal(w.date) {
			t.Errorf("payment %d: expected %d on %s, got %s on %s", i, w.amount, w.date, payments[i].Amount, payments[i].Date)
		}
		if payments[i].InvoiceID != invoice.ID {
			t.Errorf("payment %d: expected invoice %s, got %s", i, invoice.ID, payments[i].InvoiceID)
		}
	}

	sales, err := repo.ListSalePayments(ctx, 2024)
	if err != nil {
		t.Fatalf("list sale payments: %v", err)
	}
	stats := domain.NewRevenueStats(sales)
	if !stats.TotalRevenue.Equal(decimal.NewFromInt(1100)) {
		t.Fatalf("expected 1100 cashed, got %s", stats.TotalRevenue)
	}
}

func TestInvoiceUseCase_UpdateJournalsPaidDelta(t *testing.T) {
	ctx := context.Background()
	uc, repo := newInvoiceUseCase(nil)

	invoice, err := uc.CreateInvoice(ctx, saleInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(repo.Payments()) != 0 {
		t.Fatalf("expected no payment for an unpaid invoice")
	}

	input := saleInput()
	input.Number = invoice.Number
	input.PaidAmount = decimal.NewFromInt(300)
	if _, err := uc.UpdateInvoice(ctx, invoice.ID, input); err != nil {
		t.Fatalf("update: %v", err)
	}
	input.Notes = "relance envoyée"
	if _, err := uc.UpdateInvoice(ctx, invoice.ID, input); err != nil {
		t.Fatalf("second update: %v", err)
	}

	payments := repo.Payments()
	if len(payments) != 1 || !payments[0].Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected a single 300 payment, got %+v", payments)
	}
}

func TestInvoiceUseCase_ClientLink(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockInvoiceRepository()
	clients := mocks.NewMockClientRepository(repo)
	uc := usecase.NewInvoiceUseCase(mocks.NewMockTransactionManager(), repo, clients, mocks.NewMockIDGenerator(), nil)

	if err := clients.Create(ctx, &domain.Client{ID: "c-1", Name: "Globex", SIRET: "73282932000074", Active: true}); err != nil {
		t.Fatalf("seed client: %v", err)
	}

	input := saleInput()
	input.Counterparty = ""
	input.CounterpartySIRET = ""
	clientID := "c-1"
	input.ClientID = &clientID

	invoice, err := uc.CreateInvoice(ctx, input)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if invoice.Counterparty != "Globex" || invoice.CounterpartySIRET != "73282932000074" {
		t.Fatalf("expected counterparty from client, got %q / %q", invoice.Counterparty, invoice.CounterpartySIRET)
	}
	if invoice.ClientID == nil || *invoice.ClientID != "c-1" {
		t.Fatalf("expected client link, got %v", invoice.ClientID)
	}

	missing := "c-404"
	input.ClientID = &missing
	if _, err := uc.CreateInvoice(ctx, input); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}

	empty := ""
	input.ClientID = &empty
	input.Counterparty = "Client comptoir"
	created, err := uc.CreateInvoice(ctx, input)
	if err != nil {
		t.Fatalf("create without client: %v", err)
	}
	if created.ClientID != nil {
		t.Fatalf("expected empty client id to unlink, got %q", *created.ClientID)
	}
}

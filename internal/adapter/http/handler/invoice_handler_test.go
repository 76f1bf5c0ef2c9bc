package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

type invoiceServiceStub struct {
	createFn  func(ctx context.Context, input usecase.InvoiceInput) (*domain.Invoice, error)
	updateFn  func(ctx context.Context, id string, input usecase.InvoiceInput) (*domain.Invoice, error)
	getFn     func(ctx context.Context, id string) (*domain.Invoice, error)
	listFn    func(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error)
	deleteFn  func(ctx context.Context, id string) error
	paymentFn func(ctx context.Context, id string, paid decimal.Decimal, paidOn *time.Time) (*domain.Invoice, error)
	overdueFn func(ctx context.Context) ([]*domain.Invoice, error)
	statsFn   func(ctx context.Context) (*domain.InvoiceStats, error)
	nextFn    func(ctx context.Context, t domain.InvoiceType, year int) (string, error)
}

func (s *invoiceServiceStub) CreateInvoice(ctx context.Context, input usecase.InvoiceInput) (*domain.Invoice, error) {
	return s.createFn(ctx, input)
}

func (s *invoiceServiceStub) UpdateInvoice(ctx context.Context, id string, input usecase.InvoiceInput) (*domain.Invoice, error) {
	return s.updateFn(ctx, id, input)
}

func (s *invoiceServiceStub) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.getFn(ctx, id)
}

func (s *invoiceServiceStub) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	return s.listFn(ctx, filter)
}

func (s *invoiceServiceStub) DeleteInvoice(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *invoiceServiceStub) RecordPayment(ctx context.Context, id string, paid decimal.Decimal, paidOn *time.Time) (*domain.Invoice, error) {
	return s.paymentFn(ctx, id, paid, paidOn)
}

func (s *invoiceServiceStub) ListOverdue(ctx context.Context) ([]*domain.Invoice, error) {
	return s.overdueFn(ctx)
}

func (s *invoiceServiceStub) Stats(ctx context.Context) (*domain.InvoiceStats, error) {
	return s.statsFn(ctx)
}

func (s *invoiceServiceStub) NextNumber(ctx context.Context, t domain.InvoiceType, year int) (string, error) {
	return s.nextFn(ctx, t, year)
}

func TestInvoiceHandler_Create(t *testing.T) {
	var captured usecase.InvoiceInput
	h := NewInvoiceHandler(&invoiceServiceStub{
		createFn: func(_ context.Context, input usecase.InvoiceInput) (*domain.Invoice, error) {
			captured = input
			return &domain.Invoice{ID: "inv-1", Number: input.Number, Type: input.Type, Status: domain.StatusPending}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/invoices", jsonBody(`{
		"number": "FAC-2024-0001",
		"type": "vente",
		"issue_date": "2024-02-01",
		"due_date": "2024-03-01",
		"counterparty": "ACME",
		"amount_excl_tax": "100",
		"vat_amount": "20",
		"amount_incl_tax": "120",
		"paid_amount": "0"
	}`), nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Type != domain.InvoiceSale || captured.DueDate == nil || captured.DueDate.Month() != time.March {
		t.Fatalf("unexpected input %+v", captured)
	}
}

func TestInvoiceHandler_CreateDuplicateNumber(t *testing.T) {
	h := NewInvoiceHandler(&invoiceServiceStub{
		createFn: func(context.Context, usecase.InvoiceInput) (*domain.Invoice, error) {
			return nil, domain.ErrInvoiceNumberTaken
		},
	})

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/invoices", jsonBody(`{"number":"FAC-2024-0001","type":"vente"}`), nil))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestInvoiceHandler_ListFilters(t *testing.T) {
	h := NewInvoiceHandler(&invoiceServiceStub{
		listFn: func(_ context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
			if filter.Type == nil || *filter.Type != domain.InvoicePurchase {
				t.Fatalf("expected achat filter, got %v", filter.Type)
			}
			if filter.Status == nil || *filter.Status != domain.StatusOverdue {
				t.Fatalf("expected en_retard filter, got %v", filter.Status)
			}
			if filter.Search != "edf" || filter.Limit != 50 {
				t.Fatalf("unexpected filter %+v", filter)
			}
			return []*domain.Invoice{}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/invoices?type=achat&status=en_retard&q=edf", nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestInvoiceHandler_ListRejectsUnknownStatus(t *testing.T) {
	h := NewInvoiceHandler(&invoiceServiceStub{})

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/invoices?status=annulee", nil, nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInvoiceHandler_RecordPayment(t *testing.T) {
	h := NewInvoiceHandler(&invoiceServiceStub{
		paymentFn: func(_ context.Context, id string, paid decimal.Decimal, paidOn *time.Time) (*domain.Invoice, error) {
			if id != "inv-1" || !paid.Equal(decimal.NewFromInt(50)) {
				t.Fatalf("unexpected args %s %s", id, paid)
			}
			if paidOn == nil || !paidOn.Equal(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
				t.Fatalf("unexpected payment date %v", paidOn)
			}
			return &domain.Invoice{
				ID:              id,
				AmountInclTax:   decimal.NewFromInt(120),
				PaidAmount:      paid,
				RemainingAmount: decimal.NewFromInt(70),
				Status:          domain.StatusPartiallyPaid,
			}, nil
		},
	})

	rec := httptest.NewRecorder()
	h.RecordPayment(rec, newRequest(http.MethodPatch, "/invoices/inv-1/payment", jsonBody(`{"paid_amount":"50","paid_on":"2024-03-15"}`), map[string]string{"id": "inv-1"}))

	var resp dto.InvoiceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != string(domain.StatusPartiallyPaid) || !resp.RemainingAmount.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("unexpected invoice %+v", resp)
	}
}

func TestInvoiceHandler_NextNumberDefaultsToCurrentYear(t *testing.T) {
	h := NewInvoiceHandler(&invoiceServiceStub{
		nextFn: func(_ context.Context, typ domain.InvoiceType, year int) (string, error) {
			if typ != domain.InvoiceSale || year != time.Now().Year() {
				t.Fatalf("unexpected args %s %d", typ, year)
			}
			return "FAC-2024-0007", nil
		},
	})

	rec := httptest.NewRecorder()
	h.NextNumber(rec, newRequest(http.MethodPost, "/invoices/next-number", jsonBody(`{"type":"vente"}`), nil))

	var resp dto.NextNumberResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Number != "FAC-2024-0007" {
		t.Fatalf("unexpected number %q", resp.Number)
	}
}

func TestInvoiceHandler_DeleteMissing(t *testing.T) {
	h := NewInvoiceHandler(&invoiceServiceStub{
		deleteFn: func(context.Context, string) error { return domain.ErrInvoiceNotFound },
	})

	rec := httptest.NewRecorder()
	h.Delete(rec, newRequest(http.MethodDelete, "/invoices/nope", nil, map[string]string{"id": "nope"}))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

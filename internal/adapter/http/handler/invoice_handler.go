package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// InvoiceService defines the behavior needed by InvoiceHandler.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, input usecase.InvoiceInput) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, id string, input usecase.InvoiceInput) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error)
	DeleteInvoice(ctx context.Context, id string) error
	RecordPayment(ctx context.Context, id string, paid decimal.Decimal, paidOn *time.Time) (*domain.Invoice, error)
	ListOverdue(ctx context.Context) ([]*domain.Invoice, error)
	Stats(ctx context.Context) (*domain.InvoiceStats, error)
	NextNumber(ctx context.Context, t domain.InvoiceType, year int) (string, error)
}

// InvoiceHandler handles sales and purchase invoice requests.
type InvoiceHandler struct {
	invoiceUC InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceUC InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceUC: invoiceUC}
}

// Create records an invoice.
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.InvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	invoice, err := h.invoiceUC.CreateInvoice(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err, "failed to create invoice")
		return
	}

	writeJSON(w, http.StatusCreated, dto.InvoiceFromDomain(invoice))
}

// Update replaces an invoice.
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.InvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	invoice, err := h.invoiceUC.UpdateInvoice(r.Context(), chi.URLParam(r, "id"), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err, "failed to update invoice")
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// Get retrieves an invoice by ID.
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.invoiceUC.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to get invoice")
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// List lists invoices filtered by type, status, from, to and q.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := invoiceFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	invoices, err := h.invoiceUC.ListInvoices(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err, "failed to list invoices")
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoicesFromDomain(invoices))
}

// Delete removes an invoice.
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.invoiceUC.DeleteInvoice(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err, "failed to delete invoice")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RecordPayment sets the amount paid on an invoice and refreshes its status.
func (h *InvoiceHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req dto.PaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	invoice, err := h.invoiceUC.RecordPayment(r.Context(), chi.URLParam(r, "id"), req.PaidAmount, req.PaidOnTime())
	if err != nil {
		writeDomainError(w, r, err, "failed to record payment")
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceFromDomain(invoice))
}

// Overdue lists unpaid invoices past their due date.
func (h *InvoiceHandler) Overdue(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.invoiceUC.ListOverdue(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "failed to list overdue invoices")
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoicesFromDomain(invoices))
}

// Stats returns invoice totals.
func (h *InvoiceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.invoiceUC.Stats(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "failed to compute invoice stats")
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoiceStatsFromDomain(stats))
}

// NextNumber proposes the next free number for a type and year.
func (h *InvoiceHandler) NextNumber(w http.ResponseWriter, r *http.Request) {
	var req dto.NextNumberRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	number, err := h.invoiceUC.NextNumber(r.Context(), domain.InvoiceType(req.Type), year)
	if err != nil {
		writeDomainError(w, r, err, "failed to compute next invoice number")
		return
	}

	writeJSON(w, http.StatusOK, dto.NextNumberResponse{Number: number})
}

func invoiceFilterFromQuery(r *http.Request) (domain.InvoiceFilter, error) {
	q := r.URL.Query()
	filter := domain.InvoiceFilter{Search: q.Get("q")}

	if v := q.Get("type"); v != "" {
		t := domain.InvoiceType(v)
		if !t.IsValid() {
			return filter, fmt.Errorf("%w: unknown type %q", domain.ErrInvalidInvoice, v)
		}
		filter.Type = &t
	}
	if v := q.Get("status"); v != "" {
		s := domain.InvoiceStatus(v)
		if !s.IsValid() {
			return filter, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInvoice, v)
		}
		filter.Status = &s
	}

	var err error
	if filter.From, err = parseDateQuery(r, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = parseDateQuery(r, "to"); err != nil {
		return filter, err
	}

	filter.Limit, filter.Offset = pagination(r)
	return filter, nil
}

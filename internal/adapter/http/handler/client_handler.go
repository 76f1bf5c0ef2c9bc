package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
)

// ClientService defines the behavior needed by ClientHandler.
type ClientService interface {
	CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error)
	GetClient(ctx context.Context, id string) (*domain.Client, error)
	ListClients(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error)
	UpdateClient(ctx context.Context, id string, input *domain.Client) (*domain.Client, error)
	ToggleActive(ctx context.Context, id string) (*domain.Client, error)
	DeleteClient(ctx context.Context, id string) error
	ListInvoices(ctx context.Context, id string, limit, offset int) ([]*domain.Invoice, error)
	Stats(ctx context.Context, id string) (*domain.ClientStats, error)
}

// ClientHandler handles the client directory.
type ClientHandler struct {
	clientUC ClientService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clientUC ClientService) *ClientHandler {
	return &ClientHandler{clientUC: clientUC}
}

// Create registers a client.
func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	client, err := h.clientUC.CreateClient(r.Context(), req.ToDomain())
	if err != nil {
		writeDomainError(w, r, err, "failed to create client")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ClientFromDomain(client))
}

// Get returns one client.
func (h *ClientHandler) Get(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientUC.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to get client")
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}

// List lists every client by name.
func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

// ListActive lists the clients offered for new invoices.
func (h *ClientHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *ClientHandler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	limit, offset := pagination(r)

	clients, err := h.clientUC.ListClients(r.Context(), domain.ClientFilter{ActiveOnly: activeOnly, Limit: limit, Offset: offset})
	if err != nil {
		writeDomainError(w, r, err, "failed to list clients")
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientsFromDomain(clients))
}

// Update replaces a client.
func (h *ClientHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.ClientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	client, err := h.clientUC.UpdateClient(r.Context(), chi.URLParam(r, "id"), req.ToDomain())
	if err != nil {
		writeDomainError(w, r, err, "failed to update client")
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}

// ToggleActive flips the active flag of a client.
func (h *ClientHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	client, err := h.clientUC.ToggleActive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to toggle client")
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientFromDomain(client))
}

// Delete removes a client without invoices.
func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clientUC.DeleteClient(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err, "failed to delete client")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Invoices lists the invoices of a client.
func (h *ClientHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	invoices, err := h.clientUC.ListInvoices(r.Context(), chi.URLParam(r, "id"), limit, offset)
	if err != nil {
		writeDomainError(w, r, err, "failed to list client invoices")
		return
	}

	writeJSON(w, http.StatusOK, dto.InvoicesFromDomain(invoices))
}

// Stats summarises the sales invoices of a client.
func (h *ClientHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.clientUC.Stats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to compute client stats")
		return
	}

	writeJSON(w, http.StatusOK, dto.ClientStatsFromDomain(stats))
}

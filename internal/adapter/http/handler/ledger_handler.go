package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	CreateEntry(ctx context.Context, input usecase.CreateEntryInput) (*domain.LedgerEntry, error)
	CreateEntries(ctx context.Context, inputs []usecase.CreateEntryInput) ([]*domain.LedgerEntry, error)
	ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error)
	LetterEntries(ctx context.Context, ids []string, code string) (int64, error)
	UnletterEntries(ctx context.Context, ids []string) (int64, error)
	ListChartAccounts(ctx context.Context) ([]*domain.ChartAccount, error)
	CreateChartAccount(ctx context.Context, code, label string) (*domain.ChartAccount, error)
	CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error)
}

// LedgerHandler handles ledger entry and chart of accounts requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// CreateEntry books a single ledger line.
func (h *LedgerHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.ledgerUC.CreateEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err, "failed to create entry")
		return
	}

	writeJSON(w, http.StatusCreated, dto.LedgerEntryFromDomain(entry))
}

// CreateEntries books several lines in one transaction.
func (h *LedgerHandler) CreateEntries(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEntriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if len(req.Entries) == 0 {
		writeError(w, http.StatusBadRequest, "invalid request body", "entries must not be empty")
		return
	}

	entries, err := h.ledgerUC.CreateEntries(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err, "failed to create entries")
		return
	}

	writeJSON(w, http.StatusCreated, dto.LedgerEntriesFromDomain(entries))
}

// ListEntries lists entries filtered by from, to, journal and account.
func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := ledgerFilterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	entries, err := h.ledgerUC.ListEntries(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err, "failed to list entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerEntriesFromDomain(entries))
}

// Letter tags entries of one account with a lettering code.
func (h *LedgerHandler) Letter(w http.ResponseWriter, r *http.Request) {
	var req dto.LetterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	n, err := h.ledgerUC.LetterEntries(r.Context(), req.IDs, req.Code)
	if err != nil {
		writeDomainError(w, r, err, "failed to letter entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.CountResponse{Updated: n})
}

// Unletter clears the lettering code of entries.
func (h *LedgerHandler) Unletter(w http.ResponseWriter, r *http.Request) {
	var req dto.LetterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	n, err := h.ledgerUC.UnletterEntries(r.Context(), req.IDs)
	if err != nil {
		writeDomainError(w, r, err, "failed to unletter entries")
		return
	}

	writeJSON(w, http.StatusOK, dto.CountResponse{Updated: n})
}

// ListAccounts returns the chart of accounts.
func (h *LedgerHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ledgerUC.ListChartAccounts(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "failed to list chart accounts")
		return
	}

	writeJSON(w, http.StatusOK, dto.ChartAccountsFromDomain(accounts))
}

// CreateAccount adds an account to the chart.
func (h *LedgerHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateChartAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.ledgerUC.CreateChartAccount(r.Context(), req.Code, req.Label)
	if err != nil {
		writeDomainError(w, r, err, "failed to create chart account")
		return
	}

	writeJSON(w, http.StatusCreated, dto.ChartAccountFromDomain(account))
}

// Consistency reports pieces whose debits and credits differ.
func (h *LedgerHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	report, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "failed to check ledger consistency")
		return
	}

	writeJSON(w, http.StatusOK, dto.ConsistencyFromDomain(report))
}

func ledgerFilterFromQuery(r *http.Request) (domain.LedgerFilter, error) {
	from, err := parseDateQuery(r, "from")
	if err != nil {
		return domain.LedgerFilter{}, err
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		return domain.LedgerFilter{}, err
	}

	journal, err := journalQuery(r)
	if err != nil {
		return domain.LedgerFilter{}, err
	}

	limit, offset := pagination(r)
	return domain.LedgerFilter{
		From:        from,
		To:          to,
		Journal:     journal,
		AccountCode: r.URL.Query().Get("account"),
		Limit:       limit,
		Offset:      offset,
	}, nil
}

func journalQuery(r *http.Request) (*domain.Journal, error) {
	val := r.URL.Query().Get("journal")
	if val == "" {
		return nil, nil
	}

	journal := domain.Journal(val)
	if !journal.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidJournal, val)
	}

	return &journal, nil
}

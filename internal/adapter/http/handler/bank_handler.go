package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

// BankService defines the behavior needed by BankHandler.
type BankService interface {
	CreateAccount(ctx context.Context, input usecase.CreateBankAccountInput) (*domain.BankAccount, error)
	GetAccount(ctx context.Context, id string) (*domain.BankAccount, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error)
	UpdateAccount(ctx context.Context, input usecase.UpdateBankAccountInput) (*domain.BankAccount, error)
	DeleteAccount(ctx context.Context, id string) error
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.BankTransaction, error)
	UpdateTransaction(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.BankTransaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, filter domain.BankTransactionFilter) ([]*domain.BankTransaction, error)
	ReconcileTransaction(ctx context.Context, id string, reconciled bool) (*domain.BankTransaction, error)
	AccountStats(ctx context.Context, accountID string) (*domain.BankAccountStats, error)
	GlobalStats(ctx context.Context) (*domain.BankStats, error)
}

// BalanceVerifier recomputes balances from transactions.
type BalanceVerifier interface {
	VerifyAccountBalance(ctx context.Context, accountID string) (*domain.BalanceCheck, error)
	GenerateReconciliationReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// BankHandler handles bank account and transaction requests.
type BankHandler struct {
	bankUC      BankService
	reconcileUC BalanceVerifier
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(bankUC BankService, reconcileUC BalanceVerifier) *BankHandler {
	return &BankHandler{bankUC: bankUC, reconcileUC: reconcileUC}
}

// CreateAccount opens a bank account.
func (h *BankHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBankAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.bankUC.CreateAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, r, err, "failed to create bank account")
		return
	}

	writeJSON(w, http.StatusCreated, dto.BankAccountFromDomain(account))
}

// GetAccount retrieves a bank account by ID.
func (h *BankHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	account, err := h.bankUC.GetAccount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to get bank account")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountFromDomain(account))
}

// ListAccounts lists bank accounts.
func (h *BankHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	accounts, err := h.bankUC.ListAccounts(r.Context(), limit, offset)
	if err != nil {
		writeDomainError(w, r, err, "failed to list bank accounts")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountsFromDomain(accounts))
}

// UpdateAccount changes the descriptive fields of an account.
func (h *BankHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateBankAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	account, err := h.bankUC.UpdateAccount(r.Context(), req.ToUseCaseInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, r, err, "failed to update bank account")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountFromDomain(account))
}

// DeleteAccount removes an account and its transactions.
func (h *BankHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.bankUC.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err, "failed to delete bank account")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AccountTransactions lists the transactions of one account.
func (h *BankHandler) AccountTransactions(w http.ResponseWriter, r *http.Request) {
	h.listTransactions(w, r, chi.URLParam(r, "id"), false)
}

// Unreconciled lists the transactions of one account not yet matched to a statement.
func (h *BankHandler) Unreconciled(w http.ResponseWriter, r *http.Request) {
	h.listTransactions(w, r, chi.URLParam(r, "id"), true)
}

// ListTransactions lists transactions, optionally filtered by account_id and unreconciled.
func (h *BankHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	unreconciled, _ := strconv.ParseBool(r.URL.Query().Get("unreconciled"))
	h.listTransactions(w, r, r.URL.Query().Get("account_id"), unreconciled)
}

func (h *BankHandler) listTransactions(w http.ResponseWriter, r *http.Request, accountID string, unreconciled bool) {
	from, err := parseDateQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date", err.Error())
		return
	}

	limit, offset := pagination(r)
	txs, err := h.bankUC.ListTransactions(r.Context(), domain.BankTransactionFilter{
		AccountID:        accountID,
		UnreconciledOnly: unreconciled,
		From:             from,
		To:               to,
		Limit:            limit,
		Offset:           offset,
	})
	if err != nil {
		writeDomainError(w, r, err, "failed to list transactions")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankTransactionsFromDomain(txs))
}

// AccountStats returns transaction totals for one account.
func (h *BankHandler) AccountStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.bankUC.AccountStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to compute account stats")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankAccountStatsFromDomain(stats))
}

// GlobalStats returns totals across all accounts.
func (h *BankHandler) GlobalStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.bankUC.GlobalStats(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "failed to compute bank stats")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankStatsFromDomain(stats))
}

// VerifyAccount compares the stored balance of an account with its recomputed value.
func (h *BankHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	check, err := h.reconcileUC.VerifyAccountBalance(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to verify balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceCheckFromDomain(check))
}

// VerifyAll checks every account balance and the ledger.
func (h *BankHandler) VerifyAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconcileUC.GenerateReconciliationReport(r.Context())
	if err != nil {
		writeDomainError(w, r, err, "failed to verify balances")
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromDomain(report))
}

// CreateTransaction records a bank movement and updates the account balance.
func (h *BankHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.BankTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, err := h.bankUC.CreateTransaction(r.Context(), req.ToCreateInput())
	if err != nil {
		writeDomainError(w, r, err, "failed to create transaction")
		return
	}

	writeJSON(w, http.StatusCreated, dto.BankTransactionFromDomain(tx))
}

// UpdateTransaction replaces a transaction and rebalances the affected accounts.
func (h *BankHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.BankTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, err := h.bankUC.UpdateTransaction(r.Context(), req.ToUpdateInput(chi.URLParam(r, "id")))
	if err != nil {
		writeDomainError(w, r, err, "failed to update transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankTransactionFromDomain(tx))
}

// DeleteTransaction removes a transaction and reverses its balance impact.
func (h *BankHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := h.bankUC.DeleteTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err, "failed to delete transaction")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Reconcile marks a transaction as matched, or unmatched, to a bank statement.
func (h *BankHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req dto.ReconcileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tx, err := h.bankUC.ReconcileTransaction(r.Context(), chi.URLParam(r, "id"), req.Reconciled)
	if err != nil {
		writeDomainError(w, r, err, "failed to reconcile transaction")
		return
	}

	writeJSON(w, http.StatusOK, dto.BankTransactionFromDomain(tx))
}

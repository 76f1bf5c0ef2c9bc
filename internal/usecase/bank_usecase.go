package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/metrics"
)

// BankUseCase handles bank accounts and keeps their balances consistent with
// their transaction history.
type BankUseCase struct {
	txManager   TransactionManager
	accountRepo BankAccountRepository
	txRepo      BankTransactionRepository
	idGen       IDGenerator
	retrier     Retrier
	audit       auditTrail
	metrics     *metrics.Metrics
}

// NewBankUseCase creates a new BankUseCase.
func NewBankUseCase(
	txManager TransactionManager,
	accountRepo BankAccountRepository,
	txRepo BankTransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
	auditRepo AuditRepository,
	metrics *metrics.Metrics,
) *BankUseCase {
	return &BankUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		txRepo:      txRepo,
		idGen:       idGen,
		retrier:     retrier,
		audit:       auditTrail{repo: auditRepo, metrics: metrics},
		metrics:     metrics,
	}
}

// CreateBankAccountInput represents input for opening a bank account.
type CreateBankAccountInput struct {
	Name           string
	Bank           string
	AccountNumber  string
	IBAN           string
	InitialBalance decimal.Decimal
}

// CreateAccount opens a bank account; its current balance starts at the initial balance.
func (uc *BankUseCase) CreateAccount(ctx context.Context, input CreateBankAccountInput) (*domain.BankAccount, error) {
	if err := domain.ValidateIBAN(input.IBAN); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.BankAccount{
		ID:             uc.idGen.Generate(),
		Name:           input.Name,
		Bank:           input.Bank,
		AccountNumber:  input.AccountNumber,
		IBAN:           input.IBAN,
		InitialBalance: input.InitialBalance,
		CurrentBalance: input.InitialBalance,
		Active:         true,
		Version:        1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves a bank account by ID.
func (uc *BankUseCase) GetAccount(ctx context.Context, id string) (*domain.BankAccount, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccounts lists bank accounts with pagination.
func (uc *BankUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error) {
	limit, offset, _ = domain.ValidatePagination(limit, offset)
	return uc.accountRepo.List(ctx, limit, offset)
}

// UpdateBankAccountInput represents the editable metadata of a bank account.
type UpdateBankAccountInput struct {
	ID            string
	Name          string
	Bank          string
	AccountNumber string
	IBAN          string
	Active        bool
}

// UpdateAccount updates account metadata. Balances are never edited directly.
func (uc *BankUseCase) UpdateAccount(ctx context.Context, input UpdateBankAccountInput) (*domain.BankAccount, error) {
	account, err := uc.accountRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateIBAN(input.IBAN); err != nil {
		return nil, err
	}

	account.Name = input.Name
	account.Bank = input.Bank
	account.AccountNumber = input.AccountNumber
	account.IBAN = input.IBAN
	account.Active = input.Active
	account.UpdatedAt = time.Now().UTC()

	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount deletes a bank account together with its transactions.
func (uc *BankUseCase) DeleteAccount(ctx context.Context, id string) error {
	account, err := uc.accountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.accountRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.record(ctx, domain.NewAuditLog(ctx, domain.AuditActionBankAccountDelete,
		domain.AuditResourceBankAccount, id, account, nil, time.Now().UTC()))

	return nil
}

// CreateTransactionInput represents input for recording a bank movement.
type CreateTransactionInput struct {
	AccountID   string
	Date        time.Time
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Category    string
	Description string
	Reference   string
}

// CreateTransaction records a movement and applies its impact to the account balance.
func (uc *BankUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.BankTransaction, error) {
	now := time.Now().UTC()
	t := &domain.BankTransaction{
		ID:          uc.idGen.Generate(),
		AccountID:   input.AccountID,
		Date:        input.Date,
		Debit:       input.Debit,
		Credit:      input.Credit,
		Category:    input.Category,
		Description: input.Description,
		Reference:   input.Reference,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := t.Validate(); err != nil {
		return nil, err
	}

	err := uc.withBalanceTx(ctx, "create", func(ctx context.Context, tx Transaction) error {
		accounts, err := uc.lockAccounts(ctx, tx, t.AccountID)
		if err != nil {
			return err
		}

		if err := uc.txRepo.Create(ctx, tx, t); err != nil {
			return err
		}

		if _, err := uc.applyDelta(ctx, tx, accounts[t.AccountID], decimal.Zero, t.Impact(), now); err != nil {
			return err
		}

		return uc.audit.recordTx(ctx, tx, domain.NewAuditLog(ctx, domain.AuditActionBankTxCreate,
			domain.AuditResourceBankTransaction, t.ID, nil, t, now))
	})
	if err != nil {
		return nil, err
	}

	return t, nil
}

// UpdateTransactionInput represents the new state of a bank movement.
type UpdateTransactionInput struct {
	ID          string
	AccountID   string
	Date        time.Time
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Category    string
	Description string
	Reference   string
}

// UpdateTransaction amends a movement. The balance moves by the difference of
// impacts; a move to another account reverses the old impact there.
func (uc *BankUseCase) UpdateTransaction(ctx context.Context, input UpdateTransactionInput) (*domain.BankTransaction, error) {
	var updated *domain.BankTransaction

	err := uc.withBalanceTx(ctx, "update", func(ctx context.Context, tx Transaction) error {
		old, err := uc.txRepo.GetByIDForUpdate(ctx, tx, input.ID)
		if err != nil {
			return err
		}

		next := *old
		next.AccountID = input.AccountID
		if next.AccountID == "" {
			next.AccountID = old.AccountID
		}
		next.Date = input.Date
		next.Debit = input.Debit
		next.Credit = input.Credit
		next.Category = input.Category
		next.Description = input.Description
		next.Reference = input.Reference
		next.UpdatedAt = time.Now().UTC()

		if err := next.Validate(); err != nil {
			return err
		}

		accounts, err := uc.lockAccounts(ctx, tx, old.AccountID, next.AccountID)
		if err != nil {
			return err
		}

		if err := uc.txRepo.Update(ctx, tx, &next); err != nil {
			return err
		}

		if old.AccountID == next.AccountID {
			if _, err := uc.applyDelta(ctx, tx, accounts[next.AccountID], old.Impact(), next.Impact(), next.UpdatedAt); err != nil {
				return err
			}
		} else {
			if _, err := uc.applyDelta(ctx, tx, accounts[old.AccountID], old.Impact(), decimal.Zero, next.UpdatedAt); err != nil {
				return err
			}
			if _, err := uc.applyDelta(ctx, tx, accounts[next.AccountID], decimal.Zero, next.Impact(), next.UpdatedAt); err != nil {
				return err
			}
		}

		updated = &next

		return uc.audit.recordTx(ctx, tx, domain.NewAuditLog(ctx, domain.AuditActionBankTxUpdate,
			domain.AuditResourceBankTransaction, next.ID, old, updated, next.UpdatedAt))
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteTransaction removes a movement and reverses its impact.
func (uc *BankUseCase) DeleteTransaction(ctx context.Context, id string) error {
	return uc.withBalanceTx(ctx, "delete", func(ctx context.Context, tx Transaction) error {
		old, err := uc.txRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		accounts, err := uc.lockAccounts(ctx, tx, old.AccountID)
		if err != nil {
			return err
		}

		if err := uc.txRepo.Delete(ctx, tx, id); err != nil {
			return err
		}

		now := time.Now().UTC()
		if _, err := uc.applyDelta(ctx, tx, accounts[old.AccountID], old.Impact(), decimal.Zero, now); err != nil {
			return err
		}

		return uc.audit.recordTx(ctx, tx, domain.NewAuditLog(ctx, domain.AuditActionBankTxDelete,
			domain.AuditResourceBankTransaction, id, old, nil, now))
	})
}

// ApplyTransactionDelta replaces oldImpact by newImpact on the account balance
// and returns the new balance. Use zero oldImpact for creations and zero
// newImpact for deletions.
func (uc *BankUseCase) ApplyTransactionDelta(ctx context.Context, accountID string, oldImpact, newImpact decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal

	err := uc.withBalanceTx(ctx, "delta", func(ctx context.Context, tx Transaction) error {
		accounts, err := uc.lockAccounts(ctx, tx, accountID)
		if err != nil {
			return err
		}

		balance, err = uc.applyDelta(ctx, tx, accounts[accountID], oldImpact, newImpact, time.Now().UTC())
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}

	return balance, nil
}

// withBalanceTx runs fn in a database transaction, retrying on conflicts.
func (uc *BankUseCase) withBalanceTx(ctx context.Context, operation string, fn func(ctx context.Context, tx Transaction) error) error {
	start := time.Now()

	err := uc.retrier.Retry(ctx, func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer tx.Rollback(txCtx)

		if err := fn(txCtx, tx); err != nil {
			if errors.Is(err, domain.ErrConcurrencyConflict) && uc.metrics != nil {
				uc.metrics.BalanceConflicts.Inc()
			}
			return err
		}

		return tx.Commit(txCtx)
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.BankTransactions.WithLabelValues(operation).Inc()
		uc.metrics.BalanceUpdateDuration.Observe(time.Since(start).Seconds())
	}

	return nil
}

// lockAccounts locks the given accounts in sorted order to avoid deadlocks.
func (uc *BankUseCase) lockAccounts(ctx context.Context, tx Transaction, ids ...string) (map[string]*domain.BankAccount, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	sort.Strings(unique)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, unique)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*domain.BankAccount, len(accounts))
	for _, a := range accounts {
		byID[a.ID] = a
	}

	for _, id := range unique {
		if byID[id] == nil {
			return nil, domain.ErrBankAccountNotFound
		}
	}

	return byID, nil
}

func (uc *BankUseCase) applyDelta(ctx context.Context, tx Transaction, account *domain.BankAccount, oldImpact, newImpact decimal.Decimal, at time.Time) (decimal.Decimal, error) {
	balance := account.ApplyImpact(oldImpact, newImpact)

	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, balance, account.Version, at); err != nil {
		return decimal.Zero, err
	}

	zerolog.Ctx(ctx).Debug().
		Str("account_id", account.ID).
		Str("previous_balance", account.CurrentBalance.String()).
		Str("balance", balance.String()).
		Msg("bank balance updated")

	account.CurrentBalance = balance
	account.Version++
	account.UpdatedAt = at

	return balance, nil
}

// GetTransaction retrieves a bank transaction by ID.
func (uc *BankUseCase) GetTransaction(ctx context.Context, id string) (*domain.BankTransaction, error) {
	return uc.txRepo.GetByID(ctx, id)
}

// ListTransactions lists bank transactions matching filter.
func (uc *BankUseCase) ListTransactions(ctx context.Context, filter domain.BankTransactionFilter) ([]*domain.BankTransaction, error) {
	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)

	if filter.AccountID != "" {
		if _, err := uc.accountRepo.GetByID(ctx, filter.AccountID); err != nil {
			return nil, err
		}
	}

	return uc.txRepo.List(ctx, filter)
}

// ReconcileTransaction marks a movement as matched (or not) with the bank statement.
func (uc *BankUseCase) ReconcileTransaction(ctx context.Context, id string, reconciled bool) (*domain.BankTransaction, error) {
	var at *time.Time
	if reconciled {
		now := time.Now().UTC()
		at = &now
	}

	if err := uc.txRepo.SetReconciled(ctx, id, reconciled, at); err != nil {
		return nil, err
	}

	return uc.txRepo.GetByID(ctx, id)
}

// AccountStats summarises the transactions of one account.
func (uc *BankUseCase) AccountStats(ctx context.Context, accountID string) (*domain.BankAccountStats, error) {
	if _, err := uc.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}

	return uc.txRepo.Stats(ctx, accountID)
}

// GlobalStats summarises all bank accounts.
func (uc *BankUseCase) GlobalStats(ctx context.Context) (*domain.BankStats, error) {
	return uc.accountRepo.GlobalStats(ctx)
}

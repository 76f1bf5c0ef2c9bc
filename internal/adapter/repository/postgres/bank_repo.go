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

// BankAccountRepository implements usecase.BankAccountRepository.
type BankAccountRepository struct {
	queries *generated.Queries
}

// NewBankAccountRepository creates a new BankAccountRepository.
func NewBankAccountRepository(db generated.DBTX) *BankAccountRepository {
	return &BankAccountRepository{queries: generated.New(db)}
}

// Create inserts a bank account.
func (r *BankAccountRepository) Create(ctx context.Context, account *domain.BankAccount) error {
	return r.queries.CreateBankAccount(ctx, generated.CreateBankAccountParams{
		ID:             account.ID,
		Name:           account.Name,
		Bank:           account.Bank,
		AccountNumber:  account.AccountNumber,
		Iban:           account.IBAN,
		InitialBalance: decimalToNumeric(account.InitialBalance),
		CurrentBalance: decimalToNumeric(account.CurrentBalance),
		Active:         account.Active,
		Version:        account.Version,
		CreatedAt:      timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(account.UpdatedAt),
	})
}

// GetByID retrieves a bank account by ID.
func (r *BankAccountRepository) GetByID(ctx context.Context, id string) (*domain.BankAccount, error) {
	row, err := r.queries.GetBankAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBankAccountNotFound
		}

		return nil, err
	}

	return rowToBankAccount(row), nil
}

// GetByIDsForUpdate locks the accounts in ID order.
func (r *BankAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.BankAccount, error) {
	rows, err := txQueries(tx).GetBankAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.BankAccount, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToBankAccount(row))
	}

	return accounts, nil
}

// List lists bank accounts with pagination.
func (r *BankAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.BankAccount, error) {
	l, o := pageParams(limit, offset)
	rows, err := r.queries.ListBankAccounts(ctx, generated.ListBankAccountsParams{Limit: l, Offset: o})
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.BankAccount, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, rowToBankAccount(row))
	}

	return accounts, nil
}

// Update changes descriptive fields. Balances are never touched here.
func (r *BankAccountRepository) Update(ctx context.Context, account *domain.BankAccount) error {
	n, err := r.queries.UpdateBankAccount(ctx, generated.UpdateBankAccountParams{
		ID:            account.ID,
		Name:          account.Name,
		Bank:          account.Bank,
		AccountNumber: account.AccountNumber,
		Iban:          account.IBAN,
		Active:        account.Active,
		UpdatedAt:     timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBankAccountNotFound
	}

	return nil
}

// Delete removes an account and, by cascade, its transactions.
func (r *BankAccountRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteBankAccount(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBankAccountNotFound
	}

	return nil
}

// UpdateBalance writes the balance when version matches the row.
func (r *BankAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, version int64, updatedAt time.Time) error {
	n, err := txQueries(tx).UpdateBankAccountBalance(ctx, generated.UpdateBankAccountBalanceParams{
		ID:             id,
		CurrentBalance: decimalToNumeric(balance),
		Version:        version,
		UpdatedAt:      timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConcurrencyConflict
	}

	return nil
}

// GlobalStats aggregates all accounts and transactions.
func (r *BankAccountRepository) GlobalStats(ctx context.Context) (*domain.BankStats, error) {
	row, err := r.queries.GetBankGlobalStats(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.BankStats{
		AccountCount:     row.AccountCount,
		TotalBalance:     numericToDecimal(row.TotalBalance),
		TransactionCount: row.TransactionCount,
		TotalCredits:     numericToDecimal(row.TotalCredits),
		TotalDebits:      numericToDecimal(row.TotalDebits),
	}, nil
}

func rowToBankAccount(row generated.BankAccount) *domain.BankAccount {
	return &domain.BankAccount{
		ID:             row.ID,
		Name:           row.Name,
		Bank:           row.Bank,
		AccountNumber:  row.AccountNumber,
		IBAN:           row.Iban,
		InitialBalance: numericToDecimal(row.InitialBalance),
		CurrentBalance: numericToDecimal(row.CurrentBalance),
		Active:         row.Active,
		Version:        row.Version,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}

// BankTransactionRepository implements usecase.BankTransactionRepository.
type BankTransactionRepository struct {
	queries *generated.Queries
}

// NewBankTransactionRepository creates a new BankTransactionRepository.
func NewBankTransactionRepository(db generated.DBTX) *BankTransactionRepository {
	return &BankTransactionRepository{queries: generated.New(db)}
}

// Create inserts a transaction inside tx.
func (r *BankTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, t *domain.BankTransaction) error {
	err := txQueries(tx).CreateBankTransaction(ctx, generated.CreateBankTransactionParams{
		ID:           t.ID,
		AccountID:    t.AccountID,
		Date:         timeToPgDate(t.Date),
		Debit:        decimalToNumeric(t.Debit),
		Credit:       decimalToNumeric(t.Credit),
		Category:     t.Category,
		Description:  t.Description,
		Reference:    t.Reference,
		Reconciled:   t.Reconciled,
		ReconciledAt: timePtrToPgTimestamptz(t.ReconciledAt),
		CreatedAt:    timeToPgTimestamptz(t.CreatedAt),
		UpdatedAt:    timeToPgTimestamptz(t.UpdatedAt),
	})
	if isForeignKeyViolation(err) {
		return domain.ErrBankAccountNotFound
	}
	if isAmountViolation(err) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidAmount, err)
	}

	return err
}

// GetByID retrieves a transaction by ID.
func (r *BankTransactionRepository) GetByID(ctx context.Context, id string) (*domain.BankTransaction, error) {
	row, err := r.queries.GetBankTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToBankTransaction(row), nil
}

// GetByIDForUpdate retrieves a transaction with a FOR UPDATE lock.
func (r *BankTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.BankTransaction, error) {
	row, err := txQueries(tx).GetBankTransactionByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return rowToBankTransaction(row), nil
}

// Update rewrites the movement fields of a transaction.
func (r *BankTransactionRepository) Update(ctx context.Context, tx usecase.Transaction, t *domain.BankTransaction) error {
	n, err := txQueries(tx).UpdateBankTransaction(ctx, generated.UpdateBankTransactionParams{
		ID:          t.ID,
		AccountID:   t.AccountID,
		Date:        timeToPgDate(t.Date),
		Debit:       decimalToNumeric(t.Debit),
		Credit:      decimalToNumeric(t.Credit),
		Category:    t.Category,
		Description: t.Description,
		Reference:   t.Reference,
		UpdatedAt:   timeToPgTimestamptz(t.UpdatedAt),
	})
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrBankAccountNotFound
		}
		if isAmountViolation(err) {
			return fmt.Errorf("%w: %w", domain.ErrInvalidAmount, err)
		}
		return err
	}
	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction inside tx.
func (r *BankTransactionRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	n, err := txQueries(tx).DeleteBankTransaction(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// List returns transactions newest first.
func (r *BankTransactionRepository) List(ctx context.Context, filter domain.BankTransactionFilter) ([]*domain.BankTransaction, error) {
	l, o := pageParams(filter.Limit, filter.Offset)
	rows, err := r.queries.ListBankTransactions(ctx, generated.ListBankTransactionsParams{
		AccountID:        filter.AccountID,
		UnreconciledOnly: filter.UnreconciledOnly,
		FromDate:         timePtrToPgDate(filter.From),
		ToDate:           timePtrToPgDate(filter.To),
		Limit:            l,
		Offset:           o,
	})
	if err != nil {
		return nil, err
	}

	transactions := make([]*domain.BankTransaction, 0, len(rows))
	for _, row := range rows {
		transactions = append(transactions, rowToBankTransaction(row))
	}

	return transactions, nil
}

// SetReconciled flags or unflags a transaction as reconciled.
func (r *BankTransactionRepository) SetReconciled(ctx context.Context, id string, reconciled bool, at *time.Time) error {
	n, err := r.queries.SetBankTransactionReconciled(ctx, generated.SetBankTransactionReconciledParams{
		ID:           id,
		Reconciled:   reconciled,
		ReconciledAt: timePtrToPgTimestamptz(at),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Stats aggregates the transactions of one account.
func (r *BankTransactionRepository) Stats(ctx context.Context, accountID string) (*domain.BankAccountStats, error) {
	row, err := r.queries.GetBankTransactionStats(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &domain.BankAccountStats{
		AccountID:          accountID,
		TotalCredits:       numericToDecimal(row.TotalCredits),
		TotalDebits:        numericToDecimal(row.TotalDebits),
		TransactionCount:   row.TransactionCount,
		ReconciledCount:    row.ReconciledCount,
		UnreconciledAmount: numericToDecimal(row.UnreconciledAmount),
	}, nil
}

func rowToBankTransaction(row generated.BankTransaction) *domain.BankTransaction {
	return &domain.BankTransaction{
		ID:           row.ID,
		AccountID:    row.AccountID,
		Date:         pgDateToTime(row.Date),
		Debit:        numericToDecimal(row.Debit),
		Credit:       numericToDecimal(row.Credit),
		Category:     row.Category,
		Description:  row.Description,
		Reference:    row.Reference,
		Reconciled:   row.Reconciled,
		ReconciledAt: pgTimestamptzToTimePtr(row.ReconciledAt),
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

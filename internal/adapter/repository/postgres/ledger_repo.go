package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/postgres/generated"
	"github.com/iho/compta/internal/usecase"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	queries *generated.Queries
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(db generated.DBTX) *LedgerRepository {
	return &LedgerRepository{queries: generated.New(db)}
}

// Create inserts an entry inside tx.
func (r *LedgerRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	err := txQueries(tx).CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:          entry.ID,
		Date:        timeToPgDate(entry.Date),
		AccountCode: entry.AccountCode,
		Label:       entry.Label,
		Debit:       decimalToNumeric(entry.Debit),
		Credit:      decimalToNumeric(entry.Credit),
		Journal:     string(entry.Journal),
		PieceNumber: entry.PieceNumber,
		Lettering:   stringPtrToText(entry.Lettering),
		InvoiceID:   stringPtrToText(entry.InvoiceID),
		CreatedAt:   timeToPgTimestamptz(entry.CreatedAt),
	})
	if isForeignKeyViolation(err) {
		return domain.ErrInvoiceNotFound
	}
	if isAmountViolation(err) {
		return fmt.Errorf("%w: %w", domain.ErrInvalidAmount, err)
	}

	return err
}

// GetByIDs returns the entries that exist among ids.
func (r *LedgerRepository) GetByIDs(ctx context.Context, ids []string) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.GetLedgerEntriesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	return rowsToLedgerEntries(rows), nil
}

// List returns entries in date order.
func (r *LedgerRepository) List(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error) {
	var journal string
	if filter.Journal != nil {
		journal = string(*filter.Journal)
	}

	l, o := pageParams(filter.Limit, filter.Offset)
	rows, err := r.queries.ListLedgerEntries(ctx, generated.ListLedgerEntriesParams{
		FromDate:      timePtrToPgDate(filter.From),
		ToDate:        timePtrToPgDate(filter.To),
		Journal:       journal,
		AccountPrefix: filter.AccountCode,
		Limit:         l,
		Offset:        o,
	})
	if err != nil {
		return nil, err
	}

	return rowsToLedgerEntries(rows), nil
}

// SetLettering sets or clears (nil code) the lettering of the given entries.
func (r *LedgerRepository) SetLettering(ctx context.Context, ids []string, code *string) (int64, error) {
	return r.queries.SetLedgerLettering(ctx, generated.SetLedgerLetteringParams{
		Ids:       ids,
		Lettering: stringPtrToText(code),
	})
}

// PieceTotals sums debit and credit per journal and piece.
func (r *LedgerRepository) PieceTotals(ctx context.Context) ([]domain.PieceImbalance, error) {
	rows, err := r.queries.ListPieceTotals(ctx)
	if err != nil {
		return nil, err
	}

	pieces := make([]domain.PieceImbalance, 0, len(rows))
	for _, row := range rows {
		pieces = append(pieces, domain.PieceImbalance{
			PieceNumber: row.PieceNumber,
			Journal:     domain.Journal(row.Journal),
			TotalDebit:  numericToDecimal(row.TotalDebit),
			TotalCredit: numericToDecimal(row.TotalCredit),
		})
	}

	return pieces, nil
}

// AccountBalances sums entries per account up to and including to.
func (r *LedgerRepository) AccountBalances(ctx context.Context, from *time.Time, to time.Time) ([]domain.AccountBalance, error) {
	rows, err := r.queries.ListAccountBalances(ctx, generated.ListAccountBalancesParams{
		FromDate: timePtrToPgDate(from),
		ToDate:   timeToPgDate(to),
	})
	if err != nil {
		return nil, err
	}

	balances := make([]domain.AccountBalance, 0, len(rows))
	for _, row := range rows {
		balances = append(balances, domain.AccountBalance{
			AccountCode: row.AccountCode,
			Label:       row.Label,
			TotalDebit:  numericToDecimal(row.TotalDebit),
			TotalCredit: numericToDecimal(row.TotalCredit),
		})
	}

	return balances, nil
}

func rowsToLedgerEntries(rows []generated.LedgerEntry) []*domain.LedgerEntry {
	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &domain.LedgerEntry{
			ID:          row.ID,
			Date:        pgDateToTime(row.Date),
			AccountCode: row.AccountCode,
			Label:       row.Label,
			Debit:       numericToDecimal(row.Debit),
			Credit:      numericToDecimal(row.Credit),
			Journal:     domain.Journal(row.Journal),
			PieceNumber: row.PieceNumber,
			Lettering:   textToStringPtr(row.Lettering),
			InvoiceID:   textToStringPtr(row.InvoiceID),
			CreatedAt:   row.CreatedAt.Time,
		})
	}

	return entries
}

// ChartRepository implements usecase.ChartRepository.
type ChartRepository struct {
	queries *generated.Queries
}

// NewChartRepository creates a new ChartRepository.
func NewChartRepository(db generated.DBTX) *ChartRepository {
	return &ChartRepository{queries: generated.New(db)}
}

// Create adds an account to the chart.
func (r *ChartRepository) Create(ctx context.Context, account *domain.ChartAccount) error {
	err := r.queries.CreateChartAccount(ctx, generated.CreateChartAccountParams{
		Code:  account.Code,
		Label: account.Label,
	})
	if isUniqueViolation(err) {
		return domain.ErrChartAccountExists
	}

	return err
}

// GetByCode retrieves an account by code.
func (r *ChartRepository) GetByCode(ctx context.Context, code string) (*domain.ChartAccount, error) {
	row, err := r.queries.GetChartAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChartAccountNotFound
		}

		return nil, err
	}

	return &domain.ChartAccount{Code: row.Code, Label: row.Label}, nil
}

// List returns the whole chart ordered by code.
func (r *ChartRepository) List(ctx context.Context) ([]*domain.ChartAccount, error) {
	rows, err := r.queries.ListChartAccounts(ctx)
	if err != nil {
		return nil, err
	}

	accounts := make([]*domain.ChartAccount, 0, len(rows))
	for _, row := range rows {
		accounts = append(accounts, &domain.ChartAccount{Code: row.Code, Label: row.Label})
	}

	return accounts, nil
}


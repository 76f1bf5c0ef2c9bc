package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/metrics"
)

// LedgerUseCase handles ledger entries and the chart of accounts.
type LedgerUseCase struct {
	txManager   TransactionManager
	ledgerRepo  LedgerRepository
	chartRepo   ChartRepository
	idGen       IDGenerator
	reportCache *ReportCache
	metrics     *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	txManager TransactionManager,
	ledgerRepo LedgerRepository,
	chartRepo ChartRepository,
	idGen IDGenerator,
	reportCache *ReportCache,
	metrics *metrics.Metrics,
) *LedgerUseCase {
	return &LedgerUseCase{
		txManager:   txManager,
		ledgerRepo:  ledgerRepo,
		chartRepo:   chartRepo,
		idGen:       idGen,
		reportCache: reportCache,
		metrics:     metrics,
	}
}

// CreateEntryInput represents input for booking one ledger line.
type CreateEntryInput struct {
	Date        time.Time
	AccountCode string
	Label       string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Journal     domain.Journal
	PieceNumber string
	InvoiceID   *string
}

// CreateEntry books a single ledger line.
func (uc *LedgerUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.LedgerEntry, error) {
	entries, err := uc.CreateEntries(ctx, []CreateEntryInput{input})
	if err != nil {
		return nil, err
	}

	return entries[0], nil
}

// CreateEntries books a batch of lines atomically. Each line is validated on
// its own; the batch does not have to balance.
func (uc *LedgerUseCase) CreateEntries(ctx context.Context, inputs []CreateEntryInput) ([]*domain.LedgerEntry, error) {
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: no entries", domain.ErrInvalidLedgerEntry)
	}
	if len(inputs) > maxBatchEntries {
		return nil, fmt.Errorf("%w: batch exceeds %d entries", domain.ErrInvalidLedgerEntry, maxBatchEntries)
	}

	now := time.Now().UTC()
	entries := make([]*domain.LedgerEntry, 0, len(inputs))
	checked := make(map[string]bool)

	for i, input := range inputs {
		entry := &domain.LedgerEntry{
			ID:          uc.idGen.Generate(),
			Date:        input.Date,
			AccountCode: input.AccountCode,
			Label:       input.Label,
			Debit:       input.Debit,
			Credit:      input.Credit,
			Journal:     input.Journal,
			PieceNumber: input.PieceNumber,
			InvoiceID:   input.InvoiceID,
			CreatedAt:   now,
		}

		if err := entry.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}

		if !checked[entry.AccountCode] {
			if _, err := uc.chartRepo.GetByCode(ctx, entry.AccountCode); err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			checked[entry.AccountCode] = true
		}

		entries = append(entries, entry)
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(txCtx)

	for _, entry := range entries {
		if err := uc.ledgerRepo.Create(txCtx, tx, entry); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	uc.reportCache.Invalidate(ctx)

	if uc.metrics != nil {
		for _, entry := range entries {
			uc.metrics.LedgerEntriesCreated.WithLabelValues(string(entry.Journal)).Inc()
		}
	}

	zerolog.Ctx(ctx).Info().Int("count", len(entries)).Msg("ledger entries booked")

	return entries, nil
}

// ListEntries lists ledger entries matching filter, ordered by date.
func (uc *LedgerUseCase) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]*domain.LedgerEntry, error) {
	if filter.Journal != nil && !filter.Journal.IsValid() {
		return nil, domain.ErrInvalidJournal
	}
	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)

	return uc.ledgerRepo.List(ctx, filter)
}

// LetterEntries tags entries of one account with a common lettering code.
func (uc *LedgerUseCase) LetterEntries(ctx context.Context, ids []string, code string) (int64, error) {
	if err := domain.ValidateLetteringCode(code); err != nil {
		return 0, err
	}

	if err := uc.checkLetterable(ctx, ids); err != nil {
		return 0, err
	}

	n, err := uc.ledgerRepo.SetLettering(ctx, ids, &code)
	if err != nil {
		return 0, err
	}

	uc.reportCache.Invalidate(ctx)

	return n, nil
}

// UnletterEntries clears the lettering code of entries.
func (uc *LedgerUseCase) UnletterEntries(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: no entries", domain.ErrInvalidLedgerEntry)
	}

	n, err := uc.ledgerRepo.SetLettering(ctx, ids, nil)
	if err != nil {
		return 0, err
	}

	uc.reportCache.Invalidate(ctx)

	return n, nil
}

func (uc *LedgerUseCase) checkLetterable(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return fmt.Errorf("%w: no entries", domain.ErrInvalidLedgerEntry)
	}

	entries, err := uc.ledgerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}

	found := make(map[string]bool, len(entries))
	for _, e := range entries {
		found[e.ID] = true
	}
	for _, id := range ids {
		if !found[id] {
			return fmt.Errorf("%w: %s", domain.ErrLedgerEntryNotFound, id)
		}
	}

	for _, e := range entries[1:] {
		if e.AccountCode != entries[0].AccountCode {
			return fmt.Errorf("%w: lettered entries must share one account", domain.ErrInvalidLedgerEntry)
		}
	}

	return nil
}

// ListChartAccounts returns the chart of accounts ordered by code.
func (uc *LedgerUseCase) ListChartAccounts(ctx context.Context) ([]*domain.ChartAccount, error) {
	return uc.chartRepo.List(ctx)
}

// CreateChartAccount adds an account to the chart.
func (uc *LedgerUseCase) CreateChartAccount(ctx context.Context, code, label string) (*domain.ChartAccount, error) {
	account := &domain.ChartAccount{Code: code, Label: label}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	_, err := uc.chartRepo.GetByCode(ctx, code)
	if err == nil {
		return nil, domain.ErrChartAccountExists
	}
	if !errors.Is(err, domain.ErrChartAccountNotFound) {
		return nil, err
	}

	if err := uc.chartRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	// Cached reports resolve account labels from the chart.
	uc.reportCache.Invalidate(ctx)

	return account, nil
}

// CheckConsistency lists pieces whose debits differ from their credits.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
	pieces, err := uc.ledgerRepo.PieceTotals(ctx)
	if err != nil {
		return nil, err
	}

	report := domain.NewConsistencyReport(pieces)

	if uc.metrics != nil {
		uc.metrics.UnbalancedPieces.Set(float64(len(report.Imbalances)))
	}

	return report, nil
}

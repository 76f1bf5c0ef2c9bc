package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/metrics"
)

// ReconciliationUseCase recomputes stored balances from history and reports
// ledger pieces that do not balance.
type ReconciliationUseCase struct {
	accountRepo BankAccountRepository
	txRepo      BankTransactionRepository
	ledgerRepo  LedgerRepository
	metrics     *metrics.Metrics
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	accountRepo BankAccountRepository,
	txRepo BankTransactionRepository,
	ledgerRepo LedgerRepository,
	metrics *metrics.Metrics,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		txRepo:      txRepo,
		ledgerRepo:  ledgerRepo,
		metrics:     metrics,
	}
}

// VerifyAccountBalance compares the stored balance of an account with
// initial + Σcredits − Σdebits.
func (uc *ReconciliationUseCase) VerifyAccountBalance(ctx context.Context, accountID string) (*domain.BalanceCheck, error) {
	account, err := uc.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	stats, err := uc.txRepo.Stats(ctx, accountID)
	if err != nil {
		return nil, err
	}

	check := domain.NewBalanceCheck(account, stats.TotalCredits, stats.TotalDebits, time.Now().UTC())
	if !check.Consistent {
		zerolog.Ctx(ctx).Warn().
			Str("account_id", accountID).
			Str("stored", check.StoredBalance.String()).
			Str("expected", check.ExpectedBalance.String()).
			Msg("bank balance discrepancy")
	}

	return check, nil
}

// VerifyAllBalances checks every bank account, page by page.
func (uc *ReconciliationUseCase) VerifyAllBalances(ctx context.Context) ([]*domain.BalanceCheck, error) {
	var checks []*domain.BalanceCheck
	discrepancies := 0

	for offset := 0; ; offset += verifyPageSize {
		accounts, err := uc.accountRepo.List(ctx, verifyPageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, account := range accounts {
			check, err := uc.VerifyAccountBalance(ctx, account.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to verify account %s: %w", account.ID, err)
			}
			if !check.Consistent {
				discrepancies++
			}
			checks = append(checks, check)
		}

		if len(accounts) < verifyPageSize {
			break
		}
	}

	if uc.metrics != nil {
		uc.metrics.BalanceDiscrepancies.Set(float64(discrepancies))
	}

	return checks, nil
}

// CheckLedgerConsistency lists pieces whose debits differ from their credits.
// Nothing is rejected; the report is informational.
func (uc *ReconciliationUseCase) CheckLedgerConsistency(ctx context.Context) (*domain.ConsistencyReport, error) {
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

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*domain.BalanceCheck
	Ledger             *domain.ConsistencyReport
	CheckedAt          time.Time
}

// GenerateReconciliationReport verifies every bank balance and the ledger.
func (uc *ReconciliationUseCase) GenerateReconciliationReport(ctx context.Context) (*ReconciliationReport, error) {
	checks, err := uc.VerifyAllBalances(ctx)
	if err != nil {
		return nil, err
	}

	ledger, err := uc.CheckLedgerConsistency(ctx)
	if err != nil {
		return nil, err
	}

	report := &ReconciliationReport{
		TotalAccounts: len(checks),
		Discrepancies: make([]*domain.BalanceCheck, 0),
		Ledger:        ledger,
		CheckedAt:     time.Now().UTC(),
	}

	for _, check := range checks {
		if check.Consistent {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, check)
		}
	}

	return report, nil
}

package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/metrics"
)

// AssetUseCase handles fixed assets and their depreciation.
type AssetUseCase struct {
	txManager        TransactionManager
	assetRepo        AssetRepository
	depreciationRepo DepreciationRepository
	ledgerRepo       LedgerRepository
	idGen            IDGenerator
	retrier          Retrier
	reportCache      *ReportCache
	audit            auditTrail
	metrics          *metrics.Metrics
}

// NewAssetUseCase creates a new AssetUseCase.
func NewAssetUseCase(
	txManager TransactionManager,
	assetRepo AssetRepository,
	depreciationRepo DepreciationRepository,
	ledgerRepo LedgerRepository,
	idGen IDGenerator,
	retrier Retrier,
	reportCache *ReportCache,
	auditRepo AuditRepository,
	metrics *metrics.Metrics,
) *AssetUseCase {
	return &AssetUseCase{
		txManager:        txManager,
		assetRepo:        assetRepo,
		depreciationRepo: depreciationRepo,
		ledgerRepo:       ledgerRepo,
		idGen:            idGen,
		retrier:          retrier,
		reportCache:      reportCache,
		audit:            auditTrail{repo: auditRepo, metrics: metrics},
		metrics:          metrics,
	}
}

// CreateAssetInput represents input for recording an acquisition.
type CreateAssetInput struct {
	Designation      string
	Category         string
	AccountCode      string
	AcquisitionDate  time.Time
	AcquisitionValue decimal.Decimal
	ResidualValue    decimal.Decimal
	UsefulLifeYears  int
	Method           domain.DepreciationMethod
	DecliningRate    *decimal.Decimal
}

// CreateAsset records a newly acquired asset.
func (uc *AssetUseCase) CreateAsset(ctx context.Context, input CreateAssetInput) (*domain.FixedAsset, error) {
	now := time.Now().UTC()

	asset := &domain.FixedAsset{
		ID:               uc.idGen.Generate(),
		Designation:      input.Designation,
		Category:         input.Category,
		AccountCode:      input.AccountCode,
		AcquisitionDate:  input.AcquisitionDate,
		AcquisitionValue: input.AcquisitionValue,
		ResidualValue:    input.ResidualValue,
		UsefulLifeYears:  input.UsefulLifeYears,
		Method:           input.Method,
		DecliningRate:    input.DecliningRate,
		NetBookValue:     input.AcquisitionValue,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := asset.Validate(); err != nil {
		return nil, err
	}

	if err := uc.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	uc.audit.record(ctx, domain.NewAuditLog(ctx, domain.AuditActionAssetCreate,
		domain.AuditResourceAsset, asset.ID, nil, asset, now))

	if uc.metrics != nil {
		uc.metrics.AssetsCreated.Inc()
	}

	return asset, nil
}

// GetAsset retrieves an asset by ID.
func (uc *AssetUseCase) GetAsset(ctx context.Context, id string) (*domain.FixedAsset, error) {
	return uc.assetRepo.GetByID(ctx, id)
}

// ListAssets lists assets with pagination.
func (uc *AssetUseCase) ListAssets(ctx context.Context, limit, offset int) ([]*domain.FixedAsset, error) {
	limit, offset, _ = domain.ValidatePagination(limit, offset)
	return uc.assetRepo.List(ctx, limit, offset)
}

// ComputeDepreciation returns the depreciation of fiscalYear without posting it.
// An already posted year is returned as recorded.
func (uc *AssetUseCase) ComputeDepreciation(ctx context.Context, assetID string, fiscalYear int) (*domain.DepreciationResult, error) {
	asset, err := uc.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	posted, err := uc.depreciationRepo.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	for _, e := range posted {
		if e.FiscalYear == fiscalYear {
			return &domain.DepreciationResult{
				AssetID:                asset.ID,
				FiscalYear:             e.FiscalYear,
				YearIndex:              e.YearIndex,
				Method:                 asset.Method,
				NetBookValueStart:      e.NetBookValue.Add(e.Amount),
				Amount:                 e.Amount,
				CumulativeDepreciation: e.CumulativeDepreciation,
				NetBookValue:           e.NetBookValue,
				Final:                  fiscalYear == asset.LastFiscalYear(),
				Posted:                 true,
			}, nil
		}
	}

	return domain.ComputeDepreciation(asset, fiscalYear, posted)
}

// PostDepreciation computes and records the depreciation of fiscalYear, updates the
// asset net book value and books the dotation in the ledger, atomically.
func (uc *AssetUseCase) PostDepreciation(ctx context.Context, assetID string, fiscalYear int) (*domain.DepreciationEntry, error) {
	var entry *domain.DepreciationEntry

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		entry, err = uc.postDepreciation(ctx, assetID, fiscalYear)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.reportCache.Invalidate(ctx)

	if uc.metrics != nil {
		uc.metrics.DepreciationPosted.Inc()
		uc.metrics.DepreciationAmount.Observe(entry.Amount.InexactFloat64())
	}

	zerolog.Ctx(ctx).Info().
		Str("asset_id", assetID).
		Int("fiscal_year", fiscalYear).
		Str("amount", entry.Amount.String()).
		Str("net_book_value", entry.NetBookValue.String()).
		Msg("depreciation posted")

	return entry, nil
}

func (uc *AssetUseCase) postDepreciation(ctx context.Context, assetID string, fiscalYear int) (*domain.DepreciationEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	asset, err := uc.assetRepo.GetByIDForUpdate(ctx, tx, assetID)
	if err != nil {
		return nil, err
	}

	posted, err := uc.depreciationRepo.ListByAssetTx(ctx, tx, assetID)
	if err != nil {
		return nil, err
	}

	for _, e := range posted {
		if e.FiscalYear == fiscalYear {
			return nil, domain.ErrDepreciationAlreadyPosted
		}
	}

	result, err := domain.ComputeDepreciation(asset, fiscalYear, posted)
	if err != nil {
		return nil, err
	}

	if next := domain.NextFiscalYear(asset, posted); fiscalYear != next {
		return nil, fmt.Errorf("%w: next year to post is %d", domain.ErrDepreciationSequence, next)
	}

	now := time.Now().UTC()
	entry := result.ToEntry(uc.idGen.Generate(), now)

	if err := uc.depreciationRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.assetRepo.UpdateNetBookValue(ctx, tx, asset.ID, entry.NetBookValue, asset.Version, now); err != nil {
		return nil, err
	}

	if entry.Amount.IsPositive() {
		for _, line := range uc.dotationEntries(asset, entry, now) {
			if err := uc.ledgerRepo.Create(ctx, tx, line); err != nil {
				return nil, err
			}
		}
	}

	auditLog := domain.NewAuditLog(ctx, domain.AuditActionDepreciationPost,
		domain.AuditResourceAsset, asset.ID, asset, entry, now)
	if err := uc.audit.recordTx(ctx, tx, auditLog); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return entry, nil
}

// dotationEntries books the yearly charge: debit 6811, credit the 28x account.
func (uc *AssetUseCase) dotationEntries(asset *domain.FixedAsset, entry *domain.DepreciationEntry, now time.Time) []*domain.LedgerEntry {
	bookedAt := time.Date(entry.FiscalYear, time.December, 31, 0, 0, 0, 0, time.UTC)
	if asset.IsDisposed() && asset.DisposalDate.Year() == entry.FiscalYear {
		bookedAt = *asset.DisposalDate
	}

	piece := fmt.Sprintf("DOT-%d-%s", entry.FiscalYear, asset.ID)
	label := fmt.Sprintf("Dotation amortissement %d - %s", entry.FiscalYear, asset.Designation)

	return []*domain.LedgerEntry{
		{
			ID:          uc.idGen.Generate(),
			Date:        bookedAt,
			AccountCode: domain.AccountDepreciationExpense,
			Label:       label,
			Debit:       entry.Amount,
			Credit:      decimal.Zero,
			Journal:     domain.JournalMisc,
			PieceNumber: piece,
			CreatedAt:   now,
		},
		{
			ID:          uc.idGen.Generate(),
			Date:        bookedAt,
			AccountCode: asset.DepreciationAccountCode(),
			Label:       label,
			Debit:       decimal.Zero,
			Credit:      entry.Amount,
			Journal:     domain.JournalMisc,
			PieceNumber: piece,
			CreatedAt:   now,
		},
	}
}

// DepreciationSchedule returns the full depreciation plan of an asset.
func (uc *AssetUseCase) DepreciationSchedule(ctx context.Context, assetID string) ([]*domain.DepreciationResult, error) {
	asset, err := uc.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	posted, err := uc.depreciationRepo.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	return domain.DepreciationSchedule(asset, posted)
}

// ListDepreciationEntries returns the posted history of an asset.
func (uc *AssetUseCase) ListDepreciationEntries(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error) {
	if _, err := uc.assetRepo.GetByID(ctx, assetID); err != nil {
		return nil, err
	}

	return uc.depreciationRepo.ListByAsset(ctx, assetID)
}

// DisposeAssetInput represents input for recording a disposal.
type DisposeAssetInput struct {
	AssetID string
	Date    time.Time
	Price   decimal.Decimal
}

// DisposeAsset records the disposal of an asset. No depreciation accrues for
// fiscal years after the disposal year.
func (uc *AssetUseCase) DisposeAsset(ctx context.Context, input DisposeAssetInput) (*domain.FixedAsset, error) {
	if input.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", domain.ErrInvalidDisposal)
	}

	var (
		asset *domain.FixedAsset
		gain  decimal.Decimal
	)

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		asset, gain, err = uc.disposeAsset(ctx, input)
		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AssetsDisposed.Inc()
	}

	zerolog.Ctx(ctx).Info().
		Str("asset_id", asset.ID).
		Time("disposal_date", input.Date).
		Str("gain", gain.String()).
		Msg("asset disposed")

	return asset, nil
}

// disposeAsset records the disposal and returns the gain projected at the
// disposal date. The disposal year itself must still be unposted so that its
// depreciation is restricted to the months held.
func (uc *AssetUseCase) disposeAsset(ctx context.Context, input DisposeAssetInput) (*domain.FixedAsset, decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}
	defer tx.Rollback(ctx)

	asset, err := uc.assetRepo.GetByIDForUpdate(ctx, tx, input.AssetID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	if asset.IsDisposed() {
		return nil, decimal.Zero, fmt.Errorf("%w: asset already disposed", domain.ErrInvalidDisposal)
	}
	if input.Date.Before(asset.AcquisitionDate) {
		return nil, decimal.Zero, fmt.Errorf("%w: disposal precedes acquisition", domain.ErrInvalidDisposal)
	}

	posted, err := uc.depreciationRepo.ListByAssetTx(ctx, tx, asset.ID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	for _, e := range posted {
		if e.FiscalYear >= input.Date.Year() {
			return nil, decimal.Zero, fmt.Errorf("%w: depreciation already posted for %d", domain.ErrInvalidDisposal, e.FiscalYear)
		}
	}

	now := time.Now().UTC()
	if err := uc.assetRepo.RecordDisposal(ctx, tx, asset.ID, input.Date, input.Price, asset.Version, now); err != nil {
		return nil, decimal.Zero, err
	}

	before := *asset
	disposedAt, price := input.Date, input.Price
	asset.DisposalDate = &disposedAt
	asset.DisposalPrice = &price
	asset.Version++
	asset.UpdatedAt = now

	gain, err := domain.ProjectedDisposalGain(asset, posted)
	if err != nil {
		return nil, decimal.Zero, err
	}

	auditLog := domain.NewAuditLog(ctx, domain.AuditActionAssetDispose,
		domain.AuditResourceAsset, asset.ID, &before, asset, now)
	if err := uc.audit.recordTx(ctx, tx, auditLog); err != nil {
		return nil, decimal.Zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, decimal.Zero, err
	}

	return asset, gain, nil
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/postgres/generated"
	"github.com/iho/compta/internal/usecase"
)

// AssetRepository implements usecase.AssetRepository.
type AssetRepository struct {
	queries *generated.Queries
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(db generated.DBTX) *AssetRepository {
	return &AssetRepository{queries: generated.New(db)}
}

// Create inserts a fixed asset.
func (r *AssetRepository) Create(ctx context.Context, asset *domain.FixedAsset) error {
	return r.queries.CreateFixedAsset(ctx, generated.CreateFixedAssetParams{
		ID:               asset.ID,
		Designation:      asset.Designation,
		Category:         asset.Category,
		AccountCode:      asset.AccountCode,
		AcquisitionDate:  timeToPgDate(asset.AcquisitionDate),
		AcquisitionValue: decimalToNumeric(asset.AcquisitionValue),
		ResidualValue:    decimalToNumeric(asset.ResidualValue),
		UsefulLifeYears:  int32(asset.UsefulLifeYears),
		Method:           string(asset.Method),
		DecliningRate:    decimalPtrToNumeric(asset.DecliningRate),
		NetBookValue:     decimalToNumeric(asset.NetBookValue),
		DisposalDate:     timePtrToPgDate(asset.DisposalDate),
		DisposalPrice:    decimalPtrToNumeric(asset.DisposalPrice),
		Version:          asset.Version,
		CreatedAt:        timeToPgTimestamptz(asset.CreatedAt),
		UpdatedAt:        timeToPgTimestamptz(asset.UpdatedAt),
	})
}

// GetByID retrieves an asset by ID.
func (r *AssetRepository) GetByID(ctx context.Context, id string) (*domain.FixedAsset, error) {
	row, err := r.queries.GetFixedAssetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}

		return nil, err
	}

	return rowToAsset(row), nil
}

// GetByIDForUpdate retrieves an asset by ID with a FOR UPDATE lock.
func (r *AssetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.FixedAsset, error) {
	row, err := txQueries(tx).GetFixedAssetByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAssetNotFound
		}

		return nil, err
	}

	return rowToAsset(row), nil
}

// List lists assets ordered by ID.
func (r *AssetRepository) List(ctx context.Context, limit, offset int) ([]*domain.FixedAsset, error) {
	l, o := pageParams(limit, offset)
	rows, err := r.queries.ListFixedAssets(ctx, generated.ListFixedAssetsParams{Limit: l, Offset: o})
	if err != nil {
		return nil, err
	}

	assets := make([]*domain.FixedAsset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, rowToAsset(row))
	}

	return assets, nil
}

// UpdateNetBookValue stores the NBV after a posting if version still matches.
func (r *AssetRepository) UpdateNetBookValue(ctx context.Context, tx usecase.Transaction, id string, nbv decimal.Decimal, version int64, updatedAt time.Time) error {
	n, err := txQueries(tx).UpdateFixedAssetNetBookValue(ctx, generated.UpdateFixedAssetNetBookValueParams{
		ID:           id,
		NetBookValue: decimalToNumeric(nbv),
		Version:      version,
		UpdatedAt:    timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConcurrencyConflict
	}

	return nil
}

// RecordDisposal stores the disposal date and price if version still matches.
func (r *AssetRepository) RecordDisposal(ctx context.Context, tx usecase.Transaction, id string, disposedAt time.Time, price decimal.Decimal, version int64, updatedAt time.Time) error {
	n, err := txQueries(tx).RecordFixedAssetDisposal(ctx, generated.RecordFixedAssetDisposalParams{
		ID:            id,
		DisposalDate:  timeToPgDate(disposedAt),
		DisposalPrice: decimalToNumeric(price),
		Version:       version,
		UpdatedAt:     timeToPgTimestamptz(updatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrConcurrencyConflict
	}

	return nil
}

func rowToAsset(row generated.FixedAsset) *domain.FixedAsset {
	return &domain.FixedAsset{
		ID:               row.ID,
		Designation:      row.Designation,
		Category:         row.Category,
		AccountCode:      row.AccountCode,
		AcquisitionDate:  pgDateToTime(row.AcquisitionDate),
		AcquisitionValue: numericToDecimal(row.AcquisitionValue),
		ResidualValue:    numericToDecimal(row.ResidualValue),
		UsefulLifeYears:  int(row.UsefulLifeYears),
		Method:           domain.DepreciationMethod(row.Method),
		DecliningRate:    numericToDecimalPtr(row.DecliningRate),
		NetBookValue:     numericToDecimal(row.NetBookValue),
		DisposalDate:     pgDateToTimePtr(row.DisposalDate),
		DisposalPrice:    numericToDecimalPtr(row.DisposalPrice),
		Version:          row.Version,
		CreatedAt:        row.CreatedAt.Time,
		UpdatedAt:        row.UpdatedAt.Time,
	}
}

// DepreciationRepository implements usecase.DepreciationRepository.
type DepreciationRepository struct {
	queries *generated.Queries
}

// NewDepreciationRepository creates a new DepreciationRepository.
func NewDepreciationRepository(db generated.DBTX) *DepreciationRepository {
	return &DepreciationRepository{queries: generated.New(db)}
}

// Create records a posted depreciation. A second posting for the same
// fiscal year fails with domain.ErrDepreciationAlreadyPosted.
func (r *DepreciationRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.DepreciationEntry) error {
	err := txQueries(tx).CreateDepreciationEntry(ctx, generated.CreateDepreciationEntryParams{
		ID:                     entry.ID,
		AssetID:                entry.AssetID,
		FiscalYear:             int32(entry.FiscalYear),
		YearIndex:              int32(entry.YearIndex),
		Amount:                 decimalToNumeric(entry.Amount),
		CumulativeDepreciation: decimalToNumeric(entry.CumulativeDepreciation),
		NetBookValue:           decimalToNumeric(entry.NetBookValue),
		PostedAt:               timeToPgTimestamptz(entry.PostedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrDepreciationAlreadyPosted
	}

	return err
}

// ListByAsset lists posted entries ordered by fiscal year.
func (r *DepreciationRepository) ListByAsset(ctx context.Context, assetID string) ([]*domain.DepreciationEntry, error) {
	return listDepreciation(ctx, r.queries, assetID)
}

// ListByAssetTx is ListByAsset inside tx.
func (r *DepreciationRepository) ListByAssetTx(ctx context.Context, tx usecase.Transaction, assetID string) ([]*domain.DepreciationEntry, error) {
	return listDepreciation(ctx, txQueries(tx), assetID)
}

func listDepreciation(ctx context.Context, q *generated.Queries, assetID string) ([]*domain.DepreciationEntry, error) {
	rows, err := q.ListDepreciationEntriesByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.DepreciationEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &domain.DepreciationEntry{
			ID:                     row.ID,
			AssetID:                row.AssetID,
			FiscalYear:             int(row.FiscalYear),
			YearIndex:              int(row.YearIndex),
			Amount:                 numericToDecimal(row.Amount),
			CumulativeDepreciation: numericToDecimal(row.CumulativeDepreciation),
			NetBookValue:           numericToDecimal(row.NetBookValue),
			PostedAt:               row.PostedAt.Time,
		})
	}

	return entries, nil
}

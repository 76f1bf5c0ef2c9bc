package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createFixedAsset = `-- name: CreateFixedAsset :exec
INSERT INTO fixed_assets (id, designation, category, account_code, acquisition_date, acquisition_value, residual_value, useful_life_years, method, declining_rate, net_book_value, disposal_date, disposal_price, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

type CreateFixedAssetParams struct {
	ID               string             `json:"id"`
	Designation      string             `json:"designation"`
	Category         string             `json:"category"`
	AccountCode      string             `json:"account_code"`
	AcquisitionDate  pgtype.Date        `json:"acquisition_date"`
	AcquisitionValue pgtype.Numeric     `json:"acquisition_value"`
	ResidualValue    pgtype.Numeric     `json:"residual_value"`
	UsefulLifeYears  int32              `json:"useful_life_years"`
	Method           string             `json:"method"`
	DecliningRate    pgtype.Numeric     `json:"declining_rate"`
	NetBookValue     pgtype.Numeric     `json:"net_book_value"`
	DisposalDate     pgtype.Date        `json:"disposal_date"`
	DisposalPrice    pgtype.Numeric     `json:"disposal_price"`
	Version          int64              `json:"version"`
	CreatedAt        pgtype.Timestamptz `json:"created_at"`
	UpdatedAt        pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateFixedAsset(ctx context.Context, arg CreateFixedAssetParams) error {
	_, err := q.db.Exec(ctx, createFixedAsset,
		arg.ID,
		arg.Designation,
		arg.Category,
		arg.AccountCode,
		arg.AcquisitionDate,
		arg.AcquisitionValue,
		arg.ResidualValue,
		arg.UsefulLifeYears,
		arg.Method,
		arg.DecliningRate,
		arg.NetBookValue,
		arg.DisposalDate,
		arg.DisposalPrice,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getFixedAssetByID = `-- name: GetFixedAssetByID :one
SELECT id, designation, category, account_code, acquisition_date, acquisition_value, residual_value, useful_life_years, method, declining_rate, net_book_value, disposal_date, disposal_price, version, created_at, updated_at FROM fixed_assets WHERE id = $1
`

func (q *Queries) GetFixedAssetByID(ctx context.Context, id string) (FixedAsset, error) {
	row := q.db.QueryRow(ctx, getFixedAssetByID, id)
	var i FixedAsset
	err := row.Scan(
		&i.ID,
		&i.Designation,
		&i.Category,
		&i.AccountCode,
		&i.AcquisitionDate,
		&i.AcquisitionValue,
		&i.ResidualValue,
		&i.UsefulLifeYears,
		&i.Method,
		&i.DecliningRate,
		&i.NetBookValue,
		&i.DisposalDate,
		&i.DisposalPrice,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getFixedAssetByIDForUpdate = `-- name: GetFixedAssetByIDForUpdate :one
SELECT id, designation, category, account_code, acquisition_date, acquisition_value, residual_value, useful_life_years, method, declining_rate, net_book_value, disposal_date, disposal_price, version, created_at, updated_at FROM fixed_assets WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetFixedAssetByIDForUpdate(ctx context.Context, id string) (FixedAsset, error) {
	row := q.db.QueryRow(ctx, getFixedAssetByIDForUpdate, id)
	var i FixedAsset
	err := row.Scan(
		&i.ID,
		&i.Designation,
		&i.Category,
		&i.AccountCode,
		&i.AcquisitionDate,
		&i.AcquisitionValue,
		&i.ResidualValue,
		&i.UsefulLifeYears,
		&i.Method,
		&i.DecliningRate,
		&i.NetBookValue,
		&i.DisposalDate,
		&i.DisposalPrice,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listFixedAssets = `-- name: ListFixedAssets :many
SELECT id, designation, category, account_code, acquisition_date, acquisition_value, residual_value, useful_life_years, method, declining_rate, net_book_value, disposal_date, disposal_price, version, created_at, updated_at FROM fixed_assets
ORDER BY id
LIMIT NULLIF($1::int, 0) OFFSET $2
`

type ListFixedAssetsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListFixedAssets(ctx context.Context, arg ListFixedAssetsParams) ([]FixedAsset, error) {
	rows, err := q.db.Query(ctx, listFixedAssets, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []FixedAsset
	for rows.Next() {
		var i FixedAsset
		if err := rows.Scan(
			&i.ID,
			&i.Designation,
			&i.Category,
			&i.AccountCode,
			&i.AcquisitionDate,
			&i.AcquisitionValue,
			&i.ResidualValue,
			&i.UsefulLifeYears,
			&i.Method,
			&i.DecliningRate,
			&i.NetBookValue,
			&i.DisposalDate,
			&i.DisposalPrice,
			&i.Version,
			&i.CreatedAt,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateFixedAssetNetBookValue = `-- name: UpdateFixedAssetNetBookValue :execrows
UPDATE fixed_assets
SET net_book_value = $2, version = version + 1, updated_at = $4
WHERE id = $1 AND version = $3
`

type UpdateFixedAssetNetBookValueParams struct {
	ID           string             `json:"id"`
	NetBookValue pgtype.Numeric     `json:"net_book_value"`
	Version      int64              `json:"version"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateFixedAssetNetBookValue(ctx context.Context, arg UpdateFixedAssetNetBookValueParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateFixedAssetNetBookValue,
		arg.ID,
		arg.NetBookValue,
		arg.Version,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const recordFixedAssetDisposal = `-- name: RecordFixedAssetDisposal :execrows
UPDATE fixed_assets
SET disposal_date = $2, disposal_price = $3, version = version + 1, updated_at = $5
WHERE id = $1 AND version = $4
`

type RecordFixedAssetDisposalParams struct {
	ID            string             `json:"id"`
	DisposalDate  pgtype.Date        `json:"disposal_date"`
	DisposalPrice pgtype.Numeric     `json:"disposal_price"`
	Version       int64              `json:"version"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) RecordFixedAssetDisposal(ctx context.Context, arg RecordFixedAssetDisposalParams) (int64, error) {
	result, err := q.db.Exec(ctx, recordFixedAssetDisposal,
		arg.ID,
		arg.DisposalDate,
		arg.DisposalPrice,
		arg.Version,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

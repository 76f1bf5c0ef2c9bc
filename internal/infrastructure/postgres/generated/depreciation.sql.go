package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createDepreciationEntry = `-- name: CreateDepreciationEntry :exec
INSERT INTO depreciation_entries (id, asset_id, fiscal_year, year_index, amount, cumulative_depreciation, net_book_value, posted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateDepreciationEntryParams struct {
	ID                     string             `json:"id"`
	AssetID                string             `json:"asset_id"`
	FiscalYear             int32              `json:"fiscal_year"`
	YearIndex              int32              `json:"year_index"`
	Amount                 pgtype.Numeric     `json:"amount"`
	CumulativeDepreciation pgtype.Numeric     `json:"cumulative_depreciation"`
	NetBookValue           pgtype.Numeric     `json:"net_book_value"`
	PostedAt               pgtype.Timestamptz `json:"posted_at"`
}

func (q *Queries) CreateDepreciationEntry(ctx context.Context, arg CreateDepreciationEntryParams) error {
	_, err := q.db.Exec(ctx, createDepreciationEntry,
		arg.ID,
		arg.AssetID,
		arg.FiscalYear,
		arg.YearIndex,
		arg.Amount,
		arg.CumulativeDepreciation,
		arg.NetBookValue,
		arg.PostedAt,
	)
	return err
}

const listDepreciationEntriesByAsset = `-- name: ListDepreciationEntriesByAsset :many
SELECT id, asset_id, fiscal_year, year_index, amount, cumulative_depreciation, net_book_value, posted_at FROM depreciation_entries
WHERE asset_id = $1
ORDER BY fiscal_year
`

func (q *Queries) ListDepreciationEntriesByAsset(ctx context.Context, assetID string) ([]DepreciationEntry, error) {
	rows, err := q.db.Query(ctx, listDepreciationEntriesByAsset, assetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DepreciationEntry
	for rows.Next() {
		var i DepreciationEntry
		if err := rows.Scan(
			&i.ID,
			&i.AssetID,
			&i.FiscalYear,
			&i.YearIndex,
			&i.Amount,
			&i.CumulativeDepreciation,
			&i.NetBookValue,
			&i.PostedAt,
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

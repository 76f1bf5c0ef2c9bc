package generated

import (
	"context"
)

const createChartAccount = `-- name: CreateChartAccount :exec
INSERT INTO chart_accounts (code, label)
VALUES ($1, $2)
`

type CreateChartAccountParams struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

func (q *Queries) CreateChartAccount(ctx context.Context, arg CreateChartAccountParams) error {
	_, err := q.db.Exec(ctx, createChartAccount, arg.Code, arg.Label)
	return err
}

const getChartAccountByCode = `-- name: GetChartAccountByCode :one
SELECT code, label, created_at FROM chart_accounts WHERE code = $1
`

func (q *Queries) GetChartAccountByCode(ctx context.Context, code string) (ChartAccount, error) {
	row := q.db.QueryRow(ctx, getChartAccountByCode, code)
	var i ChartAccount
	err := row.Scan(&i.Code, &i.Label, &i.CreatedAt)
	return i, err
}

const listChartAccounts = `-- name: ListChartAccounts :many
SELECT code, label, created_at FROM chart_accounts ORDER BY code
`

func (q *Queries) ListChartAccounts(ctx context.Context) ([]ChartAccount, error) {
	rows, err := q.db.Query(ctx, listChartAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ChartAccount
	for rows.Next() {
		var i ChartAccount
		if err := rows.Scan(&i.Code, &i.Label, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

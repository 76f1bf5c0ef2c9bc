package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createVATDeclaration = `-- name: CreateVATDeclaration :exec
INSERT INTO vat_declarations (id, period_from, period_to, collected, deductible, due, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

type CreateVATDeclarationParams struct {
	ID         string             `json:"id"`
	PeriodFrom pgtype.Date        `json:"period_from"`
	PeriodTo   pgtype.Date        `json:"period_to"`
	Collected  pgtype.Numeric     `json:"collected"`
	Deductible pgtype.Numeric     `json:"deductible"`
	Due        pgtype.Numeric     `json:"due"`
	Status     string             `json:"status"`
	CreatedAt  pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateVATDeclaration(ctx context.Context, arg CreateVATDeclarationParams) error {
	_, err := q.db.Exec(ctx, createVATDeclaration,
		arg.ID,
		arg.PeriodFrom,
		arg.PeriodTo,
		arg.Collected,
		arg.Deductible,
		arg.Due,
		arg.Status,
		arg.CreatedAt,
	)
	return err
}

const listVATDeclarations = `-- name: ListVATDeclarations :many
SELECT id, period_from, period_to, collected, deductible, due, status, created_at FROM vat_declarations
ORDER BY period_from DESC, id DESC
LIMIT NULLIF($1::int, 0) OFFSET $2
`

type ListVATDeclarationsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListVATDeclarations(ctx context.Context, arg ListVATDeclarationsParams) ([]VatDeclaration, error) {
	rows, err := q.db.Query(ctx, listVATDeclarations, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []VatDeclaration
	for rows.Next() {
		var i VatDeclaration
		if err := rows.Scan(
			&i.ID,
			&i.PeriodFrom,
			&i.PeriodTo,
			&i.Collected,
			&i.Deductible,
			&i.Due,
			&i.Status,
			&i.CreatedAt,
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

package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createLedgerEntry = `-- name: CreateLedgerEntry :exec
INSERT INTO ledger_entries (id, date, account_code, label, debit, credit, journal, piece_number, lettering, invoice_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateLedgerEntryParams struct {
	ID          string             `json:"id"`
	Date        pgtype.Date        `json:"date"`
	AccountCode string             `json:"account_code"`
	Label       string             `json:"label"`
	Debit       pgtype.Numeric     `json:"debit"`
	Credit      pgtype.Numeric     `json:"credit"`
	Journal     string             `json:"journal"`
	PieceNumber string             `json:"piece_number"`
	Lettering   pgtype.Text        `json:"lettering"`
	InvoiceID   pgtype.Text        `json:"invoice_id"`
	CreatedAt   pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateLedgerEntry(ctx context.Context, arg CreateLedgerEntryParams) error {
	_, err := q.db.Exec(ctx, createLedgerEntry,
		arg.ID,
		arg.Date,
		arg.AccountCode,
		arg.Label,
		arg.Debit,
		arg.Credit,
		arg.Journal,
		arg.PieceNumber,
		arg.Lettering,
		arg.InvoiceID,
		arg.CreatedAt,
	)
	return err
}

const getLedgerEntriesByIDs = `-- name: GetLedgerEntriesByIDs :many
SELECT id, date, account_code, label, debit, credit, journal, piece_number, lettering, invoice_id, created_at FROM ledger_entries
WHERE id = ANY($1::text[])
ORDER BY id
`

func (q *Queries) GetLedgerEntriesByIDs(ctx context.Context, ids []string) ([]LedgerEntry, error) {
	rows, err := q.db.Query(ctx, getLedgerEntriesByIDs, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LedgerEntry
	for rows.Next() {
		var i LedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.Date,
			&i.AccountCode,
			&i.Label,
			&i.Debit,
			&i.Credit,
			&i.Journal,
			&i.PieceNumber,
			&i.Lettering,
			&i.InvoiceID,
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

const listLedgerEntries = `-- name: ListLedgerEntries :many
SELECT id, date, account_code, label, debit, credit, journal, piece_number, lettering, invoice_id, created_at FROM ledger_entries
WHERE ($1::date IS NULL OR date >= $1)
  AND ($2::date IS NULL OR date <= $2)
  AND ($3::text = '' OR journal = $3)
  AND ($4::text = '' OR account_code LIKE $4 || '%')
ORDER BY date, id
LIMIT NULLIF($5::int, 0) OFFSET $6
`

type ListLedgerEntriesParams struct {
	FromDate      pgtype.Date `json:"from_date"`
	ToDate        pgtype.Date `json:"to_date"`
	Journal       string      `json:"journal"`
	AccountPrefix string      `json:"account_prefix"`
	Limit         int32       `json:"limit"`
	Offset        int32       `json:"offset"`
}

func (q *Queries) ListLedgerEntries(ctx context.Context, arg ListLedgerEntriesParams) ([]LedgerEntry, error) {
	rows, err := q.db.Query(ctx, listLedgerEntries,
		arg.FromDate,
		arg.ToDate,
		arg.Journal,
		arg.AccountPrefix,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LedgerEntry
	for rows.Next() {
		var i LedgerEntry
		if err := rows.Scan(
			&i.ID,
			&i.Date,
			&i.AccountCode,
			&i.Label,
			&i.Debit,
			&i.Credit,
			&i.Journal,
			&i.PieceNumber,
			&i.Lettering,
			&i.InvoiceID,
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

const setLedgerLettering = `-- name: SetLedgerLettering :execrows
UPDATE ledger_entries SET lettering = $2 WHERE id = ANY($1::text[])
`

type SetLedgerLetteringParams struct {
	Ids       []string    `json:"ids"`
	Lettering pgtype.Text `json:"lettering"`
}

func (q *Queries) SetLedgerLettering(ctx context.Context, arg SetLedgerLetteringParams) (int64, error) {
	result, err := q.db.Exec(ctx, setLedgerLettering, arg.Ids, arg.Lettering)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listPieceTotals = `-- name: ListPieceTotals :many
SELECT piece_number, journal, SUM(debit)::numeric AS total_debit, SUM(credit)::numeric AS total_credit
FROM ledger_entries
GROUP BY journal, piece_number
ORDER BY journal, piece_number
`

type ListPieceTotalsRow struct {
	PieceNumber string         `json:"piece_number"`
	Journal     string         `json:"journal"`
	TotalDebit  pgtype.Numeric `json:"total_debit"`
	TotalCredit pgtype.Numeric `json:"total_credit"`
}

func (q *Queries) ListPieceTotals(ctx context.Context) ([]ListPieceTotalsRow, error) {
	rows, err := q.db.Query(ctx, listPieceTotals)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListPieceTotalsRow
	for rows.Next() {
		var i ListPieceTotalsRow
		if err := rows.Scan(
			&i.PieceNumber,
			&i.Journal,
			&i.TotalDebit,
			&i.TotalCredit,
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

const listAccountBalances = `-- name: ListAccountBalances :many
SELECT e.account_code, COALESCE(c.label, '')::text AS label, SUM(e.debit)::numeric AS total_debit, SUM(e.credit)::numeric AS total_credit
FROM ledger_entries e
LEFT JOIN chart_accounts c ON c.code = e.account_code
WHERE ($1::date IS NULL OR e.date >= $1)
  AND e.date <= $2
GROUP BY e.account_code, c.label
ORDER BY e.account_code
`

type ListAccountBalancesParams struct {
	FromDate pgtype.Date `json:"from_date"`
	ToDate   pgtype.Date `json:"to_date"`
}

type ListAccountBalancesRow struct {
	AccountCode string         `json:"account_code"`
	Label       string         `json:"label"`
	TotalDebit  pgtype.Numeric `json:"total_debit"`
	TotalCredit pgtype.Numeric `json:"total_credit"`
}

func (q *Queries) ListAccountBalances(ctx context.Context, arg ListAccountBalancesParams) ([]ListAccountBalancesRow, error) {
	rows, err := q.db.Query(ctx, listAccountBalances, arg.FromDate, arg.ToDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListAccountBalancesRow
	for rows.Next() {
		var i ListAccountBalancesRow
		if err := rows.Scan(
			&i.AccountCode,
			&i.Label,
			&i.TotalDebit,
			&i.TotalCredit,
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

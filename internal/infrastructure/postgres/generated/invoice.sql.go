package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createInvoice = `-- name: CreateInvoice :exec
INSERT INTO invoices (id, number, type, issue_date, due_date, counterparty, counterparty_siret, amount_excl_tax, vat_amount, amount_incl_tax, paid_amount, remaining_amount, status, category, notes, created_at, updated_at, client_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
`

type CreateInvoiceParams struct {
	ID                string             `json:"id"`
	Number            string             `json:"number"`
	Type              string             `json:"type"`
	IssueDate         pgtype.Date        `json:"issue_date"`
	DueDate           pgtype.Date        `json:"due_date"`
	Counterparty      string             `json:"counterparty"`
	CounterpartySiret string             `json:"counterparty_siret"`
	AmountExclTax     pgtype.Numeric     `json:"amount_excl_tax"`
	VatAmount         pgtype.Numeric     `json:"vat_amount"`
	AmountInclTax     pgtype.Numeric     `json:"amount_incl_tax"`
	PaidAmount        pgtype.Numeric     `json:"paid_amount"`
	RemainingAmount   pgtype.Numeric     `json:"remaining_amount"`
	Status            string             `json:"status"`
	Category          string             `json:"category"`
	Notes             string             `json:"notes"`
	CreatedAt         pgtype.Timestamptz `json:"created_at"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
	ClientID          pgtype.Text        `json:"client_id"`
}

func (q *Queries) CreateInvoice(ctx context.Context, arg CreateInvoiceParams) error {
	_, err := q.db.Exec(ctx, createInvoice,
		arg.ID,
		arg.Number,
		arg.Type,
		arg.IssueDate,
		arg.DueDate,
		arg.Counterparty,
		arg.CounterpartySiret,
		arg.AmountExclTax,
		arg.VatAmount,
		arg.AmountInclTax,
		arg.PaidAmount,
		arg.RemainingAmount,
		arg.Status,
		arg.Category,
		arg.Notes,
		arg.CreatedAt,
		arg.UpdatedAt,
		arg.ClientID,
	)
	return err
}

const getInvoiceByID = `-- name: GetInvoiceByID :one
SELECT id, number, type, issue_date, due_date, counterparty, counterparty_siret, amount_excl_tax, vat_amount, amount_incl_tax, paid_amount, remaining_amount, status, category, notes, created_at, updated_at, client_id FROM invoices WHERE id = $1
`

func (q *Queries) GetInvoiceByID(ctx context.Context, id string) (Invoice, error) {
	row := q.db.QueryRow(ctx, getInvoiceByID, id)
	var i Invoice
	err := row.Scan(
		&i.ID,
		&i.Number,
		&i.Type,
		&i.IssueDate,
		&i.DueDate,
		&i.Counterparty,
		&i.CounterpartySiret,
		&i.AmountExclTax,
		&i.VatAmount,
		&i.AmountInclTax,
		&i.PaidAmount,
		&i.RemainingAmount,
		&i.Status,
		&i.Category,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ClientID,
	)
	return i, err
}

const getInvoiceByIDForUpdate = `-- name: GetInvoiceByIDForUpdate :one
SELECT id, number, type, issue_date, due_date, counterparty, counterparty_siret, amount_excl_tax, vat_amount, amount_incl_tax, paid_amount, remaining_amount, status, category, notes, created_at, updated_at, client_id FROM invoices WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetInvoiceByIDForUpdate(ctx context.Context, id string) (Invoice, error) {
	row := q.db.QueryRow(ctx, getInvoiceByIDForUpdate, id)
	var i Invoice
	err := row.Scan(
		&i.ID,
		&i.Number,
		&i.Type,
		&i.IssueDate,
		&i.DueDate,
		&i.Counterparty,
		&i.CounterpartySiret,
		&i.AmountExclTax,
		&i.VatAmount,
		&i.AmountInclTax,
		&i.PaidAmount,
		&i.RemainingAmount,
		&i.Status,
		&i.Category,
		&i.Notes,
		&i.CreatedAt,
		&i.UpdatedAt,
		&i.ClientID,
	)
	return i, err
}

const updateInvoice = `-- name: UpdateInvoice :execrows
UPDATE invoices
SET number = $2, type = $3, issue_date = $4, due_date = $5, counterparty = $6, counterparty_siret = $7,
    amount_excl_tax = $8, vat_amount = $9, amount_incl_tax = $10, paid_amount = $11, remaining_amount = $12,
    status = $13, category = $14, notes = $15, updated_at = $16, client_id = $17
WHERE id = $1
`

type UpdateInvoiceParams struct {
	ID                string             `json:"id"`
	Number            string             `json:"number"`
	Type              string             `json:"type"`
	IssueDate         pgtype.Date        `json:"issue_date"`
	DueDate           pgtype.Date        `json:"due_date"`
	Counterparty      string             `json:"counterparty"`
	CounterpartySiret string             `json:"counterparty_siret"`
	AmountExclTax     pgtype.Numeric     `json:"amount_excl_tax"`
	VatAmount         pgtype.Numeric     `json:"vat_amount"`
	AmountInclTax     pgtype.Numeric     `json:"amount_incl_tax"`
	PaidAmount        pgtype.Numeric     `json:"paid_amount"`
	RemainingAmount   pgtype.Numeric     `json:"remaining_amount"`
	Status            string             `json:"status"`
	Category          string             `json:"category"`
	Notes             string             `json:"notes"`
	UpdatedAt         pgtype.Timestamptz `json:"updated_at"`
	ClientID          pgtype.Text        `json:"client_id"`
}

func (q *Queries) UpdateInvoice(ctx context.Context, arg UpdateInvoiceParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateInvoice,
		arg.ID,
		arg.Number,
		arg.Type,
		arg.IssueDate,
		arg.DueDate,
		arg.Counterparty,
		arg.CounterpartySiret,
		arg.AmountExclTax,
		arg.VatAmount,
		arg.AmountInclTax,
		arg.PaidAmount,
		arg.RemainingAmount,
		arg.Status,
		arg.Category,
		arg.Notes,
		arg.UpdatedAt,
		arg.ClientID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateInvoicePayment = `-- name: UpdateInvoicePayment :execrows
UPDATE invoices
SET paid_amount = $2, remaining_amount = $3, status = $4, updated_at = $5
WHERE id = $1
`

type UpdateInvoicePaymentParams struct {
	ID              string             `json:"id"`
	PaidAmount      pgtype.Numeric     `json:"paid_amount"`
	RemainingAmount pgtype.Numeric     `json:"remaining_amount"`
	Status          string             `json:"status"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateInvoicePayment(ctx context.Context, arg UpdateInvoicePaymentParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateInvoicePayment,
		arg.ID,
		arg.PaidAmount,
		arg.RemainingAmount,
		arg.Status,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteInvoice = `-- name: DeleteInvoice :execrows
DELETE FROM invoices WHERE id = $1
`

func (q *Queries) DeleteInvoice(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteInvoice, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listInvoices = `-- name: ListInvoices :many
SELECT id, number, type, issue_date, due_date, counterparty, counterparty_siret, amount_excl_tax, vat_amount, amount_incl_tax, paid_amount, remaining_amount, status, category, notes, created_at, updated_at, client_id FROM invoices
WHERE ($1::text = '' OR type = $1)
  AND ($2::text = '' OR status = $2)
  AND ($3::date IS NULL OR issue_date >= $3)
  AND ($4::date IS NULL OR issue_date <= $4)
  AND ($5::text = '' OR number ILIKE '%' || $5 || '%' OR counterparty ILIKE '%' || $5 || '%' OR notes ILIKE '%' || $5 || '%')
  AND ($8::text = '' OR client_id = $8)
ORDER BY issue_date DESC, id DESC
LIMIT NULLIF($6::int, 0) OFFSET $7
`

type ListInvoicesParams struct {
	Type     string      `json:"type"`
	Status   string      `json:"status"`
	FromDate pgtype.Date `json:"from_date"`
	ToDate   pgtype.Date `json:"to_date"`
	Search   string      `json:"search"`
	Limit    int32       `json:"limit"`
	Offset   int32       `json:"offset"`
	ClientID string      `json:"client_id"`
}

func (q *Queries) ListInvoices(ctx context.Context, arg ListInvoicesParams) ([]Invoice, error) {
	rows, err := q.db.Query(ctx, listInvoices,
		arg.Type,
		arg.Status,
		arg.FromDate,
		arg.ToDate,
		arg.Search,
		arg.Limit,
		arg.Offset,
		arg.ClientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Invoice
	for rows.Next() {
		var i Invoice
		if err := rows.Scan(
			&i.ID,
			&i.Number,
			&i.Type,
			&i.IssueDate,
			&i.DueDate,
			&i.Counterparty,
			&i.CounterpartySiret,
			&i.AmountExclTax,
			&i.VatAmount,
			&i.AmountInclTax,
			&i.PaidAmount,
			&i.RemainingAmount,
			&i.Status,
			&i.Category,
			&i.Notes,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.ClientID,
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

const listOverdueInvoices = `-- name: ListOverdueInvoices :many
SELECT id, number, type, issue_date, due_date, counterparty, counterparty_siret, amount_excl_tax, vat_amount, amount_incl_tax, paid_amount, remaining_amount, status, category, notes, created_at, updated_at, client_id FROM invoices
WHERE status <> 'payee' AND due_date IS NOT NULL AND due_date < $1
ORDER BY due_date, id
`

func (q *Queries) ListOverdueInvoices(ctx context.Context, asOf pgtype.Date) ([]Invoice, error) {
	rows, err := q.db.Query(ctx, listOverdueInvoices, asOf)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Invoice
	for rows.Next() {
		var i Invoice
		if err := rows.Scan(
			&i.ID,
			&i.Number,
			&i.Type,
			&i.IssueDate,
			&i.DueDate,
			&i.Counterparty,
			&i.CounterpartySiret,
			&i.AmountExclTax,
			&i.VatAmount,
			&i.AmountInclTax,
			&i.PaidAmount,
			&i.RemainingAmount,
			&i.Status,
			&i.Category,
			&i.Notes,
			&i.CreatedAt,
			&i.UpdatedAt,
			&i.ClientID,
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

const getInvoiceStats = `-- name: GetInvoiceStats :one
SELECT
    COALESCE(SUM(amount_incl_tax) FILTER (WHERE type = 'vente'), 0)::numeric AS total_sales,
    COALESCE(SUM(amount_incl_tax) FILTER (WHERE type = 'achat'), 0)::numeric AS total_purchases,
    COALESCE(SUM(remaining_amount) FILTER (WHERE status <> 'payee'), 0)::numeric AS total_unpaid,
    COUNT(*) FILTER (WHERE status <> 'payee') AS unpaid_count,
    COUNT(*) FILTER (WHERE status <> 'payee' AND due_date < $1) AS overdue_count,
    COUNT(*) FILTER (WHERE type = 'vente') AS sales_count
FROM invoices
`

type GetInvoiceStatsRow struct {
	TotalSales     pgtype.Numeric `json:"total_sales"`
	TotalPurchases pgtype.Numeric `json:"total_purchases"`
	TotalUnpaid    pgtype.Numeric `json:"total_unpaid"`
	UnpaidCount    int64          `json:"unpaid_count"`
	OverdueCount   int64          `json:"overdue_count"`
	SalesCount     int64          `json:"sales_count"`
}

func (q *Queries) GetInvoiceStats(ctx context.Context, asOf pgtype.Date) (GetInvoiceStatsRow, error) {
	row := q.db.QueryRow(ctx, getInvoiceStats, asOf)
	var i GetInvoiceStatsRow
	err := row.Scan(
		&i.TotalSales,
		&i.TotalPurchases,
		&i.TotalUnpaid,
		&i.UnpaidCount,
		&i.OverdueCount,
		&i.SalesCount,
	)
	return i, err
}

const getMaxInvoiceSequence = `-- name: GetMaxInvoiceSequence :one
SELECT COALESCE(MAX(
    CASE WHEN substring(number FROM char_length($1::text) + 1) ~ '^[0-9]+$'
         THEN substring(number FROM char_length($1::text) + 1)::int
    END), 0)::int AS max_sequence
FROM invoices
WHERE number LIKE $1::text || '%'
`

func (q *Queries) GetMaxInvoiceSequence(ctx context.Context, prefix string) (int32, error) {
	row := q.db.QueryRow(ctx, getMaxInvoiceSequence, prefix)
	var max_sequence int32
	err := row.Scan(&max_sequence)
	return max_sequence, err
}

const getVATTotals = `-- name: GetVATTotals :one
SELECT
    COALESCE(SUM(vat_amount) FILTER (WHERE type = 'vente'), 0)::numeric AS collected,
    COALESCE(SUM(vat_amount) FILTER (WHERE type = 'achat'), 0)::numeric AS deductible
FROM invoices
WHERE issue_date BETWEEN $1 AND $2
`

type GetVATTotalsParams struct {
	FromDate pgtype.Date `json:"from_date"`
	ToDate   pgtype.Date `json:"to_date"`
}

type GetVATTotalsRow struct {
	Collected  pgtype.Numeric `json:"collected"`
	Deductible pgtype.Numeric `json:"deductible"`
}

func (q *Queries) GetVATTotals(ctx context.Context, arg GetVATTotalsParams) (GetVATTotalsRow, error) {
	row := q.db.QueryRow(ctx, getVATTotals, arg.FromDate, arg.ToDate)
	var i GetVATTotalsRow
	err := row.Scan(&i.Collected, &i.Deductible)
	return i, err
}

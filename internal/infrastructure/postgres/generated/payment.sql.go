package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createInvoicePayment = `-- name: CreateInvoicePayment :exec
INSERT INTO invoice_payments (id, invoice_id, date, amount, created_at)
VALUES ($1, $2, $3, $4, $5)
`

type CreateInvoicePaymentParams struct {
	ID        string             `json:"id"`
	InvoiceID string             `json:"invoice_id"`
	Date      pgtype.Date        `json:"date"`
	Amount    pgtype.Numeric     `json:"amount"`
	CreatedAt pgtype.Timestamptz `json:"created_at"`
}

func (q *Queries) CreateInvoicePayment(ctx context.Context, arg CreateInvoicePaymentParams) error {
	_, err := q.db.Exec(ctx, createInvoicePayment,
		arg.ID,
		arg.InvoiceID,
		arg.Date,
		arg.Amount,
		arg.CreatedAt,
	)
	return err
}

const listSalePayments = `-- name: ListSalePayments :many
SELECT p.invoice_id, i.counterparty, p.date, p.amount, i.amount_excl_tax, i.vat_amount, i.amount_incl_tax
FROM invoice_payments p
JOIN invoices i ON i.id = p.invoice_id
WHERE i.type = 'vente'
  AND ($1::int = 0 OR EXTRACT(YEAR FROM p.date)::int = $1)
ORDER BY p.date, p.id
`

type ListSalePaymentsRow struct {
	InvoiceID     string         `json:"invoice_id"`
	Counterparty  string         `json:"counterparty"`
	Date          pgtype.Date    `json:"date"`
	Amount        pgtype.Numeric `json:"amount"`
	AmountExclTax pgtype.Numeric `json:"amount_excl_tax"`
	VatAmount     pgtype.Numeric `json:"vat_amount"`
	AmountInclTax pgtype.Numeric `json:"amount_incl_tax"`
}

func (q *Queries) ListSalePayments(ctx context.Context, year int32) ([]ListSalePaymentsRow, error) {
	rows, err := q.db.Query(ctx, listSalePayments, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListSalePaymentsRow
	for rows.Next() {
		var i ListSalePaymentsRow
		if err := rows.Scan(
			&i.InvoiceID,
			&i.Counterparty,
			&i.Date,
			&i.Amount,
			&i.AmountExclTax,
			&i.VatAmount,
			&i.AmountInclTax,
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

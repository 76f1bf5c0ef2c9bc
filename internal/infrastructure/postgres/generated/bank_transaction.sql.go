package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createBankTransaction = `-- name: CreateBankTransaction :exec
INSERT INTO bank_transactions (id, account_id, date, debit, credit, category, description, reference, reconciled, reconciled_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
`

type CreateBankTransactionParams struct {
	ID           string             `json:"id"`
	AccountID    string             `json:"account_id"`
	Date         pgtype.Date        `json:"date"`
	Debit        pgtype.Numeric     `json:"debit"`
	Credit       pgtype.Numeric     `json:"credit"`
	Category     string             `json:"category"`
	Description  string             `json:"description"`
	Reference    string             `json:"reference"`
	Reconciled   bool               `json:"reconciled"`
	ReconciledAt pgtype.Timestamptz `json:"reconciled_at"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateBankTransaction(ctx context.Context, arg CreateBankTransactionParams) error {
	_, err := q.db.Exec(ctx, createBankTransaction,
		arg.ID,
		arg.AccountID,
		arg.Date,
		arg.Debit,
		arg.Credit,
		arg.Category,
		arg.Description,
		arg.Reference,
		arg.Reconciled,
		arg.ReconciledAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getBankTransactionByID = `-- name: GetBankTransactionByID :one
SELECT id, account_id, date, debit, credit, category, description, reference, reconciled, reconciled_at, created_at, updated_at FROM bank_transactions WHERE id = $1
`

func (q *Queries) GetBankTransactionByID(ctx context.Context, id string) (BankTransaction, error) {
	row := q.db.QueryRow(ctx, getBankTransactionByID, id)
	var i BankTransaction
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.Date,
		&i.Debit,
		&i.Credit,
		&i.Category,
		&i.Description,
		&i.Reference,
		&i.Reconciled,
		&i.ReconciledAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getBankTransactionByIDForUpdate = `-- name: GetBankTransactionByIDForUpdate :one
SELECT id, account_id, date, debit, credit, category, description, reference, reconciled, reconciled_at, created_at, updated_at FROM bank_transactions WHERE id = $1 FOR UPDATE
`

func (q *Queries) GetBankTransactionByIDForUpdate(ctx context.Context, id string) (BankTransaction, error) {
	row := q.db.QueryRow(ctx, getBankTransactionByIDForUpdate, id)
	var i BankTransaction
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.Date,
		&i.Debit,
		&i.Credit,
		&i.Category,
		&i.Description,
		&i.Reference,
		&i.Reconciled,
		&i.ReconciledAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const updateBankTransaction = `-- name: UpdateBankTransaction :execrows
UPDATE bank_transactions
SET account_id = $2, date = $3, debit = $4, credit = $5, category = $6, description = $7, reference = $8, updated_at = $9
WHERE id = $1
`

type UpdateBankTransactionParams struct {
	ID          string             `json:"id"`
	AccountID   string             `json:"account_id"`
	Date        pgtype.Date        `json:"date"`
	Debit       pgtype.Numeric     `json:"debit"`
	Credit      pgtype.Numeric     `json:"credit"`
	Category    string             `json:"category"`
	Description string             `json:"description"`
	Reference   string             `json:"reference"`
	UpdatedAt   pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateBankTransaction(ctx context.Context, arg UpdateBankTransactionParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateBankTransaction,
		arg.ID,
		arg.AccountID,
		arg.Date,
		arg.Debit,
		arg.Credit,
		arg.Category,
		arg.Description,
		arg.Reference,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteBankTransaction = `-- name: DeleteBankTransaction :execrows
DELETE FROM bank_transactions WHERE id = $1
`

func (q *Queries) DeleteBankTransaction(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteBankTransaction, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const listBankTransactions = `-- name: ListBankTransactions :many
SELECT id, account_id, date, debit, credit, category, description, reference, reconciled, reconciled_at, created_at, updated_at FROM bank_transactions
WHERE ($1::text = '' OR account_id = $1)
  AND (NOT $2::bool OR NOT reconciled)
  AND ($3::date IS NULL OR date >= $3)
  AND ($4::date IS NULL OR date <= $4)
ORDER BY date DESC, id DESC
LIMIT NULLIF($5::int, 0) OFFSET $6
`

type ListBankTransactionsParams struct {
	AccountID        string      `json:"account_id"`
	UnreconciledOnly bool        `json:"unreconciled_only"`
	FromDate         pgtype.Date `json:"from_date"`
	ToDate           pgtype.Date `json:"to_date"`
	Limit            int32       `json:"limit"`
	Offset           int32       `json:"offset"`
}

func (q *Queries) ListBankTransactions(ctx context.Context, arg ListBankTransactionsParams) ([]BankTransaction, error) {
	rows, err := q.db.Query(ctx, listBankTransactions,
		arg.AccountID,
		arg.UnreconciledOnly,
		arg.FromDate,
		arg.ToDate,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BankTransaction
	for rows.Next() {
		var i BankTransaction
		if err := rows.Scan(
			&i.ID,
			&i.AccountID,
			&i.Date,
			&i.Debit,
			&i.Credit,
			&i.Category,
			&i.Description,
			&i.Reference,
			&i.Reconciled,
			&i.ReconciledAt,
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

const setBankTransactionReconciled = `-- name: SetBankTransactionReconciled :execrows
UPDATE bank_transactions
SET reconciled = $2, reconciled_at = $3, updated_at = now()
WHERE id = $1
`

type SetBankTransactionReconciledParams struct {
	ID           string             `json:"id"`
	Reconciled   bool               `json:"reconciled"`
	ReconciledAt pgtype.Timestamptz `json:"reconciled_at"`
}

func (q *Queries) SetBankTransactionReconciled(ctx context.Context, arg SetBankTransactionReconciledParams) (int64, error) {
	result, err := q.db.Exec(ctx, setBankTransactionReconciled, arg.ID, arg.Reconciled, arg.ReconciledAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getBankTransactionStats = `-- name: GetBankTransactionStats :one
SELECT
    COALESCE(SUM(credit), 0)::numeric AS total_credits,
    COALESCE(SUM(debit), 0)::numeric AS total_debits,
    COUNT(*) AS transaction_count,
    COUNT(*) FILTER (WHERE reconciled) AS reconciled_count,
    COALESCE(SUM(credit - debit) FILTER (WHERE NOT reconciled), 0)::numeric AS unreconciled_amount
FROM bank_transactions
WHERE account_id = $1
`

type GetBankTransactionStatsRow struct {
	TotalCredits       pgtype.Numeric `json:"total_credits"`
	TotalDebits        pgtype.Numeric `json:"total_debits"`
	TransactionCount   int64          `json:"transaction_count"`
	ReconciledCount    int64          `json:"reconciled_count"`
	UnreconciledAmount pgtype.Numeric `json:"unreconciled_amount"`
}

func (q *Queries) GetBankTransactionStats(ctx context.Context, accountID string) (GetBankTransactionStatsRow, error) {
	row := q.db.QueryRow(ctx, getBankTransactionStats, accountID)
	var i GetBankTransactionStatsRow
	err := row.Scan(
		&i.TotalCredits,
		&i.TotalDebits,
		&i.TransactionCount,
		&i.ReconciledCount,
		&i.UnreconciledAmount,
	)
	return i, err
}

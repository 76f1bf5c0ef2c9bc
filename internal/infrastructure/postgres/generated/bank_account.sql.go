package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createBankAccount = `-- name: CreateBankAccount :exec
INSERT INTO bank_accounts (id, name, bank, account_number, iban, initial_balance, current_balance, active, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

type CreateBankAccountParams struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	Bank           string             `json:"bank"`
	AccountNumber  string             `json:"account_number"`
	Iban           string             `json:"iban"`
	InitialBalance pgtype.Numeric     `json:"initial_balance"`
	CurrentBalance pgtype.Numeric     `json:"current_balance"`
	Active         bool               `json:"active"`
	Version        int64              `json:"version"`
	CreatedAt      pgtype.Timestamptz `json:"created_at"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateBankAccount(ctx context.Context, arg CreateBankAccountParams) error {
	_, err := q.db.Exec(ctx, createBankAccount,
		arg.ID,
		arg.Name,
		arg.Bank,
		arg.AccountNumber,
		arg.Iban,
		arg.InitialBalance,
		arg.CurrentBalance,
		arg.Active,
		arg.Version,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getBankAccountByID = `-- name: GetBankAccountByID :one
SELECT id, name, bank, account_number, iban, initial_balance, current_balance, active, version, created_at, updated_at FROM bank_accounts WHERE id = $1
`

func (q *Queries) GetBankAccountByID(ctx context.Context, id string) (BankAccount, error) {
	row := q.db.QueryRow(ctx, getBankAccountByID, id)
	var i BankAccount
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Bank,
		&i.AccountNumber,
		&i.Iban,
		&i.InitialBalance,
		&i.CurrentBalance,
		&i.Active,
		&i.Version,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const getBankAccountsByIDsForUpdate = `-- name: GetBankAccountsByIDsForUpdate :many
SELECT id, name, bank, account_number, iban, initial_balance, current_balance, active, version, created_at, updated_at FROM bank_accounts
WHERE id = ANY($1::text[])
ORDER BY id
FOR UPDATE
`

func (q *Queries) GetBankAccountsByIDsForUpdate(ctx context.Context, ids []string) ([]BankAccount, error) {
	rows, err := q.db.Query(ctx, getBankAccountsByIDsForUpdate, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BankAccount
	for rows.Next() {
		var i BankAccount
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Bank,
			&i.AccountNumber,
			&i.Iban,
			&i.InitialBalance,
			&i.CurrentBalance,
			&i.Active,
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

const listBankAccounts = `-- name: ListBankAccounts :many
SELECT id, name, bank, account_number, iban, initial_balance, current_balance, active, version, created_at, updated_at FROM bank_accounts
ORDER BY id
LIMIT NULLIF($1::int, 0) OFFSET $2
`

type ListBankAccountsParams struct {
	Limit  int32 `json:"limit"`
	Offset int32 `json:"offset"`
}

func (q *Queries) ListBankAccounts(ctx context.Context, arg ListBankAccountsParams) ([]BankAccount, error) {
	rows, err := q.db.Query(ctx, listBankAccounts, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []BankAccount
	for rows.Next() {
		var i BankAccount
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Bank,
			&i.AccountNumber,
			&i.Iban,
			&i.InitialBalance,
			&i.CurrentBalance,
			&i.Active,
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

const updateBankAccount = `-- name: UpdateBankAccount :execrows
UPDATE bank_accounts
SET name = $2, bank = $3, account_number = $4, iban = $5, active = $6, updated_at = $7
WHERE id = $1
`

type UpdateBankAccountParams struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Bank          string             `json:"bank"`
	AccountNumber string             `json:"account_number"`
	Iban          string             `json:"iban"`
	Active        bool               `json:"active"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateBankAccount(ctx context.Context, arg UpdateBankAccountParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateBankAccount,
		arg.ID,
		arg.Name,
		arg.Bank,
		arg.AccountNumber,
		arg.Iban,
		arg.Active,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteBankAccount = `-- name: DeleteBankAccount :execrows
DELETE FROM bank_accounts WHERE id = $1
`

func (q *Queries) DeleteBankAccount(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteBankAccount, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const updateBankAccountBalance = `-- name: UpdateBankAccountBalance :execrows
UPDATE bank_accounts
SET current_balance = $2, version = version + 1, updated_at = $4
WHERE id = $1 AND version = $3
`

type UpdateBankAccountBalanceParams struct {
	ID             string             `json:"id"`
	CurrentBalance pgtype.Numeric     `json:"current_balance"`
	Version        int64              `json:"version"`
	UpdatedAt      pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateBankAccountBalance(ctx context.Context, arg UpdateBankAccountBalanceParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateBankAccountBalance,
		arg.ID,
		arg.CurrentBalance,
		arg.Version,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getBankGlobalStats = `-- name: GetBankGlobalStats :one
SELECT
    (SELECT COUNT(*) FROM bank_accounts) AS account_count,
    (SELECT COALESCE(SUM(current_balance), 0) FROM bank_accounts)::numeric AS total_balance,
    COUNT(*) AS transaction_count,
    COALESCE(SUM(credit), 0)::numeric AS total_credits,
    COALESCE(SUM(debit), 0)::numeric AS total_debits
FROM bank_transactions
`

type GetBankGlobalStatsRow struct {
	AccountCount     int64          `json:"account_count"`
	TotalBalance     pgtype.Numeric `json:"total_balance"`
	TransactionCount int64          `json:"transaction_count"`
	TotalCredits     pgtype.Numeric `json:"total_credits"`
	TotalDebits      pgtype.Numeric `json:"total_debits"`
}

func (q *Queries) GetBankGlobalStats(ctx context.Context) (GetBankGlobalStatsRow, error) {
	row := q.db.QueryRow(ctx, getBankGlobalStats)
	var i GetBankGlobalStatsRow
	err := row.Scan(
		&i.AccountCount,
		&i.TotalBalance,
		&i.TransactionCount,
		&i.TotalCredits,
		&i.TotalDebits,
	)
	return i, err
}

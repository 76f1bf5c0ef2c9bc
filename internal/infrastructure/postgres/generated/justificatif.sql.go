package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createJustificatif = `-- name: CreateJustificatif :exec
INSERT INTO justificatifs (id, original_name, stored_name, mime_type, size, checksum, provider, storage_key, description, document_type, document_date, invoice_id, transaction_id, ledger_entry_id, archived, archived_at, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
`

type CreateJustificatifParams struct {
	ID            string             `json:"id"`
	OriginalName  string             `json:"original_name"`
	StoredName    string             `json:"stored_name"`
	MimeType      string             `json:"mime_type"`
	Size          int64              `json:"size"`
	Checksum      string             `json:"checksum"`
	Provider      string             `json:"provider"`
	StorageKey    string             `json:"storage_key"`
	Description   string             `json:"description"`
	DocumentType  string             `json:"document_type"`
	DocumentDate  pgtype.Date        `json:"document_date"`
	InvoiceID     pgtype.Text        `json:"invoice_id"`
	TransactionID pgtype.Text        `json:"transaction_id"`
	LedgerEntryID pgtype.Text        `json:"ledger_entry_id"`
	Archived      bool               `json:"archived"`
	ArchivedAt    pgtype.Timestamptz `json:"archived_at"`
	CreatedAt     pgtype.Timestamptz `json:"created_at"`
	UpdatedAt     pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateJustificatif(ctx context.Context, arg CreateJustificatifParams) error {
	_, err := q.db.Exec(ctx, createJustificatif,
		arg.ID,
		arg.OriginalName,
		arg.StoredName,
		arg.MimeType,
		arg.Size,
		arg.Checksum,
		arg.Provider,
		arg.StorageKey,
		arg.Description,
		arg.DocumentType,
		arg.DocumentDate,
		arg.InvoiceID,
		arg.TransactionID,
		arg.LedgerEntryID,
		arg.Archived,
		arg.ArchivedAt,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getJustificatifByID = `-- name: GetJustificatifByID :one
SELECT id, original_name, stored_name, mime_type, size, checksum, provider, storage_key, description, document_type, document_date, invoice_id, transaction_id, ledger_entry_id, archived, archived_at, created_at, updated_at FROM justificatifs WHERE id = $1
`

func (q *Queries) GetJustificatifByID(ctx context.Context, id string) (Justificatif, error) {
	row := q.db.QueryRow(ctx, getJustificatifByID, id)
	var i Justificatif
	err := row.Scan(
		&i.ID,
		&i.OriginalName,
		&i.StoredName,
		&i.MimeType,
		&i.Size,
		&i.Checksum,
		&i.Provider,
		&i.StorageKey,
		&i.Description,
		&i.DocumentType,
		&i.DocumentDate,
		&i.InvoiceID,
		&i.TransactionID,
		&i.LedgerEntryID,
		&i.Archived,
		&i.ArchivedAt,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listJustificatifs = `-- name: ListJustificatifs :many
SELECT id, original_name, stored_name, mime_type, size, checksum, provider, storage_key, description, document_type, document_date, invoice_id, transaction_id, ledger_entry_id, archived, archived_at, created_at, updated_at FROM justificatifs
WHERE ($1::text IS NULL OR invoice_id = $1)
  AND ($2::text IS NULL OR transaction_id = $2)
  AND ($3::boolean IS NULL OR archived = $3)
ORDER BY id
LIMIT NULLIF($4::int, 0) OFFSET $5
`

type ListJustificatifsParams struct {
	InvoiceID     pgtype.Text `json:"invoice_id"`
	TransactionID pgtype.Text `json:"transaction_id"`
	Archived      pgtype.Bool `json:"archived"`
	Limit         int32       `json:"limit"`
	Offset        int32       `json:"offset"`
}

func (q *Queries) ListJustificatifs(ctx context.Context, arg ListJustificatifsParams) ([]Justificatif, error) {
	rows, err := q.db.Query(ctx, listJustificatifs,
		arg.InvoiceID,
		arg.TransactionID,
		arg.Archived,
		arg.Limit,
		arg.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Justificatif
	for rows.Next() {
		var i Justificatif
		if err := rows.Scan(
			&i.ID,
			&i.OriginalName,
			&i.StoredName,
			&i.MimeType,
			&i.Size,
			&i.Checksum,
			&i.Provider,
			&i.StorageKey,
			&i.Description,
			&i.DocumentType,
			&i.DocumentDate,
			&i.InvoiceID,
			&i.TransactionID,
			&i.LedgerEntryID,
			&i.Archived,
			&i.ArchivedAt,
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

const archiveJustificatif = `-- name: ArchiveJustificatif :execrows
UPDATE justificatifs SET archived = TRUE, archived_at = $2, updated_at = $2 WHERE id = $1
`

type ArchiveJustificatifParams struct {
	ID         string             `json:"id"`
	ArchivedAt pgtype.Timestamptz `json:"archived_at"`
}

func (q *Queries) ArchiveJustificatif(ctx context.Context, arg ArchiveJustificatifParams) (int64, error) {
	result, err := q.db.Exec(ctx, archiveJustificatif, arg.ID, arg.ArchivedAt)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteJustificatif = `-- name: DeleteJustificatif :execrows
DELETE FROM justificatifs WHERE id = $1
`

func (q *Queries) DeleteJustificatif(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteJustificatif, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

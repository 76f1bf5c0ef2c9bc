package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const createClient = `-- name: CreateClient :exec
INSERT INTO clients (id, name, siret, address, postal_code, city, country, email, phone, main_contact, vat_number, payment_terms, notes, active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
`

type CreateClientParams struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Siret        pgtype.Text        `json:"siret"`
	Address      string             `json:"address"`
	PostalCode   string             `json:"postal_code"`
	City         string             `json:"city"`
	Country      string             `json:"country"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	MainContact  string             `json:"main_contact"`
	VatNumber    string             `json:"vat_number"`
	PaymentTerms string             `json:"payment_terms"`
	Notes        string             `json:"notes"`
	Active       bool               `json:"active"`
	CreatedAt    pgtype.Timestamptz `json:"created_at"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) CreateClient(ctx context.Context, arg CreateClientParams) error {
	_, err := q.db.Exec(ctx, createClient,
		arg.ID,
		arg.Name,
		arg.Siret,
		arg.Address,
		arg.PostalCode,
		arg.City,
		arg.Country,
		arg.Email,
		arg.Phone,
		arg.MainContact,
		arg.VatNumber,
		arg.PaymentTerms,
		arg.Notes,
		arg.Active,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return err
}

const getClientByID = `-- name: GetClientByID :one
SELECT id, name, siret, address, postal_code, city, country, email, phone, main_contact, vat_number, payment_terms, notes, active, created_at, updated_at FROM clients WHERE id = $1
`

func (q *Queries) GetClientByID(ctx context.Context, id string) (Client, error) {
	row := q.db.QueryRow(ctx, getClientByID, id)
	var i Client
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Siret,
		&i.Address,
		&i.PostalCode,
		&i.City,
		&i.Country,
		&i.Email,
		&i.Phone,
		&i.MainContact,
		&i.VatNumber,
		&i.PaymentTerms,
		&i.Notes,
		&i.Active,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	return i, err
}

const listClients = `-- name: ListClients :many
SELECT id, name, siret, address, postal_code, city, country, email, phone, main_contact, vat_number, payment_terms, notes, active, created_at, updated_at FROM clients
WHERE (NOT $1::bool OR active)
ORDER BY name, id
LIMIT NULLIF($2::int, 0) OFFSET $3
`

type ListClientsParams struct {
	ActiveOnly bool  `json:"active_only"`
	Limit      int32 `json:"limit"`
	Offset     int32 `json:"offset"`
}

func (q *Queries) ListClients(ctx context.Context, arg ListClientsParams) ([]Client, error) {
	rows, err := q.db.Query(ctx, listClients, arg.ActiveOnly, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Client
	for rows.Next() {
		var i Client
		if err := rows.Scan(
			&i.ID,
			&i.Name,
			&i.Siret,
			&i.Address,
			&i.PostalCode,
			&i.City,
			&i.Country,
			&i.Email,
			&i.Phone,
			&i.MainContact,
			&i.VatNumber,
			&i.PaymentTerms,
			&i.Notes,
			&i.Active,
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

const updateClient = `-- name: UpdateClient :execrows
UPDATE clients
SET name = $2, siret = $3, address = $4, postal_code = $5, city = $6, country = $7, email = $8, phone = $9,
    main_contact = $10, vat_number = $11, payment_terms = $12, notes = $13, active = $14, updated_at = $15
WHERE id = $1
`

type UpdateClientParams struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Siret        pgtype.Text        `json:"siret"`
	Address      string             `json:"address"`
	PostalCode   string             `json:"postal_code"`
	City         string             `json:"city"`
	Country      string             `json:"country"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone"`
	MainContact  string             `json:"main_contact"`
	VatNumber    string             `json:"vat_number"`
	PaymentTerms string             `json:"payment_terms"`
	Notes        string             `json:"notes"`
	Active       bool               `json:"active"`
	UpdatedAt    pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpdateClient(ctx context.Context, arg UpdateClientParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateClient,
		arg.ID,
		arg.Name,
		arg.Siret,
		arg.Address,
		arg.PostalCode,
		arg.City,
		arg.Country,
		arg.Email,
		arg.Phone,
		arg.MainContact,
		arg.VatNumber,
		arg.PaymentTerms,
		arg.Notes,
		arg.Active,
		arg.UpdatedAt,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const toggleClientActive = `-- name: ToggleClientActive :one
UPDATE clients SET active = NOT active, updated_at = $2 WHERE id = $1
RETURNING active
`

type ToggleClientActiveParams struct {
	ID        string             `json:"id"`
	UpdatedAt pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) ToggleClientActive(ctx context.Context, arg ToggleClientActiveParams) (bool, error) {
	row := q.db.QueryRow(ctx, toggleClientActive, arg.ID, arg.UpdatedAt)
	var active bool
	err := row.Scan(&active)
	return active, err
}

const deleteClient = `-- name: DeleteClient :execrows
DELETE FROM clients WHERE id = $1
`

func (q *Queries) DeleteClient(ctx context.Context, id string) (int64, error) {
	result, err := q.db.Exec(ctx, deleteClient, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const countClientInvoices = `-- name: CountClientInvoices :one
SELECT COUNT(*) FROM invoices WHERE client_id = $1
`

func (q *Queries) CountClientInvoices(ctx context.Context, clientID string) (int64, error) {
	row := q.db.QueryRow(ctx, countClientInvoices, clientID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

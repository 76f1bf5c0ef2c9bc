package generated

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getCompany = `-- name: GetCompany :one
SELECT id, name, legal_form, siret, address, postal_code, city, phone, email, vat_regime, fiscal_year_start, fiscal_year_end, updated_at FROM company WHERE id = 1
`

func (q *Queries) GetCompany(ctx context.Context) (Company, error) {
	row := q.db.QueryRow(ctx, getCompany)
	var i Company
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.LegalForm,
		&i.Siret,
		&i.Address,
		&i.PostalCode,
		&i.City,
		&i.Phone,
		&i.Email,
		&i.VatRegime,
		&i.FiscalYearStart,
		&i.FiscalYearEnd,
		&i.UpdatedAt,
	)
	return i, err
}

const upsertCompany = `-- name: UpsertCompany :exec
INSERT INTO company (id, name, legal_form, siret, address, postal_code, city, phone, email, vat_regime, fiscal_year_start, fiscal_year_end, updated_at)
VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name, legal_form = EXCLUDED.legal_form, siret = EXCLUDED.siret, address = EXCLUDED.address,
    postal_code = EXCLUDED.postal_code, city = EXCLUDED.city, phone = EXCLUDED.phone, email = EXCLUDED.email,
    vat_regime = EXCLUDED.vat_regime, fiscal_year_start = EXCLUDED.fiscal_year_start,
    fiscal_year_end = EXCLUDED.fiscal_year_end, updated_at = EXCLUDED.updated_at
`

type UpsertCompanyParams struct {
	Name            string             `json:"name"`
	LegalForm       string             `json:"legal_form"`
	Siret           string             `json:"siret"`
	Address         string             `json:"address"`
	PostalCode      string             `json:"postal_code"`
	City            string             `json:"city"`
	Phone           string             `json:"phone"`
	Email           string             `json:"email"`
	VatRegime       string             `json:"vat_regime"`
	FiscalYearStart pgtype.Date        `json:"fiscal_year_start"`
	FiscalYearEnd   pgtype.Date        `json:"fiscal_year_end"`
	UpdatedAt       pgtype.Timestamptz `json:"updated_at"`
}

func (q *Queries) UpsertCompany(ctx context.Context, arg UpsertCompanyParams) error {
	_, err := q.db.Exec(ctx, upsertCompany,
		arg.Name,
		arg.LegalForm,
		arg.Siret,
		arg.Address,
		arg.PostalCode,
		arg.City,
		arg.Phone,
		arg.Email,
		arg.VatRegime,
		arg.FiscalYearStart,
		arg.FiscalYearEnd,
		arg.UpdatedAt,
	)
	return err
}

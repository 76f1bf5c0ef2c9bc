package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/postgres/generated"
)

// ClientRepository implements usecase.ClientRepository.
type ClientRepository struct {
	queries *generated.Queries
}

// NewClientRepository creates a new ClientRepository.
func NewClientRepository(db generated.DBTX) *ClientRepository {
	return &ClientRepository{queries: generated.New(db)}
}

// Create inserts a client. A duplicate SIRET yields domain.ErrClientSIRETTaken.
func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	err := r.queries.CreateClient(ctx, generated.CreateClientParams{
		ID:           client.ID,
		Name:         client.Name,
		Siret:        siretToText(client.SIRET),
		Address:      client.Address,
		PostalCode:   client.PostalCode,
		City:         client.City,
		Country:      client.Country,
		Email:        client.Email,
		Phone:        client.Phone,
		MainContact:  client.MainContact,
		VatNumber:    client.VATNumber,
		PaymentTerms: client.PaymentTerms,
		Notes:        client.Notes,
		Active:       client.Active,
		CreatedAt:    timeToPgTimestamptz(client.CreatedAt),
		UpdatedAt:    timeToPgTimestamptz(client.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrClientSIRETTaken
	}

	return err
}

// GetByID retrieves a client by ID.
func (r *ClientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	row, err := r.queries.GetClientByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrClientNotFound
		}

		return nil, err
	}

	return rowToClient(row), nil
}

// List returns clients ordered by name.
func (r *ClientRepository) List(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error) {
	limit, offset := pageParams(filter.Limit, filter.Offset)
	rows, err := r.queries.ListClients(ctx, generated.ListClientsParams{
		ActiveOnly: filter.ActiveOnly,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, err
	}

	clients := make([]*domain.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, rowToClient(row))
	}

	return clients, nil
}

// Update rewrites every mutable field of the client.
func (r *ClientRepository) Update(ctx context.Context, client *domain.Client) error {
	n, err := r.queries.UpdateClient(ctx, generated.UpdateClientParams{
		ID:           client.ID,
		Name:         client.Name,
		Siret:        siretToText(client.SIRET),
		Address:      client.Address,
		PostalCode:   client.PostalCode,
		City:         client.City,
		Country:      client.Country,
		Email:        client.Email,
		Phone:        client.Phone,
		MainContact:  client.MainContact,
		VatNumber:    client.VATNumber,
		PaymentTerms: client.PaymentTerms,
		Notes:        client.Notes,
		Active:       client.Active,
		UpdatedAt:    timeToPgTimestamptz(client.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrClientSIRETTaken
		}
		return err
	}
	if n == 0 {
		return domain.ErrClientNotFound
	}

	return nil
}

// ToggleActive flips the active flag and returns its new value.
func (r *ClientRepository) ToggleActive(ctx context.Context, id string, at time.Time) (bool, error) {
	active, err := r.queries.ToggleClientActive(ctx, generated.ToggleClientActiveParams{
		ID:        id,
		UpdatedAt: timeToPgTimestamptz(at),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, domain.ErrClientNotFound
		}
		return false, err
	}

	return active, nil
}

// Delete removes a client. Invoices still pointing at it yield domain.ErrClientHasInvoices.
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteClient(ctx, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrClientHasInvoices
		}
		return err
	}
	if n == 0 {
		return domain.ErrClientNotFound
	}

	return nil
}

// CountInvoices returns the number of invoices attached to the client.
func (r *ClientRepository) CountInvoices(ctx context.Context, id string) (int64, error) {
	return r.queries.CountClientInvoices(ctx, id)
}

// siretToText stores an empty SIRET as NULL so the unique index ignores it.
func siretToText(siret string) pgtype.Text {
	if siret == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: siret, Valid: true}
}

func rowToClient(row generated.Client) *domain.Client {
	return &domain.Client{
		ID:           row.ID,
		Name:         row.Name,
		SIRET:        row.Siret.String,
		Address:      row.Address,
		PostalCode:   row.PostalCode,
		City:         row.City,
		Country:      row.Country,
		Email:        row.Email,
		Phone:        row.Phone,
		MainContact:  row.MainContact,
		VATNumber:    row.VatNumber,
		PaymentTerms: row.PaymentTerms,
		Notes:        row.Notes,
		Active:       row.Active,
		CreatedAt:    row.CreatedAt.Time,
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

// CompanyRepository implements usecase.CompanyRepository.
type CompanyRepository struct {
	queries *generated.Queries
}

// NewCompanyRepository creates a new CompanyRepository.
func NewCompanyRepository(db generated.DBTX) *CompanyRepository {
	return &CompanyRepository{queries: generated.New(db)}
}

// Get returns the company profile, or domain.ErrCompanyNotFound before the first save.
func (r *CompanyRepository) Get(ctx context.Context) (*domain.Company, error) {
	row, err := r.queries.GetCompany(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}

	return &domain.Company{
		Name:            row.Name,
		LegalForm:       row.LegalForm,
		SIRET:           row.Siret,
		Address:         row.Address,
		PostalCode:      row.PostalCode,
		City:            row.City,
		Phone:           row.Phone,
		Email:           row.Email,
		VATRegime:       row.VatRegime,
		FiscalYearStart: pgDateToTimePtr(row.FiscalYearStart),
		FiscalYearEnd:   pgDateToTimePtr(row.FiscalYearEnd),
		UpdatedAt:       row.UpdatedAt.Time,
	}, nil
}

// Save creates or replaces the company profile.
func (r *CompanyRepository) Save(ctx context.Context, company *domain.Company) error {
	return r.queries.UpsertCompany(ctx, generated.UpsertCompanyParams{
		Name:            company.Name,
		LegalForm:       company.LegalForm,
		Siret:           company.SIRET,
		Address:         company.Address,
		PostalCode:      company.PostalCode,
		City:            company.City,
		Phone:           company.Phone,
		Email:           company.Email,
		VatRegime:       company.VATRegime,
		FiscalYearStart: timePtrToPgDate(company.FiscalYearStart),
		FiscalYearEnd:   timePtrToPgDate(company.FiscalYearEnd),
		UpdatedAt:       timeToPgTimestamptz(company.UpdatedAt),
	})
}

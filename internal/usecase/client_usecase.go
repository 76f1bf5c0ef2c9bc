package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/compta/internal/domain"
)

// ClientUseCase manages the client directory.
type ClientUseCase struct {
	clientRepo  ClientRepository
	invoiceRepo InvoiceRepository
	idGen       IDGenerator
	audit       auditTrail
	now         func() time.Time
}

// NewClientUseCase creates a new ClientUseCase.
func NewClientUseCase(clientRepo ClientRepository, invoiceRepo InvoiceRepository, idGen IDGenerator, auditRepo AuditRepository) *ClientUseCase {
	return &ClientUseCase{
		clientRepo:  clientRepo,
		invoiceRepo: invoiceRepo,
		idGen:       idGen,
		audit:       auditTrail{repo: auditRepo},
		now:         time.Now,
	}
}

// CreateClient registers an active client.
func (uc *ClientUseCase) CreateClient(ctx context.Context, client *domain.Client) (*domain.Client, error) {
	client.Normalize()
	if err := client.Validate(); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	client.ID = uc.idGen.Generate()
	client.Active = true
	client.CreatedAt = now
	client.UpdatedAt = now

	if err := uc.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("client_id", client.ID).
		Str("name", client.Name).
		Msg("client created")

	return client, nil
}

// GetClient retrieves a client by ID.
func (uc *ClientUseCase) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	return uc.clientRepo.GetByID(ctx, id)
}

// ListClients lists clients by name.
func (uc *ClientUseCase) ListClients(ctx context.Context, filter domain.ClientFilter) ([]*domain.Client, error) {
	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.clientRepo.List(ctx, filter)
}

// UpdateClient replaces the editable fields of a client. The active flag and
// creation time are kept.
func (uc *ClientUseCase) UpdateClient(ctx context.Context, id string, input *domain.Client) (*domain.Client, error) {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	input.Normalize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	input.ID = client.ID
	input.Active = client.Active
	input.CreatedAt = client.CreatedAt
	input.UpdatedAt = uc.now().UTC()

	if err := uc.clientRepo.Update(ctx, input); err != nil {
		return nil, err
	}

	return input, nil
}

// ToggleActive flips whether the client is offered for new invoices.
func (uc *ClientUseCase) ToggleActive(ctx context.Context, id string) (*domain.Client, error) {
	if _, err := uc.clientRepo.ToggleActive(ctx, id, uc.now().UTC()); err != nil {
		return nil, err
	}

	return uc.clientRepo.GetByID(ctx, id)
}

// DeleteClient removes a client without invoices. Clients with invoices can
// only be deactivated.
func (uc *ClientUseCase) DeleteClient(ctx context.Context, id string) error {
	client, err := uc.clientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	n, err := uc.clientRepo.CountInvoices(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrClientHasInvoices
	}

	if err := uc.clientRepo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.record(ctx, domain.NewAuditLog(ctx, domain.AuditActionClientDelete,
		domain.AuditResourceClient, id, client, nil, uc.now().UTC()))

	zerolog.Ctx(ctx).Info().Str("client_id", id).Msg("client deleted")

	return nil
}

// ListInvoices lists the invoices of a client, newest first.
func (uc *ClientUseCase) ListInvoices(ctx context.Context, id string, limit, offset int) ([]*domain.Invoice, error) {
	if _, err := uc.clientRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	limit, offset, _ = domain.ValidatePagination(limit, offset)

	return uc.invoiceRepo.List(ctx, domain.InvoiceFilter{ClientID: id, Limit: limit, Offset: offset})
}

// Stats summarises every sales invoice of a client.
func (uc *ClientUseCase) Stats(ctx context.Context, id string) (*domain.ClientStats, error) {
	if _, err := uc.clientRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	sale := domain.InvoiceSale
	invoices, err := uc.invoiceRepo.List(ctx, domain.InvoiceFilter{ClientID: id, Type: &sale})
	if err != nil {
		return nil, err
	}

	return domain.NewClientStats(id, invoices), nil
}

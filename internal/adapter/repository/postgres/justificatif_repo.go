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

// JustificatifRepository implements usecase.JustificatifRepository.
type JustificatifRepository struct {
	queries *generated.Queries
}

// NewJustificatifRepository creates a new JustificatifRepository.
func NewJustificatifRepository(db generated.DBTX) *JustificatifRepository {
	return &JustificatifRepository{queries: generated.New(db)}
}

// Create stores document metadata.
func (r *JustificatifRepository) Create(ctx context.Context, j *domain.Justificatif) error {
	return r.queries.CreateJustificatif(ctx, generated.CreateJustificatifParams{
		ID:            j.ID,
		OriginalName:  j.OriginalName,
		StoredName:    j.StoredName,
		MimeType:      j.MimeType,
		Size:          j.Size,
		Checksum:      j.Checksum,
		Provider:      string(j.Provider),
		StorageKey:    j.StorageKey,
		Description:   j.Description,
		DocumentType:  j.DocumentType,
		DocumentDate:  timePtrToPgDate(j.DocumentDate),
		InvoiceID:     stringPtrToText(j.InvoiceID),
		TransactionID: stringPtrToText(j.TransactionID),
		LedgerEntryID: stringPtrToText(j.LedgerEntryID),
		Archived:      j.Archived,
		ArchivedAt:    timePtrToPgTimestamptz(j.ArchivedAt),
		CreatedAt:     timeToPgTimestamptz(j.CreatedAt),
		UpdatedAt:     timeToPgTimestamptz(j.UpdatedAt),
	})
}

// GetByID retrieves document metadata.
func (r *JustificatifRepository) GetByID(ctx context.Context, id string) (*domain.Justificatif, error) {
	row, err := r.queries.GetJustificatifByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrJustificatifNotFound
		}

		return nil, err
	}

	return rowToJustificatif(row), nil
}

// List returns documents matching filter.
func (r *JustificatifRepository) List(ctx context.Context, filter domain.JustificatifFilter) ([]*domain.Justificatif, error) {
	params := generated.ListJustificatifsParams{
		InvoiceID:     stringPtrToText(filter.InvoiceID),
		TransactionID: stringPtrToText(filter.TransactionID),
	}
	if filter.Archived != nil {
		params.Archived = pgtype.Bool{Bool: *filter.Archived, Valid: true}
	}
	params.Limit, params.Offset = pageParams(filter.Limit, filter.Offset)

	rows, err := r.queries.ListJustificatifs(ctx, params)
	if err != nil {
		return nil, err
	}

	files := make([]*domain.Justificatif, 0, len(rows))
	for _, row := range rows {
		files = append(files, rowToJustificatif(row))
	}

	return files, nil
}

// Archive flags a document as archived at the given time.
func (r *JustificatifRepository) Archive(ctx context.Context, id string, at time.Time) error {
	n, err := r.queries.ArchiveJustificatif(ctx, generated.ArchiveJustificatifParams{
		ID:         id,
		ArchivedAt: timeToPgTimestamptz(at),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrJustificatifNotFound
	}

	return nil
}

// Delete removes document metadata.
func (r *JustificatifRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteJustificatif(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrJustificatifNotFound
	}

	return nil
}

func rowToJustificatif(row generated.Justificatif) *domain.Justificatif {
	return &domain.Justificatif{
		ID:            row.ID,
		OriginalName:  row.OriginalName,
		StoredName:    row.StoredName,
		MimeType:      row.MimeType,
		Size:          row.Size,
		Checksum:      row.Checksum,
		Provider:      domain.StorageProvider(row.Provider),
		StorageKey:    row.StorageKey,
		Description:   row.Description,
		DocumentType:  row.DocumentType,
		DocumentDate:  pgDateToTimePtr(row.DocumentDate),
		InvoiceID:     textToStringPtr(row.InvoiceID),
		TransactionID: textToStringPtr(row.TransactionID),
		LedgerEntryID: textToStringPtr(row.LedgerEntryID),
		Archived:      row.Archived,
		ArchivedAt:    pgTimestamptzToTimePtr(row.ArchivedAt),
		CreatedAt:     row.CreatedAt.Time,
		UpdatedAt:     row.UpdatedAt.Time,
	}
}

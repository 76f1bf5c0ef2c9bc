package usecase

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/infrastructure/metrics"
)

// JustificatifUseCase stores supporting documents and their metadata.
type JustificatifUseCase struct {
	repo          JustificatifRepository
	store         ObjectStore
	idGen         IDGenerator
	maxUploadSize int64
	metrics       *metrics.Metrics
}

// NewJustificatifUseCase creates a new JustificatifUseCase.
func NewJustificatifUseCase(
	repo JustificatifRepository,
	store ObjectStore,
	idGen IDGenerator,
	maxUploadSize int64,
	metrics *metrics.Metrics,
) *JustificatifUseCase {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}

	return &JustificatifUseCase{
		repo:          repo,
		store:         store,
		idGen:         idGen,
		maxUploadSize: maxUploadSize,
		metrics:       metrics,
	}
}

// UploadInput represents an uploaded document.
type UploadInput struct {
	Body          io.Reader
	OriginalName  string
	MimeType      string
	Description   string
	DocumentType  string
	DocumentDate  *time.Time
	InvoiceID     *string
	TransactionID *string
	LedgerEntryID *string
}

// Upload stores the document bytes and records its metadata.
func (uc *JustificatifUseCase) Upload(ctx context.Context, input UploadInput) (*domain.Justificatif, error) {
	if !domain.IsAllowedMimeType(input.MimeType) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, input.MimeType)
	}

	var buf bytes.Buffer
	n, err := io.Copy(&buf, io.LimitReader(input.Body, uc.maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrEmptyFile
	}
	if n > uc.maxUploadSize {
		return nil, domain.ErrFileTooLarge
	}

	sum := sha256.Sum256(buf.Bytes())
	now := time.Now().UTC()
	id := uc.idGen.Generate()
	key := domain.StorageKey(id, input.OriginalName, now)

	j := &domain.Justificatif{
		ID:            id,
		OriginalName:  input.OriginalName,
		StoredName:    path.Base(key),
		MimeType:      input.MimeType,
		Size:          n,
		Checksum:      hex.EncodeToString(sum[:]),
		Provider:      uc.store.Provider(),
		StorageKey:    key,
		Description:   input.Description,
		DocumentType:  input.DocumentType,
		DocumentDate:  input.DocumentDate,
		InvoiceID:     input.InvoiceID,
		TransactionID: input.TransactionID,
		LedgerEntryID: input.LedgerEntryID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.store.Put(ctx, key, bytes.NewReader(buf.Bytes()), n, input.MimeType); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", key, err)
	}

	if err := uc.repo.Create(ctx, j); err != nil {
		if delErr := uc.store.Delete(ctx, key); delErr != nil {
			zerolog.Ctx(ctx).Error().Err(delErr).Str("key", key).Msg("failed to remove orphaned object")
		}
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.JustificatifsUploaded.Inc()
		uc.metrics.UploadedBytes.Add(float64(n))
	}

	zerolog.Ctx(ctx).Info().
		Str("justificatif_id", j.ID).
		Str("key", key).
		Int64("size", n).
		Msg("justificatif uploaded")

	return j, nil
}

// GetJustificatif retrieves document metadata by ID.
func (uc *JustificatifUseCase) GetJustificatif(ctx context.Context, id string) (*domain.Justificatif, error) {
	return uc.repo.GetByID(ctx, id)
}

// ListJustificatifs lists documents matching filter, newest first.
func (uc *JustificatifUseCase) ListJustificatifs(ctx context.Context, filter domain.JustificatifFilter) ([]*domain.Justificatif, error) {
	filter.Limit, filter.Offset, _ = domain.ValidatePagination(filter.Limit, filter.Offset)
	return uc.repo.List(ctx, filter)
}

// Download opens the stored bytes of a document. The caller closes the reader.
func (uc *JustificatifUseCase) Download(ctx context.Context, id string) (*domain.Justificatif, io.ReadCloser, error) {
	j, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	body, err := uc.store.Get(ctx, j.StorageKey)
	if err != nil {
		return nil, nil, err
	}

	return j, body, nil
}

// Archive flags a document as archived.
func (uc *JustificatifUseCase) Archive(ctx context.Context, id string) (*domain.Justificatif, error) {
	if err := uc.repo.Archive(ctx, id, time.Now().UTC()); err != nil {
		return nil, err
	}

	return uc.repo.GetByID(ctx, id)
}

// Delete removes the stored object, then the metadata row.
func (uc *JustificatifUseCase) Delete(ctx context.Context, id string) error {
	j, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.store.Delete(ctx, j.StorageKey); err != nil {
		return fmt.Errorf("failed to delete %s: %w", j.StorageKey, err)
	}

	return uc.repo.Delete(ctx, id)
}

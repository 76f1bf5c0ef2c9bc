package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

const (
	// multipartMemory is the part of a form kept in memory before spilling to disk.
	multipartMemory = 8 << 20
	// multipartOverhead leaves room for form fields and boundaries.
	multipartOverhead = 1 << 20
)

// JustificatifService defines the behavior needed by JustificatifHandler.
type JustificatifService interface {
	Upload(ctx context.Context, input usecase.UploadInput) (*domain.Justificatif, error)
	GetJustificatif(ctx context.Context, id string) (*domain.Justificatif, error)
	ListJustificatifs(ctx context.Context, filter domain.JustificatifFilter) ([]*domain.Justificatif, error)
	Download(ctx context.Context, id string) (*domain.Justificatif, io.ReadCloser, error)
	Archive(ctx context.Context, id string) (*domain.Justificatif, error)
	Delete(ctx context.Context, id string) error
}

// JustificatifHandler handles supporting document uploads and downloads.
type JustificatifHandler struct {
	justificatifUC JustificatifService
	maxUploadSize  int64
}

// NewJustificatifHandler creates a new JustificatifHandler.
func NewJustificatifHandler(justificatifUC JustificatifService, maxUploadSize int64) *JustificatifHandler {
	return &JustificatifHandler{justificatifUC: justificatifUC, maxUploadSize: maxUploadSize}
}

// Upload accepts a multipart form with a "file" part and optional metadata fields.
func (h *JustificatifHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large", err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form", err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file", err.Error())
		return
	}
	defer file.Close()

	documentDate, err := formDate(r, "document_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid document date", err.Error())
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(header.Filename)); byExt != "" {
			mimeType = byExt
		}
	}
	if parsed, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = parsed
	}

	justificatif, err := h.justificatifUC.Upload(r.Context(), usecase.UploadInput{
		Body:          file,
		OriginalName:  header.Filename,
		MimeType:      mimeType,
		Description:   r.FormValue("description"),
		DocumentType:  r.FormValue("document_type"),
		DocumentDate:  documentDate,
		InvoiceID:     formString(r, "invoice_id"),
		TransactionID: formString(r, "transaction_id"),
		LedgerEntryID: formString(r, "ledger_entry_id"),
	})
	if err != nil {
		writeDomainError(w, r, err, "failed to upload justificatif")
		return
	}

	writeJSON(w, http.StatusCreated, dto.JustificatifFromDomain(justificatif))
}

// Get retrieves document metadata.
func (h *JustificatifHandler) Get(w http.ResponseWriter, r *http.Request) {
	justificatif, err := h.justificatifUC.GetJustificatif(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to get justificatif")
		return
	}

	writeJSON(w, http.StatusOK, dto.JustificatifFromDomain(justificatif))
}

// List lists documents filtered by invoice_id, transaction_id and archived.
func (h *JustificatifHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.JustificatifFilter{}
	if v := q.Get("invoice_id"); v != "" {
		filter.InvoiceID = &v
	}
	if v := q.Get("transaction_id"); v != "" {
		filter.TransactionID = &v
	}
	if v := q.Get("archived"); v != "" {
		archived, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid filter", fmt.Sprintf("archived: %v", err))
			return
		}
		filter.Archived = &archived
	}
	filter.Limit, filter.Offset = pagination(r)

	list, err := h.justificatifUC.ListJustificatifs(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err, "failed to list justificatifs")
		return
	}

	writeJSON(w, http.StatusOK, dto.JustificatifsFromDomain(list))
}

// Download streams the stored document.
func (h *JustificatifHandler) Download(w http.ResponseWriter, r *http.Request) {
	meta, body, err := h.justificatifUC.Download(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to download justificatif")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", meta.MimeType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": meta.OriginalName}))
	if meta.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
	}
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}

// Archive flags a document as archived.
func (h *JustificatifHandler) Archive(w http.ResponseWriter, r *http.Request) {
	justificatif, err := h.justificatifUC.Archive(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err, "failed to archive justificatif")
		return
	}

	writeJSON(w, http.StatusOK, dto.JustificatifFromDomain(justificatif))
}

// Delete removes a document and its stored bytes.
func (h *JustificatifHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.justificatifUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, err, "failed to delete justificatif")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func formString(r *http.Request, key string) *string {
	v := r.FormValue(key)
	if v == "" {
		return nil
	}
	return &v
}

func formDate(r *http.Request, key string) (*time.Time, error) {
	v := r.FormValue(key)
	if v == "" {
		return nil, nil
	}

	t, err := dto.ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

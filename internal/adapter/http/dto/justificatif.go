package dto

import (
	"time"

	"github.com/iho/compta/internal/domain"
)

// JustificatifResponse represents document metadata in API responses.
type JustificatifResponse struct {
	ID            string     `json:"id"`
	OriginalName  string     `json:"original_name"`
	StoredName    string     `json:"stored_name"`
	MimeType      string     `json:"mime_type"`
	Size          int64      `json:"size"`
	Checksum      string     `json:"checksum"`
	Provider      string     `json:"provider"`
	Description   string     `json:"description,omitempty"`
	DocumentType  string     `json:"document_type,omitempty"`
	DocumentDate  *Date      `json:"document_date,omitempty"`
	InvoiceID     *string    `json:"invoice_id,omitempty"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	LedgerEntryID *string    `json:"ledger_entry_id,omitempty"`
	Archived      bool       `json:"archived"`
	ArchivedAt    *time.Time `json:"archived_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// JustificatifFromDomain converts document metadata. The storage key stays
// internal.
func JustificatifFromDomain(j *domain.Justificatif) *JustificatifResponse {
	return &JustificatifResponse{
		ID:            j.ID,
		OriginalName:  j.OriginalName,
		StoredName:    j.StoredName,
		MimeType:      j.MimeType,
		Size:          j.Size,
		Checksum:      j.Checksum,
		Provider:      string(j.Provider),
		Description:   j.Description,
		DocumentType:  j.DocumentType,
		DocumentDate:  fromTimePtr(j.DocumentDate),
		InvoiceID:     j.InvoiceID,
		TransactionID: j.TransactionID,
		LedgerEntryID: j.LedgerEntryID,
		Archived:      j.Archived,
		ArchivedAt:    j.ArchivedAt,
		CreatedAt:     j.CreatedAt,
		UpdatedAt:     j.UpdatedAt,
	}
}

// JustificatifsFromDomain converts document metadata lists.
func JustificatifsFromDomain(list []*domain.Justificatif) []*JustificatifResponse {
	out := make([]*JustificatifResponse, len(list))
	for i, j := range list {
		out[i] = JustificatifFromDomain(j)
	}
	return out
}

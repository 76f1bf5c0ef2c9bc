package domain

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"
)

// StorageProvider names the backend that holds a justificatif's bytes.
type StorageProvider string

const (
	StorageLocal StorageProvider = "local"
	StorageS3    StorageProvider = "s3"
)

// allowedMimeTypes lists the document formats accepted as justificatifs.
var allowedMimeTypes = map[string]bool{}

func init() {
	for _, mime := range []string{
		"application/pdf",
		"image/jpeg",
		"image/png",
		"image/gif",
		"application/msword",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	} {
		allowedMimeTypes[mime] = true
	}
}

// IsAllowedMimeType reports whether files of this type may be uploaded.
func IsAllowedMimeType(mime string) bool {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	if mime == "image/jpg" {
		return true
	}

	return allowedMimeTypes[mime]
}

// Justificatif is a supporting document attached to accounting records.
type Justificatif struct {
	ID            string
	OriginalName  string
	StoredName    string
	MimeType      string
	Size          int64
	Checksum      string
	Provider      StorageProvider
	StorageKey    string
	Description   string
	DocumentType  string
	DocumentDate  *time.Time
	InvoiceID     *string
	TransactionID *string
	LedgerEntryID *string
	Archived      bool
	ArchivedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// JustificatifFilter restricts justificatif listings.
type JustificatifFilter struct {
	InvoiceID     *string
	TransactionID *string
	Archived      *bool
	Limit         int
	Offset        int
}

var unsafeNameChars = regexp.MustCompile(`[^a-z0-9]+`)

// StorageKey builds the object key YYYY/MM/<id>_<name><ext> for an upload.
func StorageKey(id, originalName string, at time.Time) string {
	ext := strings.ToLower(path.Ext(originalName))
	base := strings.TrimSuffix(path.Base(originalName), path.Ext(originalName))
	base = strings.Trim(unsafeNameChars.ReplaceAllString(strings.ToLower(base), "_"), "_")

	name := id + ext
	if base != "" {
		name = id + "_" + base + ext
	}

	return fmt.Sprintf("%04d/%02d/%s", at.Year(), int(at.Month()), name)
}

package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
	"github.com/iho/compta/internal/usecase"
)

type justificatifServiceStub struct {
	uploadFn   func(ctx context.Context, input usecase.UploadInput) (*domain.Justificatif, error)
	getFn      func(ctx context.Context, id string) (*domain.Justificatif, error)
	listFn     func(ctx context.Context, filter domain.JustificatifFilter) ([]*domain.Justificatif, error)
	downloadFn func(ctx context.Context, id string) (*domain.Justificatif, io.ReadCloser, error)
	archiveFn  func(ctx context.Context, id string) (*domain.Justificatif, error)
	deleteFn   func(ctx context.Context, id string) error
}

func (s *justificatifServiceStub) Upload(ctx context.Context, input usecase.UploadInput) (*domain.Justificatif, error) {
	return s.uploadFn(ctx, input)
}

func (s *justificatifServiceStub) GetJustificatif(ctx context.Context, id string) (*domain.Justificatif, error) {
	return s.getFn(ctx, id)
}

func (s *justificatifServiceStub) ListJustificatifs(ctx context.Context, filter domain.JustificatifFilter) ([]*domain.Justificatif, error) {
	return s.listFn(ctx, filter)
}

func (s *justificatifServiceStub) Download(ctx context.Context, id string) (*domain.Justificatif, io.ReadCloser, error) {
	return s.downloadFn(ctx, id)
}

func (s *justificatifServiceStub) Archive(ctx context.Context, id string) (*domain.Justificatif, error) {
	return s.archiveFn(ctx, id)
}

func (s *justificatifServiceStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func multipartUpload(t *testing.T, filename, contentType, content string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	io.WriteString(part, content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/justificatifs", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestJustificatifHandler_Upload(t *testing.T) {
	var captured usecase.UploadInput
	var body string
	h := NewJustificatifHandler(&justificatifServiceStub{
		uploadFn: func(_ context.Context, input usecase.UploadInput) (*domain.Justificatif, error) {
			captured = input
			data, _ := io.ReadAll(input.Body)
			body = string(data)
			return &domain.Justificatif{
				ID:           "j-1",
				OriginalName: input.OriginalName,
				MimeType:     input.MimeType,
				StorageKey:   "2024/03/j-1_facture.pdf",
			}, nil
		},
	}, 1<<20)

	req := multipartUpload(t, "facture.pdf", "application/pdf", "%PDF-1.4", map[string]string{
		"description":   "Facture EDF",
		"document_date": "2024-03-15",
		"invoice_id":    "inv-1",
	})
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if body != "%PDF-1.4" || captured.OriginalName != "facture.pdf" || captured.MimeType != "application/pdf" {
		t.Fatalf("unexpected upload %+v body=%q", captured, body)
	}
	if captured.InvoiceID == nil || *captured.InvoiceID != "inv-1" || captured.TransactionID != nil {
		t.Fatalf("unexpected links %+v", captured)
	}
	if captured.DocumentDate == nil || captured.DocumentDate.Day() != 15 {
		t.Fatalf("unexpected document date %v", captured.DocumentDate)
	}
	if strings.Contains(rec.Body.String(), "2024/03/j-1_facture.pdf") {
		t.Fatalf("storage key leaked: %s", rec.Body.String())
	}
}

func TestJustificatifHandler_UploadGuessesMimeFromExtension(t *testing.T) {
	var captured usecase.UploadInput
	h := NewJustificatifHandler(&justificatifServiceStub{
		uploadFn: func(_ context.Context, input usecase.UploadInput) (*domain.Justificatif, error) {
			captured = input
			return &domain.Justificatif{ID: "j-1"}, nil
		},
	}, 1<<20)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "ticket.png", "application/octet-stream", "png", nil))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.MimeType != "image/png" {
		t.Fatalf("expected image/png, got %q", captured.MimeType)
	}
}

func TestJustificatifHandler_UploadErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "unsupported", err: domain.ErrUnsupportedFileType, expected: http.StatusUnsupportedMediaType},
		{name: "too large", err: domain.ErrFileTooLarge, expected: http.StatusRequestEntityTooLarge},
		{name: "empty", err: domain.ErrEmptyFile, expected: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewJustificatifHandler(&justificatifServiceStub{
				uploadFn: func(context.Context, usecase.UploadInput) (*domain.Justificatif, error) {
					return nil, tt.err
				},
			}, 1<<20)

			rec := httptest.NewRecorder()
			h.Upload(rec, multipartUpload(t, "x.pdf", "application/pdf", "x", nil))

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestJustificatifHandler_UploadBodyLimit(t *testing.T) {
	h := NewJustificatifHandler(&justificatifServiceStub{
		uploadFn: func(context.Context, usecase.UploadInput) (*domain.Justificatif, error) {
			t.Fatal("Upload should not be called for oversized bodies")
			return nil, nil
		},
	}, 16)

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartUpload(t, "big.pdf", "application/pdf", strings.Repeat("x", 2<<20), nil))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}
}

func TestJustificatifHandler_UploadMissingFile(t *testing.T) {
	h := NewJustificatifHandler(&justificatifServiceStub{}, 1<<20)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("description", "no file")
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/justificatifs", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()

	h.Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJustificatifHandler_Download(t *testing.T) {
	h := NewJustificatifHandler(&justificatifServiceStub{
		downloadFn: func(_ context.Context, id string) (*domain.Justificatif, io.ReadCloser, error) {
			return &domain.Justificatif{ID: id, OriginalName: "Facture mars.pdf", MimeType: "application/pdf", Size: 5},
				io.NopCloser(strings.NewReader("hello")), nil
		},
	}, 1<<20)

	rec := httptest.NewRecorder()
	h.Download(rec, newRequest(http.MethodGet, "/justificatifs/j-1/download", nil, map[string]string{"id": "j-1"}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Type") != "application/pdf" || rec.Header().Get("Content-Length") != "5" {
		t.Fatalf("unexpected headers %v", rec.Header())
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="Facture mars.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "hello" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestJustificatifHandler_ListArchivedFilter(t *testing.T) {
	h := NewJustificatifHandler(&justificatifServiceStub{
		listFn: func(_ context.Context, filter domain.JustificatifFilter) ([]*domain.Justificatif, error) {
			if filter.Archived == nil || !*filter.Archived || filter.InvoiceID != nil {
				t.Fatalf("unexpected filter %+v", filter)
			}
			return []*domain.Justificatif{{ID: "j-1", Archived: true}}, nil
		},
	}, 1<<20)

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/justificatifs?archived=true", nil, nil))

	var resp []dto.JustificatifResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 1 || !resp[0].Archived {
		t.Fatalf("unexpected list %+v", resp)
	}

	rec = httptest.NewRecorder()
	h.List(rec, newRequest(http.MethodGet, "/justificatifs?archived=maybe", nil, nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/compta/internal/adapter/http/dto"
	"github.com/iho/compta/internal/domain"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps err to a status. Server errors are logged and their
// details withheld from the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg(message)
		writeError(w, status, message, "")
		return
	}

	writeError(w, status, message, err.Error())
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrBankAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrLedgerEntryNotFound),
		errors.Is(err, domain.ErrChartAccountNotFound),
		errors.Is(err, domain.ErrInvoiceNotFound),
		errors.Is(err, domain.ErrJustificatifNotFound),
		errors.Is(err, domain.ErrDeclarationNotFound),
		errors.Is(err, domain.ErrDepreciationNotPosted),
		errors.Is(err, domain.ErrClientNotFound),
		errors.Is(err, domain.ErrCompanyNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrConcurrencyConflict),
		errors.Is(err, domain.ErrDepreciationAlreadyPosted),
		errors.Is(err, domain.ErrInvoiceNumberTaken),
		errors.Is(err, domain.ErrChartAccountExists),
		errors.Is(err, domain.ErrClientSIRETTaken),
		errors.Is(err, domain.ErrClientHasInvoices):
		return http.StatusConflict

	case errors.Is(err, domain.ErrOutOfPeriod),
		errors.Is(err, domain.ErrAssetDisposed),
		errors.Is(err, domain.ErrDepreciationSequence):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusUnsupportedMediaType

	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden

	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidTransaction),
		errors.Is(err, domain.ErrInvalidLedgerEntry),
		errors.Is(err, domain.ErrInvalidJournal),
		errors.Is(err, domain.ErrInvalidAccountCode),
		errors.Is(err, domain.ErrInvalidAsset),
		errors.Is(err, domain.ErrInvalidDisposal),
		errors.Is(err, domain.ErrInvalidInvoice),
		errors.Is(err, domain.ErrInvalidClient),
		errors.Is(err, domain.ErrInvalidCompany),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidDeclaration),
		errors.Is(err, domain.ErrInvalidReportType),
		errors.Is(err, domain.ErrEmptyFile),
		errors.Is(err, domain.ErrInvalidName),
		errors.Is(err, domain.ErrAmountTooLarge),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrInvalidIBAN),
		errors.Is(err, domain.ErrInvalidSIRET):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a bounded JSON body into dst and rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}

	return true
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}

	t, err := dto.ParseDate(val)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}

	return &t, nil
}

// parsePeriodQuery reads the mandatory from/to query parameters.
func parsePeriodQuery(r *http.Request) (domain.Period, error) {
	from, err := parseDateQuery(r, "from")
	if err != nil {
		return domain.Period{}, err
	}
	to, err := parseDateQuery(r, "to")
	if err != nil {
		return domain.Period{}, err
	}
	if from == nil || to == nil {
		return domain.Period{}, fmt.Errorf("%w: from and to are required", domain.ErrInvalidPeriod)
	}

	period := domain.Period{From: *from, To: *to}
	if err := period.Validate(); err != nil {
		return domain.Period{}, err
	}

	return period, nil
}

// pagination reads limit/offset with the domain defaults applied.
func pagination(r *http.Request) (int, int) {
	limit, offset, _ := domain.ValidatePagination(parseIntQuery(r, "limit", 0), parseIntQuery(r, "offset", 0))
	return limit, offset
}

package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/matzehuels/sigil/pkg/errors"
)

// ErrorBody is the JSON envelope for error responses.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes one failed request.
type ErrorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteJSON writes v as indented JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, "encode response", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(append(data, '\n'))
	return err
}

// StatusFor returns the HTTP status for err.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.IsClientError(err):
		return http.StatusBadRequest
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

// WriteError writes err as an [ErrorBody] and returns the status used.
// Errors without a code are reported as INTERNAL_ERROR.
func WriteError(w http.ResponseWriter, err error) int {
	status := StatusFor(err)
	detail := ErrorDetail{Code: errors.GetCode(err), Message: errors.UserMessage(err)}
	if detail.Code == "" {
		detail.Code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		detail.Message = http.StatusText(status)
	}
	_ = WriteJSON(w, status, ErrorBody{Error: detail})
	return status
}

package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventfinder/internal/domain"
)

// Error codes for API error responses. Domain failures reuse domain.ErrorKind values.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeNotFound      = "not_found"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the envelope for every response: exactly one of Data and Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess writes statusCode and data in the envelope.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	writeEnvelope(w, statusCode, APIResponse{Data: data})
}

// WriteJSONError writes statusCode and an error envelope with the given code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	writeEnvelope(w, statusCode, APIResponse{Error: &APIError{Code: code, Message: message}})
}

// WriteDomainError maps err onto a status and code. Input errors become 400,
// location and query failures carry their domain kind, anything else is a 500.
func WriteDomainError(w http.ResponseWriter, err error) {
	status, code := StatusFor(err)
	WriteJSONError(w, status, code, err.Error())
}

// StatusFor returns the HTTP status and error code WriteDomainError uses for err.
func StatusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidCoordinate), errors.Is(err, domain.ErrInvalidCategory):
		return http.StatusBadRequest, ErrCodeBadRequest
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden, domain.ErrorKindPermissionDenied
	case errors.Is(err, domain.ErrLocationUnavailable):
		return http.StatusServiceUnavailable, domain.ErrorKindLocationUnavailable
	case errors.Is(err, domain.ErrEventQueryFailed):
		return http.StatusServiceUnavailable, domain.ErrorKindEventQueryFailed
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// writeEnvelope encodes before writing the status so an unencodable payload
// becomes a 500 instead of a success status with an empty body.
func writeEnvelope(w http.ResponseWriter, statusCode int, resp APIResponse) {
	body, err := json.Marshal(resp)
	if err != nil {
		statusCode = http.StatusInternalServerError
		body, _ = json.Marshal(APIResponse{Error: &APIError{Code: ErrCodeInternalError, Message: "failed to encode response"}})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = w.Write(append(body, '\n'))
}

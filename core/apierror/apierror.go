// Package apierror defines the error shape shared by every REST call the SDK
// makes: a typed error for responses the server answered with a non-2xx
// status, and helpers to classify it.
package apierror

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Reading an error body is capped; a misbehaving server must not make the
// client buffer an unbounded response.
const maxErrorBody = 64 << 10

// APIError is a server-reported failure. It is only created from an actual
// HTTP response; transport failures (no response at all) stay plain errors.
type APIError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Message is the human-readable message from the response body, or the
	// HTTP status text when the body carried none.
	Message string
	// Fields holds field-level validation messages when the server provides
	// them, keyed by field name.
	Fields map[string]string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// errorBody matches the error payload the scheduling API returns.
type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

// FromResponse builds an APIError from a non-2xx response. The body is
// consumed but the response is not closed; that stays with the caller.
func FromResponse(resp *http.Response) *APIError {
	apiErr := &APIError{
		Status:  resp.StatusCode,
		Message: http.StatusText(resp.StatusCode),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}
	if parsed.Message != "" {
		apiErr.Message = parsed.Message
	}
	if len(parsed.Errors) > 0 {
		apiErr.Fields = parsed.Errors
	}
	return apiErr
}

// IsUnauthorized reports whether err is a server response signalling an
// expired or invalid credential.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

package authapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error kind codes carried in the "error" field of every failure response.
const (
	ErrorCodeBadRequest         = "bad_request"
	ErrorCodeUnauthorized       = "unauthorized"
	ErrorCodeConflict           = "conflict"
	ErrorCodeServiceUnavailable = "service_unavailable"
	ErrorCodeServerError        = "server_error"
)

// APIError is the stable JSON error shape every endpoint returns:
// {statusCode, error, message}. It implements the error interface so the
// same type serves both server handlers and API clients.
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"statusCode"`

	// Code is the machine-readable error kind (e.g. "unauthorized").
	Code string `json:"error"`

	// Message is a human-readable description. Deliberately coarse for
	// authentication failures: internal reasons are never distinguished.
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

var (
	// ErrBadRequest is returned for structurally invalid payloads: missing
	// fields, malformed JSON, or an unknown role value.
	ErrBadRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeBadRequest,
		Message:    "the request is malformed or missing required parameters",
	}

	// ErrInvalidCredentials covers every login failure, including "no such
	// user", so callers cannot probe which accounts exist.
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "invalid credentials",
	}

	// ErrInvalidRefreshToken collapses every refresh precondition failure
	// (bad signature, expired, revoked, rotated, forged jti) into one answer.
	ErrInvalidRefreshToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "invalid refresh token",
	}

	// ErrInvalidResetToken is returned when a reset token is unknown,
	// expired or already used.
	ErrInvalidResetToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "invalid or expired reset token",
	}

	// ErrInvalidToken is returned by the access guard for missing, forged,
	// expired or wrong-type bearer tokens.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeUnauthorized,
		Message:    "invalid or missing access token",
	}

	// ErrEmailTaken is returned when registering an email that already has
	// an account.
	ErrEmailTaken = &APIError{
		StatusCode: http.StatusConflict,
		Code:       ErrorCodeConflict,
		Message:    "email already registered",
	}

	// ErrStoreUnavailable is returned when the backing store failed for
	// reasons unrelated to the credentials themselves, so clients don't
	// treat an outage as "wrong password".
	ErrStoreUnavailable = &APIError{
		StatusCode: http.StatusServiceUnavailable,
		Code:       ErrorCodeServiceUnavailable,
		Message:    "service temporarily unavailable",
	}

	// ErrServerError is the catch-all for unexpected internal failures.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

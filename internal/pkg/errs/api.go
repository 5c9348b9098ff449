package errs

import (
	"errors"
	"net/http"
)

// API layer codes, the only ones serialized to clients.
const (
	APIValidationError = "VALIDATION_ERROR"
	APINotFound        = "NOT_FOUND"
	APIServiceError    = "SERVICE_ERROR"
)

// APIError is the outward-facing error shape. Message is safe to serialize;
// the wrapped cause never leaves the process.
type APIError struct {
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error code to a response status.
func (e *APIError) HTTPStatus() int {
	switch e.Code {
	case APIValidationError:
		return http.StatusBadRequest
	case APINotFound:
		return http.StatusNotFound
	case APIServiceError:
		return http.StatusBadGateway
	default:
		return http.StatusServiceUnavailable
	}
}

// ToAPIError converts any error coming out of the service layer into an
// APIError with a client-safe message.
func ToAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case DomainValidationError:
			return &APIError{Code: APIValidationError, Message: "invalid request", Err: err}
		case DomainNotFound:
			return &APIError{Code: APINotFound, Message: domainErr.Entity + " not found", Err: err}
		}
	}

	return &APIError{Code: APIServiceError, Message: "service unavailable", Err: err}
}

package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapServicePassesThroughNotFoundAndValidation(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"not found", NewNotFound("event", "39")},
		{"validation", NewValidationError("event", "0", fmt.Errorf("out of range"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapService("event.get", tt.err)
			if wrapped != tt.err {
				t.Fatalf("WrapService altered a pass-through error: %v", wrapped)
			}
		})
	}
}

func TestWrapServiceClassifiesInfrastructure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"cache", NewCacheError(CacheOperation, "event", "event::2425", errors.New("conn refused")), ServiceIntegrationError},
		{"database", NewDatabaseError("event", "2425", errors.New("conn refused")), ServiceIntegrationError},
		{"data layer", NewDataLayerError(DataFetchError, "event", "2425", errors.New("timeout")), ServiceIntegrationError},
		{"unknown", errors.New("boom"), ServiceOperationError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WrapService("event.get", tt.err)
			var serviceErr *ServiceError
			if !errors.As(wrapped, &serviceErr) || serviceErr.Code != tt.wantCode {
				t.Fatalf("WrapService = %v, want code %s", wrapped, tt.wantCode)
			}
			if !errors.Is(wrapped, tt.err) {
				t.Fatal("wrapped error lost its cause")
			}
		})
	}
}

func TestWrapServiceNil(t *testing.T) {
	if err := WrapService("op", nil); err != nil {
		t.Fatalf("WrapService(nil) = %v", err)
	}
}

func TestToAPIErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			"validation",
			NewValidationError("event", "0", fmt.Errorf("out of range")),
			APIValidationError, http.StatusBadRequest,
		},
		{
			"not found",
			NewNotFound("event", "39"),
			APINotFound, http.StatusNotFound,
		},
		{
			"integration",
			WrapService("event.get", NewDatabaseError("event", "2425", errors.New("down"))),
			APIServiceError, http.StatusBadGateway,
		},
		{
			"plain",
			errors.New("boom"),
			APIServiceError, http.StatusBadGateway,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := ToAPIError(tt.err)
			if apiErr.Code != tt.wantCode {
				t.Fatalf("code = %s, want %s", apiErr.Code, tt.wantCode)
			}
			if apiErr.HTTPStatus() != tt.wantStatus {
				t.Fatalf("status = %d, want %d", apiErr.HTTPStatus(), tt.wantStatus)
			}
		})
	}
}

func TestErrorChainsUnwrap(t *testing.T) {
	root := errors.New("connection refused")
	chain := WrapService("event.get-all",
		NewCacheError(CacheOperation, "event", "event::2425", root))

	if !errors.Is(chain, root) {
		t.Fatal("root cause unreachable through the chain")
	}

	var domainErr *DomainError
	if !errors.As(chain, &domainErr) || domainErr.Code != DomainCacheError {
		t.Fatal("domain layer unreachable through the chain")
	}
}

func TestDomainErrorMessages(t *testing.T) {
	byID := NewNotFound("event", "7")
	if got := byID.Error(); got != "NOT_FOUND: event id 7: not found" {
		t.Fatalf("Error() = %q", got)
	}

	withSub := NewCacheError(CacheDeserialization, "event", "event::2425", errors.New("bad json"))
	if got := withSub.Error(); got != "CACHE_ERROR/DESERIALIZATION: event scope event::2425: bad json" {
		t.Fatalf("Error() = %q", got)
	}
}

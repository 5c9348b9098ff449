package errs

import (
	"errors"
	"fmt"
)

// Service layer codes.
const (
	ServiceIntegrationError = "INTEGRATION_ERROR"
	ServiceOperationError   = "OPERATION_ERROR"
)

// ServiceError is what use-case entry points return to the API layer.
// It keeps the full lower chain reachable through Unwrap.
type ServiceError struct {
	Code string
	Op   string
	Err  error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WrapService translates a domain error into the service taxonomy. NOT_FOUND
// and VALIDATION_ERROR pass through untouched so the API layer can map them
// to their own statuses; cache/database failures become INTEGRATION_ERROR and
// everything else OPERATION_ERROR.
func WrapService(op string, err error) error {
	if err == nil {
		return nil
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case DomainNotFound, DomainValidationError:
			return err
		case DomainCacheError, DomainDatabaseError:
			return &ServiceError{Code: ServiceIntegrationError, Op: op, Err: err}
		}
	}

	var dataErr *DataLayerError
	if errors.As(err, &dataErr) {
		return &ServiceError{Code: ServiceIntegrationError, Op: op, Err: err}
	}

	return &ServiceError{Code: ServiceOperationError, Op: op, Err: err}
}

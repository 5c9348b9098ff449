// Package errs defines the layered error taxonomy of the service.
//
// Each layer wraps the one below and enriches it with context; nothing is
// discarded on the way up. Clients only ever see the API layer's code and
// message.
package errs

import "fmt"

// Data layer codes. These classify one failed step of a sync cycle.
const (
	DataFetchError      = "FETCH_ERROR"
	DataValidationError = "VALIDATION_ERROR"
	DataMappingError    = "MAPPING_ERROR"
	DataQueryError      = "QUERY_ERROR"
	DataOperationError  = "OPERATION_ERROR"
)

// DataLayerError classifies a failure in the fetch/validate/map/persist path.
type DataLayerError struct {
	Code   string
	Entity string
	Scope  string
	Err    error
}

func (e *DataLayerError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("%s: %s sync for scope %s: %v", e.Code, e.Entity, e.Scope, e.Err)
	}
	return fmt.Sprintf("%s: %s sync: %v", e.Code, e.Entity, e.Err)
}

func (e *DataLayerError) Unwrap() error {
	return e.Err
}

// NewDataLayerError wraps err with a data layer classification.
func NewDataLayerError(code, entity, scope string, err error) *DataLayerError {
	return &DataLayerError{Code: code, Entity: entity, Scope: scope, Err: err}
}

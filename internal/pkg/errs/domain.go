package errs

import "fmt"

// Domain layer codes.
const (
	DomainCacheError      = "CACHE_ERROR"
	DomainDatabaseError   = "DATABASE_ERROR"
	DomainNotFound        = "NOT_FOUND"
	DomainValidationError = "VALIDATION_ERROR"
)

// Cache sub-codes. All cache failures surface as one CACHE_ERROR kind with a
// sub-code saying which stage broke.
const (
	CacheSerialization   = "SERIALIZATION"
	CacheDeserialization = "DESERIALIZATION"
	CacheOperation       = "OPERATION"
)

// DomainError classifies a failure of a domain operation (cache + repository
// composition). SubCode is only set for CACHE_ERROR.
type DomainError struct {
	Code    string
	SubCode string
	Entity  string
	ID      string
	Scope   string
	Err     error
}

func (e *DomainError) Error() string {
	code := e.Code
	if e.SubCode != "" {
		code = e.Code + "/" + e.SubCode
	}
	switch {
	case e.ID != "":
		return fmt.Sprintf("%s: %s id %s: %v", code, e.Entity, e.ID, e.Err)
	case e.Scope != "":
		return fmt.Sprintf("%s: %s scope %s: %v", code, e.Entity, e.Scope, e.Err)
	default:
		return fmt.Sprintf("%s: %s: %v", code, e.Entity, e.Err)
	}
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewCacheError wraps err as a CACHE_ERROR with the given sub-code.
func NewCacheError(subCode, entity, scope string, err error) *DomainError {
	return &DomainError{Code: DomainCacheError, SubCode: subCode, Entity: entity, Scope: scope, Err: err}
}

// NewDatabaseError wraps err as a DATABASE_ERROR.
func NewDatabaseError(entity, scope string, err error) *DomainError {
	return &DomainError{Code: DomainDatabaseError, Entity: entity, Scope: scope, Err: err}
}

// NewNotFound reports that an entity with the given id does not exist.
func NewNotFound(entity, id string) *DomainError {
	return &DomainError{Code: DomainNotFound, Entity: entity, ID: id, Err: fmt.Errorf("not found")}
}

// NewValidationError reports invalid caller input, detected before any cache
// or repository access.
func NewValidationError(entity, id string, err error) *DomainError {
	return &DomainError{Code: DomainValidationError, Entity: entity, ID: id, Err: err}
}

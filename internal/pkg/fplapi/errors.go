package fplapi

import "fmt"

// FetchError reports a transport or HTTP status failure against one endpoint.
type FetchError struct {
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError reports a payload that decoded but failed schema checks.
// Payloads are rejected before any mapping or persistence happens.
type ValidationError struct {
	Endpoint string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %s", e.Endpoint, e.Reason)
}

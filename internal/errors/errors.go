// Package errors defines the domain error taxonomy shared across services.
package errors

// DomainError is an error with a stable machine-readable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string { return e.Message }

var (
	// ErrDataUnavailable means the record store could not be reached or a
	// query against it failed. Callers decide whether to retry.
	ErrDataUnavailable = &DomainError{
		Code:    "DATA_UNAVAILABLE",
		Message: "record store unavailable",
	}
	// ErrInvalidFilter means a filter parameter was malformed and the
	// request was rejected before any query ran.
	ErrInvalidFilter = &DomainError{
		Code:    "INVALID_FILTER",
		Message: "invalid filter parameter",
	}
	ErrAlertNotFound = &DomainError{
		Code:    "ALERT_NOT_FOUND",
		Message: "alert not found",
	}
	ErrThresholdNotFound = &DomainError{
		Code:    "THRESHOLD_NOT_FOUND",
		Message: "alert threshold not found",
	}
)

package service

import (
	"errors"
	"fmt"
)

var (
	ErrConfirmationRequired = errors.New("delete must be confirmed")
	ErrInvalidCredentials   = errors.New("invalid email or password")
)

// ValidationError is raised before any remote call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

type ItemFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// PartialFailure reports an operation where some steps succeeded and
// others did not: a bulk upload with failed files, or a delete whose blob
// cleanup failed after the row was removed.
type PartialFailure struct {
	Op        string
	Succeeded int
	Total     int
	Failures  []ItemFailure
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("%s: %d of %d succeeded", e.Op, e.Succeeded, e.Total)
}

// RelayError is a non-2xx answer (or no answer) from the contact form relay.
type RelayError struct {
	StatusCode int
	Err        error
}

func (e *RelayError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("contact relay failed: %v", e.Err)
	}
	return fmt.Sprintf("contact relay answered %d", e.StatusCode)
}

func (e *RelayError) Unwrap() error { return e.Err }

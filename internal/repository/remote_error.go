package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/lib/pq"
)

type ErrorKind string

const (
	ErrNotFound         ErrorKind = "not_found"
	ErrPermissionDenied ErrorKind = "permission_denied"
	ErrDuplicate        ErrorKind = "duplicate"
	ErrTimeout          ErrorKind = "timeout"
	ErrUnknown          ErrorKind = "unknown"
)

// RemoteError is what every database and object store call returns on
// failure. Message is meant to be shown to the user as-is.
type RemoteError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *RemoteError) Error() string { return e.Message }
func (e *RemoteError) Unwrap() error { return e.Err }

// Normalize maps a raw driver or SDK error into a *RemoteError whose message
// names the action that failed ("loading images", "uploading file", ...).
// Errors that are already normalized pass through unchanged.
func Normalize(err error, action string) error {
	if err == nil {
		return nil
	}

	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}

	wrap := func(kind ErrorKind, format string) error {
		return &RemoteError{Kind: kind, Message: fmt.Sprintf(format, action), Err: err}
	}

	if errors.Is(err, sql.ErrNoRows) {
		return wrap(ErrNotFound, "No data found when %s.")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return wrap(ErrTimeout, "Request timed out when %s.")
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "42501":
			return wrap(ErrPermissionDenied, "Permission denied when %s.")
		case "23505":
			return wrap(ErrDuplicate, "Duplicate entry when %s.")
		case "42P01":
			return wrap(ErrNotFound, "Table or view not found when %s.")
		}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NoSuchBucket", "NotFound":
			return wrap(ErrNotFound, "No data found when %s.")
		case "AccessDenied", "Forbidden", "InvalidAccessKeyId", "SignatureDoesNotMatch":
			return wrap(ErrPermissionDenied, "Permission denied when %s.")
		}
	}

	if msg := err.Error(); msg != "" {
		return &RemoteError{Kind: ErrUnknown, Message: msg, Err: err}
	}
	return wrap(ErrUnknown, "An unexpected error occurred when %s")
}

// IsKind reports whether err is a *RemoteError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Kind == kind
}

func notFound(action string) error {
	return &RemoteError{Kind: ErrNotFound, Message: fmt.Sprintf("No data found when %s.", action), Err: sql.ErrNoRows}
}

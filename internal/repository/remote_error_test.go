package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    ErrorKind
		message string
	}{
		{"no rows", sql.ErrNoRows, ErrNotFound, "No data found when loading images."},
		{"wrapped no rows", fmt.Errorf("scan: %w", sql.ErrNoRows), ErrNotFound, "No data found when loading images."},
		{"permission", &pq.Error{Code: "42501", Message: "permission denied for table"}, ErrPermissionDenied, "Permission denied when loading images."},
		{"duplicate", &pq.Error{Code: "23505", Message: "duplicate key"}, ErrDuplicate, "Duplicate entry when loading images."},
		{"missing table", &pq.Error{Code: "42P01", Message: "relation does not exist"}, ErrNotFound, "Table or view not found when loading images."},
		{"timeout", context.DeadlineExceeded, ErrTimeout, "Request timed out when loading images."},
		{"s3 missing key", &smithy.GenericAPIError{Code: "NoSuchKey", Message: "gone"}, ErrNotFound, "No data found when loading images."},
		{"s3 access denied", &smithy.GenericAPIError{Code: "AccessDenied", Message: "nope"}, ErrPermissionDenied, "Permission denied when loading images."},
		{"other", errors.New("connection refused"), ErrUnknown, "connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Normalize(tt.err, "loading images")

			var re *RemoteError
			require.True(t, errors.As(err, &re))
			assert.Equal(t, tt.kind, re.Kind)
			assert.Equal(t, tt.message, re.Message)
			assert.True(t, errors.Is(err, tt.err))
		})
	}
}

func TestNormalizeNilAndPassThrough(t *testing.T) {
	assert.NoError(t, Normalize(nil, "anything"))

	first := Normalize(sql.ErrNoRows, "loading video")
	second := Normalize(first, "loading gallery")
	assert.Same(t, first, second)
	assert.True(t, IsKind(second, ErrNotFound))
	assert.False(t, IsKind(second, ErrDuplicate))
}

package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewExternalAPIError(CauseTransport, "error fetching user with ID 1", cause)

	assert.Equal(t, "error fetching user with ID 1: connection refused", err.Error())
	assert.ErrorIs(t, err, ErrExternalAPI)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, KindExternalAPI, KindOf(err))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected ErrorKind
	}{
		{
			name:     "nil",
			err:      nil,
			expected: KindUnknown,
		},
		{
			name:     "foreign error",
			err:      errors.New("boom"),
			expected: KindUnknown,
		},
		{
			name:     "wrapped external api error",
			err:      fmt.Errorf("failed to get user: %w", NewExternalAPIError(CauseDecode, "invalid data", nil)),
			expected: KindExternalAPI,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestError_AsStatus(t *testing.T) {
	err := fmt.Errorf("failed to list users: %w",
		NewExternalAPIError(CauseStatus, "error fetching all users", &StatusError{StatusCode: 503}))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CauseStatus, apiErr.Cause)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 503, statusErr.StatusCode)
	assert.Equal(t, "unexpected status code 503", statusErr.Error())
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "George Bluth", User{FirstName: "George", LastName: "Bluth"}.FullName())
	assert.Equal(t, "George", User{FirstName: "George"}.FullName())
	assert.Equal(t, "Bluth", User{LastName: "Bluth"}.FullName())
}

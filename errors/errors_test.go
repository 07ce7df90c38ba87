package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapToHTTPStatus(t *testing.T) {
	tests := []struct {
		description string
		err         error
		expected    int
	}{
		{description: "invalid credentials", err: ErrInvalidCredentials, expected: http.StatusUnauthorized},
		{description: "duplicate user", err: ErrUserAlreadyExists, expected: http.StatusBadRequest},
		{description: "invalid username", err: ErrInvalidUsername, expected: http.StatusBadRequest},
		{description: "invalid password", err: ErrInvalidPassword, expected: http.StatusBadRequest},
		{description: "blocked relationship", err: ErrBlocked, expected: http.StatusForbidden},
		{description: "missing row", err: ErrNotFound, expected: http.StatusNotFound},
		{description: "wrapped sentinel still matches", err: fmt.Errorf("context: %w", ErrNotFound), expected: http.StatusNotFound},
		{description: "unknown errors collapse to 500", err: fmt.Errorf("disk on fire"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			require.Equal(t, tt.expected, MapToHTTPStatus(tt.err))
		})
	}
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidUsername    = fmt.Errorf("invalid username")
	ErrInvalidPassword    = fmt.Errorf("invalid password")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrNotFound           = fmt.Errorf("not found")
	ErrBlocked            = fmt.Errorf("blocked relationship")
	ErrEmptyWords         = fmt.Errorf("no words have been found")
)

// MapToHTTPStatus translates domain sentinels into HTTP status codes at the API edge.
// Unknown errors deliberately collapse into 500 so internals never leak to clients.
func MapToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrInvalidUsername),
		errors.Is(err, ErrInvalidPassword):
		return http.StatusBadRequest
	case errors.Is(err, ErrBlocked):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

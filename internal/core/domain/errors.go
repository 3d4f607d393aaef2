package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("access denied")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrRecordNotFound     = errors.New("record not found")
	ErrDoctorNotFound     = errors.New("unknown doctor")
	ErrInvalidInput       = errors.New("invalid input")
	ErrStoreUnavailable   = errors.New("store unavailable")
)

// ErrRoleNotAllowed rejects self-registration for any role but doctor. It
// also matches ErrInvalidInput.
var ErrRoleNotAllowed = fmt.Errorf("%w: only doctor accounts can be registered", ErrInvalidInput)

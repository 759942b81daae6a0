package service

import "errors"

// Error taxonomy shared by the gateway and roster services. Handlers map
// these to transport status codes; callers must not retry anything but
// ErrTransient.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrTransient    = errors.New("temporarily unavailable")

	// ErrInvalidCredentials is the single generic login failure. Unknown
	// account, wrong password and disabled account are indistinguishable
	// to the caller so accounts cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

package service

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced to the HTTP layer. Handlers match these with
// errors.Is and map them to status codes.
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")

	// ErrPayloadTooLarge is a client error, a special case of invalid input.
	ErrPayloadTooLarge = fmt.Errorf("%w: file size exceeds maximum allowed size", ErrInvalidRequest)

	ErrStorageWriteFailed = errors.New("storage write failed")
	ErrSourceMissing      = errors.New("source file missing")
	ErrEmptySource        = errors.New("source file is empty")
	ErrUnsupportedFormat  = errors.New("unsupported image format")
	ErrCorruptImage       = errors.New("corrupt image")
	ErrNotImplemented     = errors.New("not implemented")
)

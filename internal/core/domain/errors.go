package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMalformedDocument indicates persisted content does not have the
	// shape of a portal document.
	ErrMalformedDocument = errors.New("malformed portal document")

	// Storage Errors.

	// ErrUnsupportedBackend indicates an unknown storage backend name.
	ErrUnsupportedBackend = errors.New("unsupported storage backend")

	// ErrSlotUnavailable indicates the durable slot cannot be read or written.
	ErrSlotUnavailable = errors.New("durable slot unavailable")

	// ErrStoreClosed indicates the slot store has been closed.
	ErrStoreClosed = errors.New("store closed")

	// ErrWatchUnsupported indicates the configured backend cannot be watched.
	// Only file-backed slots emit change notifications.
	ErrWatchUnsupported = errors.New("watch not supported for backend")
)

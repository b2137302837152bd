package store

import "errors"

var (
	// ErrDocumentNotFound is returned when a queried document id does not
	// exist in the store.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrRevisionMismatch is returned by CompareAndSwap when the stored
	// revision no longer matches the caller's base revision.
	ErrRevisionMismatch = errors.New("revision mismatch")

	// ErrDeviceNotFound is returned when no device matches the given id.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrDeviceExists is returned when registering a device id that is
	// already taken.
	ErrDeviceExists = errors.New("device already registered")
)

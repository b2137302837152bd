package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongDeviceKey      = errors.New("wrong device key")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrValidationNoDocumentsProvided = errors.New("no documents provided")
	ErrValidationNoIDsProvided       = errors.New("no document ids provided")

	// ErrSyncInProgress is returned when a full sync is requested while one
	// is already in flight.
	ErrSyncInProgress = errors.New("sync already in progress")

	// ErrSessionSyncInProgress is returned when a session sync is requested
	// for a session that already has an attempt in flight.
	ErrSessionSyncInProgress = errors.New("session sync already in progress")

	// ErrOffline is returned when a sync is requested while the agent
	// believes the remote store is unreachable.
	ErrOffline = errors.New("agent is offline")

	// ErrConflictNotFound is returned by manual resolution when no
	// unresolved conflict record matches the document id.
	ErrConflictNotFound = errors.New("conflict record not found")

	// ErrEncryptionKeyNotSet is returned when a document operation needs the
	// data key before it has been derived.
	ErrEncryptionKeyNotSet = errors.New("encryption key not set")
)

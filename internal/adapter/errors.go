// SPDX-License-Identifier: Apache-2.0

package adapter

import "errors"

// Sentinel errors mapped from remote store responses. Callers match against
// them with [errors.Is]; IsRetriable encodes the retry policy the sync
// orchestrator applies.
var (
	// ErrBadRequest maps HTTP 400: the request was malformed.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized maps HTTP 401: the credential is missing, invalid or
	// expired. Non-retriable; forces credential invalidation.
	ErrUnauthorized = errors.New("device unauthorized")

	// ErrForbidden maps HTTP 403: the credential is valid but the device may
	// not access the resource. Non-retriable.
	ErrForbidden = errors.New("device forbidden")

	// ErrNotFound maps HTTP 404.
	ErrNotFound = errors.New("not found")

	// ErrConflict maps HTTP 409: the remote store holds a divergent
	// revision. Not a failure — routed to the conflict resolver.
	ErrConflict = errors.New("revision conflict")

	// ErrServer maps HTTP 5xx: a server-side fault, retriable under the
	// backoff policy.
	ErrServer = errors.New("remote store server error")

	// ErrTransport covers connection, DNS and timeout failures below the
	// HTTP layer. Retriable under the backoff policy.
	ErrTransport = errors.New("transport failure")
)

// IsAuthError reports whether err is a non-retriable authentication or
// authorization failure.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsRetriable reports whether the sync orchestrator may retry the operation
// under its backoff policy.
func IsRetriable(err error) bool {
	return errors.Is(err, ErrServer) || errors.Is(err, ErrTransport)
}

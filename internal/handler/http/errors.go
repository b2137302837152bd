// SPDX-License-Identifier: Apache-2.0

package http

import "errors"

// Authorization header parse failures. The auth middleware maps all of them
// to HTTP 401.
var (
	ErrEmptyAuthorizationHeader   = errors.New("missing Authorization header")
	ErrInvalidAuthorizationHeader = errors.New("malformed Authorization header")
	ErrEmptyToken                 = errors.New("Authorization header carries no token")
)

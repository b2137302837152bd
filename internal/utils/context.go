// Package utils provides general-purpose helper utilities used across
// different parts of the application: context keys, HTTP response writing,
// HTTP client initialization, JWT token generation and validation, and UUID
// generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// DeviceIDCtxKey is the key under which the authenticated device identifier
// is stored in the request context by the auth middleware.
var DeviceIDCtxKey = contextKey("deviceID")

// GetDeviceIDFromContext retrieves the authenticated device identifier from
// the context.
//
// Returns the device id and an ok flag:
//   - ok == true  — value is found and has the correct string type
//   - ok == false — value is missing or has an unexpected type
func GetDeviceIDFromContext(ctx context.Context) (string, bool) {
	deviceID, ok := ctx.Value(DeviceIDCtxKey).(string)
	return deviceID, ok
}

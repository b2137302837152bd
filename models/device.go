package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Device is a registered field device allowed to reach the remote document
// store. KeyHash is stored server-side only and never travels back to agents.
type Device struct {
	ID        int64     `json:"id,omitempty"`
	DeviceID  string    `json:"device_id"`
	KeyHash   string    `json:"-"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// DeviceCredentials is what an agent presents to obtain a remote-access
// token.
type DeviceCredentials struct {
	DeviceID  string `json:"device_id"`
	DeviceKey string `json:"device_key"`
	Label     string `json:"label,omitempty"`
}

// Token pairs the parsed JWT with its signed string form.
type Token struct {
	Token        *jwt.Token
	SignedString string
	DeviceID     string
}

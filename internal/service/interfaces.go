package service

import (
	"context"

	"github.com/fieldcare/clinsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// DocumentService is the server-side document store contract behind the sync
// endpoints. Revision tokens are assigned here, never by agents.
type DocumentService interface {
	// Push applies a replication batch. Every document gets an individual
	// outcome; a divergent base revision yields a conflict outcome carrying
	// the server's current document.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// WriteAuthoritative stores a merge result as the next revision without
	// a base-revision comparison.
	WriteAuthoritative(ctx context.Context, req models.AuthoritativeWriteRequest) (models.AuthoritativeWriteResponse, error)

	Fetch(ctx context.Context, req models.FetchRequest) ([]models.Document, error)
	States(ctx context.Context) ([]models.DocumentState, error)
}

// AuthService handles device registration and token lifecycle on the server.
type AuthService interface {
	RegisterDevice(ctx context.Context, creds models.DeviceCredentials) (models.Device, error)
	Login(ctx context.Context, creds models.DeviceCredentials) (models.Device, error)
	CreateToken(ctx context.Context, device models.Device) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

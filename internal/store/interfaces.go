// Package store contains the persistence layer for both halves of the
// system: the agent's encrypted SQLite store and the server's PostgreSQL
// document store.
package store

import (
	"context"

	"github.com/fieldcare/clinsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// LocalDocumentRepository is the agent's durable document store. Payloads
// rest encrypted; envelope columns (id, kind, session, revision, dirty) stay
// cleartext so sync planning never needs the data key.
type LocalDocumentRepository interface {
	Save(ctx context.Context, docs ...models.StoredDocument) error
	Get(ctx context.Context, id string) (models.StoredDocument, error)
	GetByIDs(ctx context.Context, ids []string) ([]models.StoredDocument, error)
	GetAll(ctx context.Context) ([]models.StoredDocument, error)
	GetBySession(ctx context.Context, sessionID string) ([]models.StoredDocument, error)

	// GetPending returns documents modified since their last accepted push,
	// oldest edit first.
	GetPending(ctx context.Context) ([]models.StoredDocument, error)
	GetPendingBySession(ctx context.Context, sessionID string) ([]models.StoredDocument, error)
	CountPending(ctx context.Context) (int, error)

	// MarkSynced records an accepted push: the document takes the
	// server-assigned revision and drops its dirty flag.
	MarkSynced(ctx context.Context, id string, revision string) error
}

// SyncStateRepository persists orchestrator state that must survive agent
// restarts: the last known SyncInfo and the conflict record log.
type SyncStateRepository interface {
	SaveSyncInfo(ctx context.Context, info models.SyncInfo) error
	LoadSyncInfo(ctx context.Context) (models.SyncInfo, error)
	SaveConflicts(ctx context.Context, records []models.ConflictRecord) error
	LoadConflicts(ctx context.Context) ([]models.ConflictRecord, error)
}

// ServerDocumentRepository is the authoritative document store behind the
// sync endpoints. Revision tokens are assigned by the service layer; the
// repository only enforces the compare-and-swap on the base revision.
type ServerDocumentRepository interface {
	// CompareAndSwap writes doc under newRevision if the stored revision
	// still equals baseRevision. An empty baseRevision means "create": the
	// write fails with ErrRevisionMismatch if the document already exists.
	CompareAndSwap(ctx context.Context, doc models.Document, baseRevision, newRevision string) error

	// Write stores doc under newRevision unconditionally. Used for
	// authoritative merge results, which supersede whatever is stored.
	Write(ctx context.Context, doc models.Document, newRevision string) error

	GetDocument(ctx context.Context, id string) (models.Document, error)
	GetDocuments(ctx context.Context, ids []string) ([]models.Document, error)
	GetStates(ctx context.Context) ([]models.DocumentState, error)
}

// DeviceRepository stores registered field devices.
type DeviceRepository interface {
	CreateDevice(ctx context.Context, device models.Device) (models.Device, error)
	FindDevice(ctx context.Context, deviceID string) (models.Device, error)
}

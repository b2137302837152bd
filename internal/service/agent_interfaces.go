package service

import (
	"context"

	"github.com/fieldcare/clinsync/models"
)

//go:generate mockgen -source=agent_interfaces.go -destination=../mock/agent_service_mock.go -package=mock

// AgentDocumentService is the agent-side contract for capturing and reading
// clinical documents. Writes always land in the local store first and are
// marked pending; replication is the orchestrator's job.
type AgentDocumentService interface {
	// SetEncryptionKey stores the data key used for all subsequent payload
	// encryption and decryption. Called once after the device passphrase has
	// been verified.
	SetEncryptionKey(key []byte)

	// Create assigns a fresh id to doc, links session documents to
	// themselves, encrypts the payload, and saves it as pending.
	Create(ctx context.Context, doc models.Document) (models.Document, error)

	// Update re-encrypts and saves an edited document as pending. The
	// document keeps its last accepted revision; revisions only ever come
	// from the remote store.
	Update(ctx context.Context, doc models.Document) error

	Get(ctx context.Context, id string) (models.Document, error)
	GetAll(ctx context.Context) ([]models.Document, error)
	GetBySession(ctx context.Context, sessionID string) ([]models.Document, error)
}

// SyncOrchestrator owns the agent's replication lifecycle: the process-wide
// sync state machine, session-scoped sync, retries, and conflict handling.
type SyncOrchestrator interface {
	// Restore loads persisted sync state from the local store. Called once
	// at agent startup, before any sync activity.
	Restore(ctx context.Context) error

	// SetEncryptionKey stores the data key used to decrypt pending payloads
	// during sync and to re-encrypt merge results.
	SetEncryptionKey(key []byte)

	// SyncInfo returns a snapshot of the process-wide sync state.
	SyncInfo() models.SyncInfo

	// Online reports the last connectivity verdict.
	Online() bool

	// SetOnline records a connectivity change. Going offline flips the sync
	// status to offline; going online leaves triggering a sync to the
	// caller.
	SetOnline(ctx context.Context, online bool)

	// Sync runs one full replication cycle over every pending document,
	// retrying transient failures with exponential backoff. At most one full
	// sync runs at a time; a second call returns ErrSyncInProgress.
	Sync(ctx context.Context) error

	// ForceSync aborts a full cycle already in flight, waits for it to
	// unwind, and runs a fresh one with a full retry budget. The trigger
	// for getting out of a sticky error state.
	ForceSync(ctx context.Context) error

	// StopSync aborts every in-flight replication cycle and wipes the
	// plaintext staging cache. Connectivity state is left unchanged; an
	// aborted cycle surfaces as a cancelled error to its caller.
	StopSync()

	// SyncSession replicates only the pending documents of one session. At
	// most one attempt per session runs at a time.
	SyncSession(ctx context.Context, sessionID string) (models.SessionSyncResult, error)

	// SyncSessions replicates several sessions with bounded concurrency,
	// processing them in fixed groups. Results are returned in input order.
	SyncSessions(ctx context.Context, sessionIDs []string) ([]models.SessionSyncResult, error)

	// SessionStatus returns the recorded sync state of one session. The
	// second return is false if the session has never been synced.
	SessionStatus(sessionID string) (models.SessionSyncStatus, bool)

	// Conflicts returns the full conflict record log, resolved and not.
	Conflicts() []models.ConflictRecord

	// UnresolvedConflicts returns only the records still awaiting
	// resolution.
	UnresolvedConflicts() []models.ConflictRecord

	// ResolveConflict applies a manual resolution to an unresolved conflict
	// record: keep the local version, adopt the remote version, or re-run
	// the field-level merge.
	ResolveConflict(ctx context.Context, documentID string, resolution models.Resolution) error
}

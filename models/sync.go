package models

import "time"

// SyncStatus is the process-wide synchronization state.
type SyncStatus string

const (
	SyncStatusOffline SyncStatus = "offline"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusError   SyncStatus = "error"
)

// SyncInfo is the single process-wide sync aggregate. It is owned by the
// orchestrator, injected at construction, and persisted by the local store
// under a well-known key so the last known status survives restarts.
type SyncInfo struct {
	Status         SyncStatus `json:"status"`
	LastSyncTime   *time.Time `json:"last_sync_time,omitempty"`
	PendingChanges int        `json:"pending_changes"`
	LastError      string     `json:"last_error,omitempty"`
}

// SessionStatus is the per-session synchronization state.
type SessionStatus string

const (
	SessionStatusPending SessionStatus = "pending"
	SessionStatusSyncing SessionStatus = "syncing"
	SessionStatusSynced  SessionStatus = "synced"
	SessionStatusError   SessionStatus = "error"
)

// SessionSyncStatus tracks sync progress for one clinical session
// independently of the process-wide status. Created on the first attempt for
// the session, mutated on every attempt, never deleted within the process
// lifetime.
type SessionSyncStatus struct {
	SessionID        string        `json:"session_id"`
	Status           SessionStatus `json:"status"`
	LastAttempt      time.Time     `json:"last_attempt,omitzero"`
	Error            string        `json:"error,omitempty"`
	DocumentsPending int           `json:"documents_pending"`
}

// SessionSyncResult is the outcome of one session-scoped sync cycle.
type SessionSyncResult struct {
	Success         bool          `json:"success"`
	SessionID       string        `json:"session_id"`
	DocumentsSynced int           `json:"documents_synced"`
	Errors          []string      `json:"errors,omitempty"`
	Duration        time.Duration `json:"duration"`
}

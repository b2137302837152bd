package models

import "time"

// Resolution names the outcome applied to a conflict record.
type Resolution string

const (
	ResolutionLocal  Resolution = "local"
	ResolutionRemote Resolution = "remote"
	ResolutionMerge  Resolution = "merge"
)

// ConflictRecord captures one detected divergence between the local and
// remote revision of a document. Records are append-only: they are created
// when a push reports a conflicting remote revision and mutated only by
// resolution, never deleted, so the history of disagreements stays auditable.
type ConflictRecord struct {
	// ID matches the conflicted document's id.
	ID        string `json:"id"`
	SessionID string `json:"session_id,omitempty"`

	LocalRevision  string `json:"local_revision"`
	RemoteRevision string `json:"remote_revision"`

	LocalDocument  Document `json:"local_document"`
	RemoteDocument Document `json:"remote_document"`

	Resolved   bool       `json:"resolved"`
	Resolution Resolution `json:"resolution,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`

	// Note records strategy fallbacks applied during an automatic merge
	// (e.g. a type mismatch that forced remote-wins for one field).
	Note string `json:"note,omitempty"`

	DetectedAt time.Time `json:"detected_at"`
}

// SPDX-License-Identifier: Apache-2.0

package models

import "time"

// PushRequest is sent by an agent to replicate a batch of staged documents.
// BaseRevisions carries, per document id, the revision the agent believes is
// current on the server; the server compares it against its own record to
// detect divergence before accepting the write.
type PushRequest struct {
	Documents []Document `json:"documents"`

	// BaseRevisions maps document id to the last revision the agent saw for
	// it. A missing entry means the agent has never synced the document.
	BaseRevisions map[string]string `json:"base_revisions,omitempty"`

	// Length is the total number of entries in Documents.
	Length int `json:"length"`
}

// PushOutcomeStatus classifies the server's per-document push verdict.
type PushOutcomeStatus string

const (
	PushAccepted PushOutcomeStatus = "accepted"
	PushConflict PushOutcomeStatus = "conflict"
	PushError    PushOutcomeStatus = "error"
)

// PushOutcome is the server's verdict for a single pushed document.
type PushOutcome struct {
	ID     string            `json:"id"`
	Status PushOutcomeStatus `json:"status"`

	// NewRevision is set when Status is accepted.
	NewRevision string `json:"new_revision,omitempty"`

	// RemoteDocument carries the server's current version when Status is
	// conflict, so the agent can resolve without a second round trip.
	RemoteDocument *Document `json:"remote_document,omitempty"`

	Error string `json:"error,omitempty"`
}

// PushResponse is the server's reply to a PushRequest.
type PushResponse struct {
	Outcomes []PushOutcome `json:"outcomes"`
	Length   int           `json:"length"`
}

// AuthoritativeWriteRequest asks the server to accept the document as the
// authoritative next revision. Unlike a push there is no base-revision
// comparison: the write is the agreed merge result, not yet another edit to
// layer on top of the chain.
type AuthoritativeWriteRequest struct {
	Document Document `json:"document"`
}

// AuthoritativeWriteResponse returns the revision assigned to the
// authoritative write.
type AuthoritativeWriteResponse struct {
	Revision string `json:"revision"`
}

// FetchRequest asks the server for full documents by id.
type FetchRequest struct {
	IDs    []string `json:"ids"`
	Length int      `json:"length"`
}

// FetchResponse carries the requested documents.
type FetchResponse struct {
	Documents []Document `json:"documents"`
	Length    int        `json:"length"`
}

// DocumentState is a lightweight revision descriptor, used to compare server
// and agent state without shipping payloads.
type DocumentState struct {
	ID        string       `json:"id"`
	Kind      DocumentKind `json:"kind"`
	SessionID string       `json:"session_id,omitempty"`
	Revision  string       `json:"revision"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// StatesResponse lists revision descriptors for every document visible to the
// authenticated device.
type StatesResponse struct {
	States []DocumentState `json:"states"`
	Length int             `json:"length"`
}

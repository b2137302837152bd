package models

import "time"

// DocumentKind discriminates the known clinical document kinds that share the
// common sync envelope. A session groups one session document with any number
// of related form-instance, timeline-event, referral and AI-request documents.
type DocumentKind string

const (
	KindSession       DocumentKind = "session"
	KindFormInstance  DocumentKind = "form_instance"
	KindTimelineEvent DocumentKind = "timeline_event"
	KindReferral      DocumentKind = "referral"
	KindAIRequest     DocumentKind = "ai_request"
)

// Document is the unit of synchronization. ID is globally unique and stable
// across revisions; Revision is an opaque token assigned by whichever store
// last accepted a write and changes on every accepted write.
type Document struct {
	// ID never changes across the document's lifetime.
	ID string `json:"id"`

	// Kind tags the payload shape; see the Kind* constants.
	Kind DocumentKind `json:"kind"`

	// SessionID links the document to its clinical encounter. For documents
	// of KindSession it equals ID.
	SessionID string `json:"session_id,omitempty"`

	// Revision is the opaque version token of the last accepted write.
	// Empty for documents that have never been pushed.
	Revision string `json:"revision,omitempty"`

	// UpdatedAt is the wall-clock time of the last local edit.
	UpdatedAt time.Time `json:"updated_at"`

	// Fields holds the kind-specific payload. Field-level merge strategies
	// in the resolver address entries of this map by name.
	Fields map[string]any `json:"fields,omitempty"`
}

// Clone returns a copy of the document with its own Fields map, so that
// callers can mutate the copy without aliasing the original payload.
func (d Document) Clone() Document {
	out := d
	if d.Fields != nil {
		out.Fields = make(map[string]any, len(d.Fields))
		for k, v := range d.Fields {
			out.Fields[k] = v
		}
	}
	return out
}

// StoredDocument is a document as it rests in the local store: either an
// opaque ciphertext blob or plaintext fields, decided once at read time by
// the Encrypted flag. Identifiers and revisions are always cleartext so the
// sync engine can plan without decrypting.
type StoredDocument struct {
	ID        string
	Kind      DocumentKind
	SessionID string
	Revision  string
	UpdatedAt time.Time

	// Encrypted selects which of the two payload representations is set.
	Encrypted  bool
	Ciphertext []byte
	Fields     map[string]any

	// Dirty marks the document as locally modified since the last accepted
	// push. Dirty documents are what a full sync cycle selects.
	Dirty bool
}

// Plaintext converts a non-encrypted stored document into its wire form.
func (s StoredDocument) Plaintext() Document {
	return Document{
		ID:        s.ID,
		Kind:      s.Kind,
		SessionID: s.SessionID,
		Revision:  s.Revision,
		UpdatedAt: s.UpdatedAt,
		Fields:    s.Fields,
	}
}

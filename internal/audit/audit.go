// SPDX-License-Identifier: Apache-2.0

// Package audit defines the append-only event trail of the sync engine.
//
// Every orchestrator state transition and every conflict resolution emits
// one event. The orchestrator treats the sink as fire-and-forget: a failed
// append is logged locally but never blocks or rolls back a sync operation,
// and events are not buffered or retried.
package audit

import (
	"context"
	"time"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/utils"
)

// EventKind classifies audit events.
type EventKind string

const (
	KindStateTransition  EventKind = "state_transition"
	KindPushAccepted     EventKind = "push_accepted"
	KindConflictDetected EventKind = "conflict_detected"
	KindConflictResolved EventKind = "conflict_resolved"
	KindSessionSync      EventKind = "session_sync"
)

// Event is one audit record. DocumentID or SessionID may be empty depending
// on the kind; revision fields are empty for process-level transitions.
type Event struct {
	ID             string    `json:"id"`
	Kind           EventKind `json:"kind"`
	DocumentID     string    `json:"document_id,omitempty"`
	SessionID      string    `json:"session_id,omitempty"`
	BeforeRevision string    `json:"before_revision,omitempty"`
	AfterRevision  string    `json:"after_revision,omitempty"`
	Detail         string    `json:"detail,omitempty"`
	At             time.Time `json:"at"`
}

// Sink receives audit events. Implementations must tolerate concurrent
// appends.
type Sink interface {
	Append(ctx context.Context, event Event) error
}

// NewEvent constructs an event with a fresh id and the current timestamp.
func NewEvent(kind EventKind) Event {
	return Event{
		ID:   utils.NewUUIDGenerator().Generate(),
		Kind: kind,
		At:   time.Now(),
	}
}

// logSink is the default Sink: it writes every event as one structured log
// entry, which keeps the audit trail greppable alongside the agent logs.
type logSink struct {
	logger *logger.Logger
}

// NewLogSink returns a Sink backed by the given logger.
func NewLogSink(log *logger.Logger) Sink {
	return &logSink{logger: log}
}

func (s *logSink) Append(_ context.Context, event Event) error {
	s.logger.Info().
		Str("audit_id", event.ID).
		Str("kind", string(event.Kind)).
		Str("document_id", event.DocumentID).
		Str("session_id", event.SessionID).
		Str("before_revision", event.BeforeRevision).
		Str("after_revision", event.AfterRevision).
		Str("detail", event.Detail).
		Time("at", event.At).
		Msg("audit event")
	return nil
}

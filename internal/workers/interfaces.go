// Package workers holds the agent's background jobs: the periodic sync job
// and the connectivity watcher. Both run on their own goroutine between
// Start and Stop; the Workers aggregate manages them as a unit.
package workers

import "context"

// Worker is a background job with an explicit lifecycle. Start must not
// block; implementations spawn their goroutine internally. Stop blocks until
// the goroutine has fully exited and is safe to call on a worker that was
// never started.
type Worker interface {
	Start(ctx context.Context)
	Stop()
}

// Syncer triggers replication cycles. Implemented by the sync orchestrator.
type Syncer interface {
	Sync(ctx context.Context) error
}

// ConnectivityReporter receives reachability verdicts and reports the last
// one. Implemented by the sync orchestrator.
type ConnectivityReporter interface {
	Online() bool
	SetOnline(ctx context.Context, online bool)
}

// Prober checks remote store reachability. Implemented by the remote store
// adapter.
type Prober interface {
	Ping(ctx context.Context) error
}

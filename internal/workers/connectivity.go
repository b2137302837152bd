package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/fieldcare/clinsync/internal/config"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/service"
)

// ConnectivityWatcher probes remote store reachability on a fixed cadence
// and reports verdict changes to the orchestrator. A transition from offline
// to online additionally triggers a full sync, so connectivity recovery
// drains the pending backlog without waiting for the periodic job.
type ConnectivityWatcher struct {
	prober   Prober
	reporter ConnectivityReporter
	syncer   Syncer
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewConnectivityWatcher creates a ConnectivityWatcher. A non-positive
// interval falls back to the default probe cadence.
func NewConnectivityWatcher(prober Prober, reporter ConnectivityReporter, syncer Syncer, interval time.Duration, log *logger.Logger) *ConnectivityWatcher {
	if interval <= 0 {
		interval = config.DefaultProbeInterval
	}
	return &ConnectivityWatcher{
		prober:   prober,
		reporter: reporter,
		syncer:   syncer,
		interval: interval,
		logger:   log,
	}
}

// Start probes once immediately, then launches the ticker goroutine. A
// previously running watcher is stopped first.
func (w *ConnectivityWatcher) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		w.probe(watchCtx)

		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-watchCtx.Done():
				return
			case <-t.C:
				w.probe(watchCtx)
			}
		}
	}()
}

func (w *ConnectivityWatcher) probe(ctx context.Context) {
	online := w.prober.Ping(ctx) == nil
	if online == w.reporter.Online() {
		return
	}

	w.reporter.SetOnline(ctx, online)
	if !online {
		return
	}

	// connectivity just came back: drain pending changes now
	if err := w.syncer.Sync(ctx); err != nil && !errors.Is(err, service.ErrSyncInProgress) {
		w.logger.Err(err).Msg("sync after reconnect failed")
	}
}

// Stop cancels the watcher goroutine and blocks until it has exited. Safe to
// call when the watcher is not running.
func (w *ConnectivityWatcher) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

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

// SyncJob triggers a full replication cycle on a fixed cadence. A cycle that
// finds the agent offline or a sync already in flight is simply skipped; the
// next tick tries again.
type SyncJob struct {
	syncer   Syncer
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSyncJob creates a SyncJob. A non-positive interval falls back to the
// default cadence. The job is idle until Start is called.
func NewSyncJob(syncer Syncer, interval time.Duration, log *logger.Logger) *SyncJob {
	if interval <= 0 {
		interval = config.DefaultSyncInterval
	}
	return &SyncJob{syncer: syncer, interval: interval, logger: log}
}

// Start launches the ticker goroutine. A previously running job is stopped
// first. The goroutine exits when ctx is cancelled or Stop is called.
func (j *SyncJob) Start(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.runOnce(jobCtx)
			}
		}
	}()
}

func (j *SyncJob) runOnce(ctx context.Context) {
	err := j.syncer.Sync(ctx)
	switch {
	case err == nil:
	case errors.Is(err, service.ErrOffline), errors.Is(err, service.ErrSyncInProgress):
		j.logger.Debug().Err(err).Msg("periodic sync skipped")
	default:
		j.logger.Err(err).Msg("periodic sync failed")
	}
}

// Stop cancels the ticker goroutine and blocks until it has exited. Safe to
// call when the job is not running.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

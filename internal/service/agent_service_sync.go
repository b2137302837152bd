package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fieldcare/clinsync/internal/adapter"
	"github.com/fieldcare/clinsync/internal/audit"
	"github.com/fieldcare/clinsync/internal/auth"
	"github.com/fieldcare/clinsync/internal/config"
	"github.com/fieldcare/clinsync/internal/crypto"
	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/internal/resolver"
	"github.com/fieldcare/clinsync/internal/staging"
	"github.com/fieldcare/clinsync/internal/store"
	"github.com/fieldcare/clinsync/models"
)

// syncOrchestrator is the concrete SyncOrchestrator. One instance owns the
// process-wide SyncInfo aggregate, the session status map, and the conflict
// record log; everything it tracks in memory is mirrored to the local store
// so it survives restarts.
type syncOrchestrator struct {
	local    store.LocalDocumentRepository
	state    store.SyncStateRepository
	remote   adapter.RemoteStore
	creds    auth.CredentialProvider
	staging  *staging.Cache
	resolver *resolver.Resolver
	cipher   crypto.Cipher
	audit    audit.Sink
	cfg      config.Sync
	logger   *logger.Logger

	mu              sync.Mutex
	key             []byte
	info            models.SyncInfo
	online          bool
	fullInFlight    bool
	fullCancel      context.CancelFunc
	fullDone        chan struct{}
	sessionInFlight map[string]struct{}
	sessions        map[string]*models.SessionSyncStatus
	conflicts       []models.ConflictRecord

	// cancels holds one CancelFunc per in-flight cycle so a connectivity
	// loss can abort all of them at once.
	cancels      map[uint64]context.CancelFunc
	nextCancelID uint64
}

// cycleResult is the outcome of one sync attempt. Errors holds per-document
// failures that did not abort the attempt; a transport-level failure is
// returned as an error instead.
type cycleResult struct {
	Synced int
	Errors []string
}

func NewSyncOrchestrator(
	local store.LocalDocumentRepository,
	state store.SyncStateRepository,
	remote adapter.RemoteStore,
	creds auth.CredentialProvider,
	stagingCache *staging.Cache,
	res *resolver.Resolver,
	cipher crypto.Cipher,
	sink audit.Sink,
	cfg config.Sync,
	log *logger.Logger,
) SyncOrchestrator {
	return &syncOrchestrator{
		local:           local,
		state:           state,
		remote:          remote,
		creds:           creds,
		staging:         stagingCache,
		resolver:        res,
		cipher:          cipher,
		audit:           sink,
		cfg:             cfg,
		logger:          log,
		info:            models.SyncInfo{Status: models.SyncStatusOffline},
		sessionInFlight: make(map[string]struct{}),
		sessions:        make(map[string]*models.SessionSyncStatus),
		cancels:         make(map[uint64]context.CancelFunc),
	}
}

func (o *syncOrchestrator) Restore(ctx context.Context) error {
	info, err := o.state.LoadSyncInfo(ctx)
	if err != nil {
		return fmt.Errorf("restore sync info: %w", err)
	}

	// a persisted "syncing" means the previous process died mid-cycle
	if info.Status == models.SyncStatusSyncing {
		info.Status = models.SyncStatusOffline
	}

	conflicts, err := o.state.LoadConflicts(ctx)
	if err != nil {
		return fmt.Errorf("restore conflicts: %w", err)
	}

	pending, err := o.local.CountPending(ctx)
	if err != nil {
		return fmt.Errorf("restore pending count: %w", err)
	}
	info.PendingChanges = pending

	o.mu.Lock()
	o.info = info
	o.conflicts = conflicts
	o.mu.Unlock()

	o.logger.Info().
		Str("status", string(info.Status)).
		Int("pending", pending).
		Int("conflicts", len(conflicts)).
		Msg("sync state restored")

	return nil
}

func (o *syncOrchestrator) SetEncryptionKey(key []byte) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.key = key
}

func (o *syncOrchestrator) encryptionKey() []byte {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.key
}

func (o *syncOrchestrator) SyncInfo() models.SyncInfo {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.info
}

func (o *syncOrchestrator) Online() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.online
}

func (o *syncOrchestrator) SetOnline(ctx context.Context, online bool) {
	o.mu.Lock()
	if o.online == online {
		o.mu.Unlock()
		return
	}
	o.online = online
	var stop []context.CancelFunc
	if !online {
		for _, cancel := range o.cancels {
			stop = append(stop, cancel)
		}
	}
	o.mu.Unlock()

	if !online {
		// abort in-flight cycles and wipe staged plaintext; it must not
		// outlive the connection
		for _, cancel := range stop {
			cancel()
		}
		o.staging.Clear()
		o.transition(ctx, models.SyncStatusOffline, "")
	}

	o.logger.Info().Bool("online", online).Msg("connectivity changed")
}

// StopSync aborts in-flight cycles and wipes staged plaintext without
// touching the connectivity verdict.
func (o *syncOrchestrator) StopSync() {
	o.mu.Lock()
	stop := make([]context.CancelFunc, 0, len(o.cancels))
	for _, cancel := range o.cancels {
		stop = append(stop, cancel)
	}
	o.mu.Unlock()

	for _, cancel := range stop {
		cancel()
	}
	o.staging.Clear()

	o.logger.Info().Int("cancelled", len(stop)).Msg("sync stopped")
}

// registerCancel tracks an in-flight cycle's CancelFunc so a connectivity
// loss can abort it. The returned release must be called when the cycle
// ends.
func (o *syncOrchestrator) registerCancel(cancel context.CancelFunc) (release func()) {
	o.mu.Lock()
	o.nextCancelID++
	id := o.nextCancelID
	o.cancels[id] = cancel
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.cancels, id)
		o.mu.Unlock()
		cancel()
	}
}

// Sync runs one full replication cycle. Concurrent calls are rejected rather
// than queued: the caller that lost the race can read SyncInfo instead.
func (o *syncOrchestrator) Sync(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)

	o.mu.Lock()
	if o.fullInFlight {
		o.mu.Unlock()
		cancel()
		return ErrSyncInProgress
	}
	if !o.online {
		o.mu.Unlock()
		cancel()
		return ErrOffline
	}
	o.fullInFlight = true
	o.fullCancel = cancel
	o.fullDone = make(chan struct{})
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.fullInFlight = false
		o.fullCancel = nil
		close(o.fullDone)
		o.mu.Unlock()
	}()

	defer o.registerCancel(cancel)()

	o.transition(ctx, models.SyncStatusSyncing, "")

	res, err := o.syncWithRetry(runCtx, "", o.cfg.PushTimeout)
	if err != nil {
		// a connectivity loss already moved the status to offline
		if errors.Is(err, context.Canceled) && !o.Online() {
			return err
		}
		o.transition(ctx, models.SyncStatusError, err.Error())
		return err
	}

	if len(res.Errors) > 0 {
		msg := strings.Join(res.Errors, "; ")
		o.transition(ctx, models.SyncStatusError, msg)
		return errors.New(msg)
	}

	o.finishSynced(ctx)
	return nil
}

// ForceSync aborts a full cycle already in flight, waits for it to unwind,
// and runs a fresh one with a full retry budget. With nothing in flight it
// behaves like Sync.
func (o *syncOrchestrator) ForceSync(ctx context.Context) error {
	o.mu.Lock()
	cancel := o.fullCancel
	done := o.fullDone
	if !o.fullInFlight {
		done = nil
	}
	o.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		select {
		case <-done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return o.Sync(ctx)
}

func (o *syncOrchestrator) SyncSession(ctx context.Context, sessionID string) (models.SessionSyncResult, error) {
	if sessionID == "" {
		return models.SessionSyncResult{}, ErrInvalidDataProvided
	}

	o.mu.Lock()
	if !o.online {
		o.mu.Unlock()
		return models.SessionSyncResult{SessionID: sessionID}, ErrOffline
	}
	if _, busy := o.sessionInFlight[sessionID]; busy {
		o.mu.Unlock()
		return models.SessionSyncResult{SessionID: sessionID}, ErrSessionSyncInProgress
	}
	o.sessionInFlight[sessionID] = struct{}{}
	status := o.sessionStatusLocked(sessionID)
	status.Status = models.SessionStatusSyncing
	status.LastAttempt = time.Now()
	status.Error = ""
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		delete(o.sessionInFlight, sessionID)
		o.mu.Unlock()
	}()

	runCtx, cancel := context.WithCancel(ctx)
	defer o.registerCancel(cancel)()

	start := time.Now()
	res, err := o.syncWithRetry(runCtx, sessionID, o.cfg.SessionPushTimeout)

	result := models.SessionSyncResult{
		SessionID:       sessionID,
		DocumentsSynced: res.Synced,
		Duration:        time.Since(start),
	}

	remaining := 0
	if pending, pendErr := o.local.GetPendingBySession(ctx, sessionID); pendErr == nil {
		remaining = len(pending)
	}

	o.mu.Lock()
	status = o.sessionStatusLocked(sessionID)
	status.DocumentsPending = remaining
	switch {
	case err != nil:
		status.Status = models.SessionStatusError
		status.Error = err.Error()
		result.Errors = append(result.Errors, err.Error())
	case len(res.Errors) > 0:
		status.Status = models.SessionStatusError
		status.Error = strings.Join(res.Errors, "; ")
		result.Errors = res.Errors
	default:
		status.Status = models.SessionStatusSynced
		result.Success = true
	}
	o.mu.Unlock()

	event := audit.NewEvent(audit.KindSessionSync)
	event.SessionID = sessionID
	event.Detail = fmt.Sprintf("synced=%d pending=%d success=%t", result.DocumentsSynced, remaining, result.Success)
	_ = o.audit.Append(ctx, event)

	return result, err
}

// SyncSessions processes sessionIDs in fixed groups of the configured
// concurrency: the next group starts only after every sync in the current
// group has finished.
func (o *syncOrchestrator) SyncSessions(ctx context.Context, sessionIDs []string) ([]models.SessionSyncResult, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}

	group := o.cfg.SessionConcurrency
	if group <= 0 {
		group = config.DefaultSessionConcurrency
	}

	results := make([]models.SessionSyncResult, len(sessionIDs))
	for begin := 0; begin < len(sessionIDs); begin += group {
		end := begin + group
		if end > len(sessionIDs) {
			end = len(sessionIDs)
		}

		var wg sync.WaitGroup
		for i := begin; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				result, err := o.SyncSession(ctx, sessionIDs[i])
				if err != nil && len(result.Errors) == 0 {
					result.Errors = append(result.Errors, err.Error())
				}
				results[i] = result
			}(i)
		}
		wg.Wait()

		if err := ctx.Err(); err != nil {
			return results, err
		}
	}

	return results, nil
}

func (o *syncOrchestrator) SessionStatus(sessionID string) (models.SessionSyncStatus, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	status, ok := o.sessions[sessionID]
	if !ok {
		return models.SessionSyncStatus{}, false
	}
	return *status, true
}

func (o *syncOrchestrator) Conflicts() []models.ConflictRecord {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]models.ConflictRecord, len(o.conflicts))
	copy(out, o.conflicts)
	return out
}

func (o *syncOrchestrator) UnresolvedConflicts() []models.ConflictRecord {
	o.mu.Lock()
	defer o.mu.Unlock()

	var out []models.ConflictRecord
	for _, record := range o.conflicts {
		if !record.Resolved {
			out = append(out, record)
		}
	}
	return out
}

func (o *syncOrchestrator) ResolveConflict(ctx context.Context, documentID string, resolution models.Resolution) error {
	o.mu.Lock()
	record, found := o.unresolvedLocked(documentID)
	o.mu.Unlock()
	if !found {
		return ErrConflictNotFound
	}

	if err := o.creds.EnsureValid(ctx); err != nil {
		return err
	}

	key := o.encryptionKey()
	var note string

	switch resolution {
	case models.ResolutionLocal:
		doc := record.LocalDocument
		revision, err := o.remote.WriteAuthoritative(ctx, doc)
		if err != nil {
			return fmt.Errorf("write local version authoritatively: %w", err)
		}
		doc.Revision = revision
		if err = o.saveClean(ctx, key, doc); err != nil {
			return err
		}

	case models.ResolutionRemote:
		if err := o.saveClean(ctx, key, record.RemoteDocument); err != nil {
			return err
		}

	case models.ResolutionMerge:
		merged, notes := o.resolver.Resolve(record.LocalDocument, record.RemoteDocument)
		revision, err := o.remote.WriteAuthoritative(ctx, merged)
		if err != nil {
			return fmt.Errorf("write merge result authoritatively: %w", err)
		}
		merged.Revision = revision
		if err = o.saveClean(ctx, key, merged); err != nil {
			return err
		}
		note = strings.Join(notes, "; ")

	default:
		return ErrInvalidDataProvided
	}

	o.markResolved(ctx, documentID, resolution, note)
	return nil
}

// ── sync cycle internals ────────────────────────────────────────────────────

// syncWithRetry runs attempts until one succeeds or the budget runs out.
// RetryMaxAttempts bounds the retries that follow the initial attempt, so a
// budget of five yields up to six attempts with delays of 5s, 10s, 20s, 40s
// and 60s at the defaults.
func (o *syncOrchestrator) syncWithRetry(ctx context.Context, sessionID string, timeout time.Duration) (cycleResult, error) {
	maxRetries := o.cfg.RetryMaxAttempts
	if maxRetries <= 0 {
		maxRetries = config.DefaultRetryMaxAttempts
	}
	base := o.cfg.RetryBaseDelay
	if base <= 0 {
		base = config.DefaultRetryBaseDelay
	}
	maxDelay := o.cfg.RetryMaxDelay
	if maxDelay <= 0 {
		maxDelay = config.DefaultRetryMaxDelay
	}

	var lastErr error
	retries := 0
	reloggedIn := false
	for {
		attemptCtx := ctx
		cancel := context.CancelFunc(func() {})
		if timeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, timeout)
		}
		res, err := o.attempt(attemptCtx, sessionID)
		cancel()

		if err == nil {
			return res, nil
		}
		lastErr = err

		if adapter.IsAuthError(err) {
			// a rejected credential is not a transient fault: allow one
			// immediate re-login, then give up without backoff
			if reloggedIn {
				break
			}
			o.creds.Invalidate()
			reloggedIn = true
			continue
		}
		if !adapter.IsRetriable(err) {
			break
		}
		if retries >= maxRetries {
			break
		}

		retries++
		delay := backoffDelay(base, maxDelay, retries)
		o.logger.Debug().
			Int("retry", retries).
			Dur("delay", delay).
			Str("session_id", sessionID).
			Msg("retrying sync after backoff")

		select {
		case <-ctx.Done():
			return cycleResult{}, ctx.Err()
		case <-time.After(delay):
		}
	}

	return cycleResult{}, lastErr
}

// attempt runs one pull / replicate / resolve pass. Documents staged for
// this attempt are removed from the plaintext cache before it returns,
// whatever the outcome.
func (o *syncOrchestrator) attempt(ctx context.Context, sessionID string) (cycleResult, error) {
	var res cycleResult

	if err := o.creds.EnsureValid(ctx); err != nil {
		return res, err
	}

	key := o.encryptionKey()

	pulled, pullErrs, err := o.refreshFromRemote(ctx, key, sessionID)
	if err != nil {
		return res, err
	}
	res.Errors = append(res.Errors, pullErrs...)
	if pulled > 0 {
		o.logger.Debug().Int("pulled", pulled).Str("session_id", sessionID).Msg("pulled remote updates")
	}

	pending, err := o.pending(ctx, sessionID)
	if err != nil {
		return res, err
	}
	if len(pending) == 0 {
		return res, nil
	}

	staged := make([]string, 0, len(pending))
	defer func() {
		for _, id := range staged {
			o.staging.Remove(id)
		}
	}()

	baseRevisions := make(map[string]string)
	for _, item := range pending {
		doc, openErr := openDocument(o.cipher, key, item)
		if openErr != nil {
			res.Errors = append(res.Errors, openErr.Error())
			continue
		}
		o.staging.Add(doc)
		staged = append(staged, doc.ID)
		if item.Revision != "" {
			baseRevisions[doc.ID] = item.Revision
		}
	}

	// read the batch back from the cache: anything it evicted under its
	// bound stays pending and ships in a later cycle
	batch := make([]models.Document, 0, len(staged))
	for _, id := range staged {
		entry, ok := o.staging.Get(id)
		if !ok {
			continue
		}
		batch = append(batch, entry.Document)
	}
	if len(batch) == 0 {
		return res, nil
	}

	outcomes, err := o.remote.Push(ctx, batch, baseRevisions)
	if err != nil {
		return res, fmt.Errorf("push batch: %w", err)
	}

	for _, outcome := range outcomes {
		switch outcome.Status {
		case models.PushAccepted:
			if markErr := o.local.MarkSynced(ctx, outcome.ID, outcome.NewRevision); markErr != nil {
				res.Errors = append(res.Errors, markErr.Error())
				continue
			}
			event := audit.NewEvent(audit.KindPushAccepted)
			event.DocumentID = outcome.ID
			event.BeforeRevision = baseRevisions[outcome.ID]
			event.AfterRevision = outcome.NewRevision
			_ = o.audit.Append(ctx, event)
			res.Synced++

		case models.PushConflict:
			if outcome.RemoteDocument == nil {
				res.Errors = append(res.Errors, fmt.Sprintf("document %s: conflict outcome without remote document", outcome.ID))
				continue
			}
			if mergeErr := o.autoResolve(ctx, key, outcome.ID, *outcome.RemoteDocument); mergeErr != nil {
				res.Errors = append(res.Errors, mergeErr.Error())
				continue
			}
			res.Synced++

		case models.PushError:
			res.Errors = append(res.Errors, fmt.Sprintf("document %s: %s", outcome.ID, outcome.Error))
		}
	}

	return res, nil
}

// autoResolve handles one conflict outcome: record it, merge field by field,
// write the merge authoritatively, and store the result locally under the
// server-assigned revision.
func (o *syncOrchestrator) autoResolve(ctx context.Context, key []byte, documentID string, remote models.Document) error {
	stored, err := o.local.Get(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load conflicted document %s: %w", documentID, err)
	}
	local, err := openDocument(o.cipher, key, stored)
	if err != nil {
		return err
	}

	record := models.ConflictRecord{
		ID:             documentID,
		SessionID:      local.SessionID,
		LocalRevision:  local.Revision,
		RemoteRevision: remote.Revision,
		LocalDocument:  local,
		RemoteDocument: remote,
		DetectedAt:     time.Now(),
	}
	o.appendConflict(ctx, record)

	detected := audit.NewEvent(audit.KindConflictDetected)
	detected.DocumentID = documentID
	detected.SessionID = local.SessionID
	detected.BeforeRevision = local.Revision
	detected.AfterRevision = remote.Revision
	_ = o.audit.Append(ctx, detected)

	merged, notes := o.resolver.Resolve(local, remote)

	revision, err := o.remote.WriteAuthoritative(ctx, merged)
	if err != nil {
		return fmt.Errorf("write merge result for %s: %w", documentID, err)
	}
	merged.Revision = revision

	if err = o.saveClean(ctx, key, merged); err != nil {
		return err
	}

	o.markResolved(ctx, documentID, models.ResolutionMerge, strings.Join(notes, "; "))
	return nil
}

// refreshFromRemote compares the remote revision ledger against the local
// store and pulls down documents the agent is missing or holds at a stale
// revision. Dirty documents are left alone; divergence there surfaces as a
// push conflict instead. Returns the pulled count and per-document save
// failures.
func (o *syncOrchestrator) refreshFromRemote(ctx context.Context, key []byte, sessionID string) (int, []string, error) {
	states, err := o.remote.States(ctx)
	if err != nil {
		return 0, nil, fmt.Errorf("fetch remote states: %w", err)
	}

	candidates := make([]models.DocumentState, 0, len(states))
	ids := make([]string, 0, len(states))
	for _, state := range states {
		if sessionID != "" && state.SessionID != sessionID {
			continue
		}
		candidates = append(candidates, state)
		ids = append(ids, state.ID)
	}
	if len(ids) == 0 {
		return 0, nil, nil
	}

	known, err := o.local.GetByIDs(ctx, ids)
	if err != nil {
		return 0, nil, fmt.Errorf("load local revisions: %w", err)
	}
	local := make(map[string]models.StoredDocument, len(known))
	for _, doc := range known {
		local[doc.ID] = doc
	}

	var stale []string
	for _, state := range candidates {
		doc, ok := local[state.ID]
		if ok && (doc.Dirty || doc.Revision == state.Revision) {
			continue
		}
		stale = append(stale, state.ID)
	}
	if len(stale) == 0 {
		return 0, nil, nil
	}

	docs, err := o.remote.Fetch(ctx, stale)
	if err != nil {
		return 0, nil, fmt.Errorf("fetch remote documents: %w", err)
	}

	pulled := 0
	var failures []string
	for _, doc := range docs {
		if saveErr := o.saveClean(ctx, key, doc); saveErr != nil {
			failures = append(failures, saveErr.Error())
			continue
		}
		pulled++
	}
	return pulled, failures, nil
}

func (o *syncOrchestrator) pending(ctx context.Context, sessionID string) ([]models.StoredDocument, error) {
	if sessionID == "" {
		return o.local.GetPending(ctx)
	}
	return o.local.GetPendingBySession(ctx, sessionID)
}

// saveClean persists a document that is in agreement with the remote store:
// sealed under the data key and not pending.
func (o *syncOrchestrator) saveClean(ctx context.Context, key []byte, doc models.Document) error {
	stored, err := sealDocument(o.cipher, key, doc, false)
	if err != nil {
		return err
	}
	if err = o.local.Save(ctx, stored); err != nil {
		return fmt.Errorf("save resolved document %s: %w", doc.ID, err)
	}
	return nil
}

// ── state bookkeeping ───────────────────────────────────────────────────────

func (o *syncOrchestrator) transition(ctx context.Context, status models.SyncStatus, lastError string) {
	pending, err := o.local.CountPending(ctx)
	if err != nil {
		pending = -1
	}

	o.mu.Lock()
	previous := o.info.Status
	o.info.Status = status
	o.info.LastError = lastError
	if pending >= 0 {
		o.info.PendingChanges = pending
	}
	info := o.info
	o.mu.Unlock()

	if saveErr := o.state.SaveSyncInfo(ctx, info); saveErr != nil {
		o.logger.Err(saveErr).Msg("failed to persist sync info")
	}

	if previous != status {
		event := audit.NewEvent(audit.KindStateTransition)
		event.Detail = fmt.Sprintf("%s -> %s", previous, status)
		_ = o.audit.Append(ctx, event)
	}
}

func (o *syncOrchestrator) finishSynced(ctx context.Context) {
	now := time.Now()

	o.mu.Lock()
	o.info.LastSyncTime = &now
	o.mu.Unlock()

	o.transition(ctx, models.SyncStatusSynced, "")
}

// sessionStatusLocked returns the mutable status entry for sessionID,
// creating it on first use. Caller holds o.mu.
func (o *syncOrchestrator) sessionStatusLocked(sessionID string) *models.SessionSyncStatus {
	status, ok := o.sessions[sessionID]
	if !ok {
		status = &models.SessionSyncStatus{
			SessionID: sessionID,
			Status:    models.SessionStatusPending,
		}
		o.sessions[sessionID] = status
	}
	return status
}

// unresolvedLocked finds the most recent unresolved record for documentID.
// Caller holds o.mu.
func (o *syncOrchestrator) unresolvedLocked(documentID string) (models.ConflictRecord, bool) {
	for i := len(o.conflicts) - 1; i >= 0; i-- {
		if o.conflicts[i].ID == documentID && !o.conflicts[i].Resolved {
			return o.conflicts[i], true
		}
	}
	return models.ConflictRecord{}, false
}

func (o *syncOrchestrator) appendConflict(ctx context.Context, record models.ConflictRecord) {
	o.mu.Lock()
	o.conflicts = append(o.conflicts, record)
	snapshot := make([]models.ConflictRecord, len(o.conflicts))
	copy(snapshot, o.conflicts)
	o.mu.Unlock()

	if err := o.state.SaveConflicts(ctx, snapshot); err != nil {
		o.logger.Err(err).Str("document_id", record.ID).Msg("failed to persist conflict records")
	}
}

func (o *syncOrchestrator) markResolved(ctx context.Context, documentID string, resolution models.Resolution, note string) {
	now := time.Now()

	o.mu.Lock()
	for i := len(o.conflicts) - 1; i >= 0; i-- {
		if o.conflicts[i].ID == documentID && !o.conflicts[i].Resolved {
			o.conflicts[i].Resolved = true
			o.conflicts[i].Resolution = resolution
			o.conflicts[i].ResolvedAt = &now
			o.conflicts[i].Note = note
			break
		}
	}
	snapshot := make([]models.ConflictRecord, len(o.conflicts))
	copy(snapshot, o.conflicts)
	o.mu.Unlock()

	if err := o.state.SaveConflicts(ctx, snapshot); err != nil {
		o.logger.Err(err).Str("document_id", documentID).Msg("failed to persist conflict records")
	}

	event := audit.NewEvent(audit.KindConflictResolved)
	event.DocumentID = documentID
	event.Detail = string(resolution)
	_ = o.audit.Append(ctx, event)
}

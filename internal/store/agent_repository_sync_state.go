package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/models"
)

// Well-known sync_state keys.
const (
	syncInfoKey  = "sync_info"
	conflictsKey = "conflict_records"
)

type syncStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncStateRepository wires the orchestrator state repository over the
// agent's SQLite connection.
func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	return &syncStateRepository{
		DB:     db,
		logger: logger,
	}
}

func (s *syncStateRepository) SaveSyncInfo(ctx context.Context, info models.SyncInfo) error {
	return s.saveValue(ctx, syncInfoKey, info)
}

// LoadSyncInfo returns a zero-valued SyncInfo with StatusOffline when nothing
// has been persisted yet.
func (s *syncStateRepository) LoadSyncInfo(ctx context.Context) (models.SyncInfo, error) {
	info := models.SyncInfo{Status: models.SyncStatusOffline}

	found, err := s.loadValue(ctx, syncInfoKey, &info)
	if err != nil {
		return models.SyncInfo{}, err
	}
	if !found {
		return models.SyncInfo{Status: models.SyncStatusOffline}, nil
	}

	return info, nil
}

func (s *syncStateRepository) SaveConflicts(ctx context.Context, records []models.ConflictRecord) error {
	return s.saveValue(ctx, conflictsKey, records)
}

func (s *syncStateRepository) LoadConflicts(ctx context.Context) ([]models.ConflictRecord, error) {
	var records []models.ConflictRecord

	if _, err := s.loadValue(ctx, conflictsKey, &records); err != nil {
		return nil, err
	}

	return records, nil
}

func (s *syncStateRepository) saveValue(ctx context.Context, key string, value any) error {
	log := logger.FromContext(ctx)

	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode sync state (key=%s): %w", key, err)
	}

	if _, err = s.DB.ExecContext(ctx, upsertSyncState, key, string(encoded)); err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.saveValue").
			Str("key", key).
			Msg("failed to execute upsert for sync state")
		return fmt.Errorf("failed to save sync state (key=%s): %w", key, err)
	}

	return nil
}

func (s *syncStateRepository) loadValue(ctx context.Context, key string, out any) (bool, error) {
	log := logger.FromContext(ctx)

	var encoded string
	err := s.DB.QueryRowContext(ctx, getSyncState, key).Scan(&encoded)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.loadValue").
			Str("key", key).
			Msg("failed to query sync state")
		return false, fmt.Errorf("failed to load sync state (key=%s): %w", key, err)
	}

	if err = json.Unmarshal([]byte(encoded), out); err != nil {
		return false, fmt.Errorf("failed to decode sync state (key=%s): %w", key, err)
	}

	return true, nil
}

func encodeFields(fields map[string]any) ([]byte, error) {
	if fields == nil {
		return nil, nil
	}
	return json.Marshal(fields)
}

func decodeFields(payload []byte) (map[string]any, error) {
	var fields map[string]any
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

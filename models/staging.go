package models

import "time"

// StagingEntry is a plaintext document held in the staging cache while a sync
// attempt is in flight. Entries are transient by design: they are destroyed
// when replication succeeds, when the attempt concludes, or when the cache
// evicts them under capacity pressure.
type StagingEntry struct {
	Document Document
	StagedAt time.Time

	// Size is the serialized byte estimate of the entry, used only for the
	// cache's operational stats.
	Size int
}

// CacheStats describes the staging cache contents for operational visibility.
type CacheStats struct {
	Documents      int       `json:"documents"`
	EstimatedBytes int64     `json:"estimated_bytes"`
	OldestStagedAt time.Time `json:"oldest_staged_at,omitzero"`
	NewestStagedAt time.Time `json:"newest_staged_at,omitzero"`
}

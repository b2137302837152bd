// SPDX-License-Identifier: Apache-2.0

// Package staging holds decrypted documents in a bounded in-memory cache
// while a sync attempt is in flight. It is the only place plaintext clinical
// data exists outside the UI's working memory, so entries are transient by
// design: the orchestrator clears the cache at the end of every attempt,
// success or failure.
package staging

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/fieldcare/clinsync/internal/logger"
	"github.com/fieldcare/clinsync/models"
)

const (
	// DefaultMaxDocuments bounds the number of staged entries.
	DefaultMaxDocuments = 1000

	// DefaultMaxBytes is an estimated size bound, reported via Stats. It is
	// advisory only; eviction is driven by the document-count bound because
	// staging entries are write-once-read-once.
	DefaultMaxBytes = 50 * 1024 * 1024
)

// Cache is a bounded FIFO staging area. When an Add would exceed the
// document bound, the single oldest entry (by insertion time) is evicted
// before the new entry is admitted.
//
// The orchestrator is the only writer during an active cycle; the mutex
// exists so that Stats and GetAll can be served to status endpoints
// concurrently with a cycle.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]models.StagingEntry
	order    []string // insertion order, oldest first
	maxDocs  int
	maxBytes int64
	logger   *logger.Logger
}

// New constructs a Cache with the given bounds. Non-positive bounds fall
// back to the defaults.
func New(maxDocs int, maxBytes int64, log *logger.Logger) *Cache {
	if maxDocs <= 0 {
		maxDocs = DefaultMaxDocuments
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Cache{
		entries:  make(map[string]models.StagingEntry),
		maxDocs:  maxDocs,
		maxBytes: maxBytes,
		logger:   log,
	}
}

// Add stages a single document. Entries without an id are logged and
// dropped. Re-adding an existing id replaces the entry but keeps its
// original position in the eviction order.
func (c *Cache) Add(doc models.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.add(doc)
}

// AddMany stages a batch of documents in order.
func (c *Cache) AddMany(docs []models.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, doc := range docs {
		c.add(doc)
	}
}

func (c *Cache) add(doc models.Document) {
	if doc.ID == "" {
		c.logger.Warn().Str("func", "Cache.add").Msg("rejected staging entry without id")
		return
	}

	entry := models.StagingEntry{
		Document: doc,
		StagedAt: time.Now(),
		Size:     estimateSize(doc),
	}

	if _, exists := c.entries[doc.ID]; !exists {
		if len(c.entries) >= c.maxDocs {
			c.evictOldest()
		}
		c.order = append(c.order, doc.ID)
	}
	c.entries[doc.ID] = entry

	c.logger.Debug().
		Str("func", "Cache.add").
		Str("id", doc.ID).
		Str("kind", string(doc.Kind)).
		Int("staged", len(c.entries)).
		Msg("document staged")
}

// evictOldest removes the entry with the smallest insertion timestamp.
// Caller must hold the mutex.
func (c *Cache) evictOldest() {
	if len(c.order) == 0 {
		return
	}

	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)

	c.logger.Warn().
		Str("func", "Cache.evictOldest").
		Str("id", oldest).
		Msg("staging capacity exceeded, evicted oldest entry")
}

// Get returns the staged entry for id, if present.
func (c *Cache) Get(id string) (models.StagingEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[id]
	return entry, ok
}

// GetAll returns all staged entries in insertion order.
func (c *Cache) GetAll() []models.StagingEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.StagingEntry, 0, len(c.entries))
	for _, id := range c.order {
		if entry, ok := c.entries[id]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// Remove deletes a single entry by id. Removing an absent id is a no-op.
func (c *Cache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[id]; !ok {
		return
	}

	delete(c.entries, id)
	for i, ordered := range c.order {
		if ordered == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}

	c.logger.Debug().Str("func", "Cache.Remove").Str("id", id).Msg("staging entry removed")
}

// Clear drops every staged entry. Called unconditionally at the end of every
// sync attempt and on cancellation so plaintext never lingers.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.entries)
	c.entries = make(map[string]models.StagingEntry)
	c.order = nil

	if n > 0 {
		c.logger.Debug().Str("func", "Cache.Clear").Int("dropped", n).Msg("staging cache cleared")
	}
}

// Len returns the number of staged entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats reports document count, estimated byte size and the oldest/newest
// insertion timestamps. Used for operational visibility, not correctness.
func (c *Cache) Stats() models.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := models.CacheStats{Documents: len(c.entries)}
	for _, entry := range c.entries {
		stats.EstimatedBytes += int64(entry.Size)
		if stats.OldestStagedAt.IsZero() || entry.StagedAt.Before(stats.OldestStagedAt) {
			stats.OldestStagedAt = entry.StagedAt
		}
		if entry.StagedAt.After(stats.NewestStagedAt) {
			stats.NewestStagedAt = entry.StagedAt
		}
	}
	return stats
}

// estimateSize approximates the serialized size of a document. Marshalling
// failures yield zero; the estimate feeds stats only.
func estimateSize(doc models.Document) int {
	b, err := json.Marshal(doc)
	if err != nil {
		return 0
	}
	return len(b)
}

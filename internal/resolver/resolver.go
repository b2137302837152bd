// SPDX-License-Identifier: Apache-2.0

// Package resolver merges two divergent revisions of a document into one,
// field by field, using per-field declared strategies.
//
// Resolve is deterministic and side-effect-free: given the same two inputs it
// always produces the same output, so two devices that independently detect
// the same conflict converge on an identical merged document without
// coordination. It also never fails — when a declared strategy cannot apply
// (e.g. a type mismatch) the field falls back to remote-wins and a note is
// recorded alongside the merge.
package resolver

import (
	"fmt"
	"sort"
	"time"

	"github.com/fieldcare/clinsync/models"
)

// Strategy names a per-field merge behavior.
type Strategy string

const (
	// StrategyLatest keeps whichever side's value is more recently updated,
	// judged by the value's own nested timestamp for composites, or by the
	// document-level UpdatedAt otherwise.
	StrategyLatest Strategy = "latest"

	// StrategyHighest keeps the larger value. Numeric fields compare
	// numerically; triage severity strings compare by an explicit ordinal
	// table (green < yellow < orange < red).
	StrategyHighest Strategy = "highest"

	// StrategyUnion merges both sides: arrays become a de-duplicated set
	// union, strings are newline-joined, objects are shallow-merged with
	// remote keys overriding local on collision.
	StrategyUnion Strategy = "union"

	// StrategyMax keeps the chronologically later instant of two
	// timestamp-typed fields.
	StrategyMax Strategy = "max"
)

// severityRank is the explicit ordinal mapping for triage severity strings
// under StrategyHighest. Parsing these as floats would silently yield zero,
// so the ordering is declared instead.
var severityRank = map[string]int{
	"green":  1,
	"yellow": 2,
	"orange": 3,
	"red":    4,
}

// Resolver merges conflicting documents according to a declared per-field
// strategy table. Fields with no declared strategy default to remote-wins,
// reflecting that the remote store is the eventual source of truth for
// undeclared fields.
type Resolver struct {
	strategies map[string]Strategy
}

// DefaultStrategies is the strategy table for the known clinical document
// kinds. Field names not listed here resolve remote-wins.
func DefaultStrategies() map[string]Strategy {
	return map[string]Strategy{
		"notes":        StrategyUnion,
		"tags":         StrategyUnion,
		"attachments":  StrategyUnion,
		"answers":      StrategyUnion,
		"vitals":       StrategyLatest,
		"diagnosis":    StrategyLatest,
		"severity":     StrategyHighest,
		"triage_score": StrategyHighest,
		"completed_at": StrategyMax,
		"closed_at":    StrategyMax,
	}
}

// New constructs a Resolver. A nil strategy table means every field resolves
// remote-wins.
func New(strategies map[string]Strategy) *Resolver {
	if strategies == nil {
		strategies = map[string]Strategy{}
	}
	return &Resolver{strategies: strategies}
}

// Resolve merges local and remote into a single document. The document's
// identity is never negotiable: ID (and Kind/SessionID with it) is always
// preserved from the local side. The result's Revision is left empty — the
// resolver does not fabricate revisions; whatever store accepts the merge
// assigns the next one.
//
// The returned notes list records every field where a declared strategy
// could not apply and remote-wins was used instead.
func (r *Resolver) Resolve(local, remote models.Document) (models.Document, []string) {
	merged := models.Document{
		ID:        local.ID,
		Kind:      local.Kind,
		SessionID: local.SessionID,
		Fields:    make(map[string]any),
	}
	if merged.SessionID == "" {
		merged.SessionID = remote.SessionID
	}

	merged.UpdatedAt = local.UpdatedAt
	if remote.UpdatedAt.After(merged.UpdatedAt) {
		merged.UpdatedAt = remote.UpdatedAt
	}

	var notes []string

	for _, name := range fieldNames(local.Fields, remote.Fields) {
		lv, lok := local.Fields[name]
		rv, rok := remote.Fields[name]

		switch {
		case lok && !rok:
			merged.Fields[name] = lv
		case rok && !lok:
			merged.Fields[name] = rv
		default:
			value, note := r.mergeField(name, lv, rv, local.UpdatedAt, remote.UpdatedAt)
			merged.Fields[name] = value
			if note != "" {
				notes = append(notes, note)
			}
		}
	}

	return merged, notes
}

// mergeField merges one field present on both sides. It returns the merged
// value plus a non-empty note when a declared strategy fell back to
// remote-wins.
func (r *Resolver) mergeField(name string, lv, rv any, localUpdated, remoteUpdated time.Time) (any, string) {
	strategy, declared := r.strategies[name]
	if !declared {
		return rv, ""
	}

	switch strategy {
	case StrategyLatest:
		return mergeLatest(lv, rv, localUpdated, remoteUpdated), ""

	case StrategyHighest:
		if value, ok := mergeHighest(lv, rv); ok {
			return value, ""
		}

	case StrategyUnion:
		if value, ok := mergeUnion(lv, rv); ok {
			return value, ""
		}

	case StrategyMax:
		if value, ok := mergeMax(lv, rv); ok {
			return value, ""
		}
	}

	return rv, fmt.Sprintf("field %q: strategy %q not applicable, kept remote value", name, strategy)
}

// fieldNames returns the sorted union of field names from both sides.
// Sorting makes the merge order, and therefore the notes order, independent
// of map iteration.
func fieldNames(local, remote map[string]any) []string {
	seen := make(map[string]struct{}, len(local)+len(remote))
	for name := range local {
		seen[name] = struct{}{}
	}
	for name := range remote {
		seen[name] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SPDX-License-Identifier: Apache-2.0

package resolver

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"dario.cat/mergo"
)

// mergeLatest keeps the more recently updated side. Composite values carry
// their own timestamp under "updated_at"; scalar values fall back to the
// document-level UpdatedAt. Ties break on the canonical JSON form so the
// outcome does not depend on argument order.
func mergeLatest(lv, rv any, localUpdated, remoteUpdated time.Time) any {
	lt := valueTimestamp(lv, localUpdated)
	rt := valueTimestamp(rv, remoteUpdated)

	switch {
	case rt.After(lt):
		return rv
	case lt.After(rt):
		return lv
	default:
		if canonical(rv) >= canonical(lv) {
			return rv
		}
		return lv
	}
}

// valueTimestamp extracts a composite value's own "updated_at" timestamp,
// falling back to the document-level time.
func valueTimestamp(v any, fallback time.Time) time.Time {
	composite, ok := v.(map[string]any)
	if !ok {
		return fallback
	}
	ts, ok := asTime(composite["updated_at"])
	if !ok {
		return fallback
	}
	return ts
}

// mergeHighest keeps the larger of two comparable values. Numbers compare
// numerically; known severity strings compare by ordinal rank. Returns
// ok=false when the two values are not comparable under either rule.
func mergeHighest(lv, rv any) (any, bool) {
	lf, lNum := asFloat(lv)
	rf, rNum := asFloat(rv)
	if lNum && rNum {
		if rf > lf {
			return rv, true
		}
		return lv, true
	}

	ls, lOk := severityOf(lv)
	rs, rOk := severityOf(rv)
	if lOk && rOk {
		if rs > ls {
			return rv, true
		}
		return lv, true
	}

	return nil, false
}

func severityOf(v any) (int, bool) {
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	rank, ok := severityRank[strings.ToLower(strings.TrimSpace(s))]
	return rank, ok
}

// mergeUnion merges two same-typed values:
//   - arrays: set union, de-duplicated, order normalized by canonical form;
//   - strings: both sides split on newlines, de-duplicated, sorted and
//     re-joined with a newline separator;
//   - objects: mergo merge, remote keys overriding local on collision.
//
// Returns ok=false on a type mismatch.
func mergeUnion(lv, rv any) (any, bool) {
	switch local := lv.(type) {
	case []any:
		remote, ok := rv.([]any)
		if !ok {
			return nil, false
		}
		return unionSlices(local, remote), true

	case string:
		remote, ok := rv.(string)
		if !ok {
			return nil, false
		}
		return unionStrings(local, remote), true

	case map[string]any:
		remote, ok := rv.(map[string]any)
		if !ok {
			return nil, false
		}
		merged := make(map[string]any, len(local)+len(remote))
		for k, v := range local {
			merged[k] = v
		}
		if err := mergo.Merge(&merged, remote, mergo.WithOverride); err != nil {
			return nil, false
		}
		return merged, true
	}

	return nil, false
}

func unionSlices(local, remote []any) []any {
	seen := make(map[string]any, len(local)+len(remote))
	for _, v := range append(append([]any{}, local...), remote...) {
		seen[canonical(v)] = v
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, seen[k])
	}
	return out
}

func unionStrings(local, remote string) string {
	seen := make(map[string]struct{})
	var parts []string
	for _, side := range []string{local, remote} {
		for _, line := range strings.Split(side, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if _, dup := seen[line]; dup {
				continue
			}
			seen[line] = struct{}{}
			parts = append(parts, line)
		}
	}
	// Sorted so both devices produce identical text regardless of which
	// side was local.
	sort.Strings(parts)
	return strings.Join(parts, "\n")
}

// mergeMax keeps the chronologically later of two timestamp values. Returns
// ok=false when either side is not a recognizable timestamp.
func mergeMax(lv, rv any) (any, bool) {
	lt, lOk := asTime(lv)
	rt, rOk := asTime(rv)
	if !lOk || !rOk {
		return nil, false
	}
	if rt.After(lt) {
		return rv, true
	}
	return lv, true
}

// asTime recognizes time.Time values and RFC 3339 strings.
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

// asFloat recognizes the numeric shapes JSON decoding and in-process
// construction can produce.
func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// canonical renders a value to a stable string for de-duplication and
// tie-breaking.
func canonical(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// file: internals/helpers/ordering/ordering.go
//
// Display-sequence resolver for sibling entities (sessions within an event,
// speeches within a session). Every sibling carries a nullable manual
// display_order and a nullable scheduled_time; the resolver merges them into
// one deterministic sequence.
package ordering

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Mode reported to callers as a UI hint.
const (
	ModeManual        = "manual"
	ModeChronological = "chronological"
)

// sentinelKey pushes siblings without order and without time to the back.
const sentinelKey = int64(math.MaxInt64)

// Item is one sibling as seen by the resolver.
type Item struct {
	ID            uuid.UUID
	DisplayOrder  *int
	ScheduledTime *time.Time
}

// EffectiveKey is the single numeric sort key:
//   - manual display_order wins at its exact value
//   - otherwise scheduled_time as epoch millis
//   - otherwise the sentinel (sorts last)
//
// Manual and chronological entries are interleaved by plain numeric
// comparison, not partitioned into two passes. In practice manual orders are
// small integers and epoch millis are huge, so pinned entries lead.
func EffectiveKey(it Item) int64 {
	if it.DisplayOrder != nil {
		return int64(*it.DisplayOrder)
	}
	if it.ScheduledTime != nil {
		return it.ScheduledTime.UnixMilli()
	}
	return sentinelKey
}

// Resolve returns the items sorted ascending by effective key. The sort is
// stable so equal keys keep their input (creation) order.
func Resolve(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		return EffectiveKey(out[i]) < EffectiveKey(out[j])
	})
	return out
}

// Rank maps each sibling id to its resolved position, for callers that need
// to sort their own model slices.
func Rank(items []Item) map[uuid.UUID]int {
	ranks := make(map[uuid.UUID]int, len(items))
	for i, it := range Resolve(items) {
		ranks[it.ID] = i
	}
	return ranks
}

// Mode reports "manual" when at least one sibling is pinned, otherwise
// "chronological".
func Mode(items []Item) string {
	for _, it := range items {
		if it.DisplayOrder != nil {
			return ModeManual
		}
	}
	return ModeChronological
}

// NextDisplayOrder computes the insertion default for a sibling created
// without scheduled_time: max(existing non-null orders)+1, or 0 when no
// sibling is pinned yet.
func NextDisplayOrder(items []Item) int {
	next := 0
	for _, it := range items {
		if it.DisplayOrder != nil && *it.DisplayOrder >= next {
			next = *it.DisplayOrder + 1
		}
	}
	return next
}

// ValidateReorder checks a submitted reorder list against the current sibling
// set. Partial lists are rejected outright: the submitted ids must be exactly
// the sibling ids, no duplicates, no strangers. This is the explicit contract
// that prevents stale positions colliding with freshly assigned ones.
func ValidateReorder(siblingIDs, submitted []uuid.UUID) (missing, unknown, duplicated []uuid.UUID) {
	current := make(map[uuid.UUID]bool, len(siblingIDs))
	for _, id := range siblingIDs {
		current[id] = true
	}
	seen := make(map[uuid.UUID]bool, len(submitted))
	for _, id := range submitted {
		if seen[id] {
			duplicated = append(duplicated, id)
			continue
		}
		seen[id] = true
		if !current[id] {
			unknown = append(unknown, id)
		}
	}
	for _, id := range siblingIDs {
		if !seen[id] {
			missing = append(missing, id)
		}
	}
	return missing, unknown, duplicated
}

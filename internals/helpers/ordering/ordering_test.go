package ordering

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func timePtr(s string) *time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func ids(items []Item) []uuid.UUID {
	out := make([]uuid.UUID, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestResolveChronologicalWhenAllOrdersNull(t *testing.T) {
	a := Item{ID: uuid.New(), ScheduledTime: timePtr("2025-10-15T11:00:00Z")}
	b := Item{ID: uuid.New(), ScheduledTime: timePtr("2025-10-15T09:00:00Z")}
	c := Item{ID: uuid.New(), ScheduledTime: timePtr("2025-10-15T10:00:00Z")}

	got := Resolve([]Item{a, b, c})

	assert.Equal(t, []uuid.UUID{b.ID, c.ID, a.ID}, ids(got))
	assert.Equal(t, ModeChronological, Mode([]Item{a, b, c}))
}

func TestResolveNilTimeSortsLast(t *testing.T) {
	timed := Item{ID: uuid.New(), ScheduledTime: timePtr("2030-01-01T00:00:00Z")}
	blank1 := Item{ID: uuid.New()}
	blank2 := Item{ID: uuid.New()}

	got := Resolve([]Item{blank1, timed, blank2})

	assert.Equal(t, timed.ID, got[0].ID)
	// sentinel keys are equal, stable sort keeps input order
	assert.Equal(t, []uuid.UUID{blank1.ID, blank2.ID}, ids(got[1:]))
}

func TestResolveInterleavesByNumericKey(t *testing.T) {
	// Documented merge rule: manual entries sort by their number, chronological
	// entries by epoch millis, compared as one numeric axis. No two-pass
	// partitioning.
	pinnedLate := Item{ID: uuid.New(), DisplayOrder: intPtr(5)}
	pinnedEarly := Item{ID: uuid.New(), DisplayOrder: intPtr(0), ScheduledTime: timePtr("2025-10-15T23:00:00Z")}
	chrono := Item{ID: uuid.New(), ScheduledTime: timePtr("2025-10-15T09:00:00Z")}

	got := Resolve([]Item{chrono, pinnedLate, pinnedEarly})

	// keys: 0, 5, 1760518800000 → pinned entries lead regardless of their times
	assert.Equal(t, []uuid.UUID{pinnedEarly.ID, pinnedLate.ID, chrono.ID}, ids(got))
	assert.Equal(t, ModeManual, Mode([]Item{chrono, pinnedLate, pinnedEarly}))
}

func TestEffectiveKeyPrecedence(t *testing.T) {
	ts := timePtr("2025-10-15T09:00:00Z")

	assert.Equal(t, int64(3), EffectiveKey(Item{DisplayOrder: intPtr(3), ScheduledTime: ts}))
	assert.Equal(t, ts.UnixMilli(), EffectiveKey(Item{ScheduledTime: ts}))
	assert.Equal(t, sentinelKey, EffectiveKey(Item{}))
}

func TestNextDisplayOrder(t *testing.T) {
	assert.Equal(t, 0, NextDisplayOrder(nil))
	assert.Equal(t, 0, NextDisplayOrder([]Item{{ID: uuid.New()}}))

	items := []Item{
		{ID: uuid.New(), DisplayOrder: intPtr(0)},
		{ID: uuid.New(), DisplayOrder: intPtr(4)},
		{ID: uuid.New()}, // chronological sibling does not count
	}
	assert.Equal(t, 5, NextDisplayOrder(items))
}

func TestRankMatchesResolve(t *testing.T) {
	a := Item{ID: uuid.New(), DisplayOrder: intPtr(1)}
	b := Item{ID: uuid.New(), DisplayOrder: intPtr(0)}

	ranks := Rank([]Item{a, b})

	require.Len(t, ranks, 2)
	assert.Equal(t, 0, ranks[b.ID])
	assert.Equal(t, 1, ranks[a.ID])
}

func TestValidateReorderRejectsPartialLists(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	stranger := uuid.New()

	t.Run("full set accepted", func(t *testing.T) {
		missing, unknown, dup := ValidateReorder([]uuid.UUID{a, b, c}, []uuid.UUID{c, a, b})
		assert.Empty(t, missing)
		assert.Empty(t, unknown)
		assert.Empty(t, dup)
	})

	t.Run("omitted sibling reported", func(t *testing.T) {
		missing, _, _ := ValidateReorder([]uuid.UUID{a, b, c}, []uuid.UUID{a, b})
		assert.Equal(t, []uuid.UUID{c}, missing)
	})

	t.Run("foreign id reported", func(t *testing.T) {
		_, unknown, _ := ValidateReorder([]uuid.UUID{a, b, c}, []uuid.UUID{a, b, c, stranger})
		assert.Equal(t, []uuid.UUID{stranger}, unknown)
	})

	t.Run("duplicate reported once", func(t *testing.T) {
		_, _, dup := ValidateReorder([]uuid.UUID{a, b, c}, []uuid.UUID{a, a, b, c})
		assert.Equal(t, []uuid.UUID{a}, dup)
	})
}

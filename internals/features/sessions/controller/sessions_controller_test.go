package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyScheduleChange(t *testing.T) {
	at := time.Date(2026, 6, 12, 9, 30, 0, 0, time.UTC)

	t.Run("same value still drops a pin", func(t *testing.T) {
		updates := map[string]interface{}{}
		applyScheduleChange(updates, false, &at, true)
		assert.Equal(t, at, updates["session_scheduled_time"])
		order, ok := updates["session_display_order"]
		assert.True(t, ok)
		assert.Nil(t, order)
	})

	t.Run("clear drops a pin", func(t *testing.T) {
		updates := map[string]interface{}{}
		applyScheduleChange(updates, true, nil, true)
		assert.Nil(t, updates["session_scheduled_time"])
		order, ok := updates["session_display_order"]
		assert.True(t, ok)
		assert.Nil(t, order)
	})

	t.Run("unpinned stages time only", func(t *testing.T) {
		updates := map[string]interface{}{}
		applyScheduleChange(updates, false, &at, false)
		assert.Equal(t, at, updates["session_scheduled_time"])
		_, ok := updates["session_display_order"]
		assert.False(t, ok)
	})

	t.Run("untouched schedule stages nothing", func(t *testing.T) {
		updates := map[string]interface{}{"session_title": "renamed"}
		applyScheduleChange(updates, false, nil, true)
		assert.Len(t, updates, 1)
	})
}

package controller

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestApplyScheduleChange(t *testing.T) {
	at := time.Date(2026, 6, 12, 10, 15, 0, 0, time.UTC)

	t.Run("same value still drops a pin", func(t *testing.T) {
		updates := map[string]interface{}{}
		applyScheduleChange(updates, false, &at, true)
		assert.Equal(t, at, updates["speech_scheduled_time"])
		order, ok := updates["speech_display_order"]
		assert.True(t, ok)
		assert.Nil(t, order)
	})

	t.Run("clear drops a pin", func(t *testing.T) {
		updates := map[string]interface{}{}
		applyScheduleChange(updates, true, nil, true)
		assert.Nil(t, updates["speech_scheduled_time"])
		order, ok := updates["speech_display_order"]
		assert.True(t, ok)
		assert.Nil(t, order)
	})

	t.Run("unpinned stages time only", func(t *testing.T) {
		updates := map[string]interface{}{}
		applyScheduleChange(updates, false, &at, false)
		assert.Equal(t, at, updates["speech_scheduled_time"])
		_, ok := updates["speech_display_order"]
		assert.False(t, ok)
	})

	t.Run("untouched schedule stages nothing", func(t *testing.T) {
		updates := map[string]interface{}{"speech_title": "renamed"}
		applyScheduleChange(updates, false, nil, true)
		assert.Len(t, updates, 1)
	})
}

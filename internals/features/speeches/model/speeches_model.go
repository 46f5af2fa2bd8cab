package model

import (
	"time"

	"github.com/google/uuid"
)

type SpeechModel struct {
	SpeechID        uuid.UUID `gorm:"column:speech_id;type:uuid;default:gen_random_uuid();primaryKey" json:"speech_id"`
	SpeechTenantID  uuid.UUID `gorm:"column:speech_tenant_id;type:uuid;not null;index:idx_speeches_tenant_id" json:"speech_tenant_id"`
	SpeechSessionID uuid.UUID `gorm:"column:speech_session_id;type:uuid;not null;index:idx_speeches_session_id" json:"speech_session_id"`

	SpeechTitle           string `gorm:"column:speech_title;type:varchar(255);not null" json:"speech_title"`
	SpeechSpeakerName     string `gorm:"column:speech_speaker_name;type:varchar(255);not null" json:"speech_speaker_name"`
	SpeechDurationMinutes int    `gorm:"column:speech_duration_minutes;not null" json:"speech_duration_minutes"`

	// same nullable-order pattern as sessions
	SpeechScheduledTime *time.Time `gorm:"column:speech_scheduled_time;type:timestamptz" json:"speech_scheduled_time,omitempty"`
	SpeechDisplayOrder  *int       `gorm:"column:speech_display_order" json:"speech_display_order,omitempty"`

	SpeechCreatedAt time.Time `gorm:"column:speech_created_at;type:timestamptz;autoCreateTime" json:"speech_created_at"`
	SpeechUpdatedAt time.Time `gorm:"column:speech_updated_at;type:timestamptz;autoUpdateTime" json:"speech_updated_at"`
}

func (SpeechModel) TableName() string {
	return "speeches"
}

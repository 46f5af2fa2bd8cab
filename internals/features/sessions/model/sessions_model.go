package model

import (
	"time"

	"github.com/google/uuid"
)

type SessionModel struct {
	SessionID       uuid.UUID `gorm:"column:session_id;type:uuid;default:gen_random_uuid();primaryKey" json:"session_id"`
	SessionTenantID uuid.UUID `gorm:"column:session_tenant_id;type:uuid;not null;index:idx_sessions_tenant_id" json:"session_tenant_id"`
	SessionEventID  uuid.UUID `gorm:"column:session_event_id;type:uuid;not null;index:idx_sessions_event_id" json:"session_event_id"`

	SessionTitle       string `gorm:"column:session_title;type:varchar(255);not null" json:"session_title"`
	SessionDescription string `gorm:"column:session_description;type:text" json:"session_description"`

	// display_order NULL means "slot me chronologically by scheduled_time";
	// a number is a manually pinned position, unique among siblings.
	SessionScheduledTime *time.Time `gorm:"column:session_scheduled_time;type:timestamptz" json:"session_scheduled_time,omitempty"`
	SessionDisplayOrder  *int       `gorm:"column:session_display_order" json:"session_display_order,omitempty"`

	SessionCreatedAt time.Time `gorm:"column:session_created_at;type:timestamptz;autoCreateTime" json:"session_created_at"`
	SessionUpdatedAt time.Time `gorm:"column:session_updated_at;type:timestamptz;autoUpdateTime" json:"session_updated_at"`
}

func (SessionModel) TableName() string {
	return "sessions"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventModel struct {
	EventID          uuid.UUID `gorm:"column:event_id;type:uuid;default:gen_random_uuid();primaryKey" json:"event_id"`
	EventTenantID    uuid.UUID `gorm:"column:event_tenant_id;type:uuid;not null;index:idx_events_tenant_id" json:"event_tenant_id"`
	EventTitle       string    `gorm:"column:event_title;type:varchar(255);not null" json:"event_title"`
	EventSlug        string    `gorm:"column:event_slug;type:varchar(100);not null" json:"event_slug"`
	EventDescription string    `gorm:"column:event_description;type:text" json:"event_description"`
	EventDate        time.Time `gorm:"column:event_date;type:date;not null" json:"event_date"`
	EventVisibility  string    `gorm:"column:event_visibility;type:varchar(10);not null;default:'public'" json:"event_visibility"`

	EventCreatedAt time.Time      `gorm:"column:event_created_at;type:timestamptz;autoCreateTime" json:"event_created_at"`
	EventUpdatedAt time.Time      `gorm:"column:event_updated_at;type:timestamptz;autoUpdateTime" json:"event_updated_at"`
	EventDeletedAt gorm.DeletedAt `gorm:"column:event_deleted_at;type:timestamptz;index" json:"event_deleted_at,omitempty"`

	// NOTE: slug is unique per tenant case-insensitively via migration:
	//   CREATE UNIQUE INDEX ux_events_slug_per_tenant_lower
	//     ON events (event_tenant_id, LOWER(event_slug));
	// Not expressible through GORM tags.
}

func (EventModel) TableName() string {
	return "events"
}

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"

	StatusUpcoming = "upcoming"
	StatusPast     = "past"
)

// Status is derived, never stored: past once the event date is behind today.
func (m *EventModel) Status(now time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if m.EventDate.Before(today) {
		return StatusPast
	}
	return StatusUpcoming
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type SlideModel struct {
	SlideID       uuid.UUID `gorm:"column:slide_id;type:uuid;default:gen_random_uuid();primaryKey" json:"slide_id"`
	SlideTenantID uuid.UUID `gorm:"column:slide_tenant_id;type:uuid;not null;index:idx_slides_tenant_id" json:"slide_tenant_id"`
	// event id is denormalized so cascade deletes and archives don't need the
	// session join
	SlideEventID  uuid.UUID `gorm:"column:slide_event_id;type:uuid;not null;index:idx_slides_event_id" json:"slide_event_id"`
	SlideSpeechID uuid.UUID `gorm:"column:slide_speech_id;type:uuid;not null;index:idx_slides_speech_id" json:"slide_speech_id"`

	SlideFilename   string `gorm:"column:slide_filename;type:varchar(255);not null" json:"slide_filename"`
	SlideStorageKey string `gorm:"column:slide_storage_key;type:varchar(500);not null" json:"slide_storage_key"`
	SlideSizeBytes  int64  `gorm:"column:slide_size_bytes;not null" json:"slide_size_bytes"`
	SlideMimeType   string `gorm:"column:slide_mime_type;type:varchar(100);not null" json:"slide_mime_type"`

	// slides keep a plain ascending list, no chronological fallback
	SlideDisplayOrder int `gorm:"column:slide_display_order;not null;default:0" json:"slide_display_order"`

	SlideUploadedBy string    `gorm:"column:slide_uploaded_by;type:varchar(255)" json:"slide_uploaded_by"`
	SlideCreatedAt  time.Time `gorm:"column:slide_created_at;type:timestamptz;autoCreateTime" json:"slide_created_at"`
}

func (SlideModel) TableName() string {
	return "slides"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type PhotoModel struct {
	PhotoID       uuid.UUID `gorm:"column:photo_id;type:uuid;default:gen_random_uuid();primaryKey" json:"photo_id"`
	PhotoTenantID uuid.UUID `gorm:"column:photo_tenant_id;type:uuid;not null;index:idx_photos_tenant_id" json:"photo_tenant_id"`
	PhotoEventID  uuid.UUID `gorm:"column:photo_event_id;type:uuid;not null;index:idx_photos_event_id" json:"photo_event_id"`

	PhotoFilename   string `gorm:"column:photo_filename;type:varchar(255);not null" json:"photo_filename"`
	PhotoStorageKey string `gorm:"column:photo_storage_key;type:varchar(500);not null" json:"photo_storage_key"`
	PhotoSizeBytes  int64  `gorm:"column:photo_size_bytes;not null" json:"photo_size_bytes"`
	PhotoMimeType   string `gorm:"column:photo_mime_type;type:varchar(100);not null" json:"photo_mime_type"`

	PhotoCreatedAt time.Time `gorm:"column:photo_created_at;type:timestamptz;autoCreateTime" json:"photo_created_at"`
}

func (PhotoModel) TableName() string {
	return "photos"
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Root of isolation: every other entity carries a tenant id checked
// explicitly on each query.
type TenantModel struct {
	TenantID   uuid.UUID `gorm:"column:tenant_id;type:uuid;default:gen_random_uuid();primaryKey" json:"tenant_id"`
	TenantName string    `gorm:"column:tenant_name;type:varchar(255);not null" json:"tenant_name"`
	TenantSlug string    `gorm:"column:tenant_slug;type:varchar(100);not null;uniqueIndex" json:"tenant_slug"`

	// Branding (logo URL, colors) and feature settings as free-form JSON —
	// the dashboard reads these, the API never interprets them.
	TenantBranding datatypes.JSON `gorm:"column:tenant_branding;type:jsonb" json:"tenant_branding,omitempty"`
	TenantSettings datatypes.JSON `gorm:"column:tenant_settings;type:jsonb" json:"tenant_settings,omitempty"`

	TenantCreatedAt time.Time `gorm:"column:tenant_created_at;type:timestamptz;autoCreateTime" json:"tenant_created_at"`
	TenantUpdatedAt time.Time `gorm:"column:tenant_updated_at;type:timestamptz;autoUpdateTime" json:"tenant_updated_at"`
}

func (TenantModel) TableName() string {
	return "tenants"
}

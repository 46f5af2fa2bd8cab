package model

import (
	"time"

	"github.com/google/uuid"
)

// Append-only audit trail. Rows are never updated or deleted by the
// application; retention expiry is advisory (computed at read time).
type ActivityLogModel struct {
	LogID       uuid.UUID `gorm:"column:log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"log_id"`
	LogTenantID uuid.UUID `gorm:"column:log_tenant_id;type:uuid;not null;index:idx_activity_logs_tenant_id" json:"log_tenant_id"`

	LogActor      string     `gorm:"column:log_actor;type:varchar(255);not null" json:"log_actor"`
	LogAction     string     `gorm:"column:log_action;type:varchar(50);not null" json:"log_action"`
	LogTargetType string     `gorm:"column:log_target_type;type:varchar(50);not null" json:"log_target_type"`
	LogTargetID   *uuid.UUID `gorm:"column:log_target_id;type:uuid" json:"log_target_id,omitempty"`
	LogDetail     string     `gorm:"column:log_detail;type:text" json:"log_detail"`

	LogCreatedAt time.Time `gorm:"column:log_created_at;type:timestamptz;autoCreateTime;index" json:"log_created_at"`
}

func (ActivityLogModel) TableName() string {
	return "activity_logs"
}

const (
	ActionCreate   = "create"
	ActionUpdate   = "update"
	ActionDelete   = "delete"
	ActionReorder  = "reorder"
	ActionUpload   = "upload"
	ActionDownload = "download"
	ActionRevoke   = "revoke"
)

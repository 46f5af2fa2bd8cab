// file: internals/features/activity_logs/service/activity_log_service.go
package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/activity_logs/model"
)

// Log appends one audit record. Best-effort: an audit failure never fails the
// operation being audited.
func Log(db *gorm.DB, tenantID uuid.UUID, actor, action, targetType string, targetID *uuid.UUID, detail string) {
	rec := model.ActivityLogModel{
		LogTenantID:   tenantID,
		LogActor:      actor,
		LogAction:     action,
		LogTargetType: targetType,
		LogTargetID:   targetID,
		LogDetail:     detail,
	}
	if err := db.Create(&rec).Error; err != nil {
		log.Printf("[WARN] activity log write failed (action=%s target=%s): %v", action, targetType, err)
	}
}

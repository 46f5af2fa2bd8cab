package dto

import (
	"time"

	"github.com/google/uuid"

	"sharehub_backend/internals/features/activity_logs/model"
)

type ActivityLogResponse struct {
	LogID         uuid.UUID  `json:"log_id"`
	LogActor      string     `json:"log_actor"`
	LogAction     string     `json:"log_action"`
	LogTargetType string     `json:"log_target_type"`
	LogTargetID   *uuid.UUID `json:"log_target_id,omitempty"`
	LogDetail     string     `json:"log_detail,omitempty"`
	LogCreatedAt  string     `json:"log_created_at"`
	// Expired is advisory: true when the record is past the configured
	// retention window. Nothing sweeps expired rows.
	Expired bool `json:"expired"`
}

func ToActivityLogResponse(m *model.ActivityLogModel, retentionDays int, now time.Time) *ActivityLogResponse {
	expired := false
	if retentionDays >= 0 {
		expired = now.After(m.LogCreatedAt.AddDate(0, 0, retentionDays))
	}
	return &ActivityLogResponse{
		LogID:         m.LogID,
		LogActor:      m.LogActor,
		LogAction:     m.LogAction,
		LogTargetType: m.LogTargetType,
		LogTargetID:   m.LogTargetID,
		LogDetail:     m.LogDetail,
		LogCreatedAt:  m.LogCreatedAt.Format(time.RFC3339),
		Expired:       expired,
	}
}

func ToActivityLogResponseList(models []model.ActivityLogModel, retentionDays int, now time.Time) []ActivityLogResponse {
	result := make([]ActivityLogResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToActivityLogResponse(&models[i], retentionDays, now))
	}
	return result
}

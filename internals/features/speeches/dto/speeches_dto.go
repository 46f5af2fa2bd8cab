package dto

import (
	"time"

	"github.com/google/uuid"

	"sharehub_backend/internals/features/speeches/model"
	"sharehub_backend/internals/helpers/ordering"
)

type SpeechRequest struct {
	SpeechTitle           string     `json:"speech_title" validate:"required,max=255"`
	SpeechSpeakerName     string     `json:"speech_speaker_name" validate:"required,max=255"`
	SpeechDurationMinutes int        `json:"speech_duration_minutes" validate:"required,min=1,max=600"`
	SpeechScheduledTime   *time.Time `json:"speech_scheduled_time,omitempty"`
}

type SpeechUpdateRequest struct {
	SpeechTitle           *string    `json:"speech_title" validate:"omitempty,max=255"`
	SpeechSpeakerName     *string    `json:"speech_speaker_name" validate:"omitempty,max=255"`
	SpeechDurationMinutes *int       `json:"speech_duration_minutes" validate:"omitempty,min=1,max=600"`
	SpeechScheduledTime   *time.Time `json:"speech_scheduled_time,omitempty"`
	// set true to clear scheduled_time instead of leaving it untouched
	ClearScheduledTime bool `json:"clear_scheduled_time,omitempty"`
}

type ReorderRequest struct {
	// the complete sibling set in the desired order, no omissions
	OrderedIDs []uuid.UUID `json:"ordered_ids" validate:"required,min=1"`
}

type SpeechResponse struct {
	SpeechID              uuid.UUID  `json:"speech_id"`
	SpeechSessionID       uuid.UUID  `json:"speech_session_id"`
	SpeechTitle           string     `json:"speech_title"`
	SpeechSpeakerName     string     `json:"speech_speaker_name"`
	SpeechDurationMinutes int        `json:"speech_duration_minutes"`
	SpeechScheduledTime   *time.Time `json:"speech_scheduled_time,omitempty"`
	SpeechDisplayOrder    *int       `json:"speech_display_order,omitempty"`
	SpeechCreatedAt       string     `json:"speech_created_at"`
}

func (r *SpeechRequest) ToModel(tenantID, sessionID uuid.UUID) *model.SpeechModel {
	return &model.SpeechModel{
		SpeechTenantID:        tenantID,
		SpeechSessionID:       sessionID,
		SpeechTitle:           r.SpeechTitle,
		SpeechSpeakerName:     r.SpeechSpeakerName,
		SpeechDurationMinutes: r.SpeechDurationMinutes,
		SpeechScheduledTime:   r.SpeechScheduledTime,
	}
}

func ToSpeechResponse(m *model.SpeechModel) *SpeechResponse {
	return &SpeechResponse{
		SpeechID:              m.SpeechID,
		SpeechSessionID:       m.SpeechSessionID,
		SpeechTitle:           m.SpeechTitle,
		SpeechSpeakerName:     m.SpeechSpeakerName,
		SpeechDurationMinutes: m.SpeechDurationMinutes,
		SpeechScheduledTime:   m.SpeechScheduledTime,
		SpeechDisplayOrder:    m.SpeechDisplayOrder,
		SpeechCreatedAt:       m.SpeechCreatedAt.Format(time.RFC3339),
	}
}

func ToSpeechResponseList(models []model.SpeechModel) []SpeechResponse {
	result := make([]SpeechResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToSpeechResponse(&models[i]))
	}
	return result
}

// OrderingItems adapts speech rows for the ordering resolver.
func OrderingItems(rows []model.SpeechModel) []ordering.Item {
	items := make([]ordering.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, ordering.Item{
			ID:            r.SpeechID,
			DisplayOrder:  r.SpeechDisplayOrder,
			ScheduledTime: r.SpeechScheduledTime,
		})
	}
	return items
}

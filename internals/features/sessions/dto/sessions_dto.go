package dto

import (
	"time"

	"github.com/google/uuid"

	"sharehub_backend/internals/features/sessions/model"
	"sharehub_backend/internals/helpers/ordering"
)

type SessionRequest struct {
	SessionTitle         string     `json:"session_title" validate:"required,max=255"`
	SessionDescription   string     `json:"session_description"`
	SessionScheduledTime *time.Time `json:"session_scheduled_time,omitempty"`
}

type SessionUpdateRequest struct {
	SessionTitle         *string    `json:"session_title" validate:"omitempty,max=255"`
	SessionDescription   *string    `json:"session_description"`
	SessionScheduledTime *time.Time `json:"session_scheduled_time,omitempty"`
	// set true to clear scheduled_time instead of leaving it untouched
	ClearScheduledTime bool `json:"clear_scheduled_time,omitempty"`
}

type ReorderRequest struct {
	// the complete sibling set in the desired order, no omissions
	OrderedIDs []uuid.UUID `json:"ordered_ids" validate:"required,min=1"`
}

type SessionResponse struct {
	SessionID            uuid.UUID  `json:"session_id"`
	SessionEventID       uuid.UUID  `json:"session_event_id"`
	SessionTitle         string     `json:"session_title"`
	SessionDescription   string     `json:"session_description"`
	SessionScheduledTime *time.Time `json:"session_scheduled_time,omitempty"`
	SessionDisplayOrder  *int       `json:"session_display_order,omitempty"`
	SessionCreatedAt     string     `json:"session_created_at"`
}

func (r *SessionRequest) ToModel(tenantID, eventID uuid.UUID) *model.SessionModel {
	return &model.SessionModel{
		SessionTenantID:      tenantID,
		SessionEventID:       eventID,
		SessionTitle:         r.SessionTitle,
		SessionDescription:   r.SessionDescription,
		SessionScheduledTime: r.SessionScheduledTime,
	}
}

func ToSessionResponse(m *model.SessionModel) *SessionResponse {
	return &SessionResponse{
		SessionID:            m.SessionID,
		SessionEventID:       m.SessionEventID,
		SessionTitle:         m.SessionTitle,
		SessionDescription:   m.SessionDescription,
		SessionScheduledTime: m.SessionScheduledTime,
		SessionDisplayOrder:  m.SessionDisplayOrder,
		SessionCreatedAt:     m.SessionCreatedAt.Format(time.RFC3339),
	}
}

func ToSessionResponseList(models []model.SessionModel) []SessionResponse {
	result := make([]SessionResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToSessionResponse(&models[i]))
	}
	return result
}

// OrderingItems adapts session rows for the ordering resolver.
func OrderingItems(rows []model.SessionModel) []ordering.Item {
	items := make([]ordering.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, ordering.Item{
			ID:            r.SessionID,
			DisplayOrder:  r.SessionDisplayOrder,
			ScheduledTime: r.SessionScheduledTime,
		})
	}
	return items
}

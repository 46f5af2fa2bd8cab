package dto

import (
	"time"

	"github.com/google/uuid"

	"sharehub_backend/internals/features/events/model"
	tokenDTO "sharehub_backend/internals/features/tokens/dto"
)

type EventRequest struct {
	EventTitle       string `json:"event_title" validate:"required,max=255"`
	EventDescription string `json:"event_description"`
	EventDate        string `json:"event_date" validate:"required,datetime=2006-01-02"`
	EventVisibility  string `json:"event_visibility" validate:"omitempty,oneof=public private"`
	// Required for private events: both seeded tokens expire here.
	TokenExpirationDate *time.Time `json:"token_expiration_date,omitempty"`
}

type EventUpdateRequest struct {
	EventTitle       *string `json:"event_title"`
	EventDescription *string `json:"event_description"`
	EventDate        *string `json:"event_date" validate:"omitempty,datetime=2006-01-02"`
	EventVisibility  *string `json:"event_visibility" validate:"omitempty,oneof=public private"`
}

type EventResponse struct {
	EventID          uuid.UUID `json:"event_id"`
	EventTitle       string    `json:"event_title"`
	EventSlug        string    `json:"event_slug"`
	EventDescription string    `json:"event_description"`
	EventDate        string    `json:"event_date"`
	EventVisibility  string    `json:"event_visibility"`
	EventStatus      string    `json:"event_status"`
	EventCreatedAt   string    `json:"event_created_at"`

	// Present only in the creation response of a private event.
	Tokens *EventTokensResponse `json:"tokens,omitempty"`
}

type EventTokensResponse struct {
	Organizer   *tokenDTO.TokenResponse `json:"organizer"`
	Participant *tokenDTO.TokenResponse `json:"participant"`
}

type EventMetricsResponse struct {
	EventID        uuid.UUID `json:"event_id"`
	PageViews      int64     `json:"page_views"`
	SlideDownloads int64     `json:"slide_downloads"`
	UpdatedAt      string    `json:"updated_at"`
}

func (r *EventRequest) ToModel(tenantID uuid.UUID, slug string) (*model.EventModel, error) {
	date, err := time.Parse("2006-01-02", r.EventDate)
	if err != nil {
		return nil, err
	}
	visibility := r.EventVisibility
	if visibility == "" {
		visibility = model.VisibilityPublic
	}
	return &model.EventModel{
		EventTenantID:    tenantID,
		EventTitle:       r.EventTitle,
		EventSlug:        slug,
		EventDescription: r.EventDescription,
		EventDate:        date,
		EventVisibility:  visibility,
	}, nil
}

func ToEventResponse(m *model.EventModel) *EventResponse {
	return &EventResponse{
		EventID:          m.EventID,
		EventTitle:       m.EventTitle,
		EventSlug:        m.EventSlug,
		EventDescription: m.EventDescription,
		EventDate:        m.EventDate.Format("2006-01-02"),
		EventVisibility:  m.EventVisibility,
		EventStatus:      m.Status(time.Now()),
		EventCreatedAt:   m.EventCreatedAt.Format(time.RFC3339),
	}
}

func ToEventResponseList(models []model.EventModel) []EventResponse {
	result := make([]EventResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToEventResponse(&models[i]))
	}
	return result
}

func ToEventMetricsResponse(m *model.EventMetricsModel) *EventMetricsResponse {
	return &EventMetricsResponse{
		EventID:        m.MetricEventID,
		PageViews:      m.MetricPageViews,
		SlideDownloads: m.MetricSlideDownloads,
		UpdatedAt:      m.MetricUpdatedAt.Format(time.RFC3339),
	}
}

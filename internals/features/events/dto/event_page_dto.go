package dto

import (
	"time"

	"github.com/google/uuid"

	sessionModel "sharehub_backend/internals/features/sessions/model"
	slideModel "sharehub_backend/internals/features/slides/model"
	speechModel "sharehub_backend/internals/features/speeches/model"
	"sharehub_backend/internals/helpers/ordering"
)

// ============================
// Public event page (program fan-out)
// ============================

type SlidePageResponse struct {
	SlideID           uuid.UUID `json:"slide_id"`
	SlideFilename     string    `json:"slide_filename"`
	SlideSizeBytes    int64     `json:"slide_size_bytes"`
	SlideMimeType     string    `json:"slide_mime_type"`
	SlideDisplayOrder int       `json:"slide_display_order"`
}

type SpeechPageResponse struct {
	SpeechID              uuid.UUID           `json:"speech_id"`
	SpeechTitle           string              `json:"speech_title"`
	SpeechSpeakerName     string              `json:"speech_speaker_name"`
	SpeechDurationMinutes int                 `json:"speech_duration_minutes"`
	SpeechScheduledTime   *time.Time          `json:"speech_scheduled_time,omitempty"`
	Slides                []SlidePageResponse `json:"slides"`
}

type SessionPageResponse struct {
	SessionID            uuid.UUID            `json:"session_id"`
	SessionTitle         string               `json:"session_title"`
	SessionDescription   string               `json:"session_description"`
	SessionScheduledTime *time.Time           `json:"session_scheduled_time,omitempty"`
	Speeches             []SpeechPageResponse `json:"speeches"`
}

type EventPageResponse struct {
	Event        EventResponse         `json:"event"`
	OrderingMode string                `json:"ordering_mode"`
	Sessions     []SessionPageResponse `json:"sessions"`
}

func ToSlidePageResponse(m slideModel.SlideModel) SlidePageResponse {
	return SlidePageResponse{
		SlideID:           m.SlideID,
		SlideFilename:     m.SlideFilename,
		SlideSizeBytes:    m.SlideSizeBytes,
		SlideMimeType:     m.SlideMimeType,
		SlideDisplayOrder: m.SlideDisplayOrder,
	}
}

func ToSpeechPageResponse(m speechModel.SpeechModel, slides []SlidePageResponse) SpeechPageResponse {
	if slides == nil {
		slides = []SlidePageResponse{}
	}
	return SpeechPageResponse{
		SpeechID:              m.SpeechID,
		SpeechTitle:           m.SpeechTitle,
		SpeechSpeakerName:     m.SpeechSpeakerName,
		SpeechDurationMinutes: m.SpeechDurationMinutes,
		SpeechScheduledTime:   m.SpeechScheduledTime,
		Slides:                slides,
	}
}

func ToSessionPageResponse(m sessionModel.SessionModel, speeches []SpeechPageResponse) SessionPageResponse {
	if speeches == nil {
		speeches = []SpeechPageResponse{}
	}
	return SessionPageResponse{
		SessionID:            m.SessionID,
		SessionTitle:         m.SessionTitle,
		SessionDescription:   m.SessionDescription,
		SessionScheduledTime: m.SessionScheduledTime,
		Speeches:             speeches,
	}
}

// SessionOrderingItems adapts session rows for the ordering resolver.
func SessionOrderingItems(rows []sessionModel.SessionModel) []ordering.Item {
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

// SpeechOrderingItems adapts speech rows for the ordering resolver.
func SpeechOrderingItems(rows []speechModel.SpeechModel) []ordering.Item {
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

package dto

import (
	"time"

	"github.com/google/uuid"

	"sharehub_backend/internals/features/slides/model"
)

type ReorderRequest struct {
	// the complete sibling set in the desired order, no omissions
	OrderedIDs []uuid.UUID `json:"ordered_ids" validate:"required,min=1"`
}

type SlideResponse struct {
	SlideID           uuid.UUID `json:"slide_id"`
	SlideSpeechID     uuid.UUID `json:"slide_speech_id"`
	SlideFilename     string    `json:"slide_filename"`
	SlideSizeBytes    int64     `json:"slide_size_bytes"`
	SlideMimeType     string    `json:"slide_mime_type"`
	SlideDisplayOrder int       `json:"slide_display_order"`
	SlideUploadedBy   string    `json:"slide_uploaded_by,omitempty"`
	SlideCreatedAt    string    `json:"slide_created_at"`
}

func ToSlideResponse(m *model.SlideModel) *SlideResponse {
	return &SlideResponse{
		SlideID:           m.SlideID,
		SlideSpeechID:     m.SlideSpeechID,
		SlideFilename:     m.SlideFilename,
		SlideSizeBytes:    m.SlideSizeBytes,
		SlideMimeType:     m.SlideMimeType,
		SlideDisplayOrder: m.SlideDisplayOrder,
		SlideUploadedBy:   m.SlideUploadedBy,
		SlideCreatedAt:    m.SlideCreatedAt.Format(time.RFC3339),
	}
}

func ToSlideResponseList(models []model.SlideModel) []SlideResponse {
	result := make([]SlideResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToSlideResponse(&models[i]))
	}
	return result
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"sharehub_backend/internals/features/photos/model"
)

type PhotoResponse struct {
	PhotoID        uuid.UUID `json:"photo_id"`
	PhotoEventID   uuid.UUID `json:"photo_event_id"`
	PhotoFilename  string    `json:"photo_filename"`
	PhotoURL       string    `json:"photo_url"`
	PhotoSizeBytes int64     `json:"photo_size_bytes"`
	PhotoCreatedAt string    `json:"photo_created_at"`
}

func ToPhotoResponse(m *model.PhotoModel, publicURL string) *PhotoResponse {
	return &PhotoResponse{
		PhotoID:        m.PhotoID,
		PhotoEventID:   m.PhotoEventID,
		PhotoFilename:  m.PhotoFilename,
		PhotoURL:       publicURL,
		PhotoSizeBytes: m.PhotoSizeBytes,
		PhotoCreatedAt: m.PhotoCreatedAt.Format(time.RFC3339),
	}
}

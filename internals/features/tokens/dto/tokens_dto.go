package dto

import (
	"time"

	"github.com/google/uuid"

	"sharehub_backend/internals/features/tokens/model"
)

type CreateTokenRequest struct {
	TokenType string    `json:"token_type" validate:"required,oneof=organizer participant"`
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}

type ValidateTokenRequest struct {
	Token   string     `json:"token" validate:"required"`
	EventID *uuid.UUID `json:"event_id,omitempty"`
}

type TokenResponse struct {
	TokenID         uuid.UUID  `json:"token_id"`
	TokenEventID    uuid.UUID  `json:"token_event_id"`
	Token           string     `json:"token"`
	TokenType       string     `json:"token_type"`
	TokenExpiresAt  string     `json:"token_expires_at"`
	TokenRevokedAt  *string    `json:"token_revoked_at,omitempty"`
	TokenRevokedBy  *uuid.UUID `json:"token_revoked_by,omitempty"`
	TokenLastUsedAt *string    `json:"token_last_used_at,omitempty"`
	TokenUseCount   int64      `json:"token_use_count"`
	TokenCreatedAt  string     `json:"token_created_at"`
}

func ToTokenResponse(m *model.AccessTokenModel) *TokenResponse {
	resp := &TokenResponse{
		TokenID:        m.TokenID,
		TokenEventID:   m.TokenEventID,
		Token:          m.Token,
		TokenType:      m.TokenType,
		TokenExpiresAt: m.TokenExpiresAt.Format(time.RFC3339),
		TokenRevokedBy: m.TokenRevokedBy,
		TokenUseCount:  m.TokenUseCount,
		TokenCreatedAt: m.TokenCreatedAt.Format(time.RFC3339),
	}
	if m.TokenRevokedAt != nil {
		s := m.TokenRevokedAt.Format(time.RFC3339)
		resp.TokenRevokedAt = &s
	}
	if m.TokenLastUsedAt != nil {
		s := m.TokenLastUsedAt.Format(time.RFC3339)
		resp.TokenLastUsedAt = &s
	}
	return resp
}

func ToTokenResponseList(models []model.AccessTokenModel) []TokenResponse {
	result := make([]TokenResponse, 0, len(models))
	for i := range models {
		result = append(result, *ToTokenResponse(&models[i]))
	}
	return result
}

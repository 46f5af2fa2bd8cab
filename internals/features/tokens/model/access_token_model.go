package model

import (
	"time"

	"github.com/google/uuid"
)

type AccessTokenModel struct {
	TokenID       uuid.UUID `gorm:"column:token_id;type:uuid;default:gen_random_uuid();primaryKey" json:"token_id"`
	TokenTenantID uuid.UUID `gorm:"column:token_tenant_id;type:uuid;not null;index:idx_access_tokens_tenant_id" json:"token_tenant_id"`
	TokenEventID  uuid.UUID `gorm:"column:token_event_id;type:uuid;not null;index:idx_access_tokens_event_id" json:"token_event_id"`

	// Opaque 21-char credential; collisions surface through this unique index.
	Token     string `gorm:"column:token;type:char(21);not null;uniqueIndex" json:"token"`
	TokenType string `gorm:"column:token_type;type:varchar(20);not null" json:"token_type"`

	TokenExpiresAt time.Time  `gorm:"column:token_expires_at;type:timestamptz;not null" json:"token_expires_at"`
	TokenRevokedAt *time.Time `gorm:"column:token_revoked_at;type:timestamptz" json:"token_revoked_at,omitempty"`
	TokenRevokedBy *uuid.UUID `gorm:"column:token_revoked_by;type:uuid" json:"token_revoked_by,omitempty"`

	TokenLastUsedAt *time.Time `gorm:"column:token_last_used_at;type:timestamptz" json:"token_last_used_at,omitempty"`
	TokenUseCount   int64      `gorm:"column:token_use_count;not null;default:0" json:"token_use_count"`

	TokenCreatedAt time.Time `gorm:"column:token_created_at;type:timestamptz;autoCreateTime" json:"token_created_at"`
}

func (AccessTokenModel) TableName() string {
	return "access_tokens"
}

const (
	// Organizer tokens unlock write operations on their event; participant
	// tokens are read-only. The capability check lives with the caller, not
	// the token manager.
	TypeOrganizer   = "organizer"
	TypeParticipant = "participant"
)

// file: internals/features/tokens/service/pair.go
package service

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sharehub_backend/internals/features/tokens/model"
)

// TokenPair is issued once per private event at creation time: one organizer
// token and one participant token sharing the same expiration.
type TokenPair struct {
	Organizer   *model.AccessTokenModel
	Participant *model.AccessTokenModel
}

// CreatePair issues the pair inside the caller's transaction so a collision
// on the unique token index rolls back the whole event creation atomically.
func CreatePair(tx *gorm.DB, tenantID, eventID uuid.UUID, expiresAt time.Time) (*TokenPair, error) {
	organizer, err := createOne(tx, tenantID, eventID, model.TypeOrganizer, expiresAt)
	if err != nil {
		return nil, err
	}
	participant, err := createOne(tx, tenantID, eventID, model.TypeParticipant, expiresAt)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Organizer: organizer, Participant: participant}, nil
}

func createOne(tx *gorm.DB, tenantID, eventID uuid.UUID, tokenType string, expiresAt time.Time) (*model.AccessTokenModel, error) {
	raw, err := GenerateToken()
	if err != nil {
		return nil, err
	}
	tok := &model.AccessTokenModel{
		TokenTenantID:  tenantID,
		TokenEventID:   eventID,
		Token:          raw,
		TokenType:      tokenType,
		TokenExpiresAt: expiresAt,
	}
	if err := tx.Create(tok).Error; err != nil {
		return nil, err
	}
	return tok, nil
}

// CreateOne issues a single extra token of the given type (admin-initiated).
func CreateOne(tx *gorm.DB, tenantID, eventID uuid.UUID, tokenType string, expiresAt time.Time) (*model.AccessTokenModel, error) {
	return createOne(tx, tenantID, eventID, tokenType, expiresAt)
}

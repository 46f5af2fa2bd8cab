// file: internals/features/tokens/service/validator.go
package service

import (
	"time"

	"github.com/google/uuid"

	"sharehub_backend/internals/features/tokens/model"
)

// Validation states, in priority order: not-found → wrong-event → revoked →
// expired → valid. Revocation always beats a remaining validity window.
type TokenState int

const (
	StateNotFound TokenState = iota
	StateWrongEvent
	StateRevoked
	StateExpired
	StateValid
)

func (s TokenState) Message() string {
	switch s {
	case StateNotFound:
		return "Token not found"
	case StateWrongEvent:
		return "Token does not belong to this event"
	case StateRevoked:
		return "Token has been revoked"
	case StateExpired:
		return "Token has expired"
	default:
		return "Token is valid"
	}
}

// Classify is the pure validation function of (exists, event scope,
// revoked_at, expires_at) at a given instant.
func Classify(tok *model.AccessTokenModel, eventID uuid.UUID, now time.Time) TokenState {
	if tok == nil {
		return StateNotFound
	}
	if eventID != uuid.Nil && tok.TokenEventID != eventID {
		return StateWrongEvent
	}
	if tok.TokenRevokedAt != nil {
		return StateRevoked
	}
	if !now.Before(tok.TokenExpiresAt) {
		return StateExpired
	}
	return StateValid
}

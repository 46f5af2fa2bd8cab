package service

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sharehub_backend/internals/features/tokens/model"
)

func tokenAt(eventID uuid.UUID, expiresAt time.Time, revokedAt *time.Time) *model.AccessTokenModel {
	return &model.AccessTokenModel{
		TokenID:        uuid.New(),
		TokenEventID:   eventID,
		Token:          "aaaaaaaaaaaaaaaaaaaaa",
		TokenType:      model.TypeParticipant,
		TokenExpiresAt: expiresAt,
		TokenRevokedAt: revokedAt,
	}
}

func TestClassifyStates(t *testing.T) {
	now := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	eventID := uuid.New()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	t.Run("not found", func(t *testing.T) {
		assert.Equal(t, StateNotFound, Classify(nil, uuid.Nil, now))
	})

	t.Run("valid", func(t *testing.T) {
		st := Classify(tokenAt(eventID, future, nil), eventID, now)
		assert.Equal(t, StateValid, st)
	})

	t.Run("expired", func(t *testing.T) {
		st := Classify(tokenAt(eventID, past, nil), eventID, now)
		assert.Equal(t, StateExpired, st)
		assert.Equal(t, "Token has expired", st.Message())
	})

	t.Run("expiry boundary counts as expired", func(t *testing.T) {
		st := Classify(tokenAt(eventID, now, nil), eventID, now)
		assert.Equal(t, StateExpired, st)
	})

	t.Run("revoked beats remaining validity window", func(t *testing.T) {
		st := Classify(tokenAt(eventID, future, &past), eventID, now)
		assert.Equal(t, StateRevoked, st)
		assert.Equal(t, "Token has been revoked", st.Message())
	})

	t.Run("revoked beats expired", func(t *testing.T) {
		st := Classify(tokenAt(eventID, past, &past), eventID, now)
		assert.Equal(t, StateRevoked, st)
	})

	t.Run("wrong event rejected before revocation check", func(t *testing.T) {
		st := Classify(tokenAt(uuid.New(), future, &past), eventID, now)
		assert.Equal(t, StateWrongEvent, st)
	})

	t.Run("nil event id skips scoping", func(t *testing.T) {
		st := Classify(tokenAt(eventID, future, nil), uuid.Nil, now)
		assert.Equal(t, StateValid, st)
	})
}

func TestClassifyRevokedNeverValid(t *testing.T) {
	// revoked_at set implies validation never returns valid, regardless of
	// expiration
	now := time.Now()
	eventID := uuid.New()
	for _, exp := range []time.Time{now.Add(-24 * time.Hour), now.Add(24 * time.Hour), now.Add(365 * 24 * time.Hour)} {
		rev := now.Add(-time.Minute)
		assert.NotEqual(t, StateValid, Classify(tokenAt(eventID, exp, &rev), eventID, now))
	}
}

func TestGenerateToken(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		tok, err := GenerateToken()
		require.NoError(t, err)
		require.Len(t, tok, TokenLength)
		for _, r := range tok {
			assert.True(t, strings.ContainsRune(tokenAlphabet, r), "unexpected rune %q", r)
		}
		assert.False(t, seen[tok], "duplicate token in 200 draws")
		seen[tok] = true
	}
}

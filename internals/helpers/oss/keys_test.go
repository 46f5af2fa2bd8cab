package oss

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"deck.pdf", "deck.pdf"},
		{"Q3 Review (final).pptx", "Q3_Review_final_.pptx"},
		{"../../etc/passwd", "passwd"},
		{"résumé deck.key", "r_sum__deck.key"},
		{"   ", "file"},
		{"...", "file"},
		{"..hidden.pdf", "hidden.pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeFilename(tc.in))
		})
	}
}

func TestBuildSlideKeyIsDeterministic(t *testing.T) {
	tenant := uuid.New()
	event := uuid.New()
	speech := uuid.New()

	key := BuildSlideKey(tenant, event, speech, "my deck.pdf")

	assert.Equal(t, fmt.Sprintf("slides/%s/%s/%s/my_deck.pdf", tenant, event, speech), key)
	assert.Equal(t, key, BuildSlideKey(tenant, event, speech, "my deck.pdf"))
}

func TestBuildPhotoKey(t *testing.T) {
	tenant := uuid.New()
	event := uuid.New()

	key := BuildPhotoKey(tenant, event, "stage.jpg")

	assert.Equal(t, fmt.Sprintf("photos/%s/%s/stage.jpg", tenant, event), key)
}

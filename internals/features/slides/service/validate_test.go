package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "sharehub_backend/internals/helpers"
)

func TestValidateSlideUpload(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		mime     string
		size     int64
		wantKind *helper.ErrKind
	}{
		{"pdf ok", "deck.pdf", "application/pdf", 1024, nil},
		{"pptx ok", "deck.pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation", 1024, nil},
		{"ppt ok", "deck.ppt", "application/vnd.ms-powerpoint", 1024, nil},
		{"odp ok", "deck.odp", "application/vnd.oasis.opendocument.presentation", 1024, nil},
		{"keynote via octet-stream", "deck.key", "application/octet-stream", 1024, nil},
		{"odp via octet-stream", "deck.odp", "application/octet-stream", 1024, nil},
		{"pdf via octet-stream rejected", "deck.pdf", "application/octet-stream", 1024, kind(helper.KindValidation)},
		{"octet-stream without allowed ext", "deck.exe", "application/octet-stream", 1024, kind(helper.KindValidation)},
		{"mime with charset suffix", "deck.pdf", "application/pdf; charset=binary", 1024, nil},
		{"image rejected", "photo.jpg", "image/jpeg", 1024, kind(helper.KindValidation)},
		{"empty file", "deck.pdf", "application/pdf", 0, kind(helper.KindValidation)},
		{"exactly at limit", "deck.pdf", "application/pdf", MaxSlideSizeBytes, nil},
		{"one byte over limit", "deck.pdf", "application/pdf", MaxSlideSizeBytes + 1, kind(helper.KindTooLarge)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSlideUpload(tc.filename, tc.mime, tc.size)
			if tc.wantKind == nil {
				assert.Nil(t, err)
				return
			}
			require.NotNil(t, err)
			assert.Equal(t, *tc.wantKind, err.Kind)
		})
	}
}

func kind(k helper.ErrKind) *helper.ErrKind {
	return &k
}

package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"plain title", "Tech Conference 2026", 100, "tech-conference-2026"},
		{"diacritics stripped", "Café Résumé", 100, "cafe-resume"},
		{"symbols collapse to one hyphen", "Q&A  --  Session!!", 100, "q-a-session"},
		{"leading and trailing junk", "  ---Hello---  ", 100, "hello"},
		{"empty falls back", "!!!", 100, "item"},
		{"truncated to max length", "abcdefghij", 5, "abcde"},
		{"truncation never ends on hyphen", "abcd efgh", 5, "abcd"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in, tc.maxLen))
		})
	}
}

// file: internals/helpers/slug.go
package helper

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reHyphen   = regexp.MustCompile(`-+`)
)

// Slugify turns free text into an [a-z0-9-] slug: strip diacritics,
// compress "-", trim ends, enforce maxLen (default 100 if <=0), fallback "item".
func Slugify(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = 100
	}
	s = strings.ToLower(strings.TrimSpace(s))

	// strip diacritics (é → e, etc.)
	var buf []rune
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) { // nonspacing mark
			continue
		}
		buf = append(buf, r)
	}
	s = string(buf)

	s = reNonAlnum.ReplaceAllString(s, "-")
	s = reHyphen.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")

	if s == "" {
		s = "item"
	}
	if utf8.RuneCountInString(s) > maxLen {
		rs := []rune(s)
		s = string(rs[:maxLen])
		s = strings.Trim(s, "-")
	}
	if s == "" {
		s = "item"
	}
	return s
}

// EnsureUniqueSlugCI makes a slug unique (case-insensitive) within one
// table/column. scopeFn may be nil; when set it adds extra WHERE clauses,
// e.g. the tenant scope:
//
//	func(q *gorm.DB) *gorm.DB { return q.Where("event_tenant_id = ?", tid) }
func EnsureUniqueSlugCI(db *gorm.DB, base, table, column string, scopeFn func(*gorm.DB) *gorm.DB, maxLen int) (string, error) {
	if maxLen <= 0 {
		maxLen = 100
	}
	base = Slugify(base, maxLen)

	exists := func(s string) (bool, error) {
		q := db.Table(table).Where(fmt.Sprintf("LOWER(%s) = LOWER(?)", column), s)
		if scopeFn != nil {
			q = scopeFn(q)
		}
		var count int64
		if err := q.Count(&count).Error; err != nil {
			return false, err
		}
		return count > 0, nil
	}

	ok, err := exists(base)
	if err != nil {
		return "", err
	}
	if !ok {
		return base, nil
	}

	for n := 2; n < 1000; n++ {
		suffix := fmt.Sprintf("-%d", n)
		trunk := base
		if utf8.RuneCountInString(trunk)+len(suffix) > maxLen {
			rs := []rune(trunk)
			trunk = strings.Trim(string(rs[:maxLen-len(suffix)]), "-")
		}
		candidate := trunk + suffix
		ok, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !ok {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("ensure unique slug: exhausted suffixes for %q", base)
}

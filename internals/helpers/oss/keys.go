// file: internals/helpers/oss/keys.go
package oss

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var reUnsafe = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

// SanitizeFilename strips everything outside [a-zA-Z0-9.-_] so storage keys
// stay deterministic and URL-safe. Empty results fall back to "file".
func SanitizeFilename(filename string) string {
	filename = filepath.Base(strings.TrimSpace(filename))
	filename = reUnsafe.ReplaceAllString(filename, "_")
	filename = strings.Trim(filename, "._")
	if filename == "" {
		return "file"
	}
	return filename
}

// BuildSlideKey: slides/{tenant}/{event}/{speech}/{filename}
func BuildSlideKey(tenantID, eventID, speechID uuid.UUID, filename string) string {
	return fmt.Sprintf("slides/%s/%s/%s/%s", tenantID, eventID, speechID, SanitizeFilename(filename))
}

// BuildPhotoKey: photos/{tenant}/{event}/{filename}
func BuildPhotoKey(tenantID, eventID uuid.UUID, filename string) string {
	return fmt.Sprintf("photos/%s/%s/%s", tenantID, eventID, SanitizeFilename(filename))
}

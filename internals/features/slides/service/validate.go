// file: internals/features/slides/service/validate.go
package service

import (
	"fmt"
	"strings"

	helper "sharehub_backend/internals/helpers"
)

// MaxSlideSizeBytes caps one slide deck at 100 MiB.
const MaxSlideSizeBytes = 104_857_600

// Allowed deck formats. Browsers are inconsistent about Keynote and
// OpenDocument MIME types, so the extension is checked alongside.
var allowedSlideMimes = map[string]bool{
	"application/pdf":               true,
	"application/vnd.ms-powerpoint": true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
	"application/vnd.apple.keynote":                                             true,
	"application/x-iwork-keynote-sffkey":                                        true,
	"application/vnd.oasis.opendocument.presentation":                           true,
	"application/octet-stream":                                                  true, // trusted only for formats browsers mislabel
}

// Formats browsers routinely upload as octet-stream. PDF and PowerPoint
// always arrive with their own MIME types, so those are not listed.
var octetStreamExts = map[string]bool{
	".key": true,
	".odp": true,
}

// ValidateSlideUpload rejects oversized files and anything that is not a
// known presentation format. The generic octet-stream MIME is accepted only
// for Keynote and OpenDocument decks, where the extension decides.
func ValidateSlideUpload(filename, mimeType string, sizeBytes int64) *helper.AppError {
	if sizeBytes <= 0 {
		return helper.ErrValidation("File is empty")
	}
	if sizeBytes > MaxSlideSizeBytes {
		return helper.ErrTooLarge(fmt.Sprintf("File exceeds the %d byte limit", MaxSlideSizeBytes))
	}

	mime := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	ext := strings.ToLower(extOf(filename))

	if !allowedSlideMimes[mime] {
		return helper.ErrValidation("Unsupported file type. Allowed: PDF, PPT, PPTX, KEY, ODP")
	}
	if mime == "application/octet-stream" && !octetStreamExts[ext] {
		return helper.ErrValidation("Unsupported file type. Allowed: PDF, PPT, PPTX, KEY, ODP")
	}
	return nil
}

func extOf(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		return filename[i:]
	}
	return ""
}

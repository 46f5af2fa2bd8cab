// file: internals/helpers/oss/convert_image.go
package oss

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

type WebPOptions struct {
	MaxW    int
	MaxH    int
	Quality float32
}

func DefaultWebPOptions() WebPOptions {
	return WebPOptions{MaxW: 1600, MaxH: 1600, Quality: 80}
}

/* =======================================================================
   Decode (jpeg/png/webp) from []byte with MIME sniff
======================================================================= */

func decodeImage(all []byte) (image.Image, error) {
	if len(all) == 0 {
		return nil, fmt.Errorf("empty file")
	}
	head := all
	if len(head) > 512 {
		head = head[:512]
	}
	ct := http.DetectContentType(head)

	switch {
	case strings.Contains(ct, "webp"):
		return webp.Decode(bytes.NewReader(all))
	case strings.Contains(ct, "jpeg"), strings.Contains(ct, "png"):
		return imaging.Decode(bytes.NewReader(all), imaging.AutoOrientation(true))
	default:
		return nil, fmt.Errorf("unsupported image format: %s", ct)
	}
}

// ConvertToWebP: read → decode → downscale (keep aspect) → encode webp.
// Photos are stored webp-only so the public gallery stays small.
func ConvertToWebP(file multipart.File, opts WebPOptions) ([]byte, error) {
	all, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	img, err := decodeImage(all)
	if err != nil {
		return nil, err
	}

	if opts.MaxW > 0 || opts.MaxH > 0 {
		b := img.Bounds()
		if (opts.MaxW > 0 && b.Dx() > opts.MaxW) || (opts.MaxH > 0 && b.Dy() > opts.MaxH) {
			img = imaging.Fit(img, opts.MaxW, opts.MaxH, imaging.CatmullRom)
		}
	}

	q := opts.Quality
	if q <= 0 {
		q = 80
	}
	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: q}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Package imagedata converts image bytes to the data URI form carried in
// classifier request bodies.
package imagedata

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"
	"strings"
)

const (
	scheme       = "data:"
	base64Marker = ";base64,"
)

// Encode returns raw as a base64 data URI with the given MIME type.
func Encode(mimeType string, raw []byte) string {
	var sb strings.Builder
	sb.Grow(len(scheme) + len(mimeType) + len(base64Marker) + base64.StdEncoding.EncodedLen(len(raw)))
	sb.WriteString(scheme)
	sb.WriteString(mimeType)
	sb.WriteString(base64Marker)
	sb.WriteString(base64.StdEncoding.EncodeToString(raw))
	return sb.String()
}

// EncodePNG encodes img as PNG and wraps it in a data URI.
func EncodePNG(img image.Image) (string, error) {
	if img == nil {
		return "", errors.New("nil image")
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return Encode("image/png", buf.Bytes()), nil
}

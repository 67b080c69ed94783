// Package intake validates user-supplied image files and turns them into
// uploads ready for the classifier request.
package intake

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/tiff" // register decoder
	_ "golang.org/x/image/webp" // register decoder

	"github.com/soocke/glyphpad/domain/imagedata"
)

const (
	// DefaultMaxBytes is the upload size limit (10 MiB, inclusive).
	DefaultMaxBytes int64 = 10 * 1024 * 1024

	previewMaxW = 200
	previewMaxH = 200
)

// File is a user-selected file as delivered by any entry point
// (file dialog, command line).
type File struct {
	Name     string
	MIMEType string
	Size     int64
	Data     []byte
}

// Upload is a validated, decoded file.
type Upload struct {
	Name     string
	MIMEType string
	Size     int64
	DataURI  string
	Width    int
	Height   int
	Preview  image.Image
}

// Validator checks files against type and size rules.
type Validator struct {
	MaxBytes int64
}

// NewValidator returns a validator with the given limit; non-positive
// limits fall back to DefaultMaxBytes.
func NewValidator(maxBytes int64) *Validator {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Validator{MaxBytes: maxBytes}
}

func (v *Validator) limit() int64 {
	if v == nil || v.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return v.MaxBytes
}

// Validate applies the intake rules in order; the first failure wins.
func (v *Validator) Validate(f File) error {
	if !strings.HasPrefix(f.MIMEType, "image/") {
		return &UnsupportedTypeError{MIMEType: f.MIMEType}
	}
	if f.Size > v.limit() {
		return &TooLargeError{Size: f.Size, Limit: v.limit()}
	}
	return nil
}

// Decode validates f and produces an Upload. It is the slow part of intake
// and is meant to run off the UI thread.
func (v *Validator) Decode(ctx context.Context, f File) (*Upload, error) {
	if err := v.Validate(f); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return nil, &DecodeError{Name: f.Name, Err: err}
	}
	b := img.Bounds()
	return &Upload{
		Name:     f.Name,
		MIMEType: f.MIMEType,
		Size:     f.Size,
		DataURI:  imagedata.Encode(f.MIMEType, f.Data),
		Width:    b.Dx(),
		Height:   b.Dy(),
		Preview:  imaging.Fit(img, previewMaxW, previewMaxH, imaging.Lanczos),
	}, nil
}

// FromPath reads a file from disk. The MIME type is derived from the
// extension and falls back to content sniffing.
func FromPath(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read upload: %w", err)
	}
	mt := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mt == "" {
		mt = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	return File{Name: filepath.Base(path), MIMEType: mt, Size: int64(len(data)), Data: data}, nil
}

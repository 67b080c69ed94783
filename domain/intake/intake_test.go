package intake

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 0xff})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestValidate_TypeRule(t *testing.T) {
	v := NewValidator(0)
	assert.NoError(t, v.Validate(File{Name: "a.png", MIMEType: "image/png", Size: 10}))
	assert.NoError(t, v.Validate(File{Name: "a.webp", MIMEType: "image/webp", Size: 10}))

	err := v.Validate(File{Name: "notes.txt", MIMEType: "text/plain", Size: 10})
	var ute *UnsupportedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "text/plain", ute.MIMEType)

	err = v.Validate(File{Name: "blob", Size: 10})
	require.ErrorAs(t, err, &ute)
	assert.Contains(t, err.Error(), "unknown")
}

func TestValidate_SizeBoundary(t *testing.T) {
	v := NewValidator(0)
	require.Equal(t, DefaultMaxBytes, v.MaxBytes)

	assert.NoError(t, v.Validate(File{MIMEType: "image/png", Size: DefaultMaxBytes}))

	err := v.Validate(File{MIMEType: "image/png", Size: DefaultMaxBytes + 1})
	var tle *TooLargeError
	require.ErrorAs(t, err, &tle)
	assert.Equal(t, DefaultMaxBytes+1, tle.Size)
	assert.Contains(t, err.Error(), "10 MiB")
}

func TestValidate_TypeCheckedBeforeSize(t *testing.T) {
	v := NewValidator(5)
	err := v.Validate(File{MIMEType: "application/pdf", Size: 500})
	var ute *UnsupportedTypeError
	assert.ErrorAs(t, err, &ute)
}

func TestValidate_NilValidatorUsesDefault(t *testing.T) {
	var v *Validator
	assert.NoError(t, v.Validate(File{MIMEType: "image/gif", Size: DefaultMaxBytes}))
}

func TestDecode_ProducesUpload(t *testing.T) {
	data := pngBytes(t, 400, 100)
	f := File{Name: "digit.png", MIMEType: "image/png", Size: int64(len(data)), Data: data}

	u, err := NewValidator(0).Decode(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, "digit.png", u.Name)
	assert.Equal(t, 400, u.Width)
	assert.Equal(t, 100, u.Height)
	assert.True(t, strings.HasPrefix(u.DataURI, "data:image/png;base64,"))

	pb := u.Preview.Bounds()
	assert.LessOrEqual(t, pb.Dx(), 200)
	assert.LessOrEqual(t, pb.Dy(), 200)
	assert.Equal(t, 200, pb.Dx())
}

func TestDecode_RejectsGarbage(t *testing.T) {
	f := File{Name: "broken.png", MIMEType: "image/png", Size: 4, Data: []byte("nope")}
	_, err := NewValidator(0).Decode(context.Background(), f)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "broken.png", de.Name)
}

func TestDecode_ValidationFirst(t *testing.T) {
	_, err := NewValidator(0).Decode(context.Background(), File{MIMEType: "text/plain"})
	var ute *UnsupportedTypeError
	assert.ErrorAs(t, err, &ute)
}

func TestDecode_CancelledContext(t *testing.T) {
	data := pngBytes(t, 4, 4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewValidator(0).Decode(ctx, File{MIMEType: "image/png", Size: int64(len(data)), Data: data})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	data := pngBytes(t, 3, 3)

	named := filepath.Join(dir, "three.PNG")
	require.NoError(t, os.WriteFile(named, data, 0o600))
	f, err := FromPath(named)
	require.NoError(t, err)
	assert.Equal(t, "three.PNG", f.Name)
	assert.Equal(t, "image/png", f.MIMEType)
	assert.Equal(t, int64(len(data)), f.Size)

	// no extension: sniffed from content
	bare := filepath.Join(dir, "upload")
	require.NoError(t, os.WriteFile(bare, data, 0o600))
	f, err = FromPath(bare)
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.MIMEType)

	text := filepath.Join(dir, "readme")
	require.NoError(t, os.WriteFile(text, []byte("hello world"), 0o600))
	f, err = FromPath(text)
	require.NoError(t, err)
	assert.Equal(t, "text/plain", f.MIMEType)

	_, err = FromPath(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}

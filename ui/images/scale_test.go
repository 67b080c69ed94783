package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestScaleToFit_KeepsSmallImages(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 30))
	if got := ScaleToFit(src, 100, 100); got != image.Image(src) {
		t.Fatalf("image that already fits should be returned as is")
	}
}

func TestScaleToFit_PreservesAspect(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 400, 100))
	b := ScaleToFit(src, 200, 200).Bounds()
	if b.Dx() != 200 || b.Dy() != 50 {
		t.Fatalf("expected 200x50, got %dx%d", b.Dx(), b.Dy())
	}
	if ScaleToFit(nil, 10, 10) != nil {
		t.Fatalf("nil source should yield nil")
	}
}

func TestEncodePNG_Decodes(t *testing.T) {
	data := EncodePNG(Solid(3, 2, color.White))
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
}

package model

import (
	"testing"

	"github.com/soocke/glyphpad/domain/predict"
	"github.com/soocke/glyphpad/domain/surface"
)

func TestCaptureContext_Defaults(t *testing.T) {
	c := NewCaptureContext(nil, "")
	if c.Surface == nil || c.Upload == nil {
		t.Fatalf("context must own a surface and a slot")
	}
	if !c.Surface.IsBlank() || c.Upload.Present() {
		t.Fatalf("fresh context must start empty")
	}
	if c.Model() != predict.DefaultModel {
		t.Fatalf("expected default model, got %v", c.Model())
	}
	if c.Surface.Bounds().Dx() != surface.DefaultWidth {
		t.Fatalf("unexpected surface width %d", c.Surface.Bounds().Dx())
	}
}

func TestCaptureContext_ModelSelection(t *testing.T) {
	c := NewCaptureContext(surface.New(28, 28), predict.ModelResNet50)
	if c.Model() != predict.ModelResNet50 {
		t.Fatalf("initial model not kept: %v", c.Model())
	}
	c.SetModel(predict.ModelDenseNet121)
	if c.Model() != predict.ModelDenseNet121 {
		t.Fatalf("set model failed: %v", c.Model())
	}
	c.SetModel("vgg")
	if c.Model() != predict.DefaultModel {
		t.Fatalf("invalid model should fall back, got %v", c.Model())
	}
}

func TestCaptureContext_UploadGeneration(t *testing.T) {
	c := NewCaptureContext(nil, predict.DefaultModel)
	g1 := c.NextUploadGeneration()
	g2 := c.NextUploadGeneration()
	if g2 <= g1 || c.UploadGeneration() != g2 {
		t.Fatalf("generation must increase: g1=%d g2=%d cur=%d", g1, g2, c.UploadGeneration())
	}
	var nilCtx *CaptureContext
	if nilCtx.Model() != predict.DefaultModel || nilCtx.NextUploadGeneration() != 0 {
		t.Fatalf("nil context must be safe")
	}
}

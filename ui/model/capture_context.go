package model

import (
	"sync/atomic"

	"github.com/soocke/glyphpad/domain/intake"
	"github.com/soocke/glyphpad/domain/predict"
	"github.com/soocke/glyphpad/domain/surface"
)

// CaptureContext owns the per-process input state: one drawing surface, one
// upload slot and the selected model. The app container creates exactly one
// and hands it to the presenters by reference.
//
// Surface is only touched on the UI thread. The model choice and upload
// generation are atomics because worker goroutines read them.
type CaptureContext struct {
	Surface *surface.Surface
	Upload  *intake.Slot

	model     atomic.Value // predict.ModelChoice
	uploadGen atomic.Uint64
}

// NewCaptureContext returns a context with a blank surface and an empty slot.
func NewCaptureContext(s *surface.Surface, initial predict.ModelChoice) *CaptureContext {
	if s == nil {
		s = surface.New(surface.DefaultWidth, surface.DefaultHeight)
	}
	c := &CaptureContext{Surface: s, Upload: &intake.Slot{}}
	c.SetModel(initial)
	return c
}

// Model returns the selected model, DefaultModel if none was set.
func (c *CaptureContext) Model() predict.ModelChoice {
	if c == nil {
		return predict.DefaultModel
	}
	if m, ok := c.model.Load().(predict.ModelChoice); ok {
		return m
	}
	return predict.DefaultModel
}

// SetModel stores m; invalid choices are replaced by DefaultModel.
func (c *CaptureContext) SetModel(m predict.ModelChoice) {
	if c == nil {
		return
	}
	if !m.Valid() {
		m = predict.DefaultModel
	}
	c.model.Store(m)
}

// NextUploadGeneration invalidates pending decodes and returns the new
// generation number.
func (c *CaptureContext) NextUploadGeneration() uint64 {
	if c == nil {
		return 0
	}
	return c.uploadGen.Add(1)
}

// UploadGeneration returns the current generation.
func (c *CaptureContext) UploadGeneration() uint64 {
	if c == nil {
		return 0
	}
	return c.uploadGen.Load()
}

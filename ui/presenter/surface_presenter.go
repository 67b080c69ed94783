package presenter

import (
	"image"

	"github.com/soocke/glyphpad/domain/surface"
)

// SurfaceView displays the drawing raster.
type SurfaceView interface {
	ShowRaster(img *image.RGBA)
}

// DrawingSurface is what SurfacePresenter needs from the surface model.
type DrawingSurface interface {
	Apply(ev surface.Event) bool
	Clear()
	Revision() uint64
	Snapshot() *image.RGBA
}

// SurfacePresenter feeds normalized input into the surface and pushes the
// raster to the view. Redraws are coalesced: many motion events between two
// ticks cost one image upload.
type SurfacePresenter struct {
	surface DrawingSurface
	view    SurfaceView
	shown   uint64
	pushed  bool
	dirty   bool
}

func NewSurfacePresenter(s DrawingSurface, view SurfaceView) *SurfacePresenter {
	return &SurfacePresenter{surface: s, view: view, dirty: true}
}

// Handle normalizes raw relative to origin and applies it.
func (p *SurfacePresenter) Handle(raw surface.RawEvent, origin image.Point) {
	if p == nil || p.surface == nil {
		return
	}
	ev, ok := surface.Normalize(raw, origin)
	if !ok {
		return
	}
	if p.surface.Apply(ev) {
		p.dirty = true
	}
}

// Clear blanks the surface and redraws immediately.
func (p *SurfacePresenter) Clear() {
	if p == nil || p.surface == nil {
		return
	}
	p.surface.Clear()
	p.dirty = true
	p.Flush()
}

// Flush pushes the raster to the view if it changed since the last push.
func (p *SurfacePresenter) Flush() {
	if p == nil || p.surface == nil || p.view == nil || !p.dirty {
		return
	}
	p.dirty = false
	rev := p.surface.Revision()
	if p.pushed && rev == p.shown {
		return
	}
	p.view.ShowRaster(p.surface.Snapshot())
	p.shown, p.pushed = rev, true
}

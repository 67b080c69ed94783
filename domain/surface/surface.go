// Package surface holds the drawing model: a fixed-size raster with
// background/foreground semantics and the stroke state machine fed by
// normalized pointer events.
package surface

import (
	"errors"
	"image"
	"image/draw"

	"github.com/soocke/glyphpad/domain/imagedata"
)

// Surface owns the raster buffer of a drawing session. It is not safe for
// concurrent use; all calls are expected on the UI thread.
type Surface struct {
	img      *image.RGBA
	state    StrokeState
	last     Point
	stroke   *strokeRasterizer
	revision uint64
}

// Option customises a Surface.
type Option func(*Surface)

// WithStrokeWidth sets the stroke width in pixels.
func WithStrokeWidth(w float64) Option {
	return func(s *Surface) { s.stroke = newStrokeRasterizer(w) }
}

// New returns a surface of the given size, filled with Background.
func New(width, height int, opts ...Option) *Surface {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	s := &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	for _, o := range opts {
		o(s)
	}
	if s.stroke == nil {
		s.stroke = newStrokeRasterizer(DefaultStrokeWidth)
	}
	s.fill()
	return s
}

func (s *Surface) fill() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
}

// Clear resets every pixel to Background and ends any active stroke.
func (s *Surface) Clear() {
	if s == nil {
		return
	}
	s.fill()
	s.state = StateIdle
	s.revision++
}

// Apply advances the stroke machine with ev. It reports whether any pixel
// was written.
func (s *Surface) Apply(ev Event) bool {
	if s == nil {
		return false
	}
	p := Point{ev.X, ev.Y}
	switch ev.Phase {
	case PhaseBegin:
		s.state = StateActive
		s.last = p
	case PhaseMove:
		if s.state != StateActive {
			return false
		}
		touched := s.stroke.segment(s.img, s.last, p)
		s.last = p
		if touched.Empty() {
			return false
		}
		s.revision++
		return true
	case PhaseEnd:
		s.state = StateIdle
	}
	return false
}

// State returns the current stroke state.
func (s *Surface) State() StrokeState {
	if s == nil {
		return StateIdle
	}
	return s.state
}

// Revision increments whenever pixels change.
func (s *Surface) Revision() uint64 {
	if s == nil {
		return 0
	}
	return s.revision
}

// Bounds returns the raster bounds.
func (s *Surface) Bounds() image.Rectangle {
	if s == nil {
		return image.Rectangle{}
	}
	return s.img.Bounds()
}

// IsBlank reports whether every pixel equals Background in all four channels.
func (s *Surface) IsBlank() bool {
	if s == nil {
		return true
	}
	bg := [4]uint8{Background.R, Background.G, Background.B, Background.A}
	pix := s.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		if pix[i] != bg[0] || pix[i+1] != bg[1] || pix[i+2] != bg[2] || pix[i+3] != bg[3] {
			return false
		}
	}
	return true
}

// Snapshot returns a copy of the raster.
func (s *Surface) Snapshot() *image.RGBA {
	if s == nil {
		return nil
	}
	out := image.NewRGBA(s.img.Bounds())
	copy(out.Pix, s.img.Pix)
	return out
}

// Encode returns the raster as a PNG data URI.
func (s *Surface) Encode() (string, error) {
	if s == nil {
		return "", errors.New("nil surface")
	}
	return imagedata.EncodePNG(s.img)
}

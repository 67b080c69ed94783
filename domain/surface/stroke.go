package surface

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// arcSteps is the number of chords used per semicircular cap.
const arcSteps = 16

// strokeRasterizer draws round-capped line segments onto an RGBA raster.
// Consecutive segments sharing an endpoint overlap in a full disc at the
// shared vertex, which yields round joins.
type strokeRasterizer struct {
	z     *vector.Rasterizer
	width float64
	ink   *image.Uniform
}

func newStrokeRasterizer(width float64) *strokeRasterizer {
	if width <= 0 {
		width = DefaultStrokeWidth
	}
	return &strokeRasterizer{z: vector.NewRasterizer(1, 1), width: width, ink: image.NewUniform(Foreground)}
}

// segment paints the capsule around a→b. It returns the rectangle that was
// touched, which is empty if the segment lies entirely outside dst.
func (s *strokeRasterizer) segment(dst *image.RGBA, a, b Point) image.Rectangle {
	r := s.width / 2
	box := image.Rect(
		int(math.Floor(math.Min(a.X, b.X)-r))-1,
		int(math.Floor(math.Min(a.Y, b.Y)-r))-1,
		int(math.Ceil(math.Max(a.X, b.X)+r))+1,
		int(math.Ceil(math.Max(a.Y, b.Y)+r))+1,
	).Intersect(dst.Bounds())
	if box.Empty() {
		return image.Rectangle{}
	}

	s.z.Reset(box.Dx(), box.Dy())
	s.z.DrawOp = draw.Over
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	a = Point{a.X - ox, a.Y - oy}
	b = Point{b.X - ox, b.Y - oy}

	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		s.disc(a, r)
	} else {
		s.capsule(a, b, dx/length, dy/length, r)
	}
	s.z.Draw(dst, box, s.ink, image.Point{})
	return box
}

// capsule traces: offset line on the +normal side, cap around b, offset line
// on the -normal side, cap around a.
func (s *strokeRasterizer) capsule(a, b Point, tx, ty, r float64) {
	nx, ny := -ty, tx
	theta := math.Atan2(ny, nx)
	s.z.MoveTo(float32(a.X+nx*r), float32(a.Y+ny*r))
	s.z.LineTo(float32(b.X+nx*r), float32(b.Y+ny*r))
	s.arc(b, r, theta, -math.Pi)
	s.z.LineTo(float32(a.X-nx*r), float32(a.Y-ny*r))
	s.arc(a, r, theta-math.Pi, -math.Pi)
	s.z.ClosePath()
}

func (s *strokeRasterizer) disc(c Point, r float64) {
	s.z.MoveTo(float32(c.X+r), float32(c.Y))
	s.arc(c, r, 0, 2*math.Pi)
	s.z.ClosePath()
}

// arc emits LineTo calls along the circle (c, r) from angle start over sweep.
// The start point itself is assumed to be the current pen position.
func (s *strokeRasterizer) arc(c Point, r, start, sweep float64) {
	steps := arcSteps
	if math.Abs(sweep) > math.Pi {
		steps *= 2
	}
	for i := 1; i <= steps; i++ {
		t := start + sweep*float64(i)/float64(steps)
		s.z.LineTo(float32(c.X+r*math.Cos(t)), float32(c.Y+r*math.Sin(t)))
	}
}

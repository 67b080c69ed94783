package surface

import (
	"image"
	"image/color"
)

// setPixel writes one pixel outside the stroke machine.
func (s *Surface) setPixel(x, y int, c color.RGBA) {
	if !image.Pt(x, y).In(s.img.Bounds()) {
		return
	}
	s.img.SetRGBA(x, y, c)
	s.revision++
}

package view

import (
	"image"

	"github.com/soocke/glyphpad/domain/surface"
	"github.com/soocke/glyphpad/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// SurfaceView shows the drawing raster and forwards pointer input.
type SurfaceView interface {
	ShowRaster(img *image.RGBA)
}

type surfaceView struct {
	label *LabelWidget
	photo *Img // last Tk photo image, deleted on replacement
}

// newSurfaceView creates the drawing label inside parent and binds pointer
// events. onInput receives raw events in label coordinates, so the origin
// passed along is always zero.
func newSurfaceView(parent *FrameWidget, w, h int, onInput func(surface.RawEvent)) *surfaceView {
	blank := images.Solid(w, h, surface.Background)
	v := &surfaceView{photo: NewPhoto(Data(images.EncodePNG(blank)))}
	v.label = Label(Image(v.photo), Borderwidth(0), Cursor("pencil"))
	Grid(v.label, In(parent), Row(0), Column(0), Columnspan(2), Padx("0.4m"), Pady("0.4m"))

	bind := func(seq string, kind surface.RawKind) {
		Bind(v.label, seq, Command(func(e *Event) {
			if onInput == nil || e == nil {
				return
			}
			onInput(surface.RawEvent{
				Device:  surface.DevicePointer,
				Kind:    kind,
				ScreenX: float64(e.X),
				ScreenY: float64(e.Y),
			})
		}))
	}
	bind("<ButtonPress-1>", surface.RawDown)
	bind("<B1-Motion>", surface.RawMove)
	bind("<ButtonRelease-1>", surface.RawUp)
	bind("<Leave>", surface.RawLeave)
	return v
}

func (v *surfaceView) ShowRaster(img *image.RGBA) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(images.EncodePNG(img)))
	v.label.Configure(Image(v.photo))
}

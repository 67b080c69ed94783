package surface

import "image"

// Normalize maps a raw pointer or touch event to a surface-relative Event.
// origin is the surface's offset in screen space. ok is false for events that
// carry no usable position (a touch down/move without an active contact).
//
// Touch events always have their default platform gesture suppressed, even
// when they are dropped.
func Normalize(raw RawEvent, origin image.Point) (ev Event, ok bool) {
	if raw.Device == DeviceTouch && raw.PreventDefault != nil {
		raw.PreventDefault()
	}

	var phase Phase
	switch raw.Kind {
	case RawDown:
		phase = PhaseBegin
	case RawMove:
		phase = PhaseMove
	case RawUp, RawLeave:
		phase = PhaseEnd
	default:
		return Event{}, false
	}

	x, y := raw.ScreenX, raw.ScreenY
	if raw.Device == DeviceTouch {
		if len(raw.Touches) == 0 {
			// touchend reports no active contacts; the end needs no position
			if phase == PhaseEnd {
				return Event{Phase: PhaseEnd}, true
			}
			return Event{}, false
		}
		x, y = raw.Touches[0].X, raw.Touches[0].Y
	}
	return Event{
		X:     x - float64(origin.X),
		Y:     y - float64(origin.Y),
		Phase: phase,
	}, true
}

package surface

import "image/color"

// Background and Foreground match the classifier's training convention
// (light marks on a dark field). Both are fully opaque.
var (
	Background = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	Foreground = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

const (
	DefaultWidth       = 280
	DefaultHeight      = 280
	DefaultStrokeWidth = 8.0
)

// Phase is the phase of a normalized pointer event.
type Phase int

const (
	PhaseBegin Phase = iota + 1
	PhaseMove
	PhaseEnd
)

func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhaseMove:
		return "move"
	case PhaseEnd:
		return "end"
	default:
		return "unknown"
	}
}

// StrokeState is the state of the stroke machine.
type StrokeState int

const (
	StateIdle StrokeState = iota
	StateActive
)

func (s StrokeState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Device identifies the input device family of a raw event.
type Device int

const (
	DevicePointer Device = iota
	DeviceTouch
)

// RawKind is the platform event type before normalization.
type RawKind int

const (
	RawDown RawKind = iota
	RawMove
	RawUp
	RawLeave
)

// Point is a position in surface or screen space.
type Point struct{ X, Y float64 }

// RawEvent is a platform input event in screen coordinates.
// For touch input only Touches[0] is read.
type RawEvent struct {
	Device  Device
	Kind    RawKind
	ScreenX float64
	ScreenY float64
	Touches []Point
	// PreventDefault suppresses platform gestures (scroll, zoom). Optional.
	PreventDefault func()
}

// Event is a normalized event relative to the surface origin.
type Event struct {
	X, Y  float64
	Phase Phase
}

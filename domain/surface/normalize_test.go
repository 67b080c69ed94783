package surface

import (
	"image"
	"testing"
)

func TestNormalize_PointerPhases(t *testing.T) {
	origin := image.Pt(100, 40)
	cases := []struct {
		kind  RawKind
		phase Phase
	}{
		{RawDown, PhaseBegin},
		{RawMove, PhaseMove},
		{RawUp, PhaseEnd},
		{RawLeave, PhaseEnd},
	}
	for _, c := range cases {
		ev, ok := Normalize(RawEvent{Device: DevicePointer, Kind: c.kind, ScreenX: 130, ScreenY: 55}, origin)
		if !ok {
			t.Fatalf("kind %d dropped", c.kind)
		}
		if ev.Phase != c.phase || ev.X != 30 || ev.Y != 15 {
			t.Fatalf("kind %d: got %+v", c.kind, ev)
		}
	}
}

func TestNormalize_TouchUsesFirstContact(t *testing.T) {
	prevented := 0
	raw := RawEvent{
		Device:         DeviceTouch,
		Kind:           RawMove,
		ScreenX:        999,
		ScreenY:        999,
		Touches:        []Point{{X: 12, Y: 14}, {X: 70, Y: 80}},
		PreventDefault: func() { prevented++ },
	}
	ev, ok := Normalize(raw, image.Pt(2, 4))
	if !ok || ev.X != 10 || ev.Y != 10 || ev.Phase != PhaseMove {
		t.Fatalf("unexpected %+v ok=%v", ev, ok)
	}
	if prevented != 1 {
		t.Fatalf("expected default gesture suppressed once, got %d", prevented)
	}
}

func TestNormalize_TouchWithoutContactIgnored(t *testing.T) {
	prevented := 0
	for _, k := range []RawKind{RawDown, RawMove} {
		_, ok := Normalize(RawEvent{Device: DeviceTouch, Kind: k, PreventDefault: func() { prevented++ }}, image.Point{})
		if ok {
			t.Fatalf("kind %d without touches should be ignored", k)
		}
	}
	if prevented != 2 {
		t.Fatalf("suppression must be unconditional, got %d", prevented)
	}
}

func TestNormalize_TouchEndWithoutContact(t *testing.T) {
	ev, ok := Normalize(RawEvent{Device: DeviceTouch, Kind: RawUp}, image.Pt(5, 5))
	if !ok || ev.Phase != PhaseEnd {
		t.Fatalf("touch end should normalize to end, got %+v ok=%v", ev, ok)
	}
}

func TestNormalize_PointerNeverPrevented(t *testing.T) {
	called := false
	Normalize(RawEvent{Device: DevicePointer, Kind: RawDown, PreventDefault: func() { called = true }}, image.Point{})
	if called {
		t.Fatalf("pointer events must not suppress defaults")
	}
}

func TestNormalize_FeedsSurface(t *testing.T) {
	s := New(60, 60)
	origin := image.Pt(200, 300)
	raws := []RawEvent{
		{Device: DeviceTouch, Kind: RawDown, Touches: []Point{{210, 310}}},
		{Device: DeviceTouch, Kind: RawMove, Touches: []Point{{240, 340}}},
		{Device: DeviceTouch, Kind: RawUp},
	}
	for _, r := range raws {
		if ev, ok := Normalize(r, origin); ok {
			s.Apply(ev)
		}
	}
	if s.IsBlank() {
		t.Fatalf("touch stroke did not reach the raster")
	}
	if s.State() != StateIdle {
		t.Fatalf("touch end should leave the surface idle")
	}
	if s.Snapshot().RGBAAt(25, 25) != Foreground {
		t.Fatalf("expected stroke through (25,25)")
	}
}

package presenter

// Loop drives periodic UI work.
//
// It drains results posted by worker goroutines, lets the surface presenter
// flush a pending redraw and invokes a scheduler callback. The zero value is
// usable (methods are nil-safe).
type Loop struct {
	Queue    *Queue
	Surface  *SurfacePresenter
	Schedule func()
}

func NewLoop(q *Queue, surface *SurfacePresenter, schedule func()) *Loop {
	return &Loop{Queue: q, Surface: surface, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Queue != nil {
		l.Queue.Drain()
	}
	if l.Surface != nil {
		l.Surface.Flush()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}

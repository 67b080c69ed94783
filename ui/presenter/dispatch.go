package presenter

import "sync"

// Dispatcher runs fn on the UI thread at some later point.
type Dispatcher interface {
	Post(fn func())
}

// Queue is a FIFO of closures posted by worker goroutines and drained on the
// UI thread by Loop.Tick. The zero value is ready to use.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// Post enqueues fn. Safe from any goroutine.
func (q *Queue) Post(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Drain runs every queued closure in order and returns how many ran.
// Closures posted while draining run on the next call.
func (q *Queue) Drain() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Len reports the number of queued closures.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

package intake

import "sync/atomic"

// Slot holds at most one committed upload. Set and Clear swap the whole
// value at once, so readers never observe a partially written upload.
// The zero value is empty and ready to use.
type Slot struct {
	cur atomic.Pointer[Upload]
}

// Set replaces the current upload.
func (s *Slot) Set(u *Upload) {
	if s == nil {
		return
	}
	s.cur.Store(u)
}

// Clear discards the current upload.
func (s *Slot) Clear() {
	if s == nil {
		return
	}
	s.cur.Store(nil)
}

// Present reports whether an upload is committed.
func (s *Slot) Present() bool {
	return s.Current() != nil
}

// Current returns the committed upload or nil.
func (s *Slot) Current() *Upload {
	if s == nil {
		return nil
	}
	return s.cur.Load()
}

// DataURI returns the committed upload's encoding, or "" when empty.
func (s *Slot) DataURI() string {
	if u := s.Current(); u != nil {
		return u.DataURI
	}
	return ""
}

package model

import (
	"sync/atomic"
)

// CaptureModel gates capture triggers so at most one capture is in flight.
// The zero value is idle and usable. Concurrency-safe via atomic Bool because
// the hotkey goroutine and UI callbacks may race.
type CaptureModel struct{ inFlight atomic.Bool }

// TryBegin marks a capture as started. It reports false when one is already running.
func (m *CaptureModel) TryBegin() bool {
	if m == nil {
		return false
	}
	return m.inFlight.CompareAndSwap(false, true)
}

// End clears the in-flight flag.
func (m *CaptureModel) End() {
	if m == nil {
		return
	}
	m.inFlight.Store(false)
}

// InFlight reports whether a capture is running.
func (m *CaptureModel) InFlight() bool {
	if m == nil {
		return false
	}
	return m.inFlight.Load()
}

package app

import (
	"context"
	"errors"
	"sync"
	"time"
)

const concealTimeout = 2 * time.Second

// windowConcealer hands window hide and show requests from the capture
// worker to the UI thread. Pump runs on the UI thread every tick and applies
// the pending state; Conceal waits until Pump has hidden the window.
type windowConcealer struct {
	hide   func()
	show   func()
	settle time.Duration

	mu      sync.Mutex
	want    bool
	hidden  bool
	waiters []chan struct{}
}

func newWindowConcealer(hide, show func(), settle time.Duration) *windowConcealer {
	return &windowConcealer{hide: hide, show: show, settle: settle}
}

// Conceal asks the UI thread to hide the window and waits for it. After the
// acknowledgement it sleeps settle so the compositor can drop the window.
func (w *windowConcealer) Conceal(ctx context.Context) error {
	ack := make(chan struct{})
	w.mu.Lock()
	w.want = true
	if w.hidden {
		close(ack)
	} else {
		w.waiters = append(w.waiters, ack)
	}
	w.mu.Unlock()

	timer := time.NewTimer(concealTimeout)
	defer timer.Stop()
	select {
	case <-ack:
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return errors.New("window was not hidden in time")
	}
	if w.settle > 0 {
		select {
		case <-time.After(w.settle):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Reveal asks the UI thread to show the window again on its next Pump.
func (w *windowConcealer) Reveal() {
	w.mu.Lock()
	w.want = false
	w.mu.Unlock()
}

// Pump applies the requested visibility. It must run on the UI thread.
func (w *windowConcealer) Pump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.want && !w.hidden:
		w.hide()
		w.hidden = true
		for _, ack := range w.waiters {
			close(ack)
		}
		w.waiters = nil
	case !w.want && w.hidden:
		w.show()
		w.hidden = false
	}
}

// Hidden reports whether the window is currently hidden.
func (w *windowConcealer) Hidden() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.hidden
}

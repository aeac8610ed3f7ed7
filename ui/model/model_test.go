package model

import (
	"errors"
	"image"
	"sync"
	"testing"
	"time"
)

func TestCaptureModel_SingleFlight(t *testing.T) {
	var m CaptureModel
	if !m.TryBegin() {
		t.Fatalf("first begin should succeed")
	}
	if m.TryBegin() {
		t.Fatalf("second begin should be rejected")
	}
	if !m.InFlight() {
		t.Fatalf("expected in flight")
	}
	m.End()
	if m.InFlight() || !m.TryBegin() {
		t.Fatalf("end did not reopen the gate")
	}
}

func TestCaptureModel_ConcurrentBegin(t *testing.T) {
	var m CaptureModel
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.TryBegin() {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	if wins != 1 {
		t.Fatalf("expected exactly one winner, got %d", wins)
	}
}

func TestCaptureModel_NilSafe(t *testing.T) {
	var m *CaptureModel
	if m.TryBegin() || m.InFlight() {
		t.Fatalf("nil model should report idle and refuse begin")
	}
	m.End()
}

func TestResultModel(t *testing.T) {
	m := NewResultModel()
	at := time.Unix(100, 0)
	m.SetResult([]byte{1, 2}, image.Rect(0, 0, 2, 2), at)
	m.SetSavedPath("captures/a.png")
	m.SetError(errors.New("boom"))
	if len(m.PNG()) != 2 || m.Source().Dx() != 2 || !m.CapturedAt().Equal(at) {
		t.Fatalf("result lost after error")
	}
	if m.Err() == nil || m.SavedPath() != "captures/a.png" {
		t.Fatalf("unexpected err/path %v %q", m.Err(), m.SavedPath())
	}
	m.SetResult([]byte{3}, image.Rect(0, 0, 1, 1), at)
	if m.Err() != nil || m.SavedPath() != "" {
		t.Fatalf("new result should clear error and path")
	}
}

package model

import (
	"image"
	"time"
)

// ResultModel holds the outcome of the most recent capture. Zero value means
// nothing captured yet and is usable.
// No synchronization needed: updates occur on the UI thread tick.
type ResultModel struct {
	png        []byte
	source     image.Rectangle
	capturedAt time.Time
	err        error
	savedPath  string
}

func NewResultModel() *ResultModel { return &ResultModel{} }

// SetResult stores a successful capture and clears the last error.
func (m *ResultModel) SetResult(pngBytes []byte, source image.Rectangle, at time.Time) {
	if m == nil {
		return
	}
	m.png = pngBytes
	m.source = source
	m.capturedAt = at
	m.err = nil
	m.savedPath = ""
}

// SetError records a failed capture. The previous image is kept.
func (m *ResultModel) SetError(err error) {
	if m == nil {
		return
	}
	m.err = err
}

// SetSavedPath records where the last capture was written.
func (m *ResultModel) SetSavedPath(p string) {
	if m == nil {
		return
	}
	m.savedPath = p
}

// PNG returns the encoded bytes of the last capture (may be nil).
func (m *ResultModel) PNG() []byte {
	if m == nil {
		return nil
	}
	return m.png
}

// Source returns the backing-buffer rectangle of the last capture.
func (m *ResultModel) Source() image.Rectangle {
	if m == nil {
		return image.Rectangle{}
	}
	return m.source
}

func (m *ResultModel) CapturedAt() time.Time {
	if m == nil {
		return time.Time{}
	}
	return m.capturedAt
}

func (m *ResultModel) Err() error {
	if m == nil {
		return nil
	}
	return m.err
}

func (m *ResultModel) SavedPath() string {
	if m == nil {
		return ""
	}
	return m.savedPath
}

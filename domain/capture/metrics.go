package capture

import (
	"image"
	"time"
)

// Result carries an encoded capture.
type Result struct {
	DataURI    string
	PNG        []byte
	Source     image.Rectangle // buffer pixels the capture was read from
	Width      int
	Height     int
	CapturedAt time.Time
	Duration   time.Duration
}

// CaptureStats summarises pipeline behaviour for instrumentation.
type CaptureStats struct {
	Captures       uint64
	Failures       uint64
	Rejected       uint64
	AvgCapture     time.Duration
	AvgCaptureMS   float64
	LastCapture    time.Time
	LastCaptureAge time.Duration
	InFlight       bool
}

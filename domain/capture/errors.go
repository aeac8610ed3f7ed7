package capture

import (
	"errors"
	"fmt"
)

var (
	// ErrCaptureInFlight is returned when a capture is triggered while another one runs.
	ErrCaptureInFlight = errors.New("capture: already in progress")
	// ErrEmptyRegion is returned when the clamped source rectangle has no pixels.
	ErrEmptyRegion = errors.New("capture: empty region")
)

// Pipeline stages reported in Error.Stage.
const (
	StageBackground = "background"
	StageGeometry   = "geometry"
	StageOffscreen  = "offscreen"
	StageRender     = "render"
	StageReadback   = "readback"
	StageComposite  = "composite"
	StageEncode     = "encode"
)

// Error is a capture failure tagged with the pipeline stage that produced it.
type Error struct {
	Stage string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("capture %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// EncodingError reports that the encoder rejected a pixel buffer.
type EncodingError struct {
	Width, Height int
	Channels      int
	Len           int
	Err           error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode %dx%d (%d channels, %d bytes): %v", e.Width, e.Height, e.Channels, e.Len, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	var ce *Error
	if errors.As(err, &ce) {
		return err
	}
	return &Error{Stage: stage, Err: err}
}

package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// CaptureStats shows capture counters and the average capture time.
type CaptureStats interface {
	SetStats(captures, failures uint64, avg time.Duration)
}

type captureStats struct {
	countLbl *LabelWidget
	avgLbl   *LabelWidget
}

// NewCaptureStats creates the counter labels in a grid layout at
// (row, startCol) and (row, startCol+1) of parent.
func NewCaptureStats(parent *FrameWidget, row, startCol int) CaptureStats {
	s := &captureStats{countLbl: Label(Width(18)), avgLbl: Label(Width(14))}
	Grid(s.countLbl, In(parent), Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.avgLbl, In(parent), Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	s.SetStats(0, 0, 0)
	return s
}

func (s *captureStats) SetStats(captures, failures uint64, avg time.Duration) {
	if s == nil || s.countLbl == nil {
		return
	}
	s.countLbl.Configure(Txt(fmt.Sprintf("Captures: %d (%d failed)", captures, failures)))
	s.avgLbl.Configure(Txt(fmt.Sprintf("Avg: %d ms", avg.Milliseconds())))
}

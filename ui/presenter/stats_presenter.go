package presenter

import (
	"time"

	"github.com/soocke/region-capture/domain/capture"
)

const statsRefresh = 500 * time.Millisecond

// StatsSource reports capture counters.
type StatsSource interface{ Stats() capture.CaptureStats }

// StatsView displays capture counters.
type StatsView interface {
	SetStats(captures, failures uint64, avg time.Duration)
}

// StatsPresenter pushes pipeline counters to the view at a fixed cadence.
type StatsPresenter struct {
	src  StatsSource
	view StatsView
	last time.Time
}

// NewStatsPresenter returns a new StatsPresenter.
func NewStatsPresenter(src StatsSource, view StatsView) *StatsPresenter {
	return &StatsPresenter{src: src, view: view}
}

func (p *StatsPresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	if !p.last.IsZero() && now.Sub(p.last) < statsRefresh {
		return
	}
	p.last = now
	s := p.src.Stats()
	p.view.SetStats(s.Captures, s.Failures, s.AvgCapture)
}

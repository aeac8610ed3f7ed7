package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Region   *RegionPresenter
	Mode     *ModePresenter
	Capture  *CapturePresenter
	Stats    *StatsPresenter
	Schedule func()
}

func NewLoop(region *RegionPresenter, mode *ModePresenter, capture *CapturePresenter, stats *StatsPresenter, schedule func()) *Loop {
	return &Loop{Region: region, Mode: mode, Capture: capture, Stats: stats, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Capture != nil {
		l.Capture.Tick(now)
	}
	if l.Region != nil {
		l.Region.Tick()
	}
	if l.Mode != nil {
		l.Mode.Tick(now)
	}
	if l.Stats != nil {
		l.Stats.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}

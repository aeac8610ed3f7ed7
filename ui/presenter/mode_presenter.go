package presenter

import (
	"time"

	"github.com/soocke/region-capture/domain/region"
)

// ModeSource reports the current region modifier mode.
type ModeSource interface {
	Mode() region.ModifierMode
}

// ModeView shows the modifier mode in the status bar.
type ModeView interface{ SetMode(region.ModifierMode) }

// ModePresenter mirrors the region modifier mode onto the view.
type ModePresenter struct {
	src    ModeSource
	view   ModeView
	latest region.ModifierMode // last reflected mode
	shown  bool
}

func NewModePresenter(src ModeSource, view ModeView) *ModePresenter {
	return &ModePresenter{src: src, view: view}
}

// Tick updates the view when the mode changed since the last tick.
func (p *ModePresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	m := p.src.Mode()
	if p.shown && m == p.latest {
		return
	}
	p.latest, p.shown = m, true
	p.view.SetMode(m)
}

package app

import (
	"sync"

	"github.com/soocke/region-capture/config"
	"github.com/soocke/region-capture/domain/capture"
	"github.com/soocke/region-capture/domain/region"
)

// configBackground serves the configured capture background to the pipeline
// worker while the settings panel may update it.
type configBackground struct {
	mu          sync.RWMutex
	color       capture.Color
	transparent bool
}

func newConfigBackground(cfg *config.Config) *configBackground {
	b := &configBackground{}
	b.apply(cfg)
	return b
}

func (b *configBackground) apply(cfg *config.Config) {
	b.mu.Lock()
	b.color = capture.Color{R: cfg.Background.R, G: cfg.Background.G, B: cfg.Background.B}
	b.transparent = cfg.TransparentBackground
	b.mu.Unlock()
}

func (b *configBackground) BackgroundColor() (capture.Color, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.color, b.transparent
}

// clientViewport exposes the preview's layout size to the region controller.
// The overlay label is placed at the origin of its own coordinate space.
type clientViewport struct {
	vp capture.Viewport
}

func (v clientViewport) Size() (float64, float64) {
	w, h := v.vp.ClientSize()
	return float64(w), float64(h)
}

func (v clientViewport) Origin() (float64, float64) { return 0, 0 }

// publishedRegion holds the region as of the last UI tick. The controller is
// owned by the UI thread; the capture worker reads this copy instead.
type publishedRegion struct {
	mu sync.Mutex
	r  region.Rect
}

func (p *publishedRegion) publish(r region.Rect) {
	p.mu.Lock()
	p.r = r
	p.mu.Unlock()
}

func (p *publishedRegion) CurrentRegion() region.Rect {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.r
}

package capture

import "sync"

// acquireOffscreen switches the renderer into offscreen mode at width×height
// with overlays and gizmos off and, unless transparent, bg as clear color.
// The returned release func ends offscreen mode and restores the previous
// flags; it is safe to call more than once.
func acquireOffscreen(r Renderer, width, height int, bg Color, transparent bool) (func(), error) {
	overlays := r.OverlaysVisible()
	gizmos := r.GizmosEnabled()
	clearColor := r.ClearColor()

	if err := r.StartOffscreen(width, height); err != nil {
		return nil, err
	}
	var once sync.Once
	release := func() {
		once.Do(func() {
			r.EndOffscreen()
			r.SetOverlaysVisible(overlays)
			r.SetGizmosEnabled(gizmos)
			r.SetClearColor(clearColor)
		})
	}
	r.SetOverlaysVisible(false)
	r.SetGizmosEnabled(false)
	if !transparent {
		r.SetClearColor(bg)
	}
	return release, nil
}

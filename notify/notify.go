package notify

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/soocke/region-capture/domain/capture"
)

// Notifier shows a desktop notification.
type Notifier interface {
	Show(title, message string) error
}

// CaptureNotifier reports capture outcomes through a Notifier. It implements
// capture.Listener and may be called from the capture worker goroutine.
type CaptureNotifier struct {
	n       Notifier
	logger  *slog.Logger
	enabled atomic.Bool
}

// NewCaptureNotifier wraps n. A nil n uses the platform notifier.
func NewCaptureNotifier(n Notifier, enabled bool, logger *slog.Logger) *CaptureNotifier {
	if n == nil {
		n = NewNotifier(logger)
	}
	c := &CaptureNotifier{n: n, logger: logger}
	c.enabled.Store(enabled)
	return c
}

// SetEnabled toggles notifications.
func (c *CaptureNotifier) SetEnabled(b bool) { c.enabled.Store(b) }

func (c *CaptureNotifier) OnCaptureComplete(res capture.Result) {
	if !c.enabled.Load() {
		return
	}
	c.show("Region captured", fmt.Sprintf("%dx%d in %d ms", res.Width, res.Height, res.Duration.Milliseconds()))
}

// OnCaptureFailed shows nothing. The status line is the one place a failure
// is reported to the user.
func (c *CaptureNotifier) OnCaptureFailed(err error) {}

func (c *CaptureNotifier) show(title, msg string) {
	if err := c.n.Show(title, msg); err != nil && c.logger != nil {
		c.logger.Warn("notify.failed", "title", title, "error", err)
	}
}

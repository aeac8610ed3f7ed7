//go:build windows

package notify

import (
	"log/slog"

	"github.com/go-toast/toast"
)

const appID = "Region Capture"

type toastNotifier struct {
	logger *slog.Logger
}

// NewNotifier returns a Windows toast notifier.
func NewNotifier(logger *slog.Logger) Notifier {
	return &toastNotifier{logger: logger}
}

// Show pushes the toast asynchronously; Push shells out to PowerShell.
func (n *toastNotifier) Show(title, message string) error {
	go func() {
		notification := toast.Notification{
			AppID:   appID,
			Title:   title,
			Message: message,
		}
		if err := notification.Push(); err != nil && n.logger != nil {
			n.logger.Warn("toast.push.failed", "error", err)
		}
	}()
	return nil
}

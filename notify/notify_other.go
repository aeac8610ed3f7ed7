//go:build !windows

package notify

import "log/slog"

type logNotifier struct {
	logger *slog.Logger
}

// NewNotifier returns a notifier that writes notifications to the log.
func NewNotifier(logger *slog.Logger) Notifier {
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Show(title, message string) error {
	if n.logger != nil {
		n.logger.Info("notification", "title", title, "message", message)
	}
	return nil
}

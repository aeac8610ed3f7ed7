package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/soocke/region-capture/domain/capture"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type fixedStats struct{}

func (fixedStats) Stats() capture.CaptureStats { return capture.CaptureStats{Captures: 7} }

func waitFor(t *testing.T, buf *syncBuffer, substr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), substr) {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("log output missing %q: %s", substr, buf.String())
}

func TestGoroutineLoggerIncludesCaptureStats(t *testing.T) {
	buf := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartGoroutineLogger(ctx, 10*time.Millisecond, fixedStats{}, slog.New(slog.NewJSONHandler(buf, nil)))
	waitFor(t, buf, `"captures":7`)
}

func TestMemLoggerLogs(t *testing.T) {
	buf := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	StartMemLogger(ctx, 10*time.Millisecond, slog.New(slog.NewJSONHandler(buf, nil)))
	waitFor(t, buf, `"msg":"memstats"`)
}

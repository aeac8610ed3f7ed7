package debug

// Debug runtime logger. Started only when config.Debug is true.
// Emits goroutine count, stack usage and capture pipeline counters at a
// fixed interval.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/soocke/region-capture/domain/capture"
)

// StatsSource reports capture pipeline counters.
type StatsSource interface {
	Stats() capture.CaptureStats
}

// StartGoroutineLogger launches a ticker that logs goroutine count, stack
// memory and, when stats is non-nil, capture counters. It stops with ctx.
func StartGoroutineLogger(ctx context.Context, interval time.Duration, stats StatsSource, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			metrics.Read(samples)
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			attrs := []any{
				slog.Uint64("goroutines", samples[0].Value.Uint64()),
				slog.Uint64("stack_inuse", ms.StackInuse),
				slog.Uint64("stack_sys", ms.StackSys),
				slog.Uint64("heap_alloc", ms.HeapAlloc),
			}
			if stats != nil {
				s := stats.Stats()
				attrs = append(attrs,
					slog.Uint64("captures", s.Captures),
					slog.Uint64("capture_failures", s.Failures),
					slog.Uint64("capture_rejected", s.Rejected),
					slog.Float64("capture_avg_ms", s.AvgCaptureMS),
					slog.Bool("capture_in_flight", s.InFlight),
				)
			}
			logger.Info("goroutine-stacks", attrs...)
		}
	}()
}

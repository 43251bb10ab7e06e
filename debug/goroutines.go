// Package debug holds runtime loggers started when config.Debug is true.
package debug

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"
)

// Probe contributes application counters to each runtime log line.
type Probe func() []slog.Attr

// StartRuntimeLogger logs goroutine count, stack usage and probe output every
// interval until ctx is done. Probes run on the logger goroutine and must be
// safe for concurrent use.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger, probes ...Probe) {
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
			logger.LogAttrs(ctx, slog.LevelInfo, "runtime", runtimeAttrs(samples, probes)...)
		}
	}()
}

func runtimeAttrs(samples []metrics.Sample, probes []Probe) []slog.Attr {
	metrics.Read(samples)
	var goroutines uint64
	if samples[0].Value.Kind() == metrics.KindUint64 {
		goroutines = samples[0].Value.Uint64()
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	attrs := []slog.Attr{
		slog.Uint64("goroutines", goroutines),
		slog.Uint64("stack_inuse", ms.StackInuse),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
	}
	for _, p := range probes {
		if p != nil {
			attrs = append(attrs, p()...)
		}
	}
	return attrs
}

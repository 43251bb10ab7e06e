package debug

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// StartMemLogger logs resident memory next to Go heap stats every interval
// until ctx is done. A failing RSS query is logged once and reported as zero.
func StartMemLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			rss, err := residentBytes()
			if err != nil && !rssErrLogged {
				logger.Warn("memlog: rss query failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Info("memstats", memAttrs(rss)...)
		}
	}()
}

func memAttrs(rss uint64) []any {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return []any{
		slog.Int("goroutines", runtime.NumGoroutine()),
		slog.Uint64("heap_alloc", ms.HeapAlloc),
		slog.Uint64("heap_inuse", ms.HeapInuse),
		slog.Uint64("heap_sys", ms.HeapSys),
		slog.Uint64("next_gc", ms.NextGC),
		slog.Uint64("rss", rss),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	}
}

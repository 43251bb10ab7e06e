package debug

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"runtime/metrics"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestRuntimeAttrs_IncludesProbes(t *testing.T) {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	attrs := runtimeAttrs(samples, []Probe{func() []slog.Attr { return []slog.Attr{slog.Int("boxes", 3)} }, nil})
	keys := make([]string, len(attrs))
	for i, a := range attrs {
		keys[i] = a.Key
	}
	assert.Equal(t, []string{"goroutines", "stack_inuse", "heap_alloc", "boxes"}, keys)
	assert.NotZero(t, attrs[0].Value.Uint64())
}

func TestStartRuntimeLogger_StopsWithContext(t *testing.T) {
	var out syncBuffer
	logger := slog.New(slog.NewJSONHandler(&out, nil))
	ctx, cancel := context.WithCancel(context.Background())
	StartRuntimeLogger(ctx, 5*time.Millisecond, logger, func() []slog.Attr { return []slog.Attr{slog.String("mode", "box")} })

	require.Eventually(t, func() bool { return out.String() != "" }, time.Second, 5*time.Millisecond)
	cancel()

	line, _, _ := bytes.Cut([]byte(out.String()), []byte("\n"))
	var rec map[string]any
	require.NoError(t, json.Unmarshal(line, &rec))
	assert.Equal(t, "runtime", rec["msg"])
	assert.Equal(t, "box", rec["mode"])
}

package observability

import (
	"context"
	"testing"
	"time"
)

type recordingRenderHooks struct {
	starts    int
	completes int
	lastErr   error
}

func (r *recordingRenderHooks) OnRenderStart(ctx context.Context, format string) {
	r.starts++
}

func (r *recordingRenderHooks) OnRenderComplete(ctx context.Context, format string, d time.Duration, err error) {
	r.completes++
	r.lastErr = err
}

type recordingCacheHooks struct {
	hits, misses, sets int
}

func (r *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string)        { r.hits++ }
func (r *recordingCacheHooks) OnCacheMiss(ctx context.Context, keyType string)       { r.misses++ }
func (r *recordingCacheHooks) OnCacheSet(ctx context.Context, keyType string, n int) { r.sets++ }

func TestDefaultHooksAreNoops(t *testing.T) {
	Reset()

	// Must not panic.
	ctx := context.Background()
	Render().OnRenderStart(ctx, "svg")
	Render().OnRenderComplete(ctx, "svg", time.Second, nil)
	Cache().OnCacheHit(ctx, "render")
	Cache().OnCacheMiss(ctx, "render")
	Cache().OnCacheSet(ctx, "render", 100)
}

func TestSetRenderHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingRenderHooks{}
	SetRenderHooks(rec)

	ctx := context.Background()
	Render().OnRenderStart(ctx, "png")
	Render().OnRenderComplete(ctx, "png", time.Millisecond, nil)

	if rec.starts != 1 || rec.completes != 1 {
		t.Errorf("hooks = %d starts, %d completes, want 1 and 1", rec.starts, rec.completes)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	ctx := context.Background()
	Cache().OnCacheMiss(ctx, "render")
	Cache().OnCacheSet(ctx, "render", 42)
	Cache().OnCacheHit(ctx, "render")

	if rec.hits != 1 || rec.misses != 1 || rec.sets != 1 {
		t.Errorf("hooks = %+v, want one of each", rec)
	}
}

func TestSetNilHooksKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingRenderHooks{}
	SetRenderHooks(rec)
	SetRenderHooks(nil)

	Render().OnRenderStart(context.Background(), "svg")
	if rec.starts != 1 {
		t.Error("nil registration replaced the current hooks")
	}
}

package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnLoadStart(ctx, "aln.toml")
	p.OnLoadComplete(ctx, "aln.toml", 2, time.Millisecond, nil)
	p.OnLayoutStart(ctx, "aln-1", 2)
	p.OnLayoutComplete(ctx, "aln-1", time.Millisecond, nil)
	p.OnRenderStart(ctx, []string{"svg"})
	p.OnRenderComplete(ctx, []string{"svg"}, time.Millisecond, nil)

	l := NoopLayoutHooks{}
	l.OnIntervals("aln-1", 3, false)
	l.OnRaster("aln-1", 1, 200, true)
	l.OnDegraded("aln-1", 1, errors.New("malformed"))

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "layout")
	c.OnCacheMiss(ctx, "layout")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	defer Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should default to NoopPipelineHooks")
	}
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Layout() should default to NoopLayoutHooks")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should default to NoopCacheHooks")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customLayout := &countingLayoutHooks{}
	SetLayoutHooks(customLayout)
	Layout().OnDegraded("aln-1", 1, errors.New("boom"))
	if customLayout.degraded != 1 {
		t.Errorf("degraded events = %d, want 1", customLayout.degraded)
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("Reset() should restore NoopLayoutHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	SetLayoutHooks(nil)

	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}
	if _, ok := Layout().(NoopLayoutHooks); !ok {
		t.Error("SetLayoutHooks(nil) should be ignored")
	}
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testCacheHooks struct{ NoopCacheHooks }

type countingLayoutHooks struct {
	NoopLayoutHooks
	degraded int
}

func (h *countingLayoutHooks) OnDegraded(string, int, error) { h.degraded++ }

package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRenderHooks{}
	r.OnCardStart(ctx, 0, 4)
	r.OnCardComplete(ctx, 0, "news_card_000.png", time.Second, nil)

	a := NoopAssemblyHooks{}
	a.OnClipEncoded(ctx, 1, 3, 5.0)
	a.OnExportStart(ctx, "news_collection.mp4", 15.0)
	a.OnExportComplete(ctx, "news_collection.mp4", time.Second, nil)
}

type testRenderHooks struct {
	NoopRenderHooks
	cards int
}

func (h *testRenderHooks) OnCardStart(context.Context, int, int) { h.cards++ }

type testAssemblyHooks struct {
	NoopAssemblyHooks
	exports int
}

func (h *testAssemblyHooks) OnExportStart(context.Context, string, float64) { h.exports++ }

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Assembly().(NoopAssemblyHooks); !ok {
		t.Error("Assembly() should return NoopAssemblyHooks by default")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customAssembly := &testAssemblyHooks{}
	SetAssemblyHooks(customAssembly)
	if Assembly() != customAssembly {
		t.Error("SetAssemblyHooks should set custom hooks")
	}

	// nil registrations are ignored
	SetRenderHooks(nil)
	if Render() != customRender {
		t.Error("SetRenderHooks(nil) should keep previous hooks")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore noop render hooks")
	}
	if _, ok := Assembly().(NoopAssemblyHooks); !ok {
		t.Error("Reset() should restore noop assembly hooks")
	}
}

package adorn

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// enableDebug turns debug mode on for the test and routes warnings to an
// observer.
func enableDebug(t *testing.T, s *Scene) {
	t.Helper()
	s.SetDebugMode(true)
	t.Cleanup(func() {
		s.SetDebugMode(false)
		debugLogger = zap.NewNop()
	})
}

func expectDisposedPanic(t *testing.T) {
	t.Helper()
	r := recover()
	if r == nil {
		t.Fatal("expected panic, got none")
	}
	if msg := fmt.Sprint(r); !strings.Contains(msg, "disposed") {
		t.Errorf("panic message should mention 'disposed', got: %s", msg)
	}
}

func TestDebugMode_DisposedNodePanics(t *testing.T) {
	s := NewScene()
	enableDebug(t, s)

	parent := NewContainer("parent")
	s.Root().AddChild(parent)
	child := NewRect("child", 10, 10, ColorWhite)
	child.Dispose()

	defer expectDisposedPanic(t)
	parent.AddChild(child)
}

func TestDebugMode_DisposedParentPanics(t *testing.T) {
	s := NewScene()
	enableDebug(t, s)

	parent := NewContainer("parent")
	parent.Dispose()

	defer expectDisposedPanic(t)
	parent.AddChild(NewRect("child", 10, 10, ColorWhite))
}

func TestReleaseMode_DisposedNodeNoPanic(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(false)

	child := NewRect("child", 10, 10, ColorWhite)
	child.Dispose()

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("release mode should not panic on disposed node, got: %v", r)
		}
	}()
	s.Root().AddChild(child)
}

func TestDebugMode_TreeDepthWarning(t *testing.T) {
	s := NewScene()
	logs := observe(s)
	enableDebug(t, s)

	current := s.Root()
	for i := range debugMaxTreeDepth + 5 {
		child := NewContainer(fmt.Sprintf("depth_%d", i))
		current.AddChild(child)
		current = child
	}

	if logs.FilterMessage("tree too deep").Len() == 0 {
		t.Error("expected tree depth warning")
	}
}

func TestDebugMode_TreeDepthCountsAdornerLayers(t *testing.T) {
	s := NewScene()
	logs := observe(s)
	enableDebug(t, s)

	// A chain just under the limit, continued inside an adorner layer.
	current := s.Root()
	for i := range debugMaxTreeDepth - 2 {
		child := NewContainer(fmt.Sprintf("depth_%d", i))
		current.AddChild(child)
		current = child
	}
	layerRoot := NewAdornerLayer(current).Root()
	inner := NewContainer("inner")
	layerRoot.AddChild(inner)
	inner.AddChild(NewContainer("leaf"))

	if logs.FilterMessage("tree too deep").Len() == 0 {
		t.Error("depth should follow layers back to their owner")
	}
}

func TestDebugMode_ChildCountWarning(t *testing.T) {
	s := NewScene()
	logs := observe(s)
	enableDebug(t, s)

	parent := NewContainer("many_children")
	s.Root().AddChild(parent)
	for i := range debugMaxChildCount + 1 {
		parent.AddChild(NewContainer(fmt.Sprintf("c_%d", i)))
	}

	entries := logs.FilterMessage("too many children").All()
	if len(entries) == 0 {
		t.Fatal("expected child count warning")
	}
	if got := entries[0].ContextMap()["node"]; got != "many_children" {
		t.Errorf("warning names node %v, want many_children", got)
	}
}

func TestDebugLogFrameStats(t *testing.T) {
	s := NewScene()
	logs := observe(s)

	s.debugLog(debugStats{commandCount: 3, overlayCount: 1})
	if logs.Len() != 0 {
		t.Error("debugLog should be silent outside debug mode")
	}

	enableDebug(t, s)
	s.debugLog(debugStats{commandCount: 3, overlayCount: 1})
	entries := logs.FilterMessage("frame").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d frame entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["commands"] != int64(3) || ctx["overlays"] != int64(1) {
		t.Errorf("frame context = %v", ctx)
	}
}

func TestCountOverlays(t *testing.T) {
	s, host := newTestScene(t)
	if got := countOverlays(s.layers); got != 0 {
		t.Fatalf("countOverlays = %d, want 0", got)
	}

	a, _ := newTestAdorner(t, s, host, DefaultConfig())
	b, _ := newTestAdorner(t, s, host, DefaultConfig())
	_ = a.Show()
	_ = b.Show()
	if got := countOverlays(s.layers); got != 2 {
		t.Errorf("countOverlays = %d, want 2", got)
	}
}

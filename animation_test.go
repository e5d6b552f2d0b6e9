package adorn

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenColorAllComponents(t *testing.T) {
	node := NewContainer("color")
	node.Color = Color{R: 1, G: 0, B: 0, A: 1}
	target := Color{R: 0, G: 1, B: 0.5, A: 0.5}

	g := TweenColor(node, target, 1.0, ease.Linear)

	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.Color.R-target.R) > 0.01 {
		t.Errorf("R = %f, want %f", node.Color.R, target.R)
	}
	if math.Abs(node.Color.G-target.G) > 0.01 {
		t.Errorf("G = %f, want %f", node.Color.G, target.G)
	}
	if math.Abs(node.Color.B-target.B) > 0.01 {
		t.Errorf("B = %f, want %f", node.Color.B, target.B)
	}
	if math.Abs(node.Color.A-target.A) > 0.01 {
		t.Errorf("A = %f, want %f", node.Color.A, target.A)
	}
}

func TestTweenAlphaInterpolates(t *testing.T) {
	node := NewContainer("alpha")
	node.Alpha = 1.0

	tw := TweenAlpha(node, 0.0, 1.0, ease.Linear)

	tw.Update(0.5)
	if tw.Done {
		t.Fatal("should not be done at halfway")
	}
	if math.Abs(node.Alpha-0.5) > 0.05 {
		t.Errorf("Alpha = %f, want ~0.5 at halfway", node.Alpha)
	}

	tw.Update(0.5)
	if !tw.Done {
		t.Fatal("should be done after full duration")
	}
	if math.Abs(node.Alpha) > 0.01 {
		t.Errorf("Alpha = %f, want ~0.0", node.Alpha)
	}
}

func TestTweenAlphaStartsFromCurrentValue(t *testing.T) {
	node := NewContainer("alpha")
	node.Alpha = 0.5

	tw := TweenAlpha(node, 1.0, 1.0, ease.Linear)
	tw.Update(0.5)

	if math.Abs(node.Alpha-0.75) > 0.01 {
		t.Errorf("Alpha = %f, want ~0.75", node.Alpha)
	}
}

func TestTweenZeroDurationCompletesOnFirstUpdate(t *testing.T) {
	node := NewContainer("instant")
	node.Alpha = 0

	calls := 0
	tw := TweenAlpha(node, 1, 0, ease.Linear)
	tw.OnComplete = func() { calls++ }
	tw.Update(0)

	if !tw.Done || calls != 1 {
		t.Fatalf("Done = %v, completions = %d, want true, 1", tw.Done, calls)
	}
	if node.Alpha != 1 {
		t.Errorf("Alpha = %f, want 1", node.Alpha)
	}
}

func TestTweenGroupDoneFlagTransition(t *testing.T) {
	node := NewContainer("done")
	g := TweenAlpha(node, 0, 0.5, ease.Linear)

	if g.Done {
		t.Fatal("should not be Done at start")
	}
	g.Update(0.25)
	if g.Done {
		t.Fatal("should not be Done partway through")
	}
	g.Update(0.25)
	if !g.Done {
		t.Fatal("should be Done after full duration")
	}
	g.Update(0.125)
	if !g.Done {
		t.Fatal("should remain Done")
	}
}

func TestTweenGroupOnCompleteFiresOnce(t *testing.T) {
	node := NewContainer("complete")
	calls := 0
	g := TweenAlpha(node, 0, 0.5, ease.Linear)
	g.OnComplete = func() { calls++ }

	g.Update(0.25)
	if calls != 0 {
		t.Fatal("OnComplete fired early")
	}
	g.Update(0.25)
	g.Update(0.25)
	if calls != 1 {
		t.Errorf("OnComplete fired %d times, want 1", calls)
	}
}

func TestTweenGroupCancel(t *testing.T) {
	node := NewContainer("cancel")
	calls := 0
	g := TweenAlpha(node, 0, 1, ease.Linear)
	g.OnComplete = func() { calls++ }

	g.Update(0.5)
	g.Cancel()
	saved := node.Alpha
	g.Update(1)

	if !g.Done || !g.Cancelled() {
		t.Fatal("cancelled group should be Done and Cancelled")
	}
	if calls != 0 {
		t.Error("OnComplete should not fire after Cancel")
	}
	if node.Alpha != saved {
		t.Errorf("Alpha changed after Cancel: %f -> %f", saved, node.Alpha)
	}
}

func TestTweenGroupMarksDirty(t *testing.T) {
	node := NewContainer("dirty")
	node.transformDirty = false

	g := TweenAlpha(node, 0, 1.0, ease.Linear)
	g.Update(0.125)

	if !node.transformDirty {
		t.Fatal("expected node to be marked dirty after TweenGroup update")
	}
}

func TestTweenGroupDisposedMidAnimation(t *testing.T) {
	node := NewContainer("mid-dispose")
	calls := 0
	g := TweenAlpha(node, 0, 1.0, ease.Linear)
	g.OnComplete = func() { calls++ }

	g.Update(0.125)
	g.Update(0.125)
	if g.Done {
		t.Fatal("should not be Done yet")
	}

	node.Dispose()
	saved := node.Alpha

	g.Update(0.125)
	if !g.Done || !g.Cancelled() {
		t.Fatal("expected cancelled after node disposed mid-animation")
	}
	if calls != 0 {
		t.Error("OnComplete should not fire for a disposed target")
	}
	if node.Alpha != saved {
		t.Error("node fields should not change after disposal")
	}
}

func TestTweenEasingFunctionsProduceDifferentCurves(t *testing.T) {
	nodeL := NewContainer("linear")
	nodeC := NewContainer("cubic")
	nodeL.Alpha, nodeC.Alpha = 0, 0

	gL := TweenAlpha(nodeL, 1, 1.0, ease.Linear)
	gC := TweenAlpha(nodeC, 1, 1.0, ease.OutCubic)

	gL.Update(0.5)
	gC.Update(0.5)

	if math.Abs(nodeL.Alpha-nodeC.Alpha) < 0.1 {
		t.Errorf("easing curves should differ at midpoint: linear=%f cubic=%f", nodeL.Alpha, nodeC.Alpha)
	}
}

func TestTweenGroupUpdateZeroAlloc(t *testing.T) {
	node := NewContainer("alloc")
	g := TweenColor(node, Color{}, 1.0, ease.Linear)

	g.Update(0.01)

	result := testing.AllocsPerRun(100, func() {
		g.Update(0.001)
	})
	if result > 0 {
		t.Errorf("TweenGroup.Update allocated %f times per run, want 0", result)
	}
}

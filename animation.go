package adorn

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields on a Node simultaneously.
// Create one via the convenience constructors and call Update(dt) each frame.
// The group auto-applies values and marks the node dirty. If the target node
// is disposed, the group stops immediately without completing.
//
// OnComplete, if set, runs once when every tween has reached its end value.
// A cancelled group never completes.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node
	Done   bool

	OnComplete func()
	cancelled  bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		g.cancelled = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.Done && g.OnComplete != nil {
		g.OnComplete()
	}
}

// Cancel stops the group where it is. The target keeps its current values
// and OnComplete is not called.
func (g *TweenGroup) Cancel() {
	if g.Done {
		return
	}
	g.Done = true
	g.cancelled = true
}

// Cancelled reports whether the group was stopped before completing.
func (g *TweenGroup) Cancelled() bool {
	return g.cancelled
}

// TweenAlpha creates a TweenGroup that animates node.Alpha from its current
// value to the target value over the specified duration (seconds).
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: node}
	g.tweens[0] = gween.New(float32(node.Alpha), float32(to), duration, fn)
	g.fields[0] = &node.Alpha
	return g
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4, target: node}
	g.tweens[0] = gween.New(float32(node.Color.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Color.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Color.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(node.Color.A), float32(to.A), duration, fn)
	g.fields[0] = &node.Color.R
	g.fields[1] = &node.Color.G
	g.fields[2] = &node.Color.B
	g.fields[3] = &node.Color.A
	return g
}

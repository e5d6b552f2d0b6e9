package adorn

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewAdornerLayerIdempotent(t *testing.T) {
	owner := NewContainer("owner")
	a := NewAdornerLayer(owner)
	b := NewAdornerLayer(owner)
	if a != b {
		t.Error("NewAdornerLayer should return the existing layer")
	}
	if a.Owner() != owner {
		t.Error("Owner mismatch")
	}
	if logicalParent(a.Root()) != owner {
		t.Error("layer root should point back at its owner")
	}
}

func TestGetAdornerLayer(t *testing.T) {
	root := NewContainer("root")
	rootLayer := NewAdornerLayer(root)
	panel := NewContainer("panel")
	panelLayer := NewAdornerLayer(panel)
	leaf := NewContainer("leaf")
	root.AddChild(panel)
	panel.AddChild(leaf)

	tests := []struct {
		name string
		node *Node
		want *AdornerLayer
	}{
		{"owner itself", panel, panelLayer},
		{"descendant", leaf, panelLayer},
		{"root", root, rootLayer},
		{"inside a layer", panelLayer.Root(), panelLayer},
		{"detached", NewContainer("orphan"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAdornerLayer(tt.node); got != tt.want {
				t.Errorf("GetAdornerLayer = %p, want %p", got, tt.want)
			}
		})
	}
}

func TestAdornerLayerAddReplaces(t *testing.T) {
	owner := NewContainer("owner")
	l := NewAdornerLayer(owner)
	id := uuid.New()

	first := NewRect("first", 10, 10, ColorWhite)
	w1 := newAdornerWrapper(first, owner, PlacementConfig{})
	l.add(id, w1)

	second := NewRect("second", 10, 10, ColorWhite)
	w2 := newAdornerWrapper(second, owner, PlacementConfig{})
	l.add(id, w2)

	if l.Len() != 1 || l.Root().NumChildren() != 1 {
		t.Fatalf("Len = %d, children = %d, want 1, 1", l.Len(), l.Root().NumChildren())
	}
	if !w1.node.IsDisposed() || first.Parent != nil {
		t.Error("replaced wrapper should be disconnected")
	}

	l.remove(id)
	l.remove(id)
	if l.Has(id) || l.Root().NumChildren() != 0 {
		t.Error("remove should unregister and detach")
	}
}

func TestAdornerWrapperSync(t *testing.T) {
	root := NewContainer("root")
	l := NewAdornerLayer(root)
	host := NewRect("host", 100, 40, ColorWhite)
	host.SetPosition(30, 20)
	root.AddChild(host)
	updateWorldTransform(root, identityTransform, 1, false)

	content := NewRect("tip", 20, 10, ColorWhite)
	content.HAlign = HAlignCenter
	content.VAlign = VAlignBottom
	w := newAdornerWrapper(content, host, PlacementConfig{Vertical: PlacementOutside})
	l.add(uuid.New(), w)

	if w.node.X != 30 || w.node.Y != 20 {
		t.Errorf("wrapper at (%v, %v), want (30, 20)", w.node.X, w.node.Y)
	}
	if want := (Rect{X: 40, Y: 40, Width: 20, Height: 10}); w.rect != want {
		t.Errorf("rect = %v, want %v", w.rect, want)
	}

	host.SetPosition(0, 0)
	updateWorldTransform(root, identityTransform, 1, false)
	l.sync()
	if w.node.X != 0 || w.node.Y != 0 {
		t.Errorf("wrapper did not follow host: (%v, %v)", w.node.X, w.node.Y)
	}
}

func TestAdornerWrapperDisconnect(t *testing.T) {
	host := NewRect("host", 100, 40, ColorWhite)
	content := NewRect("tip", 20, 10, ColorWhite)
	content.HAlign = HAlignStretch
	w := newAdornerWrapper(content, host, PlacementConfig{})
	w.arrange()
	if got := content.ArrangedSize(); got != (Vec2{100, 10}) {
		t.Fatalf("arranged = %v, want {100 10}", got)
	}

	w.disconnect()
	if content.Parent != nil || content.IsArranged() {
		t.Error("disconnect should detach the content and clear its arrange")
	}
	if len(host.resizeHandlers) != 0 || len(content.resizeHandlers) != 0 {
		t.Error("disconnect should drop resize subscriptions")
	}

	// A later host resize must not reach the dead wrapper.
	host.SetSize(10, 10)
	if w.dirty {
		t.Error("disconnected wrapper should not be invalidated")
	}
}

package adorn

import "github.com/google/uuid"

// AdornerLayer is the surface adorners attach to. It belongs to an owner
// node: its contents are laid out in the owner's coordinate space, drawn
// after the owner's subtree and hit-tested above it.
//
// A layer holds at most one wrapper per adorner.
type AdornerLayer struct {
	owner    *Node
	root     *Node
	wrappers map[uuid.UUID]*adornerWrapper
}

// NewAdornerLayer installs an adorner layer on owner and returns it. If owner
// already has a layer, that layer is returned.
func NewAdornerLayer(owner *Node) *AdornerLayer {
	if owner.adornerLayer != nil {
		return owner.adornerLayer
	}
	root := NewContainer(owner.Name + ":adorners")
	root.Interactable = true
	root.layerOwner = owner
	l := &AdornerLayer{
		owner:    owner,
		root:     root,
		wrappers: make(map[uuid.UUID]*adornerWrapper),
	}
	owner.adornerLayer = l
	return l
}

// GetAdornerLayer returns the layer of n or of its nearest ancestor that has
// one, or nil.
func GetAdornerLayer(n *Node) *AdornerLayer {
	for p := n; p != nil; p = logicalParent(p) {
		if p.adornerLayer != nil {
			return p.adornerLayer
		}
	}
	return nil
}

// Owner returns the node the layer is installed on.
func (l *AdornerLayer) Owner() *Node {
	return l.owner
}

// Root returns the container holding the layer's adorner wrappers.
func (l *AdornerLayer) Root() *Node {
	return l.root
}

// Len returns the number of attached adorners.
func (l *AdornerLayer) Len() int {
	return len(l.wrappers)
}

// Has reports whether the adorner with the given id is attached.
func (l *AdornerLayer) Has(id uuid.UUID) bool {
	_, ok := l.wrappers[id]
	return ok
}

// add registers w for id. An existing wrapper for the same id is removed
// first so an adorner never has two live overlays.
func (l *AdornerLayer) add(id uuid.UUID, w *adornerWrapper) {
	if old, ok := l.wrappers[id]; ok {
		l.remove(id)
		old.disconnect()
	}
	l.wrappers[id] = w
	l.root.AddChild(w.node)
	w.sync(l.owner)
}

// remove unregisters the wrapper for id. No-op if id is not attached.
func (l *AdornerLayer) remove(id uuid.UUID) {
	w, ok := l.wrappers[id]
	if !ok {
		return
	}
	delete(l.wrappers, id)
	if w.node.Parent == l.root {
		l.root.RemoveChild(w.node)
	}
}

// sync positions every wrapper over its adorned element and re-arranges the
// ones whose placement was invalidated.
func (l *AdornerLayer) sync() {
	for _, n := range l.root.children {
		if w, ok := n.UserData.(*adornerWrapper); ok {
			w.sync(l.owner)
		}
	}
}

package adorn

// adornerWrapper is the placement-aware container created for one
// attachment of an adorner's content. It lives exactly from attach to detach.
// Its node sits in the layer at the adorned element's origin; the content is
// its only child, positioned and sized by ComputePlacement.
type adornerWrapper struct {
	node      *Node
	content   *Node
	adorned   *Node
	placement PlacementConfig
	dirty     bool
	rect      Rect
	desired   Vec2 // content desired size at the last arrange

	adornedResize ResizeHandle
	contentResize ResizeHandle
}

func newAdornerWrapper(content, adorned *Node, placement PlacementConfig) *adornerWrapper {
	node := NewContainer("adorner:" + content.Name)
	node.Interactable = true
	w := &adornerWrapper{
		node:      node,
		content:   content,
		adorned:   adorned,
		placement: placement,
		dirty:     true,
	}
	node.UserData = w
	node.AddChild(content)
	w.adornedResize = adorned.OnResize(func(ResizeContext) { w.invalidate() })
	w.contentResize = content.OnResize(func(ResizeContext) { w.invalidate() })
	return w
}

// invalidate requests a re-arrange on the next sync.
func (w *adornerWrapper) invalidate() {
	w.dirty = true
}

// setPlacement replaces the placement config and invalidates.
func (w *adornerWrapper) setPlacement(p PlacementConfig) {
	w.placement = p
	w.invalidate()
}

// sync moves the wrapper to the adorned element's origin in owner space and
// arranges the content if needed.
func (w *adornerWrapper) sync(owner *Node) {
	wx, wy := w.adorned.LocalToWorld(0, 0)
	lx, ly := owner.WorldToLocal(wx, wy)
	if lx != w.node.X || ly != w.node.Y {
		w.node.SetPosition(lx, ly)
	}
	// An arranged content reports its arranged size to resize subscribers,
	// so desired-size changes are only visible here.
	if w.dirty || w.content.DesiredSize() != w.desired {
		w.arrange()
	}
}

// arrange computes the content rectangle from the adorned element's current
// size and applies it.
func (w *adornerWrapper) arrange() {
	w.desired = w.content.DesiredSize()
	w.rect = ComputePlacement(w.adorned.ArrangedSize(), MetricsOf(w.content), w.placement)
	w.content.SetPosition(w.rect.X, w.rect.Y)
	w.content.arrange(w.rect.Width, w.rect.Height)
	// The content's own resize notification must not re-invalidate.
	w.dirty = false
}

// disconnect releases the wrapper's hold on the content so it can be
// reparented or reused, and disposes the wrapper node.
func (w *adornerWrapper) disconnect() {
	w.adornedResize.Remove()
	w.contentResize.Remove()
	if w.content.Parent == w.node {
		w.node.RemoveChild(w.content)
	}
	w.content.clearArrange()
	w.node.UserData = nil
	w.node.Dispose()
}

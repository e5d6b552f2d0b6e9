package adorn

// ResizeContext carries the old and new size of a resized node.
type ResizeContext struct {
	Node    *Node
	OldSize Vec2
	NewSize Vec2
}

type resizeHandler struct {
	id uint32
	fn func(ResizeContext)
}

// ResizeHandle allows removing a resize subscription.
type ResizeHandle struct {
	node *Node
	id   uint32
}

// Remove unsubscribes the handler. Safe to call more than once and on the
// zero value.
func (h ResizeHandle) Remove() {
	if h.node == nil {
		return
	}
	s := h.node.resizeHandlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = resizeHandler{}
			h.node.resizeHandlers = s[:len(s)-1]
			return
		}
	}
}

// OnResize registers fn to be called whenever the node's effective size
// (arranged size, or desired size when not arranged) changes.
func (n *Node) OnResize(fn func(ResizeContext)) ResizeHandle {
	n.nextHandlerID++
	id := n.nextHandlerID
	n.resizeHandlers = append(n.resizeHandlers, resizeHandler{id: id, fn: fn})
	return ResizeHandle{node: n, id: id}
}

// SetSize sets the node's explicit desired size and notifies resize
// subscribers if the effective size changed.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
	n.notifyResize()
}

// DesiredSize returns the size the node asks for before arrangement.
//
//   - Explicit Width/Height win on each axis when non-zero.
//   - Sprites fall back to their image bounds.
//   - Text falls back to its measured content.
//   - Containers fall back to the far edge of their children.
//   - Canvases and rects fall back to zero.
func (n *Node) DesiredSize() Vec2 {
	w, h := n.Width, n.Height
	if w != 0 && h != 0 {
		return Vec2{w, h}
	}
	var dw, dh float64
	switch n.Type {
	case NodeTypeText:
		if n.textBlock != nil {
			dw, dh = n.textBlock.size()
		}
	case NodeTypeSprite:
		if n.image != nil {
			b := n.image.Bounds()
			dw, dh = float64(b.Dx()), float64(b.Dy())
		}
	case NodeTypeContainer:
		for _, c := range n.children {
			if !c.Visible {
				continue
			}
			cs := c.DesiredSize()
			if r := c.X + cs.X*c.ScaleX; r > dw {
				dw = r
			}
			if b := c.Y + cs.Y*c.ScaleY; b > dh {
				dh = b
			}
		}
	}
	if w == 0 {
		w = dw
	}
	if h == 0 {
		h = dh
	}
	return Vec2{w, h}
}

// ArrangedSize returns the size assigned by the last arrange pass, or the
// desired size when the node has not been arranged.
func (n *Node) ArrangedSize() Vec2 {
	if n.arranged {
		return Vec2{n.arrangedW, n.arrangedH}
	}
	return n.DesiredSize()
}

// IsArranged reports whether an arrange pass has assigned this node a size.
func (n *Node) IsArranged() bool {
	return n.arranged
}

// arrange assigns the node's final size.
func (n *Node) arrange(w, h float64) {
	n.arranged = true
	n.arrangedW = w
	n.arrangedH = h
	n.notifyResize()
}

// clearArrange drops any arranged size so the node reverts to its desired size.
func (n *Node) clearArrange() {
	if !n.arranged {
		return
	}
	n.arranged = false
	n.arrangedW = 0
	n.arrangedH = 0
	n.notifyResize()
}

// notifyResize fires resize handlers if the effective size differs from the
// last reported one, then lets a size-deriving parent re-check its own size.
func (n *Node) notifyResize() {
	size := n.ArrangedSize()
	if size == n.lastSize {
		return
	}
	old := n.lastSize
	n.lastSize = size
	if len(n.resizeHandlers) > 0 {
		ctx := ResizeContext{Node: n, OldSize: old, NewSize: size}
		// Handlers may unsubscribe while we iterate.
		handlers := append([]resizeHandler(nil), n.resizeHandlers...)
		for _, h := range handlers {
			h.fn(ctx)
		}
	}
	if p := n.Parent; p != nil && p.Type == NodeTypeContainer && !p.arranged {
		p.notifyResize()
	}
}

// nodeDimensions returns the local-space width and height used for drawing
// and hit testing.
func nodeDimensions(n *Node) (w, h float64) {
	s := n.ArrangedSize()
	return s.X, s.Y
}

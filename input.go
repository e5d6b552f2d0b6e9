package adorn

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Pointer state ---

type pointerState struct {
	down      bool
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node   // leaf under the pointer
	hoverPath []*Node // hoverNode and its logical ancestors, leaf first
	button    MouseButton
}

// --- Handler registry ---

type pointerHandler struct {
	id uint32
	fn func(PointerContext)
}

type clickHandler struct {
	id uint32
	fn func(ClickContext)
}

type handlerRegistry struct {
	pointerDown  []pointerHandler
	pointerUp    []pointerHandler
	pointerMove  []pointerHandler
	pointerEnter []pointerHandler
	pointerLeave []pointerHandler
	click        []clickHandler
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removePointerHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removePointerHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = removeClickHandler(h.reg.click, h.id)
	}
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removeClickHandler(s []clickHandler, id uint32) []clickHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = clickHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// --- Scene-level event registration ---

func (s *Scene) addPointerHandler(list *[]pointerHandler, event EventType, fn func(PointerContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	*list = append(*list, pointerHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: event}
}

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerMove, EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired for the topmost node under the pointer when it changes.
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
// Fired for the previous topmost node when the pointer moves off it.
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return s.addPointerHandler(&s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.click = append(s.handlers.click, clickHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventClick}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's arranged (or desired) size.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted,
// adorner layers after their owner's subtree), appending hit-testable nodes
// to buf. A node is hit-testable when it or an ancestor is Interactable, and
// it is not a container or has a HitShape. Invisible subtrees are skipped.
func (s *Scene) collectInteractable(n *Node, inherited bool, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	on := inherited || n.Interactable
	if on && (n.HitShape != nil || n.Type != NodeTypeContainer) {
		buf = append(buf, n)
	}

	children := n.children
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = s.collectInteractable(child, on, buf)
	}
	if n.adornerLayer != nil {
		buf = s.collectInteractable(n.adornerLayer.root, false, buf)
	}
	return buf
}

// hitTest finds the topmost hit-testable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = s.collectInteractable(s.root, false, s.hitBuf[:0])

	// Reverse painter order: topmost first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// --- Input processing ---

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}

// processMouse feeds the real mouse through the pointer state machine.
func (s *Scene) processMouse() {
	mx, my := ebiten.CursorPosition()

	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	if left || right || middle {
		pressed = true
		switch {
		case left:
			button = MouseButtonLeft
		case right:
			button = MouseButtonRight
		default:
			button = MouseButtonMiddle
		}
	}

	s.processPointer(float64(mx), float64(my), pressed, button, readModifiers())
}

// processPointer runs the pointer state machine.
func (s *Scene) processPointer(wx, wy float64, pressed bool, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	target := s.hitTest(wx, wy)

	if target != ps.hoverNode {
		s.updateHover(target, wx, wy, button, mods)
	}

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.hitNode = target
		s.firePointerDown(target, wx, wy, ps.button, mods)
	case !pressed && ps.down:
		if ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, wx, wy, ps.button, mods)
		}
		s.firePointerUp(target, wx, wy, ps.button, mods)
		ps.down = false
		ps.hitNode = nil
	case !pressed && !ps.down:
		if wx != ps.lastX || wy != ps.lastY {
			s.firePointerMove(target, wx, wy, button, mods)
		}
	}
	ps.lastX = wx
	ps.lastY = wy
}

// updateHover moves the hover from the current leaf to target. Nodes on the
// old path but not the new one get leave (leaf first), then nodes on the new
// path but not the old one get enter (outermost first). Paths follow
// logicalParent, so moving from a host onto its adorner leaves only the host.
func (s *Scene) updateHover(target *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ps := &s.pointer
	old := ps.hoverPath

	next := s.pathBuf[:0]
	for p := target; p != nil; p = logicalParent(p) {
		next = append(next, p)
	}

	if ps.hoverNode != nil {
		ctx := pointerContextFor(ps.hoverNode, wx, wy, button, mods)
		for _, h := range s.handlers.pointerLeave {
			h.fn(ctx)
		}
	}
	for _, n := range old {
		if !containsNode(next, n) {
			firePointerLeave(n, wx, wy, button, mods)
		}
	}
	for i := len(next) - 1; i >= 0; i-- {
		if !containsNode(old, next[i]) {
			firePointerEnter(next[i], wx, wy, button, mods)
		}
	}
	if target != nil {
		ctx := pointerContextFor(target, wx, wy, button, mods)
		for _, h := range s.handlers.pointerEnter {
			h.fn(ctx)
		}
	}

	clear(old)
	s.pathBuf = old[:0]
	ps.hoverPath = next
	ps.hoverNode = target
}

func containsNode(path []*Node, n *Node) bool {
	for _, p := range path {
		if p == n {
			return true
		}
	}
	return false
}

// --- Event dispatch ---

func pointerContextFor(node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) PointerContext {
	ctx := PointerContext{
		Node: node, GlobalX: wx, GlobalY: wy,
		Button: button, Modifiers: mods,
	}
	if node != nil {
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(wx, wy)
		ctx.UserData = node.UserData
	}
	return ctx
}

func firePointerEnter(node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	if node.disposed {
		return
	}
	if node.OnPointerEnter != nil {
		node.OnPointerEnter(pointerContextFor(node, wx, wy, button, mods))
	}
	node.fireHover(true)
}

func firePointerLeave(node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	if node.disposed {
		return
	}
	if node.OnPointerLeave != nil {
		node.OnPointerLeave(pointerContextFor(node, wx, wy, button, mods))
	}
	node.fireHover(false)
}

func (s *Scene) firePointerDown(node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := pointerContextFor(node, wx, wy, button, mods)
	// Scene-level handlers first.
	for _, h := range s.handlers.pointerDown {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerDown != nil {
		node.OnPointerDown(ctx)
	}
}

func (s *Scene) firePointerUp(node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := pointerContextFor(node, wx, wy, button, mods)
	for _, h := range s.handlers.pointerUp {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerUp != nil {
		node.OnPointerUp(ctx)
	}
}

func (s *Scene) firePointerMove(node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	ctx := pointerContextFor(node, wx, wy, button, mods)
	for _, h := range s.handlers.pointerMove {
		h.fn(ctx)
	}
	if node != nil && node.OnPointerMove != nil {
		node.OnPointerMove(ctx)
	}
}

func (s *Scene) fireClick(node *Node, wx, wy float64, button MouseButton, mods KeyModifiers) {
	pc := pointerContextFor(node, wx, wy, button, mods)
	ctx := ClickContext(pc)
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
}

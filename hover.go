package adorn

type hoverHandler struct {
	id uint32
	fn func(entered bool)
}

// HoverHandle allows removing a hover subscription.
type HoverHandle struct {
	node *Node
	id   uint32
}

// Remove unsubscribes the handler. Safe on the zero value and when called twice.
func (h HoverHandle) Remove() {
	if h.node == nil {
		return
	}
	s := h.node.hoverHandlers
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = hoverHandler{}
			h.node.hoverHandlers = s[:len(s)-1]
			return
		}
	}
}

// subscribeHover registers fn for subtree enter (true) / leave (false) on n
// and makes n interactable so its subtree takes part in hit testing.
func (n *Node) subscribeHover(fn func(entered bool)) HoverHandle {
	n.Interactable = true
	n.nextHandlerID++
	id := n.nextHandlerID
	n.hoverHandlers = append(n.hoverHandlers, hoverHandler{id: id, fn: fn})
	return HoverHandle{node: n, id: id}
}

// fireHover runs n's hover subscriptions.
func (n *Node) fireHover(entered bool) {
	if len(n.hoverHandlers) == 0 {
		return
	}
	handlers := append([]hoverHandler(nil), n.hoverHandlers...)
	for _, h := range handlers {
		h.fn(entered)
	}
}

// hoverCoordinator merges pointer enter/leave on an adorner's host and
// content into two signals.
type hoverCoordinator struct {
	onEntered func()
	onLeft    func()

	host    HoverHandle
	content HoverHandle
}

func newHoverCoordinator(onEntered, onLeft func()) *hoverCoordinator {
	return &hoverCoordinator{onEntered: onEntered, onLeft: onLeft}
}

func (h *hoverCoordinator) handle(entered bool) {
	if entered {
		h.onEntered()
	} else {
		h.onLeft()
	}
}

// bindHost subscribes to the host.
func (h *hoverCoordinator) bindHost(host *Node) {
	h.host.Remove()
	h.host = host.subscribeHover(h.handle)
}

// bindContent releases the previous content's subscription, then subscribes
// to content (which may be nil).
func (h *hoverCoordinator) bindContent(content *Node) {
	h.content.Remove()
	h.content = HoverHandle{}
	if content != nil {
		h.content = content.subscribeHover(h.handle)
	}
}

// release drops both subscriptions.
func (h *hoverCoordinator) release() {
	h.host.Remove()
	h.content.Remove()
	h.host = HoverHandle{}
	h.content = HoverHandle{}
}

package adorn

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// Vec2 is a 2D vector used for positions, offsets and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Size returns the rectangle's width and height as a Vec2.
func (r Rect) Size() Vec2 {
	return Vec2{r.Width, r.Height}
}

// NodeType distinguishes layout and rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node, sized by its children unless Width/Height are set
	NodeTypeCanvas                    // absolute-positioning group; desired size is its own Width/Height only
	NodeTypeRect                      // solid color rectangle of the arranged size
	NodeTypeSprite                    // draws an *ebiten.Image stretched to the arranged size
	NodeTypeText                      // draws a line of text; sized by its measured content
)

// EventType identifies a kind of interaction event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // fires when a pointer button is pressed
	EventPointerUp                     // fires when a pointer button is released
	EventPointerMove                   // fires when the pointer moves (hover, no button)
	EventClick                         // fires on press then release over the same node
	EventPointerEnter                  // fires when the pointer enters a node's bounds
	EventPointerLeave                  // fires when the pointer leaves a node's bounds
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// HAlign is a node's horizontal alignment inside the space it is placed in.
type HAlign uint8

const (
	HAlignLeft    HAlign = iota // leading edge
	HAlignCenter                // centered
	HAlignRight                 // trailing edge
	HAlignStretch               // fill the available width
)

// VAlign is a node's vertical alignment inside the space it is placed in.
type VAlign uint8

const (
	VAlignTop     VAlign = iota // leading edge
	VAlignCenter                // centered
	VAlignBottom                // trailing edge
	VAlignStretch               // fill the available height
)

// Placement selects whether an adorner sits inside or outside the adorned
// element's edge on one axis.
type Placement uint8

const (
	PlacementInside  Placement = iota // overlay edge aligns with the host's edge
	PlacementOutside                  // overlay sits just past the host's edge
)

// String returns "inside" or "outside".
func (p Placement) String() string {
	if p == PlacementOutside {
		return "outside"
	}
	return "inside"
}

// VisibilityState is the show/fade lifecycle state of an Adorner.
type VisibilityState uint8

const (
	StateHidden    VisibilityState = iota // detached from its layer
	StateVisible                          // attached at full opacity
	StateFadingIn                         // attached, opacity animating to 1
	StateFadingOut                        // attached, opacity animating to 0
)

// String returns a lower-case name for the state.
func (s VisibilityState) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateVisible:
		return "visible"
	case StateFadingIn:
		return "fading-in"
	case StateFadingOut:
		return "fading-out"
	default:
		return "unknown"
	}
}

// Attached reports whether an adorner in this state is attached to its layer.
func (s VisibilityState) Attached() bool {
	return s != StateHidden
}

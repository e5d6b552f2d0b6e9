package adorn

// PlacementConfig positions an overlay relative to the element it adorns.
// A non-nil PositionX or PositionY replaces the alignment-derived position on
// that axis.
type PlacementConfig struct {
	Horizontal Placement
	Vertical   Placement
	OffsetX    float64
	OffsetY    float64
	PositionX  *float64
	PositionY  *float64
}

// Equal reports whether p and o place an overlay identically. Position
// overrides are compared by value.
func (p PlacementConfig) Equal(o PlacementConfig) bool {
	return p.Horizontal == o.Horizontal && p.Vertical == o.Vertical &&
		p.OffsetX == o.OffsetX && p.OffsetY == o.OffsetY &&
		sameOverride(p.PositionX, o.PositionX) && sameOverride(p.PositionY, o.PositionY)
}

func sameOverride(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// OverlayMetrics is the measured state of an overlay that placement needs.
// ChildSizes is only populated for canvas overlays, whose children extend
// the overlay size on the trailing and center alignments.
type OverlayMetrics struct {
	Desired    Vec2
	ChildSizes []Vec2
	HAlign     HAlign
	VAlign     VAlign
}

// axisAlign is HAlign/VAlign collapsed onto one axis.
type axisAlign uint8

const (
	alignLeading axisAlign = iota
	alignCenter
	alignTrailing
	alignStretch
)

func hAxis(a HAlign) axisAlign {
	switch a {
	case HAlignCenter:
		return alignCenter
	case HAlignRight:
		return alignTrailing
	case HAlignStretch:
		return alignStretch
	default:
		return alignLeading
	}
}

func vAxis(a VAlign) axisAlign {
	switch a {
	case VAlignCenter:
		return alignCenter
	case VAlignBottom:
		return alignTrailing
	case VAlignStretch:
		return alignStretch
	default:
		return alignLeading
	}
}

// MetricsOf measures node as an overlay.
func MetricsOf(node *Node) OverlayMetrics {
	m := OverlayMetrics{
		Desired: node.DesiredSize(),
		HAlign:  node.HAlign,
		VAlign:  node.VAlign,
	}
	if node.Type == NodeTypeCanvas && len(node.children) > 0 {
		m.ChildSizes = make([]Vec2, 0, len(node.children))
		for _, c := range node.children {
			m.ChildSizes = append(m.ChildSizes, c.DesiredSize())
		}
	}
	return m
}

// MeasureOverlay returns the size an overlay reports during measurement: its
// own desired size, unconstrained by the host.
func MeasureOverlay(overlay OverlayMetrics) Vec2 {
	return overlay.Desired
}

// ComputePlacement returns the overlay rectangle in the adorned element's
// local coordinates. host is the adorned element's arranged size.
//
// Per axis:
//
//	leading:  outside ? -size + offset : offset
//	trailing: outside ? hostSize + offset : hostSize - size' + offset
//	center:   hostSize/2 - size'/2 + offset
//	stretch:  0, with the axis size set to hostSize
//
// size' adds the canvas children's sizes to the desired size.
func ComputePlacement(host Vec2, overlay OverlayMetrics, cfg PlacementConfig) Rect {
	var childW, childH float64
	for _, c := range overlay.ChildSizes {
		childW += c.X
		childH += c.Y
	}

	h := hAxis(overlay.HAlign)
	v := vAxis(overlay.VAlign)

	var r Rect
	if cfg.PositionX != nil {
		r.X = *cfg.PositionX
		r.Width = overlay.Desired.X
	} else {
		r.X = placeAxis(h, cfg.Horizontal, host.X, overlay.Desired.X, childW, cfg.OffsetX)
		r.Width = sizeAxis(h, host.X, overlay.Desired.X)
	}
	if cfg.PositionY != nil {
		r.Y = *cfg.PositionY
		r.Height = overlay.Desired.Y
	} else {
		r.Y = placeAxis(v, cfg.Vertical, host.Y, overlay.Desired.Y, childH, cfg.OffsetY)
		r.Height = sizeAxis(v, host.Y, overlay.Desired.Y)
	}
	return r
}

// placeAxis computes the overlay position along one axis.
func placeAxis(align axisAlign, placement Placement, hostSize, size, childSize, offset float64) float64 {
	switch align {
	case alignLeading:
		if placement == PlacementOutside {
			return -size + offset
		}
		return offset
	case alignTrailing:
		if placement == PlacementOutside {
			return hostSize + offset
		}
		return hostSize - (size + childSize) + offset
	case alignCenter:
		return hostSize/2 - (size+childSize)/2 + offset
	default:
		return 0
	}
}

// sizeAxis computes the overlay's arranged size along one axis.
func sizeAxis(align axisAlign, hostSize, size float64) float64 {
	if align == alignStretch {
		return hostSize
	}
	return size
}

// Float returns a pointer to v, for PlacementConfig position overrides.
func Float(v float64) *float64 {
	return &v
}

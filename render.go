package adorn

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandRect   CommandType = iota // solid fill of Width x Height
	CommandSprite                    // image stretched to Width x Height
	CommandText                      // text drawn at the node origin
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Type      CommandType
	Node      *Node
	Transform [6]float64
	Width     float64
	Height    float64
	Color     Color // straight alpha, world alpha already applied
	Text      string
	image     *ebiten.Image
	font      *Font
}

// Draw renders the scene to screen. Adorner layers are drawn after their
// owner's subtree, so overlays appear on top of the nodes they adorn.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.buildCommands()

	if s.debug {
		stats.traverseTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		stats.overlayCount = countOverlays(s.layers)
		t0 = time.Now()
	}

	s.submitCommands(screen)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}

	s.flushScreenshots(screen)
}

// buildCommands refreshes world transforms and rebuilds the command list.
func (s *Scene) buildCommands() {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	s.commands = s.commands[:0]
	s.traverse(s.root)
}

// traverse walks the node tree depth-first in painter order, emitting render
// commands for visible, renderable rect, sprite and text nodes.
func (s *Scene) traverse(n *Node) {
	if !n.Visible {
		return
	}

	if n.Renderable && n.worldAlpha > 0 {
		switch n.Type {
		case NodeTypeRect:
			if w, h := nodeDimensions(n); w > 0 && h > 0 {
				s.commands = append(s.commands, RenderCommand{
					Type: CommandRect, Node: n, Transform: n.worldTransform,
					Width: w, Height: h, Color: tinted(n),
				})
			}
		case NodeTypeSprite:
			if w, h := nodeDimensions(n); n.image != nil && w > 0 && h > 0 {
				s.commands = append(s.commands, RenderCommand{
					Type: CommandSprite, Node: n, Transform: n.worldTransform,
					Width: w, Height: h, Color: tinted(n), image: n.image,
				})
			}
		case NodeTypeText:
			if tb := n.textBlock; tb != nil && tb.font != nil && tb.content != "" {
				w, h := tb.size()
				s.commands = append(s.commands, RenderCommand{
					Type: CommandText, Node: n, Transform: n.worldTransform,
					Width: w, Height: h, Color: tinted(n), Text: tb.content, font: tb.font,
				})
			}
		}
	}

	children := n.children
	if !n.childrenSorted {
		s.rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		s.traverse(child)
	}
	if n.adornerLayer != nil {
		s.traverse(n.adornerLayer.root)
	}
}

func tinted(n *Node) Color {
	c := n.Color
	c.A *= n.worldAlpha
	return c
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order for a node.
// Uses insertion sort: zero allocations, stable, and optimal for the typical
// case of few children that are nearly sorted (O(n) when already sorted).
func (s *Scene) rebuildSortedChildren(n *Node) {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// --- Submission ---

// submitCommands draws every command to target in order.
func (s *Scene) submitCommands(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	var top text.DrawOptions
	for i := range s.commands {
		cmd := &s.commands[i]
		a := float32(cmd.Color.A)
		if cmd.Type == CommandText {
			top.GeoM = commandGeoM(cmd)
			top.ColorScale.Reset()
			top.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)
			top.LineSpacing = cmd.font.lh
			text.Draw(target, cmd.Text, cmd.font.face, &top)
			continue
		}

		img := cmd.image
		if cmd.Type == CommandRect {
			img = s.whitePixel()
		}
		b := img.Bounds()

		op.GeoM.Reset()
		op.GeoM.Scale(cmd.Width/float64(b.Dx()), cmd.Height/float64(b.Dy()))
		op.GeoM.Concat(commandGeoM(cmd))

		op.ColorScale.Reset()
		op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)

		target.DrawImage(img, &op)
	}
}

// whitePixel lazily creates the 1x1 image used to fill rects.
func (s *Scene) whitePixel() *ebiten.Image {
	if s.pixel == nil {
		s.pixel = ebiten.NewImage(1, 1)
		s.pixel.Fill(color.White)
	}
	return s.pixel
}

func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, cmd.Transform[0])
	m.SetElement(1, 0, cmd.Transform[1])
	m.SetElement(0, 1, cmd.Transform[2])
	m.SetElement(1, 1, cmd.Transform[3])
	m.SetElement(0, 2, cmd.Transform[4])
	m.SetElement(1, 2, cmd.Transform[5])
	return m
}

// toRGBA converts to a premultiplied 8-bit color.
func (c Color) toRGBA() color.RGBA {
	clamp := func(v float64) uint8 {
		switch {
		case v <= 0:
			return 0
		case v >= 1:
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{clamp(c.R * c.A), clamp(c.G * c.A), clamp(c.B * c.A), clamp(c.A)}
}

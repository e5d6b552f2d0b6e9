package adorn

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// --- Font ---

// Font wraps Ebitengine's text/v2 for TrueType text rendering.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// goRegular is parsed on first use by DefaultFont.
var goRegular *text.GoTextFaceSource

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("adorn: failed to parse TTF data: %w", err)
	}
	return newFont(source, size), nil
}

// DefaultFont returns the Go Regular face at the given size.
func DefaultFont(size float64) (*Font, error) {
	if goRegular == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("adorn: failed to parse Go Regular: %w", err)
		}
		goRegular = source
	}
	return newFont(goRegular, size), nil
}

func newFont(source *text.GoTextFaceSource, size float64) *Font {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *Font) Face() *text.GoTextFace {
	return f.face
}

// --- Text nodes ---

// textBlock holds a text node's content and cached measurement.
type textBlock struct {
	content string
	font    *Font

	measured  bool
	measuredW float64
	measuredH float64
}

func (tb *textBlock) size() (w, h float64) {
	if !tb.measured {
		tb.measured = true
		tb.measuredW, tb.measuredH = 0, 0
		if tb.font != nil && tb.content != "" {
			tb.measuredW, tb.measuredH = tb.font.MeasureString(tb.content)
		}
	}
	return tb.measuredW, tb.measuredH
}

// NewText creates a text node. Its desired size is the measured size of
// content in font, so adorners built from text size themselves. Color
// tints the glyphs.
func NewText(name, content string, font *Font) *Node {
	n := &Node{Name: name, Type: NodeTypeText}
	nodeDefaults(n)
	n.textBlock = &textBlock{content: content, font: font}
	n.lastSize = n.DesiredSize()
	return n
}

// Text returns a text node's content, or "" for other nodes.
func (n *Node) Text() string {
	if n.textBlock == nil {
		return ""
	}
	return n.textBlock.content
}

// SetText replaces a text node's content and notifies resize subscribers
// if the measured size changed. No-op on other nodes.
func (n *Node) SetText(content string) {
	tb := n.textBlock
	if tb == nil || tb.content == content {
		return
	}
	tb.content = content
	tb.measured = false
	n.notifyResize()
}

// SetFont replaces a text node's font. No-op on other nodes.
func (n *Node) SetFont(font *Font) {
	tb := n.textBlock
	if tb == nil || tb.font == font {
		return
	}
	tb.font = font
	tb.measured = false
	n.notifyResize()
}

package lumen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// --- Font ---

// Font wraps Ebitengine's text/v2 for TrueType font rendering.
type Font struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("lumen: parse font: %w", err)
	}
	return newFont(source, size), nil
}

func newFont(source *text.GoTextFaceSource, size float64) *Font {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// WithSize returns a font sharing the same face source at another size.
func (f *Font) WithSize(size float64) *Font {
	return newFont(f.source, size)
}

// Size returns the font size in pixels.
func (f *Font) Size() float64 {
	return f.size
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

// --- TextBlock ---

// TextBlock holds text content, formatting, and cached layout state.
type TextBlock struct {
	Content    string
	Font       *Font
	Align      TextAlign
	WrapWidth  float64 // 0 disables wrapping
	Color      Color
	LineHeight float64 // override; 0 = use Font.LineHeight()

	layoutDirty bool
	measuredW   float64
	measuredH   float64
	lines       []textLine

	image      *ebiten.Image // rendered text, redrawn when imageDirty
	imageDirty bool
}

type textLine struct {
	text  string
	width float64
}

// lineHeight returns the effective line height for this text block.
func (tb *TextBlock) lineHeight() float64 {
	if tb.LineHeight > 0 {
		return tb.LineHeight
	}
	if tb.Font != nil {
		return tb.Font.LineHeight()
	}
	return 0
}

// Invalidate marks the layout and rendered image stale. Call it after
// changing fields directly.
func (tb *TextBlock) Invalidate() {
	tb.layoutDirty = true
}

// layout recomputes line breaks if dirty. Returns the cached lines.
func (tb *TextBlock) layout() []textLine {
	if !tb.layoutDirty {
		return tb.lines
	}
	tb.layoutDirty = false
	tb.imageDirty = true
	tb.lines = tb.lines[:0]
	tb.measuredW, tb.measuredH = 0, 0

	if tb.Font == nil || tb.Content == "" {
		return tb.lines
	}

	for _, para := range strings.Split(tb.Content, "\n") {
		tb.wrapParagraph(para)
	}
	for _, l := range tb.lines {
		if l.width > tb.measuredW {
			tb.measuredW = l.width
		}
	}
	tb.measuredH = float64(len(tb.lines)) * tb.lineHeight()
	return tb.lines
}

// wrapParagraph greedily fills lines up to WrapWidth, breaking at spaces.
// A single word wider than WrapWidth gets a line of its own.
func (tb *TextBlock) wrapParagraph(para string) {
	measure := func(s string) float64 {
		w, _ := tb.Font.MeasureString(s)
		return w
	}
	if tb.WrapWidth <= 0 {
		tb.lines = append(tb.lines, textLine{text: para, width: measure(para)})
		return
	}
	words := strings.Fields(para)
	if len(words) == 0 {
		tb.lines = append(tb.lines, textLine{})
		return
	}
	cur := words[0]
	for _, word := range words[1:] {
		candidate := cur + " " + word
		if measure(candidate) <= tb.WrapWidth {
			cur = candidate
			continue
		}
		tb.lines = append(tb.lines, textLine{text: cur, width: measure(cur)})
		cur = word
	}
	tb.lines = append(tb.lines, textLine{text: cur, width: measure(cur)})
}

// boxWidth is the width alignment is computed against.
func (tb *TextBlock) boxWidth() float64 {
	if tb.WrapWidth > 0 && tb.Align != TextAlignLeft {
		return tb.WrapWidth
	}
	return tb.measuredW
}

// lineOffset returns the horizontal offset of a line for the block's alignment.
func (tb *TextBlock) lineOffset(lineWidth float64) float64 {
	switch tb.Align {
	case TextAlignCenter:
		return (tb.boxWidth() - lineWidth) / 2
	case TextAlignRight:
		return tb.boxWidth() - lineWidth
	default:
		return 0
	}
}

// render redraws the cached text image when the layout changed.
func (tb *TextBlock) render() *ebiten.Image {
	lines := tb.layout()
	w := int(tb.boxWidth()) + 1
	h := int(tb.measuredH) + 1
	if len(lines) == 0 || tb.measuredW == 0 {
		return nil
	}
	if !tb.imageDirty && tb.image != nil {
		return tb.image
	}
	tb.imageDirty = false

	if tb.image != nil {
		b := tb.image.Bounds()
		if b.Dx() != w || b.Dy() != h {
			tb.image.Deallocate()
			tb.image = ebiten.NewImage(w, h)
		} else {
			tb.image.Clear()
		}
	} else {
		tb.image = ebiten.NewImage(w, h)
	}

	lh := tb.lineHeight()
	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(tb.lineOffset(line.width), float64(i)*lh)
		op.ColorScale.Scale(
			float32(tb.Color.R*tb.Color.A),
			float32(tb.Color.G*tb.Color.A),
			float32(tb.Color.B*tb.Color.A),
			float32(tb.Color.A),
		)
		text.Draw(tb.image, line.text, tb.Font.face, op)
	}
	return tb.image
}

// --- Node helpers ---

// SetText replaces a text node's content and resizes its box.
func (n *Node) SetText(content string) {
	if n.TextBlock == nil || n.TextBlock.Content == content {
		return
	}
	n.TextBlock.Content = content
	n.TextBlock.layoutDirty = true
	n.syncTextSize()
}

// SetTextColor sets the color text is drawn with.
func (n *Node) SetTextColor(c Color) {
	if n.TextBlock == nil || n.TextBlock.Color == c {
		return
	}
	n.TextBlock.Color = c
	n.TextBlock.layoutDirty = true
}

// SetWrap sets the wrap width and alignment of a text node.
func (n *Node) SetWrap(width float64, align TextAlign) {
	if n.TextBlock == nil {
		return
	}
	n.TextBlock.WrapWidth = width
	n.TextBlock.Align = align
	n.TextBlock.layoutDirty = true
	n.syncTextSize()
}

// syncTextSize copies the measured text size into the node's box.
func (n *Node) syncTextSize() {
	tb := n.TextBlock
	if tb == nil || !tb.layoutDirty {
		return
	}
	tb.layout()
	n.Width = tb.boxWidth()
	n.Height = tb.measuredH
}

package page

import (
	"fmt"
	"math"

	"github.com/ypelectrical/lumen"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// Palette, named after the slate/blue scale the page is designed in.
var (
	colorSlate50  = lumen.RGB(0xf8fafc)
	colorSlate100 = lumen.RGB(0xf1f5f9)
	colorSlate200 = lumen.RGB(0xe2e8f0)
	colorSlate400 = lumen.RGB(0x94a3b8)
	colorSlate500 = lumen.RGB(0x64748b)
	colorSlate600 = lumen.RGB(0x475569)
	colorSlate700 = lumen.RGB(0x334155)
	colorSlate800 = lumen.RGB(0x1e293b)
	colorSlate900 = lumen.RGB(0x0f172a)
	colorSlate950 = lumen.RGB(0x020617)
	colorBlue400  = lumen.RGB(0x60a5fa)
	colorBlue600  = lumen.RGB(0x2563eb)
	colorBlue700  = lumen.RGB(0x1d4ed8)
	colorBlue900  = lumen.RGB(0x1e3a8a)
	colorWhite    = lumen.RGB(0xffffff)
	colorBlack    = lumen.RGB(0x000000)

	// Neumorphic stats tiles.
	colorNeuBase   = lumen.RGB(0xeef0f4)
	colorNeuShadow = lumen.RGB(0xd1d9e6)

	colorClear = lumen.Color{}
)

type face uint8

const (
	faceRegular face = iota
	faceBold
	faceMono
)

type fontKey struct {
	face face
	size float64
}

// fonts hands out Go font faces by size, sharing one parsed source per face.
type fonts struct {
	base  [3]*lumen.Font
	sized map[fontKey]*lumen.Font
}

func loadFonts() (*fonts, error) {
	f := &fonts{sized: make(map[fontKey]*lumen.Font)}
	for i, ttf := range [...][]byte{goregular.TTF, gobold.TTF, gomono.TTF} {
		font, err := lumen.LoadFont(ttf, 16)
		if err != nil {
			return nil, fmt.Errorf("load page font %d: %w", i, err)
		}
		f.base[i] = font
	}
	return f, nil
}

func (f *fonts) get(fc face, size float64) *lumen.Font {
	size = math.Round(size)
	key := fontKey{fc, size}
	if font, ok := f.sized[key]; ok {
		return font
	}
	font := f.base[fc].WithSize(size)
	f.sized[key] = font
	return font
}

// metrics scales spacing and type with the viewport, following the small,
// medium and large breakpoints the design was drawn at.
type metrics struct {
	width, height float64

	// content column
	colX, colW float64
	pad        float64

	medium bool // >= 768 wide
	large  bool // >= 1024 wide
}

func newMetrics(w, h float64) metrics {
	m := metrics{width: w, height: h, medium: w >= 768, large: w >= 1024}
	m.pad = 16
	if m.medium {
		m.pad = 32
	}
	m.colW = math.Min(w-2*m.pad, 1280)
	if m.colW < 0 {
		m.colW = 0
	}
	m.colX = (w - m.colW) / 2
	return m
}

// pick returns the value for the current breakpoint.
func (m metrics) pick(small, medium, large float64) float64 {
	switch {
	case m.large:
		return large
	case m.medium:
		return medium
	default:
		return small
	}
}

// sectionPad is the vertical padding of a section.
func (m metrics) sectionPad() float64 {
	return m.pick(64, 64, 80)
}

// fillsScreen reports whether sections stretch to the viewport height.
func (m metrics) fillsScreen() bool {
	return m.large
}

// headlineSize sizes the hero headline to the viewport width.
func (m metrics) headlineSize() float64 {
	return math.Max(56, math.Min(m.width*0.11, 128))
}

// centerIn returns the x that centers a box of width w in [x, x+span].
func centerIn(x, span, w float64) float64 {
	return x + (span-w)/2
}

package lumen

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color is a straight-alpha RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default node color. On images and text it leaves the
// source untouched.
var ColorWhite = Color{1, 1, 1, 1}

// RGB builds an opaque Color from a 0xRRGGBB value.
func RGB(hex uint32) Color {
	return Color{
		R: float64(hex>>16&0xff) / 255,
		G: float64(hex>>8&0xff) / 255,
		B: float64(hex&0xff) / 255,
		A: 1,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	return max(0, min(1, v))
}

// Vec2 is a point or offset. Tilt also uses it for a pair of angles in
// degrees.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is the 1x1 source image every rect node is stretched from.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned box with Y pointing down.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) right() float64  { return r.X + r.Width }
func (r Rect) bottom() float64 { return r.Y + r.Height }

// Contains reports whether (x, y) is inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.right() && y >= r.Y && y <= r.bottom()
}

// Intersects reports whether r and o overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return r.X <= o.right() && o.X <= r.right() && r.Y <= o.bottom() && o.Y <= r.bottom()
}

// Intersection returns the overlap of r and o. Disjoint boxes give an empty
// Rect positioned at the nearest corner.
func (r Rect) Intersection(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.right(), o.right()), min(r.bottom(), o.bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Area returns Width*Height, or 0 for an empty box.
func (r Rect) Area() float64 {
	if r.Width <= 0 || r.Height <= 0 {
		return 0
	}
	return r.Width * r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// NodeType selects how a Node draws.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // draws nothing itself
	NodeTypeRect                      // Width x Height filled with Color
	NodeTypeText                      // TextBlock
	NodeTypeImage                     // an *ebiten.Image stretched over Width x Height
)

// EventType names a scene-level handler list.
type EventType uint8

const (
	EventPointerDown EventType = iota
	EventPointerUp
	EventPointerMove
	EventClick
	EventPointerEnter
	EventPointerLeave
	EventScroll // page scroll state changed
	EventFrame  // end of every Update
	EventKey
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

// Key identifies the keys the scene reports through OnKey.
type Key uint8

const (
	KeyEscape Key = iota
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyArrowUp
	KeyArrowDown
	KeySpace
)

// TextAlign positions each line of a TextBlock within its wrap width.
type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

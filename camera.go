package lumen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera is the window onto the page. Internally it tracks the world point
// at the middle of the viewport (X, Y) and a zoom factor. The page code works
// in document terms instead: ScrollTop, ClientHeight and ScrollHeight.
type Camera struct {
	X, Y float64
	Zoom float64 // 1 shows page pixels at screen size

	// Viewport is where the camera draws on screen.
	Viewport Rect

	// CullEnabled skips drawing nodes entirely outside the view.
	CullEnabled bool

	// With BoundsEnabled the view never leaves Bounds, the document box.
	// A page shorter than the viewport stays pinned to its top.
	BoundsEnabled bool
	Bounds        Rect

	viewMatrix    affine
	invViewMatrix affine
	dirty         bool

	smooth *gween.Tween // active ScrollTo on Y
}

// newCamera returns a camera at the top of a page that starts at (0, 0).
func newCamera(viewport Rect) *Camera {
	return &Camera{
		X:           viewport.Width / 2,
		Y:           viewport.Height / 2,
		Zoom:        1.0,
		Viewport:    viewport,
		CullEnabled: true,
		dirty:       true,
	}
}

// ScrollTop is the page Y shown at the top edge of the viewport.
func (c *Camera) ScrollTop() float64 {
	return c.Y - c.ClientHeight()/2
}

// ClientHeight is how much of the page fits in the viewport.
func (c *Camera) ClientHeight() float64 {
	return c.Viewport.Height / c.Zoom
}

// ScrollHeight is the document height, or ClientHeight when the camera has
// no bounds.
func (c *Camera) ScrollHeight() float64 {
	if !c.BoundsEnabled {
		return c.ClientHeight()
	}
	return c.Bounds.Height
}

// SetScrollTop jumps to top and cancels any ScrollTo in flight.
func (c *Camera) SetScrollTop(top float64) {
	c.smooth = nil
	c.Y = top + c.ClientHeight()/2
	if c.BoundsEnabled {
		c.clampToBounds()
	}
	c.dirty = true
}

// ScrollBy jumps by dy.
func (c *Camera) ScrollBy(dy float64) {
	c.SetScrollTop(c.ScrollTop() + dy)
}

// ScrollTo glides to top over duration seconds. The target is clamped to the
// document first, so the glide never runs into the bounds.
func (c *Camera) ScrollTo(top float64, duration float32, easeFn ease.TweenFunc) {
	if c.BoundsEnabled {
		top = c.clampScrollTop(top)
	}
	if duration <= 0 {
		c.SetScrollTop(top)
		return
	}
	c.smooth = gween.New(float32(c.Y), float32(top+c.ClientHeight()/2), duration, easeFn)
}

// Scrolling reports whether a ScrollTo is still running.
func (c *Camera) Scrolling() bool {
	return c.smooth != nil
}

// SetBounds sets the document box and turns clamping on.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
	c.clampToBounds()
	c.dirty = true
}

// ClearBounds turns clamping off. Bounds keeps its value.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

func (c *Camera) update(dt float32) {
	x, y, zoom := c.X, c.Y, c.Zoom
	if c.smooth != nil {
		v, done := c.smooth.Update(dt)
		c.Y = float64(v)
		if done {
			c.smooth = nil
		}
	}
	if c.BoundsEnabled {
		c.clampToBounds()
	}
	if c.X != x || c.Y != y || c.Zoom != zoom {
		c.dirty = true
	}
}

// clampScrollTop limits top to [Bounds.Y, Bounds.Y+ScrollHeight-ClientHeight].
func (c *Camera) clampScrollTop(top float64) float64 {
	maxTop := max(c.Bounds.Height-c.ClientHeight(), 0)
	return c.Bounds.Y + clamp(top-c.Bounds.Y, 0, maxTop)
}

func (c *Camera) clampToBounds() {
	halfW := c.Viewport.Width / (2 * c.Zoom)
	halfH := c.Viewport.Height / (2 * c.Zoom)
	b := c.Bounds

	if b.Width < 2*halfW {
		c.X = b.X + b.Width/2
	} else {
		c.X = clamp(c.X, b.X+halfW, b.right()-halfW)
	}
	if b.Height < 2*halfH {
		c.Y = b.Y + halfH
	} else {
		c.Y = clamp(c.Y, b.Y+halfH, b.bottom()-halfH)
	}
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}

// computeViewMatrix refreshes the cached matrices, which map the world point
// (X, Y) to the viewport center with Zoom applied around it.
func (c *Camera) computeViewMatrix() affine {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	cx := c.Viewport.X + c.Viewport.Width/2
	cy := c.Viewport.Y + c.Viewport.Height/2
	z := c.Zoom

	c.viewMatrix = affine{z, 0, 0, z, cx - z*c.X, cy - z*c.Y}
	c.invViewMatrix = c.viewMatrix.inverse()
	return c.viewMatrix
}

// WorldToScreen maps a page point to the screen.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return c.viewMatrix.apply(wx, wy)
}

// ScreenToWorld maps a screen point to the page.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return c.invViewMatrix.apply(sx, sy)
}

// VisibleBounds is the part of the page currently inside the viewport.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	return c.invViewMatrix.rect(c.Viewport)
}

// MarkDirty makes the next transform query rebuild the view matrix.
func (c *Camera) MarkDirty() {
	c.dirty = true
}

// shouldCull reports whether n, drawn through viewWorld, lands entirely
// outside cullBounds. Containers and unsized nodes are always drawn.
func shouldCull(n *Node, viewWorld affine, cullBounds Rect) bool {
	if n.Type == NodeTypeContainer {
		return false
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return !viewWorld.bounds(w, h).Intersects(cullBounds)
}

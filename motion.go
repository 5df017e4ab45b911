package lumen

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	// MagneticDamping scales the pointer's distance from the box center into
	// the magnetic offset.
	MagneticDamping = 0.3
	// TiltDivisor converts pointer distance from the box center (pixels) to
	// tilt angle (degrees).
	TiltDivisor = 20.0
	// TiltPerspective is the viewer distance, in pixels, used to
	// foreshorten tilted nodes.
	TiltPerspective = 1000.0
	// MotionDuration is how long, in seconds, the rendered transform takes to
	// catch up with a new target.
	MotionDuration = 0.2
)

// MagneticOffset returns the translation that pulls a box toward the pointer:
// the pointer's offset from the box center scaled by damping.
func MagneticOffset(pointer Vec2, box Rect, damping float64) Vec2 {
	c := box.Center()
	return Vec2{
		X: (pointer.X - c.X) * damping,
		Y: (pointer.Y - c.Y) * damping,
	}
}

// TiltRotation returns the tilt angles in degrees for a pointer at local
// (relative to the box's top-left corner) inside a w x h box. X is the
// rotation about the horizontal axis and grows as the pointer moves down; Y
// is the rotation about the vertical axis and grows as the pointer moves left.
func TiltRotation(local Vec2, w, h float64) Vec2 {
	return Vec2{
		X: (local.Y - h/2) / TiltDivisor,
		Y: (w/2 - local.X) / TiltDivisor,
	}
}

// pointerMotion is the part shared by Magnetic and Tilt: it turns pointer
// positions over a node into a target value, eases a rendered value toward
// it, and hands the rendered value to apply every frame.
type pointerMotion struct {
	scene *Scene
	node  *Node

	target   Vec2 // raw computed value
	rendered Vec2
	tweenX   *gween.Tween
	tweenY   *gween.Tween

	compute func(pointer Vec2, box Rect) Vec2
	apply   func(rendered Vec2)
	restore func()

	prevMove  func(PointerContext)
	prevLeave func(PointerContext)
	frame     CallbackHandle
	closed    bool
}

func (m *pointerMotion) attach() {
	n := m.node
	m.prevMove = n.OnPointerMove
	m.prevLeave = n.OnPointerLeave
	n.OnPointerMove = func(ctx PointerContext) {
		if m.prevMove != nil {
			m.prevMove(ctx)
		}
		m.HandleMove(Vec2{X: ctx.GlobalX, Y: ctx.GlobalY})
	}
	n.OnPointerLeave = func(ctx PointerContext) {
		if m.prevLeave != nil {
			m.prevLeave(ctx)
		}
		m.HandleLeave()
	}
	// Hover moves stop at the first hit; make sure the node is hit-testable.
	n.Interactable = true
	m.frame = m.scene.OnFrame(m.step)
}

// HandleMove recomputes the target for a pointer at p, given in the
// coordinate space of the node's root. It does nothing when the node's box
// cannot be measured.
func (m *pointerMotion) HandleMove(p Vec2) {
	if m.closed || m.node.disposed {
		return
	}
	box, ok := m.node.WorldBounds()
	if !ok {
		return
	}
	m.retarget(m.compute(p, box))
}

// HandleLeave resets the target to zero.
func (m *pointerMotion) HandleLeave() {
	if m.closed {
		return
	}
	m.retarget(Vec2{})
}

func (m *pointerMotion) retarget(v Vec2) {
	m.target = v
	m.tweenX = gween.New(float32(m.rendered.X), float32(v.X), MotionDuration, ease.OutQuad)
	m.tweenY = gween.New(float32(m.rendered.Y), float32(v.Y), MotionDuration, ease.OutQuad)
}

func (m *pointerMotion) step(dt float64) {
	if m.node.disposed {
		m.Close()
		return
	}
	if m.tweenX == nil {
		return
	}
	x, doneX := m.tweenX.Update(float32(dt))
	y, doneY := m.tweenY.Update(float32(dt))
	m.rendered = Vec2{X: float64(x), Y: float64(y)}
	if doneX && doneY {
		m.tweenX, m.tweenY = nil, nil
	}
	m.apply(m.rendered)
}

// Close detaches the handlers and restores the node's base transform.
// Calling Close more than once is harmless.
func (m *pointerMotion) Close() {
	if m.closed {
		return
	}
	m.closed = true
	m.frame.Remove()
	if m.node.disposed {
		return
	}
	m.node.OnPointerMove = m.prevMove
	m.node.OnPointerLeave = m.prevLeave
	m.restore()
}

// Rendered returns the eased value currently applied to the node.
func (m *pointerMotion) Rendered() Vec2 {
	return m.rendered
}

// Magnetic pulls a node toward the pointer while the pointer hovers it.
type Magnetic struct {
	pointerMotion
	baseX, baseY float64
}

// NewMagnetic attaches a magnetic effect to node. The node's current
// position is the rest position the offset is added to.
func NewMagnetic(s *Scene, node *Node) *Magnetic {
	m := &Magnetic{baseX: node.X, baseY: node.Y}
	m.scene = s
	m.node = node
	m.compute = func(p Vec2, box Rect) Vec2 {
		return MagneticOffset(p, box, MagneticDamping)
	}
	m.apply = func(v Vec2) {
		node.SetPosition(m.baseX+v.X, m.baseY+v.Y)
	}
	m.restore = func() {
		node.SetPosition(m.baseX, m.baseY)
	}
	m.attach()
	return m
}

// Offset returns the computed offset in pixels.
func (m *Magnetic) Offset() Vec2 {
	return m.target
}

// SetBase changes the rest position, for example after a relayout.
func (m *Magnetic) SetBase(x, y float64) {
	m.baseX, m.baseY = x, y
	m.apply(m.rendered)
}

// Tilt rotates a node in 3D toward the pointer while the pointer hovers it,
// rendered as an affine approximation of a perspective rotation.
type Tilt struct {
	pointerMotion
	base tiltBase
}

type tiltBase struct {
	x, y, pivotX, pivotY, scaleX, scaleY, skewX, skewY float64
}

// NewTilt attaches a tilt effect to node. The node pivots on its center while
// the effect is attached.
func NewTilt(s *Scene, node *Node) *Tilt {
	t := &Tilt{base: tiltBase{
		x: node.X, y: node.Y,
		pivotX: node.PivotX, pivotY: node.PivotY,
		scaleX: node.ScaleX, scaleY: node.ScaleY,
		skewX: node.SkewX, skewY: node.SkewY,
	}}
	t.scene = s
	t.node = node
	t.compute = func(p Vec2, box Rect) Vec2 {
		return TiltRotation(Vec2{X: p.X - box.X, Y: p.Y - box.Y}, box.Width, box.Height)
	}
	t.apply = t.applyRotation
	t.restore = func() {
		b := t.base
		node.X, node.Y = b.x, b.y
		node.PivotX, node.PivotY = b.pivotX, b.pivotY
		node.ScaleX, node.ScaleY = b.scaleX, b.scaleY
		node.SkewX, node.SkewY = b.skewX, b.skewY
		node.MarkDirty()
	}

	// Move the pivot to the center without moving the node.
	w, h := nodeDimensions(node)
	node.PivotX, node.PivotY = w/2, h/2
	node.X = t.base.x + (w/2-t.base.pivotX)*t.base.scaleX
	node.Y = t.base.y + (h/2-t.base.pivotY)*t.base.scaleY
	node.MarkDirty()

	t.attach()
	return t
}

// Rotation returns the computed rotation in degrees (X about the horizontal
// axis, Y about the vertical axis).
func (t *Tilt) Rotation() Vec2 {
	return t.target
}

// applyRotation foreshortens each axis by the cosine of the rotation about the
// other one and skews the box so the edge tilting away from the viewer
// shrinks toward the center.
func (t *Tilt) applyRotation(deg Vec2) {
	n := t.node
	rx := deg.X * math.Pi / 180
	ry := deg.Y * math.Pi / 180
	w, h := nodeDimensions(n)

	n.ScaleX = t.base.scaleX * math.Cos(ry)
	n.ScaleY = t.base.scaleY * math.Cos(rx)
	n.SkewX = t.base.skewX + math.Atan(math.Sin(rx)*(w/2)/TiltPerspective)
	n.SkewY = t.base.skewY - math.Atan(math.Sin(ry)*(h/2)/TiltPerspective)
	n.MarkDirty()
}

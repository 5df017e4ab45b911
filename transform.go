package lumen

import "math"

// affine is a 2D affine matrix stored column-major as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
type affine [6]float64

var identity = affine{1, 0, 0, 1, 0, 0}

// localTransform builds a node's matrix from its transform fields. The
// steps apply in the order Translate(-Pivot), Scale, Skew, Rotate,
// Translate(X, Y).
func localTransform(n *Node) affine {
	var kx, ky float64
	if n.SkewX != 0 {
		kx = math.Tan(n.SkewX)
	}
	if n.SkewY != 0 {
		ky = math.Tan(n.SkewY)
	}

	// skew * scale
	a, b := n.ScaleX, ky*n.ScaleX
	c, d := kx*n.ScaleY, n.ScaleY
	// the pivot, carried through scale and skew
	tx := -(a*n.PivotX + c*n.PivotY)
	ty := -(b*n.PivotX + d*n.PivotY)

	sin, cos := math.Sincos(n.Rotation)
	return affine{
		cos*a - sin*b, sin*a + cos*b,
		cos*c - sin*d, sin*c + cos*d,
		cos*tx - sin*ty + n.X, sin*tx + cos*ty + n.Y,
	}
}

// mul returns m * o: o applied first, then m.
func (m affine) mul(o affine) affine {
	return affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// inverse returns the inverse of m, or the identity when m is singular.
func (m affine) inverse() affine {
	det := m[0]*m[3] - m[1]*m[2]
	if math.Abs(det) < 1e-12 {
		return identity
	}
	a, b := m[3]/det, -m[1]/det
	c, d := -m[2]/det, m[0]/det
	return affine{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

func (m affine) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// bounds returns the axis-aligned box covering the w x h box at the origin
// after m.
func (m affine) bounds(w, h float64) Rect {
	x0, y0 := m.apply(0, 0)
	minX, maxX, minY, maxY := x0, x0, y0, y0
	for _, p := range [...][2]float64{{w, 0}, {w, h}, {0, h}} {
		x, y := m.apply(p[0], p[1])
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// rect maps r through m and returns the axis-aligned box around the result.
func (m affine) rect(r Rect) Rect {
	moved := m
	moved[4], moved[5] = m.apply(r.X, r.Y)
	return moved.bounds(r.Width, r.Height)
}

// refreshTransforms recomputes world matrices and alphas below n. A node is
// recomputed when it is dirty or when force is set because an ancestor moved.
func refreshTransforms(n *Node, parent affine, parentAlpha float64, force bool) {
	if n.transformDirty || force {
		n.worldTransform = parent.mul(localTransform(n))
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
		force = true
	}
	for _, child := range n.children {
		refreshTransforms(child, n.worldTransform, n.worldAlpha, force)
	}
}

// SetPosition moves the node within its parent.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.MarkDirty()
}

// SetScale sets the horizontal and vertical scale factors.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.MarkDirty()
}

// SetRotation sets the rotation in radians, clockwise on screen.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.MarkDirty()
}

// SetSkew sets the skew angles in radians.
func (n *Node) SetSkew(sx, sy float64) {
	n.SkewX, n.SkewY = sx, sy
	n.MarkDirty()
}

// SetPivot sets the local point the node scales and rotates around.
func (n *Node) SetPivot(px, py float64) {
	n.PivotX, n.PivotY = px, py
	n.MarkDirty()
}

// SetAlpha sets the node's opacity. Children inherit it multiplicatively.
func (n *Node) SetAlpha(a float64) {
	n.Alpha = a
	n.MarkDirty()
}

// MarkDirty schedules the node's world transform for recomputation. Call it
// after assigning transform fields directly.
func (n *Node) MarkDirty() {
	n.transformDirty = true
}

// WorldToLocal maps a point in the root's space into the node's local space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return n.worldTransform.inverse().apply(wx, wy)
}

// LocalToWorld maps a local point into the root's space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	return n.worldTransform.apply(lx, ly)
}

// WorldBounds returns the axis-aligned box the node currently covers in its
// root's coordinate space (page space for the world root, screen space for
// the overlay), including its own transform. ok is false when the box cannot
// be measured: the node is detached, disposed, or has no size.
func (n *Node) WorldBounds() (r Rect, ok bool) {
	if !n.Attached() {
		return Rect{}, false
	}
	w, h := nodeDimensions(n)
	if w <= 0 || h <= 0 {
		return Rect{}, false
	}
	return n.worldTransform.bounds(w, h), true
}

// nodeDimensions returns the node's box, measuring text first.
func nodeDimensions(n *Node) (w, h float64) {
	if n.Type == NodeTypeText {
		n.syncTextSize()
	}
	return n.Width, n.Height
}

package lumen

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 fields simultaneously. Create one via
// the convenience constructors (TweenPosition, TweenScale, TweenColor, ...)
// and either call Update(dt) each frame or hand it to Scene.Animate. The
// group writes values into the target fields and marks the node dirty. If the
// target node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	target *Node

	// Delay holds the group at its start values for this many seconds.
	Delay float32

	// OnComplete runs once, on the frame the group finishes.
	OnComplete func()

	Done bool
}

// Update advances all tweens by dt seconds, writes values to the target fields,
// and marks the node dirty. If the target node has been disposed, Done is set
// to true and no writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	if g.Delay > 0 {
		g.Delay -= dt
		if g.Delay > 0 {
			return
		}
		// Carry the overshoot into the tweens.
		dt = -g.Delay
		g.Delay = 0
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
	if g.Done && g.OnComplete != nil {
		g.OnComplete()
	}
}

// Stop ends the group where it is. OnComplete does not run.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// WithDelay sets Delay and returns the group.
func (g *TweenGroup) WithDelay(seconds float32) *TweenGroup {
	g.Delay = seconds
	return g
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[g.count] = field
	g.count++
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given target coordinates over the specified duration using the easing function.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.X, toX, duration, fn)
	g.add(&node.Y, toY, duration, fn)
	return g
}

// TweenScale creates a TweenGroup that animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.ScaleX, toSX, duration, fn)
	g.add(&node.ScaleY, toSY, duration, fn)
	return g
}

// TweenColor creates a TweenGroup that animates all four components of
// node.Color (R, G, B, A) to the target color over the specified duration.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Color.R, to.R, duration, fn)
	g.add(&node.Color.G, to.G, duration, fn)
	g.add(&node.Color.B, to.B, duration, fn)
	g.add(&node.Color.A, to.A, duration, fn)
	return g
}

// TweenAlpha creates a TweenGroup that animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Alpha, to, duration, fn)
	return g
}

// TweenSize creates a TweenGroup that animates the node's box.
func TweenSize(node *Node, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Width, toW, duration, fn)
	g.add(&node.Height, toH, duration, fn)
	return g
}

// TweenClip animates the node's clip rectangle. A node without a clip starts
// from its full box.
func TweenClip(node *Node, to Rect, duration float32, fn ease.TweenFunc) *TweenGroup {
	if node.Clip == nil {
		node.Clip = &Rect{Width: node.Width, Height: node.Height}
	}
	g := &TweenGroup{target: node}
	g.add(&node.Clip.X, to.X, duration, fn)
	g.add(&node.Clip.Y, to.Y, duration, fn)
	g.add(&node.Clip.Width, to.Width, duration, fn)
	g.add(&node.Clip.Height, to.Height, duration, fn)
	return g
}

// TweenFloat animates an arbitrary value. The group has no target node, so
// callers read *field themselves.
func TweenFloat(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{}
	g.add(field, to, duration, fn)
	return g
}

// Animate registers g to be advanced by every Update until it is done.
// It returns g for chaining.
func (s *Scene) Animate(g *TweenGroup) *TweenGroup {
	s.tweens = append(s.tweens, g)
	return g
}

// advanceTweens updates every registered group and drops finished ones.
func (s *Scene) advanceTweens(dt float64) {
	if len(s.tweens) == 0 {
		return
	}
	// Groups started from OnComplete are appended to s.tweens and picked up
	// next frame.
	active := s.tweens
	n := len(active)
	for i := 0; i < n; i++ {
		active[i].Update(float32(dt))
	}
	kept := s.tweens[:0]
	for _, g := range s.tweens {
		if !g.Done {
			kept = append(kept, g)
		}
	}
	for i := len(kept); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = kept
}

package lumen

import (
	"math"
	"testing"
)

func stepFor(s *Scene, seconds float64) {
	for t := 0.0; t < seconds; t += frame {
		s.step(frame)
	}
}

func TestMagneticOffset(t *testing.T) {
	tests := []struct {
		name    string
		pointer Vec2
		want    Vec2
	}{
		{"center", Vec2{100, 100}, Vec2{0, 0}},
		{"right", Vec2{130, 100}, Vec2{9, 0}},
		{"up left", Vec2{80, 60}, Vec2{-6, -12}},
	}
	box := Rect{X: 50, Y: 50, Width: 100, Height: 100}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MagneticOffset(tt.pointer, box, MagneticDamping)
			if !approxEqual(got.X, tt.want.X, 1e-9) || !approxEqual(got.Y, tt.want.Y, 1e-9) {
				t.Errorf("MagneticOffset = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTiltRotation(t *testing.T) {
	tests := []struct {
		name  string
		local Vec2
		want  Vec2
	}{
		{"center", Vec2{100, 50}, Vec2{0, 0}},
		{"lower right", Vec2{150, 70}, Vec2{1, -2.5}},
		{"top left corner", Vec2{0, 0}, Vec2{-2.5, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TiltRotation(tt.local, 200, 100)
			if !approxEqual(got.X, tt.want.X, 1e-9) || !approxEqual(got.Y, tt.want.Y, 1e-9) {
				t.Errorf("TiltRotation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMagneticFollowsPointer(t *testing.T) {
	s, in := newTestScene()
	n := addRect(s.Root(), "button", 50, 50, 100, 100)
	m := NewMagnetic(s, n)

	in.x, in.y = 130, 100
	s.step(frame)
	if got := m.Offset(); !approxEqual(got.X, 9, 1e-9) || got.Y != 0 {
		t.Fatalf("Offset = %v, want (9, 0)", got)
	}
	if n.X >= 59 {
		t.Errorf("X = %v right after the move, want an eased value below 59", n.X)
	}

	stepFor(s, 2*MotionDuration)
	if !approxEqual(n.X, 59, 1e-3) || !approxEqual(n.Y, 50, 1e-3) {
		t.Errorf("position = (%v, %v), want (59, 50)", n.X, n.Y)
	}
}

func TestMagneticLeaveResets(t *testing.T) {
	s, _ := newTestScene()
	n := addRect(s.Root(), "button", 50, 50, 100, 100)
	m := NewMagnetic(s, n)
	s.refreshTransforms()

	m.HandleMove(Vec2{130, 100})
	stepFor(s, 2*MotionDuration)
	m.HandleLeave()
	if got := m.Offset(); got != (Vec2{}) {
		t.Errorf("Offset after leave = %v, want zero", got)
	}
	stepFor(s, 2*MotionDuration)
	if !approxEqual(n.X, 50, 1e-3) || !approxEqual(n.Y, 50, 1e-3) {
		t.Errorf("position = (%v, %v), want (50, 50)", n.X, n.Y)
	}
}

func TestMagneticUnmeasurableNodeIsNoOp(t *testing.T) {
	s, _ := newTestScene()
	n := NewRect("detached", 100, 100, ColorWhite)
	m := NewMagnetic(s, n)
	m.HandleMove(Vec2{130, 100})
	if got := m.Offset(); got != (Vec2{}) {
		t.Errorf("Offset = %v, want zero", got)
	}
	stepFor(s, MotionDuration)
	if n.X != 0 || n.Y != 0 {
		t.Errorf("position = (%v, %v), want unchanged", n.X, n.Y)
	}
}

func TestMagneticCloseRestores(t *testing.T) {
	s, _ := newTestScene()
	n := addRect(s.Root(), "button", 50, 50, 100, 100)
	prevCalls := 0
	n.OnPointerMove = func(PointerContext) { prevCalls++ }
	m := NewMagnetic(s, n)
	s.refreshTransforms()

	m.HandleMove(Vec2{130, 100})
	stepFor(s, MotionDuration/2)
	m.Close()
	m.Close()
	if n.X != 50 || n.Y != 50 {
		t.Errorf("position = (%v, %v), want (50, 50)", n.X, n.Y)
	}
	n.OnPointerMove(PointerContext{})
	if prevCalls != 1 {
		t.Errorf("previous callback calls = %d, want 1", prevCalls)
	}
	stepFor(s, MotionDuration)
	if n.X != 50 {
		t.Errorf("X = %v after Close, want 50", n.X)
	}
}

func TestTiltKeepsBoxInPlace(t *testing.T) {
	s, _ := newTestScene()
	n := addRect(s.Root(), "card", 0, 0, 200, 100)
	NewTilt(s, n)
	s.refreshTransforms()

	box, ok := n.WorldBounds()
	if !ok {
		t.Fatal("card should be measurable")
	}
	want := Rect{Width: 200, Height: 100}
	if !approxEqual(box.X, want.X, 1e-9) || !approxEqual(box.Y, want.Y, 1e-9) ||
		!approxEqual(box.Width, want.Width, 1e-9) || !approxEqual(box.Height, want.Height, 1e-9) {
		t.Errorf("WorldBounds = %+v, want %+v", box, want)
	}
}

func TestTiltFollowsPointer(t *testing.T) {
	s, _ := newTestScene()
	n := addRect(s.Root(), "card", 0, 0, 200, 100)
	tilt := NewTilt(s, n)
	s.refreshTransforms()

	tilt.HandleMove(Vec2{150, 70})
	if got := tilt.Rotation(); !approxEqual(got.X, 1, 1e-9) || !approxEqual(got.Y, -2.5, 1e-9) {
		t.Fatalf("Rotation = %v, want (1, -2.5)", got)
	}

	stepFor(s, 2*MotionDuration)
	r := tilt.Rendered()
	if !approxEqual(r.X, 1, 1e-4) || !approxEqual(r.Y, -2.5, 1e-4) {
		t.Errorf("Rendered = %v, want (1, -2.5)", r)
	}
	wantScaleX := math.Cos(-2.5 * math.Pi / 180)
	if !approxEqual(n.ScaleX, wantScaleX, 1e-4) {
		t.Errorf("ScaleX = %v, want %v", n.ScaleX, wantScaleX)
	}
	if n.SkewX <= 0 || n.SkewY <= 0 {
		t.Errorf("skew = (%v, %v), want both positive", n.SkewX, n.SkewY)
	}

	tilt.HandleLeave()
	if got := tilt.Rotation(); got != (Vec2{}) {
		t.Errorf("Rotation after leave = %v, want (0, 0)", got)
	}
	stepFor(s, 2*MotionDuration)
	if !approxEqual(n.ScaleX, 1, 1e-4) || !approxEqual(n.SkewX, 0, 1e-4) {
		t.Errorf("after leave scale %v skew %v, want 1 and 0", n.ScaleX, n.SkewX)
	}
}

func TestMotionFollowsPointerWithButtonHeld(t *testing.T) {
	s, in := newTestScene()
	card := addRect(s.Root(), "card", 0, 0, 200, 100)
	button := addRect(s.Root(), "button", 300, 0, 100, 100)
	tilt := NewTilt(s, card)
	mag := NewMagnetic(s, button)

	in.x, in.y = 150, 70
	s.step(frame)
	in.pressed[MouseButtonRight] = true
	s.step(frame)
	in.x, in.y = 20, 10
	s.step(frame)

	// The card's box has barely started to tilt, so the pointer maps to
	// nearly the same local point.
	want := TiltRotation(Vec2{20, 10}, 200, 100)
	if got := tilt.Rotation(); !approxEqual(got.X, want.X, 0.1) || !approxEqual(got.Y, want.Y, 0.1) {
		t.Errorf("Rotation with button held = %v, want %v", got, want)
	}

	// Still held, now over the magnetic button.
	in.x, in.y = 380, 50
	s.step(frame)
	if got := mag.Offset(); !approxEqual(got.X, 9, 1e-9) || !approxEqual(got.Y, 0, 1e-9) {
		t.Errorf("Offset with button held = %v, want (9, 0)", got)
	}
	if got := tilt.Rotation(); got != (Vec2{}) {
		t.Errorf("card Rotation after leaving = %v, want (0, 0)", got)
	}
}

func TestTiltCloseRestores(t *testing.T) {
	s, _ := newTestScene()
	n := addRect(s.Root(), "card", 10, 20, 200, 100)
	tilt := NewTilt(s, n)
	s.refreshTransforms()
	tilt.HandleMove(Vec2{210, 120})
	stepFor(s, MotionDuration)

	tilt.Close()
	if n.X != 10 || n.Y != 20 || n.PivotX != 0 || n.PivotY != 0 {
		t.Errorf("position (%v, %v) pivot (%v, %v), want (10, 20) and (0, 0)", n.X, n.Y, n.PivotX, n.PivotY)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 || n.SkewX != 0 || n.SkewY != 0 {
		t.Errorf("scale (%v, %v) skew (%v, %v), want identity", n.ScaleX, n.ScaleY, n.SkewX, n.SkewY)
	}
}

func TestMotionClosesWithDisposedNode(t *testing.T) {
	s, _ := newTestScene()
	n := addRect(s.Root(), "button", 50, 50, 100, 100)
	m := NewMagnetic(s, n)
	n.Dispose()
	s.step(frame)
	if !m.closed {
		t.Error("effect should close when its node is disposed")
	}
}

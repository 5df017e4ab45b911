package lumen

import "testing"

// --- HitShape tests ---

func TestHitRectContains(t *testing.T) {
	r := HitRect{X: 10, Y: 20, Width: 100, Height: 50}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"outside left", 5, 40, false},
		{"outside right", 115, 40, false},
		{"outside top", 50, 15, false},
		{"outside bottom", 50, 75, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitRect.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestHitCircleContains(t *testing.T) {
	c := HitCircle{CenterX: 50, CenterY: 50, Radius: 25}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 50, 50, true},
		{"on circumference", 75, 50, true},
		{"inside", 60, 50, true},
		{"outside", 80, 50, false},
		{"outside diagonal", 70, 70, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("HitCircle.Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

// --- Hit testing ---

func addRect(parent *Node, name string, x, y, w, h float64) *Node {
	n := NewRect(name, w, h, ColorWhite)
	n.SetPosition(x, y)
	parent.AddChild(n)
	return n
}

func hitName(s *Scene, x, y float64) string {
	s.refreshTransforms()
	if n := s.hitTest(x, y); n != nil {
		return n.Name
	}
	return ""
}

func TestHitTestPainterOrder(t *testing.T) {
	s, _ := newTestScene()
	addRect(s.Root(), "bottom", 0, 0, 200, 200)
	addRect(s.Root(), "top", 50, 50, 50, 50)

	if got := hitName(s, 60, 60); got != "top" {
		t.Errorf("hit = %q, want top", got)
	}
	if got := hitName(s, 10, 10); got != "bottom" {
		t.Errorf("hit = %q, want bottom", got)
	}
	if got := hitName(s, 500, 500); got != "" {
		t.Errorf("hit = %q, want nothing", got)
	}
}

func TestHitTestZIndex(t *testing.T) {
	s, _ := newTestScene()
	a := addRect(s.Root(), "a", 0, 0, 100, 100)
	addRect(s.Root(), "b", 0, 0, 100, 100)
	a.SetZIndex(1)

	if got := hitName(s, 50, 50); got != "a" {
		t.Errorf("hit = %q, want a (higher ZIndex)", got)
	}
}

func TestHitTestOverlayFirst(t *testing.T) {
	s, _ := newTestScene()
	addRect(s.Root(), "page", 0, 0, 800, 3000)
	addRect(s.Overlay(), "nav", 0, 0, 800, 80)

	if got := hitName(s, 100, 40); got != "nav" {
		t.Errorf("hit = %q, want nav", got)
	}
	if got := hitName(s, 100, 200); got != "page" {
		t.Errorf("hit = %q, want page", got)
	}
}

func TestHitTestFollowsScroll(t *testing.T) {
	s, _ := newTestScene()
	addRect(s.Root(), "card", 0, 1000, 100, 100)

	if got := hitName(s, 50, 450); got != "" {
		t.Errorf("hit = %q before scrolling, want nothing", got)
	}
	s.Camera().SetScrollTop(600)
	if got := hitName(s, 50, 450); got != "card" {
		t.Errorf("hit = %q after scrolling, want card", got)
	}
}

func TestHitTestSkipsNonInteractableSubtree(t *testing.T) {
	s, _ := newTestScene()
	group := NewContainer("group")
	s.Root().AddChild(group)
	addRect(group, "inner", 0, 0, 100, 100)
	group.Interactable = false

	if got := hitName(s, 50, 50); got != "" {
		t.Errorf("hit = %q, want nothing", got)
	}
}

func TestHitTestRespectsClip(t *testing.T) {
	s, _ := newTestScene()
	panel := NewContainer("panel")
	panel.Clip = &Rect{Width: 50, Height: 50}
	s.Root().AddChild(panel)
	addRect(panel, "content", 0, 0, 100, 100)

	if got := hitName(s, 25, 25); got != "content" {
		t.Errorf("hit = %q inside clip, want content", got)
	}
	if got := hitName(s, 75, 75); got != "" {
		t.Errorf("hit = %q outside clip, want nothing", got)
	}
}

func TestHitTestHitShape(t *testing.T) {
	s, _ := newTestScene()
	n := NewContainer("circle")
	n.HitShape = HitCircle{CenterX: 50, CenterY: 50, Radius: 10}
	s.Root().AddChild(n)

	if got := hitName(s, 50, 55); got != "circle" {
		t.Errorf("hit = %q, want circle", got)
	}
	if got := hitName(s, 5, 5); got != "" {
		t.Errorf("hit = %q, want nothing", got)
	}
}

// --- Pointer state machine ---

func TestPointerEnterMoveLeave(t *testing.T) {
	s, in := newTestScene()
	n := addRect(s.Root(), "btn", 100, 100, 100, 50)

	var events []string
	n.OnPointerEnter = func(PointerContext) { events = append(events, "enter") }
	n.OnPointerMove = func(ctx PointerContext) {
		events = append(events, "move")
		if ctx.LocalX != 20 || ctx.LocalY != 10 {
			t.Errorf("local = (%v,%v), want (20,10)", ctx.LocalX, ctx.LocalY)
		}
	}
	n.OnPointerLeave = func(PointerContext) { events = append(events, "leave") }

	in.x, in.y = 120, 110
	s.step(frame)
	s.step(frame) // no motion, no events
	in.x, in.y = 500, 500
	s.step(frame)

	want := []string{"enter", "move", "leave"}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i := range want {
		if events[i] != want[i] {
			t.Errorf("events[%d] = %q, want %q", i, events[i], want[i])
		}
	}
}

func TestPointerLeaveWhenPageScrollsAway(t *testing.T) {
	s, in := newTestScene()
	n := addRect(s.Root(), "card", 0, 0, 800, 100)
	left := false
	n.OnPointerLeave = func(PointerContext) { left = true }

	in.x, in.y = 50, 50
	s.step(frame)
	s.Camera().SetScrollTop(500)
	s.step(frame)
	if !left {
		t.Error("expected leave after the page scrolled the node away")
	}
}

func TestClick(t *testing.T) {
	s, in := newTestScene()
	n := addRect(s.Root(), "btn", 0, 0, 100, 100)
	clicks := 0
	n.OnClick = func(ClickContext) { clicks++ }

	in.x, in.y = 50, 50
	in.pressed[MouseButtonLeft] = true
	s.step(frame)
	in.pressed[MouseButtonLeft] = false
	s.step(frame)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestNoClickWhenReleasedElsewhere(t *testing.T) {
	s, in := newTestScene()
	n := addRect(s.Overlay(), "btn", 0, 0, 100, 100)
	clicks := 0
	n.OnClick = func(ClickContext) { clicks++ }

	in.x, in.y = 50, 50
	in.pressed[MouseButtonLeft] = true
	s.step(frame)
	in.x, in.y = 300, 300
	s.step(frame)
	in.pressed[MouseButtonLeft] = false
	s.step(frame)

	if clicks != 0 {
		t.Errorf("clicks = %d, want 0", clicks)
	}
}

func TestDragScrollsPageAndSuppressesClick(t *testing.T) {
	s, in := newTestScene()
	n := addRect(s.Root(), "page", 0, 0, 800, 3000)
	clicks := 0
	n.OnClick = func(ClickContext) { clicks++ }

	in.x, in.y = 100, 300
	in.pressed[MouseButtonLeft] = true
	s.step(frame)
	in.y = 200
	s.step(frame)
	in.pressed[MouseButtonLeft] = false
	s.step(frame)

	if got := s.Camera().ScrollTop(); got != 100 {
		t.Errorf("ScrollTop = %f, want 100", got)
	}
	if clicks != 0 {
		t.Errorf("clicks = %d, want 0 after a drag", clicks)
	}
}

func TestSmallMovementStillClicks(t *testing.T) {
	s, in := newTestScene()
	n := addRect(s.Root(), "btn", 0, 0, 100, 100)
	clicks := 0
	n.OnClick = func(ClickContext) { clicks++ }

	in.x, in.y = 50, 50
	in.pressed[MouseButtonLeft] = true
	s.step(frame)
	in.x = 52
	s.step(frame)
	in.pressed[MouseButtonLeft] = false
	s.step(frame)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1 inside the dead zone", clicks)
	}
	if s.Camera().ScrollTop() != 0 {
		t.Errorf("ScrollTop = %f, want 0", s.Camera().ScrollTop())
	}
}

func TestMoveWithButtonHeld(t *testing.T) {
	tests := []struct {
		name   string
		button MouseButton
		toX    float64
		moves  int
	}{
		{"right button", MouseButtonRight, 90, 1},
		{"middle button", MouseButtonMiddle, 90, 1},
		{"left inside dead zone", MouseButtonLeft, 53, 1},
		{"left drag", MouseButtonLeft, 90, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, in := newTestScene()
			n := addRect(s.Root(), "card", 0, 0, 200, 100)

			in.x, in.y = 50, 50
			s.step(frame)
			in.pressed[tt.button] = true
			s.step(frame)

			var got []PointerContext
			n.OnPointerMove = func(ctx PointerContext) { got = append(got, ctx) }
			in.x = tt.toX
			s.step(frame)
			s.step(frame)

			if len(got) != tt.moves {
				t.Fatalf("moves while held = %d, want %d", len(got), tt.moves)
			}
			if tt.moves > 0 && (got[0].GlobalX != tt.toX || got[0].Button != tt.button) {
				t.Errorf("move = x %v button %v, want x %v button %v", got[0].GlobalX, got[0].Button, tt.toX, tt.button)
			}
		})
	}
}

func TestSceneHandlersFireBeforeNodeCallbacks(t *testing.T) {
	s, in := newTestScene()
	n := addRect(s.Root(), "btn", 0, 0, 100, 100)
	var order []string
	s.OnPointerEnter(func(PointerContext) { order = append(order, "scene") })
	n.OnPointerEnter = func(PointerContext) { order = append(order, "node") }

	in.x, in.y = 10, 10
	s.step(frame)
	if len(order) != 2 || order[0] != "scene" || order[1] != "node" {
		t.Errorf("order = %v, want [scene node]", order)
	}
}

func TestCallbackHandleRemove(t *testing.T) {
	s, in := newTestScene()
	calls := 0
	h := s.OnPointerMove(func(PointerContext) { calls++ })
	other := s.OnPointerMove(func(PointerContext) {})

	in.x, in.y = 10, 10
	s.step(frame)
	h.Remove()
	in.x = 20
	s.step(frame)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if len(s.handlers.pointerMove) != 1 {
		t.Errorf("handlers = %d, want 1", len(s.handlers.pointerMove))
	}
	other.Remove()
	CallbackHandle{}.Remove()
}

func TestCapturePointer(t *testing.T) {
	s, in := newTestScene()
	a := addRect(s.Root(), "a", 0, 0, 100, 100)
	addRect(s.Root(), "b", 200, 0, 100, 100)
	ups := 0
	a.OnPointerUp = func(PointerContext) { ups++ }

	in.x, in.y = 50, 50
	in.pressed[MouseButtonLeft] = true
	s.step(frame)
	s.CapturePointer(a)
	in.x = 250
	in.pressed[MouseButtonLeft] = false
	s.step(frame)

	if ups != 1 {
		t.Errorf("captured node ups = %d, want 1", ups)
	}
	if s.captured != nil {
		t.Error("capture should end on release")
	}
}

// --- Wheel and keys ---

func TestWheelScrolls(t *testing.T) {
	s, in := newTestScene()
	in.wheelDY = -2 // two notches down
	s.step(frame)
	if got := s.Camera().ScrollTop(); got != 2*defaultWheelStep {
		t.Errorf("ScrollTop = %f, want %f", got, 2*defaultWheelStep)
	}
}

func TestKeyScrolling(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		key   Key
		want  float64
	}{
		{"end", 0, KeyEnd, 2400},
		{"home", 1000, KeyHome, 0},
		{"page down", 0, KeyPageDown, 540},
		{"page up", 1000, KeyPageUp, 460},
		{"space", 0, KeySpace, 540},
		{"arrow down", 0, KeyArrowDown, keyScrollStep},
		{"arrow up", 100, KeyArrowUp, 100 - keyScrollStep},
		{"escape does not scroll", 100, KeyEscape, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, in := newTestScene()
			s.Camera().SetScrollTop(tt.start)
			in.press(tt.key)
			s.step(frame)
			if got := s.Camera().ScrollTop(); !approxEqual(got, tt.want, 1e-9) {
				t.Errorf("ScrollTop = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestOnKey(t *testing.T) {
	s, in := newTestScene()
	var got []Key
	s.OnKey(func(k Key) { got = append(got, k) })
	in.press(KeyEscape)
	s.step(frame)
	s.step(frame)
	if len(got) != 1 || got[0] != KeyEscape {
		t.Errorf("keys = %v, want [Escape]", got)
	}
}

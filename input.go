package lumen

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	defaultDragDeadZone = 4.0  // pixels
	defaultWheelStep    = 60.0 // pixels per wheel notch
	keyScrollStep       = 80.0 // pixels per arrow key press
)

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// --- Host input ---

// InputSource is the host input backend polled once per Update.
type InputSource interface {
	// CursorPosition returns the pointer position in screen pixels.
	CursorPosition() (x, y float64)
	// MousePressed reports whether the button is currently held.
	MousePressed(b MouseButton) bool
	// Wheel returns the wheel movement since the last frame. Positive dy
	// means the wheel moved up (towards the top of the page).
	Wheel() (dx, dy float64)
	// KeyJustPressed reports whether k went down this frame.
	KeyJustPressed(k Key) bool
}

// ebitenInput reads input from Ebitengine.
type ebitenInput struct{}

func (ebitenInput) CursorPosition() (float64, float64) {
	x, y := ebiten.CursorPosition()
	return float64(x), float64(y)
}

func (ebitenInput) MousePressed(b MouseButton) bool {
	switch b {
	case MouseButtonRight:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	case MouseButtonMiddle:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)
	default:
		return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}
}

func (ebitenInput) Wheel() (float64, float64) {
	return ebiten.Wheel()
}

var ebitenKeys = [...]ebiten.Key{
	KeyEscape:    ebiten.KeyEscape,
	KeyHome:      ebiten.KeyHome,
	KeyEnd:       ebiten.KeyEnd,
	KeyPageUp:    ebiten.KeyPageUp,
	KeyPageDown:  ebiten.KeyPageDown,
	KeyArrowUp:   ebiten.KeyArrowUp,
	KeyArrowDown: ebiten.KeyArrowDown,
	KeySpace:     ebiten.KeySpace,
}

func (ebitenInput) KeyJustPressed(k Key) bool {
	if int(k) >= len(ebitenKeys) {
		return false
	}
	return inpututil.IsKeyJustPressed(ebitenKeys[k])
}

// --- Pointer state ---

type pointerState struct {
	down      bool
	startX    float64 // screen space
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverNode *Node // last node the pointer was hovering over (for enter/leave)
	dragging  bool
	button    MouseButton // button captured at press time
	seen      bool        // lastX/lastY hold a real sample
}

// --- Handler registry ---

type handler[T any] struct {
	id uint32
	fn func(T)
}

// removeHandler returns a new slice without the handler. The old backing
// array is left untouched so a dispatch loop ranging over it is unaffected.
func removeHandler[T any](s []handler[T], id uint32) []handler[T] {
	for i := range s {
		if s[i].id == id {
			out := make([]handler[T], 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}

type handlerRegistry struct {
	pointerDown  []handler[PointerContext]
	pointerUp    []handler[PointerContext]
	pointerMove  []handler[PointerContext]
	pointerEnter []handler[PointerContext]
	pointerLeave []handler[PointerContext]
	click        []handler[ClickContext]
	scroll       []handler[ScrollContext]
	frame        []handler[float64]
	key          []handler[Key]
	nextID       uint32
}

// CallbackHandle allows removing a registered scene-level callback.
// The zero value is a valid handle whose Remove is a no-op.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires. Calling Remove more
// than once is harmless.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventPointerDown:
		h.reg.pointerDown = removeHandler(h.reg.pointerDown, h.id)
	case EventPointerUp:
		h.reg.pointerUp = removeHandler(h.reg.pointerUp, h.id)
	case EventPointerMove:
		h.reg.pointerMove = removeHandler(h.reg.pointerMove, h.id)
	case EventPointerEnter:
		h.reg.pointerEnter = removeHandler(h.reg.pointerEnter, h.id)
	case EventPointerLeave:
		h.reg.pointerLeave = removeHandler(h.reg.pointerLeave, h.id)
	case EventClick:
		h.reg.click = removeHandler(h.reg.click, h.id)
	case EventScroll:
		h.reg.scroll = removeHandler(h.reg.scroll, h.id)
	case EventFrame:
		h.reg.frame = removeHandler(h.reg.frame, h.id)
	case EventKey:
		h.reg.key = removeHandler(h.reg.key, h.id)
	}
}

func register[T any](r *handlerRegistry, list *[]handler[T], event EventType, fn func(T)) CallbackHandle {
	r.nextID++
	*list = append(*list, handler[T]{id: r.nextID, fn: fn})
	return CallbackHandle{id: r.nextID, reg: r, event: event}
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
func (s *Scene) OnPointerDown(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerDown, EventPointerDown, fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerUp, EventPointerUp, fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
func (s *Scene) OnPointerMove(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerMove, EventPointerMove, fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired when the pointer moves over a new node (or from nil to a node).
func (s *Scene) OnPointerEnter(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerEnter, EventPointerEnter, fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
// Fired when the pointer leaves a node (moves to a different node or to empty space).
func (s *Scene) OnPointerLeave(fn func(PointerContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.pointerLeave, EventPointerLeave, fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(ClickContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.click, EventClick, fn)
}

// OnScroll registers a callback for page scroll notifications.
func (s *Scene) OnScroll(fn func(ScrollContext)) CallbackHandle {
	return register(&s.handlers, &s.handlers.scroll, EventScroll, fn)
}

// OnFrame registers a callback run once per Update, after input, scroll and
// visibility processing, with the frame delta in seconds.
func (s *Scene) OnFrame(fn func(dt float64)) CallbackHandle {
	return register(&s.handlers, &s.handlers.frame, EventFrame, fn)
}

// OnKey registers a callback for key presses.
func (s *Scene) OnKey(fn func(Key)) CallbackHandle {
	return register(&s.handlers, &s.handlers.key, EventKey, fn)
}

// CapturePointer routes all pointer events to the given node.
func (s *Scene) CapturePointer(node *Node) {
	s.captured = node
}

// ReleasePointer stops routing pointer events to a captured node.
func (s *Scene) ReleasePointer() {
	s.captured = nil
}

// SetDragDeadZone sets the minimum movement in pixels before a drag-scroll starts.
func (s *Scene) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

func (s *Scene) fireFrame(dt float64) {
	for _, h := range s.handlers.frame {
		h.fn(dt)
	}
}

// --- Hit testing ---

// nodeContainsLocal tests whether (lx, ly) falls inside a node's hit region.
// Uses HitShape if set; otherwise the node's box.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.HitShape != nil {
		return n.HitShape.Contains(lx, ly)
	}
	w, h := nodeDimensions(n)
	if w == 0 && h == 0 {
		return false
	}
	return lx >= 0 && lx <= w && ly >= 0 && ly <= h
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted),
// appending interactable nodes to buf. Skips Visible=false or
// Interactable=false subtrees.
func (s *Scene) collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}

	if n.HitShape != nil || n.Type != NodeTypeContainer || (n.Width > 0 && n.Height > 0) {
		buf = append(buf, n)
	}

	for _, child := range n.drawOrder() {
		buf = s.collectInteractable(child, buf)
	}
	return buf
}

// hitTestRoot finds the topmost interactable node under root at (x, y) in
// root space. Returns nil if nothing is hit.
func (s *Scene) hitTestRoot(root *Node, x, y float64) *Node {
	s.hitBuf = s.collectInteractable(root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(x, y)
		if nodeContainsLocal(n, lx, ly) && !clippedOut(n, x, y) {
			return n
		}
	}
	return nil
}

// clippedOut reports whether (x, y) falls outside the clip of n or any ancestor.
func clippedOut(n *Node, x, y float64) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Clip == nil {
			continue
		}
		if !p.worldTransform.rect(*p.Clip).Contains(x, y) {
			return true
		}
	}
	return false
}

// hitTest finds the topmost node at screen position (sx, sy). The overlay is
// tested first; page content is tested in world coordinates.
func (s *Scene) hitTest(sx, sy float64) *Node {
	if n := s.hitTestRoot(s.overlay, sx, sy); n != nil {
		return n
	}
	wx, wy := s.camera.ScreenToWorld(sx, sy)
	return s.hitTestRoot(s.root, wx, wy)
}

// toRootSpace converts a screen point into the coordinate space of the root
// n belongs to. Detached and nil nodes get page (world) coordinates.
func (s *Scene) toRootSpace(n *Node, sx, sy float64) (float64, float64) {
	if n != nil && n.inOverlay() {
		return sx, sy
	}
	return s.camera.ScreenToWorld(sx, sy)
}

// --- Input processing ---

// processInput is called from Scene.Update() to handle pointer, wheel and key
// input. World transforms are already refreshed at this point.
func (s *Scene) processInput() {
	if !s.processInjectedInput() {
		x, y := s.input.CursorPosition()
		var pressed bool
		var button MouseButton
		for _, b := range [...]MouseButton{MouseButtonLeft, MouseButtonRight, MouseButtonMiddle} {
			if s.input.MousePressed(b) {
				pressed, button = true, b
				break
			}
		}
		s.processPointer(x, y, pressed, button)
	}

	if _, dy := s.input.Wheel(); dy != 0 {
		s.camera.ScrollBy(-dy * s.WheelStep)
	}
	s.processKeys()
}

// processKeys fires key handlers and applies the built-in keyboard scrolling.
func (s *Scene) processKeys() {
	for k := KeyEscape; k <= KeySpace; k++ {
		if !s.input.KeyJustPressed(k) {
			continue
		}
		s.applyKeyScroll(k)
		for _, h := range s.handlers.key {
			h.fn(k)
		}
	}
}

func (s *Scene) applyKeyScroll(k Key) {
	cam := s.camera
	page := cam.ClientHeight() * 0.9
	switch k {
	case KeyHome:
		cam.SetScrollTop(0)
	case KeyEnd:
		cam.SetScrollTop(cam.ScrollHeight())
	case KeyPageUp:
		cam.ScrollBy(-page)
	case KeyPageDown, KeySpace:
		cam.ScrollBy(page)
	case KeyArrowUp:
		cam.ScrollBy(-keyScrollStep)
	case KeyArrowDown:
		cam.ScrollBy(keyScrollStep)
	}
}

// processPointer runs the pointer state machine for the mouse pointer.
// (sx, sy) is in screen space.
func (s *Scene) processPointer(sx, sy float64, pressed bool, button MouseButton) {
	ps := &s.pointer

	var target *Node
	if s.captured != nil {
		target = s.captured
	} else {
		target = s.hitTest(sx, sy)
	}

	// Fire hover enter/leave when the hovered node changes. This also runs
	// when only the page scrolled under a still pointer.
	if target != ps.hoverNode {
		if ps.hoverNode != nil && !ps.hoverNode.disposed {
			s.firePointer(EventPointerLeave, ps.hoverNode, sx, sy, button)
		}
		if target != nil {
			s.firePointer(EventPointerEnter, target, sx, sy, button)
		}
		ps.hoverNode = target
	}

	moved := !ps.seen || sx != ps.lastX || sy != ps.lastY

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = sx, sy
		ps.hitNode = target
		ps.dragging = false
		s.firePointer(EventPointerDown, target, sx, sy, button)
	case !pressed && ps.down:
		if ps.dragging && ps.hitNode != nil && !ps.hitNode.inOverlay() {
			s.camera.ScrollBy(ps.lastY - sy)
		}
		if !ps.dragging && ps.hitNode != nil && ps.hitNode == target {
			s.fireClick(target, sx, sy, ps.button)
		}
		s.firePointer(EventPointerUp, target, sx, sy, ps.button)
		s.captured = nil
		ps.down = false
		ps.hitNode = nil
		ps.dragging = false
	case pressed && ps.down:
		if !moved {
			break
		}
		if ps.button == MouseButtonLeft && !ps.dragging {
			dx := sx - ps.startX
			dy := sy - ps.startY
			if math.Sqrt(dx*dx+dy*dy) > s.dragDeadZone {
				ps.dragging = true
			}
		}
		if !ps.dragging {
			// Held-button moves still reach hover effects.
			s.firePointer(EventPointerMove, target, sx, sy, ps.button)
		} else if ps.hitNode != nil && !ps.hitNode.inOverlay() {
			// Drag on page content scrolls it, like a touch swipe.
			s.camera.ScrollBy(ps.lastY - sy)
		}
	default:
		if moved {
			s.firePointer(EventPointerMove, target, sx, sy, button)
		}
	}

	ps.lastX, ps.lastY = sx, sy
	ps.seen = true
}

// --- Event dispatch ---

func (s *Scene) pointerContext(node *Node, sx, sy float64, button MouseButton) PointerContext {
	gx, gy := s.toRootSpace(node, sx, sy)
	ctx := PointerContext{GlobalX: gx, GlobalY: gy, Button: button}
	if node != nil {
		ctx.Node = node
		ctx.UserData = node.UserData
		ctx.LocalX, ctx.LocalY = node.WorldToLocal(gx, gy)
	}
	return ctx
}

func (s *Scene) firePointer(event EventType, node *Node, sx, sy float64, button MouseButton) {
	ctx := s.pointerContext(node, sx, sy, button)

	var list []handler[PointerContext]
	var nodeFn func(PointerContext)
	switch event {
	case EventPointerDown:
		list = s.handlers.pointerDown
		if node != nil {
			nodeFn = node.OnPointerDown
		}
	case EventPointerUp:
		list = s.handlers.pointerUp
		if node != nil {
			nodeFn = node.OnPointerUp
		}
	case EventPointerMove:
		list = s.handlers.pointerMove
		if node != nil {
			nodeFn = node.OnPointerMove
		}
	case EventPointerEnter:
		list = s.handlers.pointerEnter
		if node != nil {
			nodeFn = node.OnPointerEnter
		}
	case EventPointerLeave:
		list = s.handlers.pointerLeave
		if node != nil {
			nodeFn = node.OnPointerLeave
		}
	}

	// Scene-level handlers first.
	for _, h := range list {
		h.fn(ctx)
	}
	// Per-node callback.
	if nodeFn != nil {
		nodeFn(ctx)
	}
}

func (s *Scene) fireClick(node *Node, sx, sy float64, button MouseButton) {
	pc := s.pointerContext(node, sx, sy, button)
	ctx := ClickContext{
		Node: pc.Node, UserData: pc.UserData,
		GlobalX: pc.GlobalX, GlobalY: pc.GlobalY, LocalX: pc.LocalX, LocalY: pc.LocalY,
		Button: button,
	}
	for _, h := range s.handlers.click {
		h.fn(ctx)
	}
	if node != nil && node.OnClick != nil {
		node.OnClick(ctx)
	}
}

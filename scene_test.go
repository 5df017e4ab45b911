package lumen

import (
	"testing"

	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const frame = 1.0 / 60

// fakeInput is a scripted InputSource.
type fakeInput struct {
	x, y    float64
	pressed [3]bool
	wheelDY float64
	keys    map[Key]bool
}

func (f *fakeInput) CursorPosition() (float64, float64) { return f.x, f.y }
func (f *fakeInput) MousePressed(b MouseButton) bool    { return f.pressed[b] }
func (f *fakeInput) Wheel() (float64, float64) {
	dy := f.wheelDY
	f.wheelDY = 0
	return 0, dy
}
func (f *fakeInput) KeyJustPressed(k Key) bool {
	if f.keys[k] {
		delete(f.keys, k)
		return true
	}
	return false
}

func (f *fakeInput) press(k Key) {
	if f.keys == nil {
		f.keys = map[Key]bool{}
	}
	f.keys[k] = true
}

// newTestScene returns an 800x600 scene over a 3000px page driven by a
// fake input source.
func newTestScene() (*Scene, *fakeInput) {
	s := NewScene(Rect{Width: 800, Height: 600})
	s.SetContentHeight(3000)
	in := &fakeInput{x: -1, y: -1}
	s.SetInputSource(in)
	return s, in
}

func TestNewScene(t *testing.T) {
	s := NewScene(Rect{Width: 800, Height: 600})
	if s.Root() == nil || s.Root().Name != "root" {
		t.Fatal("root should be a container named root")
	}
	if s.Overlay() == nil || s.Overlay().Name != "overlay" {
		t.Fatal("overlay should be a container named overlay")
	}
	if s.Root().Type != NodeTypeContainer {
		t.Errorf("root.Type = %d, want NodeTypeContainer", s.root.Type)
	}
	if s.Logger() == nil {
		t.Error("Logger should never be nil")
	}
}

func TestSceneSetDebugMode(t *testing.T) {
	s := NewScene(Rect{Width: 800, Height: 600})
	s.SetDebugMode(true)
	if !s.debug || !globalDebug {
		t.Error("debug should be true")
	}
	s.SetDebugMode(false)
	if s.debug || globalDebug {
		t.Error("debug should be false")
	}
}

func TestSceneDebugLogsUpdate(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s, _ := newTestScene()
	s.SetLogger(zap.New(core))
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	s.step(frame)
	if n := logs.FilterMessage("update").Len(); n != 1 {
		t.Errorf("update log entries = %d, want 1", n)
	}
}

func TestSceneSetLoggerNil(t *testing.T) {
	s := NewScene(Rect{Width: 800, Height: 600})
	s.SetLogger(nil)
	if s.Logger() == nil {
		t.Error("SetLogger(nil) should install a no-op logger")
	}
}

func TestScenePost(t *testing.T) {
	s, _ := newTestScene()
	var ran []int
	done := make(chan struct{})
	go func() {
		s.Post(func() { ran = append(ran, 1) })
		s.Post(func() { ran = append(ran, 2) })
		close(done)
	}()
	<-done
	if len(ran) != 0 {
		t.Fatal("posted work should not run before Update")
	}
	s.step(frame)
	if len(ran) != 2 || ran[0] != 1 || ran[1] != 2 {
		t.Errorf("ran = %v, want [1 2]", ran)
	}
}

func TestScenePostFull(t *testing.T) {
	s, _ := newTestScene()
	for i := 0; i < defaultPostCap; i++ {
		if !s.Post(func() {}) {
			t.Fatalf("Post %d rejected before the queue was full", i)
		}
	}
	if s.Post(func() {}) {
		t.Error("Post should report false when the queue is full")
	}
}

func TestSceneAfter(t *testing.T) {
	s, _ := newTestScene()
	fired := 0
	s.After(0.1, func() { fired++ })

	for i := 0; i < 5; i++ {
		s.step(frame)
	}
	if fired != 0 {
		t.Fatalf("timer fired after %d frames, want later", 5)
	}
	for i := 0; i < 2; i++ {
		s.step(frame)
	}
	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	s.step(frame)
	if fired != 1 {
		t.Errorf("one-shot timer fired %d times", fired)
	}
	if len(s.timers) != 0 {
		t.Errorf("timers = %d, want 0 after firing", len(s.timers))
	}
}

func TestSceneAfterStop(t *testing.T) {
	s, _ := newTestScene()
	fired := false
	tm := s.After(0, func() { fired = true })
	if !tm.Stop() {
		t.Error("Stop on a pending timer should report true")
	}
	if tm.Stop() {
		t.Error("second Stop should report false")
	}
	s.step(frame)
	if fired {
		t.Error("stopped timer fired")
	}
}

func TestSceneAfterScheduledFromCallback(t *testing.T) {
	s, _ := newTestScene()
	var order []string
	s.After(0, func() {
		order = append(order, "first")
		s.After(0, func() { order = append(order, "second") })
	})
	s.step(frame)
	if len(order) != 1 {
		t.Fatalf("order = %v, want [first] after one frame", order)
	}
	s.step(frame)
	if len(order) != 2 || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
}

func TestSceneScrollNotification(t *testing.T) {
	s, _ := newTestScene()
	var got []ScrollContext
	s.OnScroll(func(ctx ScrollContext) { got = append(got, ctx) })

	s.step(frame) // initial state
	s.step(frame) // unchanged: no notification
	if len(got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(got))
	}
	want := ScrollContext{ScrollTop: 0, ScrollHeight: 3000, ClientHeight: 600}
	if got[0] != want {
		t.Errorf("ctx = %+v, want %+v", got[0], want)
	}

	s.Camera().SetScrollTop(500)
	s.step(frame)
	if len(got) != 2 || got[1].ScrollTop != 500 {
		t.Errorf("after scroll: %+v", got)
	}

	s.SetContentHeight(4000)
	s.step(frame)
	if len(got) != 3 || got[2].ScrollHeight != 4000 {
		t.Errorf("after content change: %+v", got)
	}

	s.NotifyScroll()
	if len(got) != 4 {
		t.Errorf("NotifyScroll should deliver unconditionally, got %d notifications", len(got))
	}
}

func TestSceneSetViewportKeepsScroll(t *testing.T) {
	s, _ := newTestScene()
	s.Camera().SetScrollTop(900)
	s.SetViewport(1024, 768)
	if s.Camera().ScrollTop() != 900 {
		t.Errorf("ScrollTop = %f, want 900", s.Camera().ScrollTop())
	}
	if s.Camera().ClientHeight() != 768 {
		t.Errorf("ClientHeight = %f, want 768", s.Camera().ClientHeight())
	}
	if s.Camera().Bounds.Width != 1024 {
		t.Errorf("Bounds.Width = %f, want 1024", s.Camera().Bounds.Width)
	}
}

func TestSceneOnFrameAndRemove(t *testing.T) {
	s, _ := newTestScene()
	var total float64
	h := s.OnFrame(func(dt float64) { total += dt })
	s.step(frame)
	s.step(frame)
	h.Remove()
	h.Remove()
	s.step(frame)
	if !approxEqual(total, 2*frame, 1e-12) {
		t.Errorf("total = %f, want %f", total, 2*frame)
	}
}

func TestSceneAnimate(t *testing.T) {
	s, _ := newTestScene()
	n := NewRect("r", 10, 10, ColorWhite)
	s.Root().AddChild(n)

	completed := false
	g := s.Animate(TweenAlpha(n, 0, 0.1, ease.Linear))
	g.OnComplete = func() { completed = true }
	for i := 0; i < 10; i++ {
		s.step(frame)
	}
	if !completed || n.Alpha != 0 {
		t.Errorf("completed = %v, alpha = %f; want true, 0", completed, n.Alpha)
	}
	if len(s.tweens) != 0 {
		t.Errorf("tweens = %d, want 0 after completion", len(s.tweens))
	}
}

package lumen

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

const (
	defaultCommandCap = 1024
	defaultPostCap    = 64
)

// ScrollContext carries the page scroll state delivered to scroll handlers.
// The names follow document scrolling: ScrollTop is the offset of the
// viewport's top edge, ScrollHeight the full content height and
// ClientHeight the visible height.
type ScrollContext struct {
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64
}

// Scene is the top-level object that owns the node trees, the page camera,
// input state, subscriptions and render buffers.
//
// A scene has two roots. Root() is page content: it scrolls with the camera.
// Overlay() is screen-fixed content (navigation, progress bars, modal
// layers) drawn above the page and hit-tested first.
type Scene struct {
	root    *Node
	overlay *Node
	camera  *Camera
	logger  *zap.Logger
	debug   bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color

	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string

	// WheelStep is the number of pixels one wheel notch scrolls.
	WheelStep float64

	// Render state
	commands   []RenderCommand
	sortBuf    []RenderCommand
	cullBounds Rect
	cullActive bool

	// Input state
	input        InputSource
	handlers     handlerRegistry
	captured     *Node
	pointer      pointerState
	hitBuf       []*Node
	dragDeadZone float64
	injectQueue  []syntheticEvent

	// Subscriptions and main-loop work
	timers     []*Timer
	tweens     []*TweenGroup
	observers  []*VisibilityObserver
	posted     chan func()
	lastScroll ScrollContext
	scrollSeen bool

	screenshotQueue []string
	shots           int
	testRunner      *TestRunner
}

// NewScene creates a new scene with pre-created page and overlay roots and a
// page camera sized to viewport.
func NewScene(viewport Rect) *Scene {
	s := &Scene{
		logger:        zap.NewNop(),
		ScreenshotDir: "screenshots",
		WheelStep:     defaultWheelStep,
		commands:      make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:       make([]RenderCommand, 0, defaultCommandCap),
		dragDeadZone:  defaultDragDeadZone,
		input:         ebitenInput{},
		posted:        make(chan func(), defaultPostCap),
		camera:        newCamera(viewport),
	}
	s.root = NewContainer("root")
	s.root.scene = s
	s.overlay = NewContainer("overlay")
	s.overlay.scene = s
	return s
}

// Root returns the scene's scrolling page root.
func (s *Scene) Root() *Node {
	return s.root
}

// Overlay returns the scene's screen-fixed root.
func (s *Scene) Overlay() *Node {
	return s.overlay
}

// Camera returns the page camera.
func (s *Scene) Camera() *Camera {
	return s.camera
}

// SetViewport resizes the camera viewport, keeping the current scroll offset.
func (s *Scene) SetViewport(w, h float64) {
	top := s.camera.ScrollTop()
	s.camera.Viewport = Rect{Width: w, Height: h}
	s.camera.X = w / 2
	if s.camera.BoundsEnabled {
		s.camera.Bounds.Width = w
	}
	s.camera.SetScrollTop(top)
}

// SetContentHeight sets the page height the camera scrolls over.
func (s *Scene) SetContentHeight(h float64) {
	s.camera.SetBounds(Rect{Width: s.camera.Viewport.Width, Height: h})
}

// Logger returns the scene's logger. Never nil.
func (s *Scene) Logger() *zap.Logger {
	return s.logger
}

// SetLogger sets the logger used for debug stats and runtime warnings.
// A nil logger disables logging.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.logger = l
}

// SetInputSource replaces the host input backend. Passing nil restores the
// Ebitengine backend.
func (s *Scene) SetInputSource(src InputSource) {
	if src == nil {
		src = ebitenInput{}
	}
	s.input = src
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth warnings are logged, and per-frame timing stats
// are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
	if enabled {
		debugLogger = s.logger
	}
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// Post queues fn to run on the update goroutine at the start of the next
// Update. It is the only Scene method safe to call from other goroutines.
// It reports false when the queue is full and fn was dropped.
func (s *Scene) Post(fn func()) bool {
	select {
	case s.posted <- fn:
		return true
	default:
		return false
	}
}

// drainPosted runs every closure queued by Post.
func (s *Scene) drainPosted() {
	for {
		select {
		case fn := <-s.posted:
			fn()
		default:
			return
		}
	}
}

// Update processes input, advances timers, animations and smooth scrolling,
// and notifies scroll, visibility and frame subscribers.
func (s *Scene) Update() {
	s.step(1.0 / float64(ebiten.TPS()))
}

// step runs one frame with an explicit delta in seconds.
func (s *Scene) step(dt float64) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.drainPosted()
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.advanceTimers(dt)
	s.advanceTweens(dt)
	updateNodes(s.root, dt)
	updateNodes(s.overlay, dt)

	// Refresh world transforms first so hit testing and measurements see
	// accurate positions this frame.
	s.refreshTransforms()

	s.camera.update(float32(dt))
	s.processInput()

	s.emitScroll(false)
	s.evaluateObservers()
	s.fireFrame(dt)

	if s.debug {
		s.logger.Debug("update",
			zap.Duration("elapsed", time.Since(t0)),
			zap.Float64("scrollTop", s.camera.ScrollTop()),
			zap.Int("observers", len(s.observers)),
			zap.Int("timers", len(s.timers)),
			zap.Int("tweens", len(s.tweens)))
	}
}

// refreshTransforms recomputes dirty world transforms for both roots.
func (s *Scene) refreshTransforms() {
	refreshTransforms(s.root, identity, 1, false)
	refreshTransforms(s.overlay, identity, 1, false)
}

// scrollState reads the current scroll state from the camera.
func (s *Scene) scrollState() ScrollContext {
	return ScrollContext{
		ScrollTop:    s.camera.ScrollTop(),
		ScrollHeight: s.camera.ScrollHeight(),
		ClientHeight: s.camera.ClientHeight(),
	}
}

// NotifyScroll delivers the current scroll state to every scroll handler,
// whether or not it changed.
func (s *Scene) NotifyScroll() {
	s.emitScroll(true)
}

// emitScroll fires scroll handlers when the scroll state changed since the
// last notification, or unconditionally when force is set.
func (s *Scene) emitScroll(force bool) {
	ctx := s.scrollState()
	if !force && s.scrollSeen && ctx == s.lastScroll {
		return
	}
	s.lastScroll = ctx
	s.scrollSeen = true
	for _, h := range s.handlers.scroll {
		h.fn(ctx)
	}
}

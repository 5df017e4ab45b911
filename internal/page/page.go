// Package page builds the YP Electrical single page on a lumen scene: the
// stacked sections, the fixed navigation chrome and the pointer and scroll
// flourishes that tie them together.
package page

import (
	"context"
	"errors"
	"math"

	"github.com/tanema/gween/ease"
	"github.com/ypelectrical/lumen"
	"github.com/ypelectrical/lumen/internal/content"
	"github.com/ypelectrical/lumen/internal/launch"
	"go.uber.org/zap"
)

// AnchorScrollDuration is how long, in seconds, a jump to a section takes.
const AnchorScrollDuration = 0.8

// Page owns everything it adds to the scene. Rebuild swaps the content in
// place; Close removes it.
type Page struct {
	scene  *lumen.Scene
	site   *content.Site
	opener launch.Opener
	logger *zap.Logger
	fonts  *fonts

	m       metrics
	body    *lumen.Node // page sections, under the scrolling root
	chrome  *lumen.Node // grain, progress bar, nav and menu, under the overlay
	anchors map[string]float64
	height  float64

	// entered is set once the hero entrance has played; rebuilds show the
	// hero in its final state.
	entered bool

	releases []func()
	resize   lumen.CallbackHandle
	closed   bool

	progress     *lumen.ScrollTracker
	progressBar  *lumen.Node
	menu         *menu
	brand        *lumen.Node
	cta          *lumen.Node
	ctaMagnetic  *lumen.Magnetic
	serviceCards []*lumen.Node
	tilts        []*lumen.Tilt
	serviceItems []*lumen.Node
	projectCards []*projectCard
	safetyPanel  *lumen.Node
	safetyReveal *lumen.VisibilityObserver
	mapPanel     *lumen.Node
	contact      *lumen.Node
}

// New builds the page for site into scene. URLs the page cannot handle
// itself (phone and map links) go to opener.
func New(scene *lumen.Scene, site *content.Site, opener launch.Opener, logger *zap.Logger) (*Page, error) {
	if scene == nil {
		return nil, errors.New("page: nil scene")
	}
	if opener == nil {
		return nil, errors.New("page: nil opener")
	}
	if site == nil {
		site = content.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	f, err := loadFonts()
	if err != nil {
		return nil, err
	}
	p := &Page{
		scene:  scene,
		site:   site,
		opener: opener,
		logger: logger,
		fonts:  f,
	}
	p.build()
	p.resize = scene.OnFrame(p.followViewport)
	return p, nil
}

// Rebuild replaces the page content with site, keeping the scroll position.
func (p *Page) Rebuild(site *content.Site) {
	if p.closed || site == nil {
		return
	}
	p.site = site
	p.rebuild()
	p.logger.Info("page rebuilt", zap.String("brand", site.Brand), zap.Float64("height", p.height))
}

// Close removes the page from the scene and releases every subscription.
// Calling Close more than once is harmless.
func (p *Page) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.resize.Remove()
	p.teardown()
}

// Height returns the laid-out page height.
func (p *Page) Height() float64 {
	return p.height
}

// Anchor returns the page offset of a named section.
func (p *Page) Anchor(name string) (float64, bool) {
	y, ok := p.anchors[name]
	return y, ok
}

// ScrollToAnchor smooth-scrolls to a named section. It reports false for an
// unknown anchor.
func (p *Page) ScrollToAnchor(name string) bool {
	y, ok := p.anchors[name]
	if !ok {
		p.logger.Warn("unknown anchor", zap.String("anchor", name))
		return false
	}
	p.scene.Camera().ScrollTo(y, AnchorScrollDuration, ease.InOutCubic)
	return true
}

// MenuOpen reports whether the full-screen menu is open.
func (p *Page) MenuOpen() bool {
	return p.menu != nil && p.menu.open
}

// SetMenuOpen opens or closes the full-screen menu.
func (p *Page) SetMenuOpen(open bool) {
	if p.menu != nil {
		p.menu.setOpen(open)
	}
}

func (p *Page) build() {
	cam := p.scene.Camera()
	p.m = newMetrics(cam.Viewport.Width, cam.Viewport.Height)
	p.anchors = make(map[string]float64)
	p.scene.ClearColor = colorSlate950

	p.body = lumen.NewContainer("page")
	p.chrome = lumen.NewContainer("chrome")
	p.scene.Root().AddChild(p.body)
	p.scene.Overlay().AddChild(p.chrome)

	sections := []func(y float64) float64{
		p.buildHero,
		p.buildServices,
		p.buildServiceMenu,
		p.buildProjects,
		p.buildProcess,
		p.buildStats,
		p.buildSafety,
		p.buildLocation,
		p.buildFooter,
	}
	y := 0.0
	for _, build := range sections {
		y += build(y)
	}
	p.height = y
	p.scene.SetContentHeight(y)

	p.buildChrome()
	p.logger.Debug("page built",
		zap.Float64("width", p.m.width),
		zap.Float64("height", p.height),
		zap.Int("sections", len(sections)))
}

func (p *Page) rebuild() {
	cam := p.scene.Camera()
	top := cam.ScrollTop()
	p.teardown()
	p.build()
	cam.SetScrollTop(top)
	p.scene.NotifyScroll()
}

func (p *Page) teardown() {
	for i := len(p.releases) - 1; i >= 0; i-- {
		p.releases[i]()
	}
	p.releases = nil
	if p.body != nil {
		p.body.Dispose()
	}
	if p.chrome != nil {
		p.chrome.Dispose()
	}
	p.body, p.chrome = nil, nil
	p.progress, p.progressBar, p.menu = nil, nil, nil
	p.brand, p.cta, p.ctaMagnetic = nil, nil, nil
	p.serviceCards, p.tilts, p.serviceItems, p.projectCards = nil, nil, nil, nil
	p.safetyPanel, p.safetyReveal, p.mapPanel, p.contact = nil, nil, nil, nil
}

// followViewport lays the page out again when the window size changes.
func (p *Page) followViewport(float64) {
	vp := p.scene.Camera().Viewport
	if vp.Width == p.m.width && vp.Height == p.m.height {
		return
	}
	p.logger.Debug("viewport changed", zap.Float64("width", vp.Width), zap.Float64("height", vp.Height))
	p.rebuild()
}

// release registers fn to run on teardown.
func (p *Page) release(fn func()) {
	p.releases = append(p.releases, fn)
}

func (p *Page) open(rawURL string) {
	if err := p.opener.Open(context.Background(), rawURL); err != nil {
		p.logger.Warn("open url failed", zap.String("url", rawURL), zap.Error(err))
		return
	}
	p.logger.Debug("open url", zap.String("url", rawURL))
}

func (p *Page) scrollHome() {
	p.scene.Camera().ScrollTo(0, AnchorScrollDuration, ease.InOutCubic)
}

// --- building blocks ---

// transition runs one tween group at a time, stopping the previous one so
// hover in and hover out never fight over a field.
type transition struct {
	scene *lumen.Scene
	group *lumen.TweenGroup
}

func (t *transition) run(g *lumen.TweenGroup) {
	if t.group != nil {
		t.group.Stop()
	}
	t.group = t.scene.Animate(g)
}

func (p *Page) transition() *transition {
	return &transition{scene: p.scene}
}

// label creates a non-interactive text node.
func (p *Page) label(name, s string, fc face, size float64, c lumen.Color) *lumen.Node {
	n := lumen.NewText(name, s, p.fonts.get(fc, size))
	n.SetTextColor(c)
	n.Interactable = false
	return n
}

// paragraph creates a label wrapped to width.
func (p *Page) paragraph(name, s string, fc face, size float64, c lumen.Color, width float64, align lumen.TextAlign) *lumen.Node {
	n := p.label(name, s, fc, size, c)
	n.SetWrap(width, align)
	return n
}

// panel creates a non-interactive rectangle.
func panel(name string, w, h float64, c lumen.Color) *lumen.Node {
	n := lumen.NewRect(name, w, h, c)
	n.Interactable = false
	return n
}

// button creates a clickable rectangle sized to its caption.
func (p *Page) button(name, caption string, size float64, bg, fg lumen.Color, padX, padY float64) *lumen.Node {
	txt := p.label(name+"_label", caption, faceBold, size, fg)
	btn := lumen.NewRect(name, txt.Width+2*padX, txt.Height+2*padY, bg)
	txt.SetPosition(padX, padY)
	btn.AddChild(txt)
	return btn
}

// gradient fills parent with horizontal bands blending from one color at the
// top to another at the bottom.
func gradient(parent *lumen.Node, x, y, w, h float64, from, to lumen.Color, bands int) {
	bh := h / float64(bands)
	for i := range bands {
		t := float64(i) / float64(max(bands-1, 1))
		band := panel(parent.Name+"_band", w, math.Ceil(bh), lerpColor(from, to, t))
		band.SetPosition(x, y+float64(i)*bh)
		parent.AddChild(band)
	}
}

func lerpColor(a, b lumen.Color, t float64) lumen.Color {
	return lumen.Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// section adds a full-width section background at page offset y. Its height
// is set by finish once the content is laid out.
func (p *Page) section(name string, y float64, bg lumen.Color) *lumen.Node {
	sec := lumen.NewRect(name, p.m.width, 0, bg)
	sec.SetPosition(0, y)
	p.body.AddChild(sec)
	return sec
}

// fit returns the height of a section holding contentH of content and the
// offset its content starts at. Large layouts give every section at least a
// screen and center the content in it.
func (p *Page) fit(contentH float64) (h, top float64) {
	pad := p.m.sectionPad()
	h = contentH + 2*pad
	if p.m.fillsScreen() && h < p.m.height {
		h = p.m.height
	}
	return h, (h - contentH) / 2
}

// finish sizes sec and clips its content to it.
func (p *Page) finish(sec *lumen.Node, h float64) float64 {
	sec.SetSize(p.m.width, h)
	sec.Clip = &lumen.Rect{Width: p.m.width, Height: h}
	return h
}

// centeredTitle adds a section heading centered in the content column and
// returns its height.
func (p *Page) centeredTitle(parent *lumen.Node, name, s string, size float64, c lumen.Color) float64 {
	t := p.paragraph(name, s, faceBold, size, c, p.m.colW, lumen.TextAlignCenter)
	t.SetPosition(p.m.colX, 0)
	parent.AddChild(t)
	return t.Height
}

package page

import (
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
	"github.com/ypelectrical/lumen"
	"go.uber.org/zap"
)

const (
	progressHeight = 4
	progressEase   = 0.1

	grainAlpha = 0.05
	grainTile  = 256
	grainSeed  = 0x59504e // "YPN"

	menuSlide        = 0.7
	menuItemDuration = 0.5
	menuItemStagger  = 0.1
	menuItemDrop     = 40

	navInset   = 24.0
	toggleSize = 48.0
	barLength  = 28.0
	barWeight  = 3.0
	barGap     = 7.5
)

// buildChrome adds the screen-fixed layers, bottom to top: the menu, the
// nav bar, the progress bar and the grain.
func (p *Page) buildChrome() {
	p.menu = p.buildMenu()
	p.buildNav()
	p.buildProgress()
	p.chrome.AddChild(lumen.NewNoise("grain", p.m.width, p.m.height, grainTile, grainAlpha, grainSeed))
}

// --- progress bar ---

func (p *Page) buildProgress() {
	bar := panel("progress", 0, progressHeight, colorBlue600)
	p.chrome.AddChild(bar)
	p.progressBar = bar

	fx := p.transition()
	p.progress = p.scene.TrackScroll(func(progress float64) {
		fx.run(lumen.TweenSize(bar, p.progressWidth(progress), progressHeight, progressEase, ease.OutQuad))
	})
	bar.SetSize(p.progressWidth(p.progress.Progress()), progressHeight)
	p.release(p.progress.Close)
}

// progressWidth maps scroll progress to bar width. Overscroll is clamped so
// the bar never runs off the screen.
func (p *Page) progressWidth(progress float64) float64 {
	return math.Max(0, math.Min(progress, 1)) * p.m.width
}

// --- nav ---

func (p *Page) buildNav() {
	m := p.m
	nav := lumen.NewContainer("nav")
	p.chrome.AddChild(nav)

	brand := p.label("nav_brand", p.site.Brand, faceBold, 24, colorWhite)
	backing := panel("nav_brand_backing", brand.Width+24, brand.Height+12, colorSlate950.WithAlpha(0.6))
	backing.SetPosition(navInset-12, navInset-6)
	nav.AddChild(backing)

	brand.Interactable = true
	brand.SetPosition(navInset, navInset)
	brand.OnClick = func(lumen.ClickContext) { p.scrollHome() }
	nav.AddChild(brand)
	p.brand = brand

	toggle := lumen.NewRect("nav_toggle", toggleSize, toggleSize, colorSlate950.WithAlpha(0.6))
	toggle.SetPosition(m.width-navInset-toggleSize, navInset+brand.Height/2-toggleSize/2)
	for i := range p.menu.bars {
		bar := panel(fmt.Sprintf("nav_toggle_bar_%d", i), barLength, barWeight, colorWhite)
		bar.SetPivot(barLength/2, barWeight/2)
		toggle.AddChild(bar)
		p.menu.bars[i] = bar
	}
	p.menu.setIcon(false)
	toggle.OnPointerEnter = func(lumen.PointerContext) { toggle.Color = colorSlate800 }
	toggle.OnPointerLeave = func(lumen.PointerContext) { toggle.Color = colorSlate950.WithAlpha(0.6) }
	toggle.OnClick = func(lumen.ClickContext) { p.menu.setOpen(!p.menu.open) }
	nav.AddChild(toggle)
	p.menu.toggle = toggle
}

// --- full-screen menu ---

type menu struct {
	p      *Page
	panel  *lumen.Node
	toggle *lumen.Node
	bars   [3]*lumen.Node
	items  []*lumen.Node
	restY  []float64 // item y when shown
	slide  *transition
	moves  []*transition
	fades  []*transition
	open   bool
}

func (p *Page) buildMenu() *menu {
	m := p.m
	mu := &menu{p: p, slide: p.transition()}

	pnl := lumen.NewRect("menu", m.width, m.height, colorSlate950)
	pnl.SetPosition(0, -m.height)
	p.chrome.AddChild(pnl)
	mu.panel = pnl

	size := m.pick(36, 36, 72)
	spacing := m.pick(32, 32, 48)
	total := 0.0
	for i, item := range p.site.Nav {
		t := p.label(fmt.Sprintf("menu_%s", item.Anchor), item.Label, faceBold, size, colorSlate500)
		t.Interactable = true
		mu.items = append(mu.items, t)
		if i > 0 {
			total += spacing
		}
		total += t.Height
	}

	y := (m.height - total) / 2
	for i, t := range mu.items {
		anchor := p.site.Nav[i].Anchor
		t.SetPosition(centerIn(0, m.width, t.Width), y+menuItemDrop)
		t.SetAlpha(0)
		t.OnPointerEnter = func(lumen.PointerContext) { t.SetTextColor(colorWhite) }
		t.OnPointerLeave = func(lumen.PointerContext) { t.SetTextColor(colorSlate500) }
		t.OnClick = func(lumen.ClickContext) {
			mu.setOpen(false)
			p.ScrollToAnchor(anchor)
		}
		pnl.AddChild(t)
		mu.restY = append(mu.restY, y)
		mu.moves = append(mu.moves, p.transition())
		mu.fades = append(mu.fades, p.transition())
		y += t.Height + spacing
	}

	key := p.scene.OnKey(func(k lumen.Key) {
		if k == lumen.KeyEscape {
			mu.setOpen(false)
		}
	})
	p.release(key.Remove)
	return mu
}

// setOpen slides the panel in or out and staggers the items after it.
func (mu *menu) setOpen(open bool) {
	if mu.open == open {
		return
	}
	mu.open = open
	h := mu.p.m.height

	panelY := -h
	if open {
		panelY = 0
	}
	mu.slide.run(lumen.TweenPosition(mu.panel, 0, panelY, menuSlide, ease.InOutCubic))

	for i, item := range mu.items {
		y, alpha := mu.restY[i]+menuItemDrop, 0.0
		if open {
			y, alpha = mu.restY[i], 1
		}
		delay := float32(i) * menuItemStagger
		mu.moves[i].run(lumen.TweenPosition(item, item.X, y, menuItemDuration, ease.OutCubic).WithDelay(delay))
		mu.fades[i].run(lumen.TweenAlpha(item, alpha, menuItemDuration, ease.OutCubic).WithDelay(delay))
	}
	mu.setIcon(open)
	mu.p.logger.Debug("menu toggled", zap.Bool("open", open))
}

// setIcon draws the toggle as three bars, or as a cross while the menu is open.
func (mu *menu) setIcon(open bool) {
	c := toggleSize / 2
	top, mid, bottom := mu.bars[0], mu.bars[1], mu.bars[2]
	if top == nil {
		return
	}
	if open {
		top.SetPosition(c, c)
		top.SetRotation(math.Pi / 4)
		mid.SetAlpha(0)
		bottom.SetPosition(c, c)
		bottom.SetRotation(-math.Pi / 4)
		return
	}
	top.SetPosition(c, c-barGap)
	top.SetRotation(0)
	mid.SetPosition(c, c)
	mid.SetAlpha(1)
	bottom.SetPosition(c, c+barGap)
	bottom.SetRotation(0)
}

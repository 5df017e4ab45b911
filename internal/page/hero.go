package page

import (
	"fmt"
	"math"
	"strings"

	"github.com/tanema/gween/ease"
	"github.com/ypelectrical/lumen"
)

const (
	// heroMountDelay holds the entrance until the first frames have settled.
	heroMountDelay = 0.1
	heroEntrance   = 1.0
	// heroSlide is how far below its mask a headline starts, as a fraction
	// of its height.
	heroSlide    = 1.1
	marqueeSpeed = 40.0 // px per second
)

// entrance is one hero element revealed after mount.
type entrance struct {
	node  *lumen.Node
	delay float32
	slide bool // slide up out of its mask; otherwise fade in
}

func (p *Page) buildHero(y float64) float64 {
	m := p.m
	hero := p.site.Hero
	h := math.Max(m.height, 560)
	sec := p.section("hero", y, colorSlate50)
	p.anchors["home"] = y

	tagline := p.label("hero_tagline", strings.ToUpper(p.site.Company), faceRegular, m.pick(14, 18, 18), colorSlate500)
	lines := make([]*lumen.Node, len(hero.Headline))
	for i, word := range hero.Headline {
		c := colorSlate900
		if i%2 == 1 {
			c = colorBlue600
		}
		lines[i] = p.label(fmt.Sprintf("hero_headline_%d", i), word, faceBold, m.headlineSize(), c)
	}
	blurb := p.paragraph("hero_blurb", hero.Blurb, faceRegular, 18, colorSlate600, math.Min(448, m.colW), lumen.TextAlignLeft)
	cta := p.button("hero_cta", hero.CTA, 16, colorSlate900, colorWhite, 32, 16)

	blockH := tagline.Height + 8 + 24 + blurb.Height + 32 + cta.Height
	for _, l := range lines {
		blockH += l.Height
	}
	x := m.colX
	cy := math.Max((h-blockH)/2, 96)

	items := []entrance{{node: tagline, delay: 0.5, slide: true}}
	mask(sec, tagline, x, cy)
	cy += tagline.Height + 8
	for i, l := range lines {
		mask(sec, l, x, cy)
		cy += l.Height
		items = append(items, entrance{node: l, delay: 0.3 + 0.2*float32(i), slide: true})
	}
	cy += 24

	blurb.SetPosition(x, cy)
	sec.AddChild(blurb)
	items = append(items, entrance{node: blurb, delay: 0.7})
	cy += blurb.Height + 32

	// The wrapper fades; the button itself belongs to the magnetic effect.
	ctaWrap := lumen.NewContainer("hero_cta_wrap")
	ctaWrap.SetPosition(x, cy)
	ctaWrap.AddChild(cta)
	sec.AddChild(ctaWrap)
	items = append(items, entrance{node: ctaWrap, delay: 1.0})

	cta.OnClick = func(lumen.ClickContext) { p.open(p.site.PhoneURL()) }
	cta.OnPointerEnter = func(lumen.PointerContext) { cta.Color = colorSlate800 }
	cta.OnPointerLeave = func(lumen.PointerContext) { cta.Color = colorSlate900 }
	p.cta = cta
	p.ctaMagnetic = lumen.NewMagnetic(p.scene, cta)
	p.release(p.ctaMagnetic.Close)

	p.buildMarquee(sec, h)
	p.playEntrance(items)
	return p.finish(sec, h)
}

// mask places n at (x, y) inside a wrapper that clips it to its own box, so
// it can slide in from below.
func mask(parent, n *lumen.Node, x, y float64) *lumen.Node {
	wrap := lumen.NewContainer(n.Name + "_mask")
	wrap.SetPosition(x, y)
	wrap.Clip = &lumen.Rect{Width: n.Width, Height: n.Height}
	wrap.AddChild(n)
	parent.AddChild(wrap)
	return wrap
}

// playEntrance hides the hero elements and reveals them shortly after mount.
func (p *Page) playEntrance(items []entrance) {
	if p.entered {
		return
	}
	for _, it := range items {
		if it.slide {
			it.node.SetPosition(it.node.X, it.node.Height*heroSlide)
		} else {
			it.node.SetAlpha(0)
		}
	}
	timer := p.scene.After(heroMountDelay, func() {
		p.entered = true
		for _, it := range items {
			var g *lumen.TweenGroup
			if it.slide {
				g = lumen.TweenPosition(it.node, it.node.X, 0, heroEntrance, ease.OutCubic)
			} else {
				g = lumen.TweenAlpha(it.node, 1, heroEntrance, ease.OutCubic)
			}
			p.scene.Animate(g.WithDelay(it.delay))
		}
	})
	p.release(func() { timer.Stop() })
}

// buildMarquee adds the faint strip of service words drifting along the
// bottom of the hero. The words are laid out twice so the strip can wrap
// around without a gap.
func (p *Page) buildMarquee(sec *lumen.Node, h float64) {
	words := p.site.Hero.Marquee
	if len(words) == 0 {
		return
	}
	size := p.m.pick(60, 128, 128)
	strip := lumen.NewContainer("hero_marquee")
	strip.Alpha = 0.05
	strip.Interactable = false

	x, loop := 0.0, 0.0
	for pass := range 2 {
		for i, w := range words {
			c := colorSlate900
			if i%2 == 1 {
				c = colorSlate500
			}
			t := p.label(fmt.Sprintf("marquee_%d_%d", pass, i), w, faceBold, size, c)
			t.SetPosition(x, 0)
			strip.AddChild(t)
			x += t.Width + 32
		}
		if pass == 0 {
			loop = x
		}
	}
	strip.SetPosition(0, h-p.fonts.get(faceBold, size).LineHeight()-16)
	sec.AddChild(strip)

	strip.OnUpdate = func(dt float64) {
		nx := strip.X - marqueeSpeed*dt
		if nx <= -loop {
			nx += loop
		}
		strip.SetPosition(nx, strip.Y)
	}
}

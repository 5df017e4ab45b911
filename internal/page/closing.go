package page

import (
	"math"
	"strings"

	"github.com/tanema/gween/ease"
	"github.com/ypelectrical/lumen"
)

const (
	// safetyThreshold is how much of the safety section must be on screen
	// before its panel opens.
	safetyThreshold = 0.3
	safetyReveal    = 1.5
	// safetyClosed is the size of the closed reveal window relative to the
	// panel's shorter side.
	safetyClosed = 0.2

	contactHoverScale = 1.05
	contactPressScale = 0.95
)

// --- Safety First ---

func (p *Page) buildSafety(y float64) float64 {
	m := p.m
	sec := p.section("safety", y, colorSlate900)
	p.anchors["safety"] = y
	inner := lumen.NewContainer("safety_inner")
	sec.AddChild(inner)

	top := p.centeredTitle(inner, "safety_title", p.site.Safety.Title, m.pick(30, 48, 60), colorWhite)
	top += m.pick(40, 40, 64)

	w := math.Min(m.colW, 1152)
	h := w * 9 / 16
	pnl := panel("safety_panel", w, h, colorSlate800)
	pnl.SetPosition(centerIn(m.colX, m.colW, w), top)
	gradient(pnl, 0, 0, w, h, colorBlue900, colorSlate800, 12)

	house := p.label("safety_glyph", "⌂", faceBold, m.pick(100, 100, 150), colorWhite)
	house.SetAlpha(0.1)
	house.SetPosition((w-house.Width)/2, (h-house.Height)/2)
	pnl.AddChild(house)

	pad := m.pick(24, 24, 64)
	boxW := math.Min(w-2*pad, 576)
	boxPad := m.pick(24, 24, 40)
	body := p.paragraph("safety_body", p.site.Safety.Body, faceRegular, m.pick(16, 16, 24), colorWhite, boxW-2*boxPad, lumen.TextAlignLeft)
	boxH := body.Height + 2*boxPad
	box := panel("safety_caption", boxW, boxH, colorBlack.WithAlpha(0.6))
	box.SetPosition(pad, math.Max(pad, h-pad-boxH))
	body.SetPosition(boxPad, boxPad)
	box.AddChild(body)
	pnl.AddChild(box)

	pnl.Clip = revealClip(w, h, false)
	inner.AddChild(pnl)
	p.safetyPanel = pnl

	fx := p.transition()
	p.safetyReveal = p.scene.ObserveVisibility(sec, safetyThreshold, func(visible bool) {
		fx.run(lumen.TweenClip(pnl, *revealClip(w, h, visible), safetyReveal, ease.OutQuad))
	})
	p.release(p.safetyReveal.Close)

	secH, off := p.fit(top + h)
	inner.SetPosition(0, off)
	return p.finish(sec, secH)
}

// revealClip returns the panel window: the full box when open, a small
// centered square when closed.
func revealClip(w, h float64, open bool) *lumen.Rect {
	if open {
		return &lumen.Rect{Width: w, Height: h}
	}
	side := math.Min(w, h) * safetyClosed
	return &lumen.Rect{X: (w - side) / 2, Y: (h - side) / 2, Width: side, Height: side}
}

// --- Visit Our Office ---

func (p *Page) buildLocation(y float64) float64 {
	m := p.m
	sec := p.section("location", y, colorSlate900)
	p.anchors["contact"] = y
	inner := lumen.NewContainer("location_inner")
	sec.AddChild(inner)

	top := p.centeredTitle(inner, "location_title", p.site.Location.Title, m.pick(30, 48, 48), colorWhite)
	top += m.pick(40, 40, 48)

	w := m.colW
	h := 400.0
	if m.large {
		h = math.Max(400, m.height*0.75)
	}
	// The panel is its own border.
	mp := lumen.NewRect("map", w, h, colorSlate700)
	mp.SetPosition(m.colX, top)
	mp.Clip = &lumen.Rect{Width: w, Height: h}
	fill := panel("map_fill", w-2, h-2, colorSlate800)
	fill.SetPosition(1, 1)
	mp.AddChild(fill)
	drawStreets(mp, w, h)

	pin := panel("map_pin", 24, 24, colorBlue600)
	pin.SetPivot(12, 12)
	pin.SetRotation(math.Pi / 4)
	pin.SetPosition(w/2, h/2-12)
	mp.AddChild(pin)
	caption := p.label("map_caption", p.site.Location.Caption, faceBold, m.pick(14, 16, 18), colorWhite)
	caption.SetPosition((w-caption.Width)/2, h/2+16)
	mp.AddChild(caption)
	hint := p.label("map_hint", "Open in Maps →", faceRegular, 14, colorBlue400)
	hint.SetPosition(w-hint.Width-24, h-hint.Height-24)
	mp.AddChild(hint)

	mp.OnClick = func(lumen.ClickContext) { p.open(p.site.MapURL) }
	mp.OnPointerEnter = func(lumen.PointerContext) { mp.Color = colorBlue600 }
	mp.OnPointerLeave = func(lumen.PointerContext) { mp.Color = colorSlate700 }
	inner.AddChild(mp)
	p.mapPanel = mp

	secH, off := p.fit(top + h)
	inner.SetPosition(0, off)
	return p.finish(sec, secH)
}

// drawStreets sketches a street grid on the map panel.
func drawStreets(mp *lumen.Node, w, h float64) {
	const block = 96.0
	for x := block / 2; x < w; x += block {
		line := panel("map_street_v", 2, h, colorSlate700.WithAlpha(0.6))
		line.SetPosition(x, 0)
		mp.AddChild(line)
	}
	for y := block / 3; y < h; y += block {
		line := panel("map_street_h", w, 2, colorSlate700.WithAlpha(0.6))
		line.SetPosition(0, y)
		mp.AddChild(line)
	}
	avenue := panel("map_avenue", w*1.5, 10, colorSlate600.WithAlpha(0.5))
	avenue.SetPivot(w*0.75, 5)
	avenue.SetPosition(w/2, h*0.6)
	avenue.SetRotation(-0.25)
	mp.AddChild(avenue)
}

// --- Footer ---

func (p *Page) buildFooter(y float64) float64 {
	m := p.m
	sec := p.section("footer", y, colorSlate950)
	inner := lumen.NewContainer("footer_inner")
	sec.AddChild(inner)

	brand := p.paragraph("footer_brand", p.site.Brand, faceBold, m.pick(36, 36, 60), colorWhite, m.colW, lumen.TextAlignCenter)
	brand.SetPosition(m.colX, 0)
	inner.AddChild(brand)
	cy := brand.Height + 24

	tags := p.paragraph("footer_tags", strings.Join(p.site.Footer.Tags, "  •  "), faceRegular, m.pick(14, 14, 18), colorSlate400, m.colW, lumen.TextAlignCenter)
	tags.SetPosition(m.colX, cy)
	inner.AddChild(tags)
	cy += tags.Height + 32

	cta := p.site.Footer.CTA
	if cta == "" {
		cta = "Contact Now"
	}
	btn := p.button("footer_contact", cta, m.pick(14, 14, 18), colorBlue600, colorWhite, m.pick(32, 32, 48), m.pick(16, 16, 20))
	// Scale from the center.
	btn.SetPivot(btn.Width/2, btn.Height/2)
	btn.SetPosition(m.width/2, cy+btn.Height/2)
	inner.AddChild(btn)
	p.contact = btn
	cy += btn.Height + 48

	scale := p.transition()
	scaleTo := func(s float64) {
		scale.run(lumen.TweenScale(btn, s, s, 0.15, ease.OutQuad))
	}
	btn.OnPointerEnter = func(lumen.PointerContext) {
		btn.Color = colorBlue700
		scaleTo(contactHoverScale)
	}
	btn.OnPointerLeave = func(lumen.PointerContext) {
		btn.Color = colorBlue600
		scaleTo(1)
	}
	btn.OnPointerDown = func(lumen.PointerContext) { scaleTo(contactPressScale) }
	btn.OnPointerUp = func(lumen.PointerContext) { scaleTo(contactHoverScale) }
	btn.OnClick = func(lumen.ClickContext) { p.open(p.site.PhoneURL()) }

	if p.site.Copyright != "" {
		c := p.paragraph("footer_copyright", p.site.Copyright, faceRegular, m.pick(12, 12, 14), colorSlate600, m.colW, lumen.TextAlignCenter)
		c.SetPosition(m.colX, cy)
		inner.AddChild(c)
		cy += c.Height
	}

	pad := 48.0
	inner.SetPosition(0, pad)
	return p.finish(sec, cy+2*pad)
}

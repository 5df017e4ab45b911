package page

import (
	"fmt"
	"math"
	"strings"

	"github.com/tanema/gween/ease"
	"github.com/ypelectrical/lumen"
	"github.com/ypelectrical/lumen/internal/content"
)

// iconGlyphs stands in for the service icons with short marks the Go fonts
// can draw.
var iconGlyphs = map[string]string{
	"power":       "I/O",
	"lightbulb":   "LED",
	"zap":         "kV",
	"fan":         "FAN",
	"thermometer": "°C",
	"shield":      "SEC",
}

// --- Our Services ---

func (p *Page) buildServices(y float64) float64 {
	m := p.m
	sec := p.section("services", y, colorWhite)
	p.anchors["services"] = y
	inner := lumen.NewContainer("services_inner")
	sec.AddChild(inner)

	title := p.label("services_title", "Our Services", faceBold, m.pick(30, 48, 48), colorSlate900)
	title.SetPosition(m.colX, 0)
	inner.AddChild(title)
	rule := panel("services_rule", 80, 4, colorBlue600)
	rule.SetPosition(m.colX, title.Height+8)
	inner.AddChild(rule)
	top := title.Height + 12 + m.pick(24, 40, 40)

	cols := 2
	if m.large {
		cols = 3
	}
	gap := m.pick(12, 24, 32)
	cw := (m.colW - gap*float64(cols-1)) / float64(cols)
	ch := cw * m.pick(5.0/4, 4.0/3, 3.0/4)

	for i, svc := range p.site.Services {
		card := p.serviceCard(i, svc, cw, ch)
		col, row := i%cols, i/cols
		card.SetPosition(m.colX+float64(col)*(cw+gap), top+float64(row)*(ch+gap))
		inner.AddChild(card)

		tilt := lumen.NewTilt(p.scene, card)
		p.release(tilt.Close)
		p.serviceCards = append(p.serviceCards, card)
		p.tilts = append(p.tilts, tilt)
	}

	rows := (len(p.site.Services) + cols - 1) / cols
	contentH := top + float64(rows)*ch + float64(max(rows-1, 0))*gap
	h, off := p.fit(contentH)
	inner.SetPosition(0, off)
	return p.finish(sec, h)
}

// serviceCard builds one tilt card: a dark panel with the icon badge, title
// and bullet list stacked against its bottom edge.
func (p *Page) serviceCard(i int, svc content.Service, w, h float64) *lumen.Node {
	m := p.m
	card := lumen.NewRect(fmt.Sprintf("service_%d", i), w, h, colorSlate800)
	card.UserData = svc.Title
	card.Clip = &lumen.Rect{Width: w, Height: h}
	gradient(card, 0, 0, w, h, colorSlate700.WithAlpha(0.4), colorBlack.WithAlpha(0.95), 8)

	pad := m.pick(16, 24, 24)
	inner := w - 2*pad
	badgeSize := m.pick(32, 40, 40)
	itemSize := m.pick(10, 14, 14)

	badge := panel(card.Name+"_icon", badgeSize, badgeSize, colorBlue600.WithAlpha(0.2))
	glyph := p.label(card.Name+"_glyph", iconGlyphs[svc.Icon], faceMono, badgeSize*0.35, colorBlue400)
	glyph.SetPosition((badgeSize-glyph.Width)/2, (badgeSize-glyph.Height)/2)
	badge.AddChild(glyph)
	title := p.paragraph(card.Name+"_title", svc.Title, faceBold, m.pick(14, 24, 20), colorWhite, inner, lumen.TextAlignLeft)

	items := make([]*lumen.Node, len(svc.Items))
	itemsH := 0.0
	for j, it := range svc.Items {
		items[j] = p.label(fmt.Sprintf("%s_item_%d", card.Name, j), it, faceRegular, itemSize, colorSlate200)
		itemsH += items[j].Height + 2
	}

	cy := h - pad - itemsH - title.Height - 4 - badgeSize - 8
	badge.SetPosition(pad, cy)
	card.AddChild(badge)
	cy += badgeSize + 8
	title.SetPosition(pad, cy)
	card.AddChild(title)
	cy += title.Height + 4
	for j, it := range items {
		dot := panel(fmt.Sprintf("%s_dot_%d", card.Name, j), 4, 4, colorBlue400)
		dot.SetPosition(pad, cy+(it.Height-4)/2)
		card.AddChild(dot)
		it.SetPosition(pad+10, cy)
		card.AddChild(it)
		cy += it.Height + 2
	}
	return card
}

// --- Comprehensive Service Menu ---

func (p *Page) buildServiceMenu(y float64) float64 {
	m := p.m
	sec := p.section("service_menu", y, colorSlate50)
	p.anchors["menu"] = y
	sec.AddChild(panel("service_menu_border", m.width, 1, colorSlate200))
	inner := lumen.NewContainer("service_menu_inner")
	sec.AddChild(inner)

	rowY := p.centeredTitle(inner, "service_menu_title", "Comprehensive Service Menu", m.pick(24, 36, 36), colorSlate800)
	rowY += m.pick(32, 32, 48)

	cols := int(m.pick(2, 3, 4))
	gapX := 16.0
	gapY := m.pick(24, 24, 40)
	cw := (m.colW - gapX*float64(cols-1)) / float64(cols)
	size := m.pick(11, 16, 16)

	list := p.site.ServiceMenu
	for start := 0; start < len(list); start += cols {
		rowH := 0.0
		for c := 0; c < cols && start+c < len(list); c++ {
			item := p.serviceItem(start+c, list[start+c], cw, size)
			item.SetPosition(m.colX+float64(c)*(cw+gapX), rowY)
			inner.AddChild(item)
			rowH = math.Max(rowH, item.Height)
		}
		rowY += rowH + gapY
	}

	contentH := rowY
	if len(list) > 0 {
		contentH -= gapY
	}
	h, off := p.fit(contentH)
	inner.SetPosition(0, off)
	return p.finish(sec, h)
}

// serviceItem is a bullet and its text in a hover area that tints the text.
func (p *Page) serviceItem(i int, s string, w, size float64) *lumen.Node {
	name := fmt.Sprintf("service_menu_%d", i)
	txt := p.paragraph(name+"_text", s, faceRegular, size, colorSlate700, w-20, lumen.TextAlignLeft)
	area := lumen.NewRect(name, w, txt.Height, colorClear)
	dot := panel(name+"_dot", 8, 8, colorBlue400)
	dot.SetPosition(0, math.Min(6, txt.Height/2))
	txt.SetPosition(20, 0)
	area.AddChild(dot)
	area.AddChild(txt)

	area.OnPointerEnter = func(lumen.PointerContext) { txt.SetTextColor(colorBlue600) }
	area.OnPointerLeave = func(lumen.PointerContext) { txt.SetTextColor(colorSlate700) }
	p.serviceItems = append(p.serviceItems, txt)
	return area
}

// --- Recent Work ---

type projectCard struct {
	card, arrow, glow *lumen.Node
}

func (p *Page) buildProjects(y float64) float64 {
	m := p.m
	sec := p.section("projects", y, colorSlate900)
	p.anchors["projects"] = y
	inner := lumen.NewContainer("projects_inner")
	sec.AddChild(inner)

	title := p.label("projects_title", "Recent Work", faceBold, m.pick(30, 48, 48), colorWhite)
	title.SetPosition(m.colX, 0)
	inner.AddChild(title)
	top := title.Height + m.pick(32, 32, 48)

	cols := 1
	if m.large {
		cols = 2
	}
	gap := m.pick(16, 16, 32)
	cw := (m.colW - gap*float64(cols-1)) / float64(cols)

	cy := top
	rowH := 0.0
	for i, proj := range p.site.Projects {
		pc := p.projectCard(i, proj, cw)
		col := i % cols
		if col == 0 && i > 0 {
			cy += rowH + gap
			rowH = 0
		}
		pc.card.SetPosition(m.colX+float64(col)*(cw+gap), cy)
		inner.AddChild(pc.card)
		rowH = math.Max(rowH, pc.card.Height)
		p.projectCards = append(p.projectCards, pc)
	}
	contentH := cy + rowH

	h, off := p.fit(contentH)
	inner.SetPosition(0, off)
	return p.finish(sec, h)
}

func (p *Page) projectCard(i int, proj content.Project, w float64) *projectCard {
	m := p.m
	name := fmt.Sprintf("project_%s", proj.ID)
	pad := m.pick(24, 24, 48)

	title := p.paragraph(name+"_title", proj.Title, faceBold, m.pick(24, 36, 30), colorWhite, w-2*pad, lumen.TextAlignLeft)
	loc := p.label(name+"_location", proj.Location, faceRegular, m.pick(16, 16, 20), colorBlue400)
	arrowSize := m.pick(40, 40, 56)
	h := pad + 32 + title.Height + 8 + loc.Height + 24 + arrowSize + pad

	// The card is its own border; the fill sits one pixel inside it.
	card := lumen.NewRect(name, w, h, colorSlate700)
	card.UserData = i
	card.Clip = &lumen.Rect{Width: w, Height: h}
	fill := panel(name+"_fill", w-2, h-2, colorSlate800)
	fill.SetPosition(1, 1)
	card.AddChild(fill)

	mark := p.label(name+"_id", proj.ID, faceBold, m.pick(60, 60, 96), colorSlate600)
	mark.SetAlpha(0.2)
	mark.SetPosition(w-pad-mark.Width, pad/2)
	card.AddChild(mark)

	cy := pad + 32
	title.SetPosition(pad, cy)
	card.AddChild(title)
	cy += title.Height + 8
	loc.SetPosition(pad, cy)
	card.AddChild(loc)
	cy += loc.Height + 24

	arrow := panel(name+"_arrow", arrowSize, arrowSize, colorWhite.WithAlpha(0.1))
	arrow.SetPosition(w-pad-arrowSize, cy)
	glyph := p.label(name+"_arrow_glyph", "→", faceBold, arrowSize*0.45, colorWhite)
	glyph.SetPosition((arrowSize-glyph.Width)/2, (arrowSize-glyph.Height)/2)
	arrow.AddChild(glyph)
	card.AddChild(arrow)

	glow := panel(name+"_glow", w, h, colorBlue600.WithAlpha(0.1))
	glow.SetAlpha(0)
	card.AddChild(glow)

	arrowFx, glowFx := p.transition(), p.transition()
	card.OnPointerEnter = func(lumen.PointerContext) {
		arrowFx.run(lumen.TweenColor(arrow, colorBlue600, 0.3, ease.OutQuad))
		glowFx.run(lumen.TweenAlpha(glow, 1, 0.5, ease.OutQuad))
	}
	card.OnPointerLeave = func(lumen.PointerContext) {
		arrowFx.run(lumen.TweenColor(arrow, colorWhite.WithAlpha(0.1), 0.3, ease.OutQuad))
		glowFx.run(lumen.TweenAlpha(glow, 0, 0.5, ease.OutQuad))
	}
	return &projectCard{card: card, arrow: arrow, glow: glow}
}

// --- How We Work ---

func (p *Page) buildProcess(y float64) float64 {
	m := p.m
	sec := p.section("process", y, colorSlate50)
	p.anchors["process"] = y
	inner := lumen.NewContainer("process_inner")
	sec.AddChild(inner)

	top := p.centeredTitle(inner, "process_title", "How We Work", m.pick(30, 48, 48), colorSlate900)
	top += m.pick(48, 48, 80)

	steps := p.site.Process
	gap := m.pick(24, 24, 48)
	rowW := math.Min(m.colW, 1152)
	rowX := centerIn(m.colX, m.colW, rowW)
	cw := rowW
	if m.large && len(steps) > 0 {
		cw = (rowW - gap*float64(len(steps)-1)) / float64(len(steps))
	}

	cards := make([]*lumen.Node, len(steps))
	tallest := 0.0
	for i, st := range steps {
		cards[i] = p.stepCard(i, st, cw)
		tallest = math.Max(tallest, cards[i].Height)
	}

	cy := top
	for i, card := range cards {
		x := rowX
		if m.large {
			// Cards in a row stretch to the tallest one.
			x += float64(i) * (cw + gap)
			card.SetSize(cw, tallest)
		} else if i > 0 {
			cy += cards[i-1].Height + gap
		}
		shadow := panel(card.Name+"_shadow", card.Width, card.Height, colorBlack.WithAlpha(0.06))
		shadow.SetPosition(x, cy+10)
		inner.AddChild(shadow)
		card.SetPosition(x, cy)
		inner.AddChild(card)
	}
	contentH := top
	switch {
	case len(cards) == 0:
	case m.large:
		contentH += tallest
	default:
		contentH = cy + cards[len(cards)-1].Height
	}

	h, off := p.fit(contentH)
	inner.SetPosition(0, off)
	return p.finish(sec, h)
}

func (p *Page) stepCard(i int, st content.Step, w float64) *lumen.Node {
	m := p.m
	name := fmt.Sprintf("step_%d", i)
	pad := m.pick(32, 32, 48)
	badge := m.pick(48, 48, 80)

	card := panel(name, w, 0, colorWhite)
	num := panel(name+"_badge", badge, badge, colorSlate900)
	digits := p.label(name+"_num", fmt.Sprintf("%02d", i+1), faceBold, m.pick(20, 20, 30), colorWhite)
	digits.SetPosition((badge-digits.Width)/2, (badge-digits.Height)/2)
	num.AddChild(digits)
	num.SetPosition((w-badge)/2, pad)
	card.AddChild(num)

	cy := pad + badge + 24
	title := p.paragraph(name+"_title", st.Title, faceBold, m.pick(20, 20, 30), colorSlate900, w-2*pad, lumen.TextAlignCenter)
	title.SetPosition(pad, cy)
	card.AddChild(title)
	cy += title.Height + 16
	desc := p.paragraph(name+"_desc", st.Description, faceRegular, m.pick(14, 14, 18), colorSlate600, w-2*pad, lumen.TextAlignCenter)
	desc.SetPosition(pad, cy)
	card.AddChild(desc)
	cy += desc.Height + pad

	card.SetSize(w, cy)
	return card
}

// --- Stats ---

func (p *Page) buildStats(y float64) float64 {
	m := p.m
	sec := p.section("stats", y, colorNeuBase)
	p.anchors["stats"] = y
	inner := lumen.NewContainer("stats_inner")
	sec.AddChild(inner)

	cols := 2
	if m.large {
		cols = 4
	}
	gap := m.pick(16, 16, 48)
	// Leave room for the shadows on both sides.
	gridW := m.colW - 24
	size := (gridW - gap*float64(cols-1)) / float64(cols)
	gridX := m.colX + 12

	for i, st := range p.site.Stats {
		col, row := i%cols, i/cols
		x := gridX + float64(col)*(size+gap)
		ty := 12 + float64(row)*(size+gap)
		p.statTile(inner, i, st, x, ty, size)
	}
	rows := (len(p.site.Stats) + cols - 1) / cols
	contentH := 24 + float64(rows)*size + float64(max(rows-1, 0))*gap

	h, off := p.fit(contentH)
	inner.SetPosition(0, off)
	return p.finish(sec, h)
}

// statTile draws a neumorphic tile: a dark shadow down and right, a light one
// up and left, and the tile itself in the page color.
func (p *Page) statTile(parent *lumen.Node, i int, st content.Stat, x, y, size float64) {
	m := p.m
	name := fmt.Sprintf("stat_%d", i)
	dark := panel(name+"_shadow_dark", size, size, colorNeuShadow)
	dark.SetPosition(x+12, y+12)
	light := panel(name+"_shadow_light", size, size, colorWhite)
	light.SetPosition(x-12, y-12)
	tile := panel(name, size, size, colorNeuBase)
	tile.SetPosition(x, y)

	value := p.label(name+"_value", st.Value, faceBold, m.pick(30, 48, 72), colorSlate700)
	lbl := p.label(name+"_label", strings.ToUpper(st.Label), faceBold, m.pick(10, 12, 16), colorSlate500)
	blockH := value.Height + 4 + lbl.Height
	cy := (size - blockH) / 2
	value.SetPosition((size-value.Width)/2, cy)
	lbl.SetPosition((size-lbl.Width)/2, cy+value.Height+4)
	tile.AddChild(value)
	tile.AddChild(lbl)

	parent.AddChild(dark)
	parent.AddChild(light)
	parent.AddChild(tile)
}

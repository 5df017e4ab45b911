package lumen

import (
	"image"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandRect  CommandType = iota // solid color box
	CommandImage                    // image stretched over the node's box
	CommandText                     // pre-rendered text image
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Type        CommandType
	Transform   affine // local box to screen
	Width       float64
	Height      float64
	Color       Color // alpha already multiplied by the node's world alpha
	RenderLayer uint8
	Overlay     bool // overlay commands draw after all page commands
	Clip        Rect // screen-space clip, valid when HasClip
	HasClip     bool
	treeOrder   int // assigned during traversal for stable sort

	image *ebiten.Image
}

// Draw renders the page and overlay trees to screen.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}

	s.refreshTransforms()
	s.commands = s.commands[:0]
	view := s.camera.computeViewMatrix()
	b := screen.Bounds()
	s.cullBounds = Rect{Width: float64(b.Dx()), Height: float64(b.Dy())}
	s.cullActive = s.camera.CullEnabled

	treeOrder := 0
	s.traverse(s.root, view, false, Rect{}, false, &treeOrder)
	s.cullActive = false
	s.traverse(s.overlay, identity, true, Rect{}, false, &treeOrder)
	tTraverse := time.Now()

	s.mergeSort()
	s.submit(screen)

	if len(s.screenshotQueue) > 0 {
		s.flushScreenshots(screen)
	}

	if s.debug {
		s.debugLog(debugStats{
			traverseTime: tTraverse.Sub(t0),
			submitTime:   time.Since(tTraverse),
			commandCount: len(s.commands),
		})
	}
}

// traverse walks the node tree depth-first, emitting render commands for
// visible, renderable nodes. view maps the root's space to the screen.
func (s *Scene) traverse(n *Node, view affine, overlay bool, clip Rect, hasClip bool, treeOrder *int) {
	if !n.Visible || n.disposed {
		return
	}

	screenT := view.mul(n.worldTransform)
	if n.Clip != nil {
		r := screenT.rect(*n.Clip)
		if hasClip {
			r = clip.Intersection(r)
		}
		clip, hasClip = r, true
		if clip.Area() == 0 {
			return
		}
	}

	alpha := n.worldAlpha
	culled := s.cullActive && shouldCull(n, screenT, s.cullBounds)

	if n.Renderable && !culled && alpha > 0 {
		cmd := RenderCommand{
			Transform:   screenT,
			Width:       n.Width,
			Height:      n.Height,
			Color:       n.Color.WithAlpha(n.Color.A * alpha),
			RenderLayer: n.RenderLayer,
			Overlay:     overlay,
			Clip:        clip,
			HasClip:     hasClip,
		}
		emit := true
		switch n.Type {
		case NodeTypeRect:
			cmd.Type = CommandRect
		case NodeTypeImage:
			cmd.Type = CommandImage
			cmd.image = n.image
			emit = cmd.image != nil
		case NodeTypeText:
			cmd.Type = CommandText
			if n.TextBlock != nil {
				n.syncTextSize()
				cmd.image = n.TextBlock.render()
			}
			emit = cmd.image != nil
		default:
			emit = false
		}
		if emit && cmd.Width > 0 && cmd.Height > 0 {
			*treeOrder++
			cmd.treeOrder = *treeOrder
			s.commands = append(s.commands, cmd)
		}
	}

	// Children are traversed even when the parent is culled; their boxes
	// can extend past it.
	for _, child := range n.drawOrder() {
		s.traverse(child, view, overlay, clip, hasClip, treeOrder)
	}
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should sort before or at the same position as b.
// Using <= for treeOrder ensures stability.
func commandLessOrEqual(a, b *RenderCommand) bool {
	if a.Overlay != b.Overlay {
		return !a.Overlay
	}
	if a.RenderLayer != b.RenderLayer {
		return a.RenderLayer < b.RenderLayer
	}
	return a.treeOrder <= b.treeOrder
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: zero allocations after the sort buffer reaches high-water mark.
func (s *Scene) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			mid := min(i+width, n)
			hi := min(i+2*width, n)
			mergeRun(a, b, i, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}

// --- Submission ---

// geoM converts an affine matrix to an ebiten.GeoM.
func geoM(m affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}

// clipTarget returns the sub-image commands with a clip draw into, or nil
// when the clip is empty.
func clipTarget(screen *ebiten.Image, r Rect) *ebiten.Image {
	rect := image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)),
	).Intersect(screen.Bounds())
	if rect.Empty() {
		return nil
	}
	return screen.SubImage(rect).(*ebiten.Image)
}

// submit draws the sorted command list.
func (s *Scene) submit(screen *ebiten.Image) {
	for i := range s.commands {
		cmd := &s.commands[i]
		dst := screen
		if cmd.HasClip {
			if dst = clipTarget(screen, cmd.Clip); dst == nil {
				continue
			}
		}

		src := cmd.image
		var op ebiten.DrawImageOptions
		switch cmd.Type {
		case CommandRect:
			src = WhitePixel
			op.GeoM.Scale(cmd.Width, cmd.Height)
		case CommandImage:
			b := src.Bounds()
			op.GeoM.Scale(cmd.Width/float64(b.Dx()), cmd.Height/float64(b.Dy()))
		}
		op.GeoM.Concat(geoM(cmd.Transform))
		op.ColorScale.Scale(
			float32(cmd.Color.R*cmd.Color.A),
			float32(cmd.Color.G*cmd.Color.A),
			float32(cmd.Color.B*cmd.Color.A),
			float32(cmd.Color.A),
		)
		op.Filter = ebiten.FilterLinear
		dst.DrawImage(src, &op)
	}
}

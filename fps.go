package lumen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const fpsRefresh = 0.5 // seconds between redraws

// NewFPSWidget returns a small image node showing FPS and TPS. It draws above
// every other layer; add it to the overlay so it stays in the corner.
func NewFPSWidget() *Node {
	const w, h = 100, 32
	canvas := ebiten.NewImage(w, h)
	n := NewImage("fps", canvas, w, h)
	n.RenderLayer = 255
	n.Interactable = false

	elapsed := fpsRefresh
	n.OnUpdate = func(dt float64) {
		if elapsed += dt; elapsed < fpsRefresh {
			return
		}
		elapsed = 0
		canvas.Fill(color.RGBA{A: 0x80})
		ebitenutil.DebugPrint(canvas, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
	return n
}

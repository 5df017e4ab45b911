package lumen

import (
	"image"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
)

// NoisePixels fills a w x h image with grayscale grain. The same seed always
// yields the same pixels.
func NoisePixels(w, h int, seed uint64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(r.IntN(256))
			img.SetRGBA(x, y, color.RGBA{v, v, v, 255})
		}
	}
	return img
}

// NewNoise creates an image node covering w x h with a grain texture drawn at
// the given alpha. The texture is generated at tile x tile pixels and
// stretched, so tile controls the grain size.
func NewNoise(name string, w, h float64, tile int, alpha float64, seed uint64) *Node {
	if tile <= 0 {
		tile = 256
	}
	img := ebiten.NewImageFromImage(NoisePixels(tile, tile, seed))
	n := NewImage(name, img, w, h)
	n.Alpha = alpha
	n.Interactable = false
	return n
}

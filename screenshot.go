package lumen

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// Screenshot asks for the next drawn frame to be saved as a PNG in
// ScreenshotDir. Files are numbered in capture order, so a scripted run
// produces the same names every time: 001_hero.png, 002_services.png, ...
func (s *Scene) Screenshot(label string) {
	s.screenshotQueue = append(s.screenshotQueue, label)
}

func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	labels := s.screenshotQueue
	s.screenshotQueue = s.screenshotQueue[:0]

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		s.logger.Error("screenshot dir", zap.String("dir", s.ScreenshotDir), zap.Error(err))
		return
	}
	frame := capture(screen)
	for _, label := range labels {
		s.shots++
		path := filepath.Join(s.ScreenshotDir, shotName(s.shots, label))
		if err := savePNG(path, frame); err != nil {
			s.logger.Error("screenshot failed", zap.String("label", label), zap.Error(err))
			continue
		}
		s.logger.Info("screenshot",
			zap.String("path", path),
			zap.Float64("scroll_top", s.camera.ScrollTop()),
		)
	}
}

// capture copies the screen into an RGBA image. Ebiten pixels are already
// alpha-premultiplied, which is what image.RGBA holds.
func capture(screen *ebiten.Image) *image.RGBA {
	img := image.NewRGBA(screen.Bounds())
	screen.ReadPixels(img.Pix)
	return img
}

func savePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return nil
}

// shotName builds the file name for the n-th capture. Anything other than
// ASCII letters, digits, '-' and '.' becomes '_'.
func shotName(n int, label string) string {
	label = strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, strings.TrimSpace(label))
	if label == "" {
		label = "frame"
	}
	return fmt.Sprintf("%03d_%s.png", n, label)
}

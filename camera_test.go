package lumen

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func newPageCamera(contentHeight float64) *Camera {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.SetBounds(Rect{Width: 800, Height: contentHeight})
	return cam
}

func TestCameraDefaults(t *testing.T) {
	cam := newCamera(Rect{X: 0, Y: 0, Width: 800, Height: 600})
	if cam.Zoom != 1.0 {
		t.Errorf("Zoom = %f, want 1.0", cam.Zoom)
	}
	if !cam.CullEnabled {
		t.Error("CullEnabled = false, want true")
	}
	if cam.ScrollTop() != 0 {
		t.Errorf("ScrollTop = %f, want 0", cam.ScrollTop())
	}
	// Without bounds the document is exactly one screen tall.
	if cam.ScrollHeight() != 600 || cam.ClientHeight() != 600 {
		t.Errorf("ScrollHeight/ClientHeight = %f/%f, want 600/600", cam.ScrollHeight(), cam.ClientHeight())
	}
}

func TestCameraTopLeftMapsToOrigin(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	sx, sy := cam.WorldToScreen(0, 0)
	if !approxEqual(sx, 0, epsilon) || !approxEqual(sy, 0, epsilon) {
		t.Errorf("WorldToScreen(0,0) = (%f,%f), want (0,0)", sx, sy)
	}
}

func TestCameraScrollTopTranslates(t *testing.T) {
	cam := newPageCamera(3000)
	cam.SetScrollTop(250)

	sx, sy := cam.WorldToScreen(10, 300)
	if !approxEqual(sx, 10, epsilon) || !approxEqual(sy, 50, epsilon) {
		t.Errorf("WorldToScreen(10,300) at scrollTop 250 = (%f,%f), want (10,50)", sx, sy)
	}
	wx, wy := cam.ScreenToWorld(sx, sy)
	if !approxEqual(wx, 10, epsilon) || !approxEqual(wy, 300, epsilon) {
		t.Errorf("ScreenToWorld roundtrip = (%f,%f), want (10,300)", wx, wy)
	}
}

func TestCameraScrollClamps(t *testing.T) {
	tests := []struct {
		name string
		top  float64
		want float64
	}{
		{"negative", -100, 0},
		{"inside", 1200, 1200},
		{"max", 2400, 2400},
		{"past end", 5000, 2400},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := newPageCamera(3000)
			cam.SetScrollTop(tt.top)
			if !approxEqual(cam.ScrollTop(), tt.want, epsilon) {
				t.Errorf("ScrollTop = %f, want %f", cam.ScrollTop(), tt.want)
			}
		})
	}
}

func TestCameraShortContentPinnedToTop(t *testing.T) {
	cam := newPageCamera(300)
	cam.SetScrollTop(100)
	if cam.ScrollTop() != 0 {
		t.Errorf("ScrollTop = %f, want 0 for content shorter than the viewport", cam.ScrollTop())
	}
}

func TestCameraScrollBy(t *testing.T) {
	cam := newPageCamera(3000)
	cam.ScrollBy(120)
	cam.ScrollBy(30)
	if !approxEqual(cam.ScrollTop(), 150, epsilon) {
		t.Errorf("ScrollTop = %f, want 150", cam.ScrollTop())
	}
}

func TestCameraScrollTo(t *testing.T) {
	cam := newPageCamera(3000)
	cam.ScrollTo(1000, 1.0, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("Scrolling = false after ScrollTo")
	}

	cam.update(0.5)
	if !approxEqual(cam.ScrollTop(), 500, 1.0) {
		t.Errorf("scroll halfway: ScrollTop = %f, want ~500", cam.ScrollTop())
	}

	cam.update(0.5)
	if !approxEqual(cam.ScrollTop(), 1000, 1.0) {
		t.Errorf("scroll end: ScrollTop = %f, want ~1000", cam.ScrollTop())
	}
	if cam.Scrolling() {
		t.Error("Scrolling = true after completion")
	}
}

func TestCameraScrollToClampsTarget(t *testing.T) {
	cam := newPageCamera(1000)
	cam.ScrollTo(9999, 0.5, ease.Linear)
	cam.update(1)
	if !approxEqual(cam.ScrollTop(), 400, 1.0) {
		t.Errorf("ScrollTop = %f, want ~400", cam.ScrollTop())
	}
}

func TestCameraScrollToZeroDurationJumps(t *testing.T) {
	cam := newPageCamera(3000)
	cam.ScrollTo(700, 0, ease.Linear)
	if cam.Scrolling() {
		t.Error("zero-duration ScrollTo should not start a tween")
	}
	if cam.ScrollTop() != 700 {
		t.Errorf("ScrollTop = %f, want 700", cam.ScrollTop())
	}
}

func TestCameraSetScrollTopCancelsTween(t *testing.T) {
	cam := newPageCamera(3000)
	cam.ScrollTo(1000, 1.0, ease.Linear)
	cam.SetScrollTop(20)
	if cam.Scrolling() {
		t.Error("SetScrollTop should cancel the smooth scroll")
	}
	cam.update(1)
	if cam.ScrollTop() != 20 {
		t.Errorf("ScrollTop = %f, want 20", cam.ScrollTop())
	}
}

func TestCameraClearBounds(t *testing.T) {
	cam := newPageCamera(1000)
	cam.ClearBounds()

	cam.X = -999
	cam.Y = -999
	cam.update(0)
	if cam.X != -999 || cam.Y != -999 {
		t.Errorf("after ClearBounds: cam = (%f,%f), want (-999,-999)", cam.X, cam.Y)
	}
}

func TestVisibleBounds(t *testing.T) {
	cam := newPageCamera(3000)
	cam.SetScrollTop(400)
	got := cam.VisibleBounds()
	want := Rect{X: 0, Y: 400, Width: 800, Height: 600}
	if !approxEqual(got.X, want.X, 1e-6) || !approxEqual(got.Y, want.Y, 1e-6) ||
		!approxEqual(got.Width, want.Width, 1e-6) || !approxEqual(got.Height, want.Height, 1e-6) {
		t.Errorf("VisibleBounds = %v, want %v", got, want)
	}
}

func TestVisibleBoundsZoom2(t *testing.T) {
	cam := newCamera(Rect{Width: 800, Height: 600})
	cam.X = 400
	cam.Y = 300
	cam.Zoom = 2.0
	cam.dirty = true
	bounds := cam.VisibleBounds()
	if !approxEqual(bounds.Width, 400, 1e-6) || !approxEqual(bounds.Height, 300, 1e-6) {
		t.Errorf("VisibleBounds at zoom 2 size = (%f,%f), want (400,300)", bounds.Width, bounds.Height)
	}
}

// --- Culling ---

func TestCulling(t *testing.T) {
	viewport := Rect{X: 0, Y: 0, Width: 800, Height: 600}
	tests := []struct {
		name string
		node *Node
		tx   float64
		want bool
	}{
		{"rect inside", NewRect("r", 64, 64, ColorWhite), 100, false},
		{"rect outside", NewRect("r", 64, 64, ColorWhite), -200, true},
		{"container never culled", NewContainer("c"), -9999, false},
		{"empty text never culled", NewText("t", "", nil), -9999, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := affine{1, 0, 0, 1, tt.tx, tt.tx}
			if got := shouldCull(tt.node, m, viewport); got != tt.want {
				t.Errorf("shouldCull = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWorldAABBRotated45(t *testing.T) {
	cos45 := math.Cos(math.Pi / 4)
	sin45 := math.Sin(math.Pi / 4)
	transform := affine{cos45, sin45, -sin45, cos45, 0, 0}
	aabb := transform.bounds(100, 100)
	expectedSize := 100 * math.Sqrt(2)
	if !approxEqual(aabb.Width, expectedSize, 0.01) || !approxEqual(aabb.Height, expectedSize, 0.01) {
		t.Errorf("rotated AABB size = (%f,%f), want ~(%f,%f)", aabb.Width, aabb.Height, expectedSize, expectedSize)
	}
}

package lumen

import "math"

// ScrollProgress returns how far the page is scrolled through its scrollable
// range: scrollTop / (scrollHeight - clientHeight). It returns 0 when nothing
// can scroll or the result is not finite. Values outside [0, 1] pass through
// so overscroll is visible to callers.
func ScrollProgress(scrollTop, scrollHeight, clientHeight float64) float64 {
	scrollable := scrollHeight - clientHeight
	if !(scrollable > 0) {
		return 0
	}
	p := scrollTop / scrollable
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

// ScrollTracker follows the page scroll and keeps a normalized progress value.
type ScrollTracker struct {
	progress float64
	fn       func(float64)
	handle   CallbackHandle
	closed   bool
}

// TrackScroll subscribes to page scroll notifications. The tracker is seeded
// from the current scroll state; fn, if non-nil, runs with the new progress
// on every notification after that.
func (s *Scene) TrackScroll(fn func(progress float64)) *ScrollTracker {
	t := &ScrollTracker{fn: fn}
	st := s.scrollState()
	t.progress = ScrollProgress(st.ScrollTop, st.ScrollHeight, st.ClientHeight)
	t.handle = s.OnScroll(t.handleScroll)
	return t
}

func (t *ScrollTracker) handleScroll(ctx ScrollContext) {
	if t.closed {
		return
	}
	t.progress = ScrollProgress(ctx.ScrollTop, ctx.ScrollHeight, ctx.ClientHeight)
	if t.fn != nil {
		t.fn(t.progress)
	}
}

// Progress returns the most recently computed progress.
func (t *ScrollTracker) Progress() float64 {
	return t.progress
}

// Close stops tracking. Calling Close more than once is harmless.
func (t *ScrollTracker) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.handle.Remove()
}

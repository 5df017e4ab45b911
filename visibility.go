package lumen

import "math"

// DefaultVisibilityThreshold is the fraction of a node that must be inside
// the viewport before it counts as visible.
const DefaultVisibilityThreshold = 0.1

// VisibilityObserver tracks whether a node's overlap with the viewport meets
// a threshold and reports every change of that flag.
type VisibilityObserver struct {
	scene     *Scene
	node      *Node
	threshold float64
	fn        func(visible bool)
	visible   bool
	ratio     float64
	closed    bool
}

// ObserveVisibility starts observing n. threshold is the required fraction of
// the node's area in [0, 1]; negative or NaN selects
// DefaultVisibilityThreshold. fn runs on the update goroutine each time the
// visible flag flips. The flag starts false, so the first callback is always
// fn(true).
func (s *Scene) ObserveVisibility(n *Node, threshold float64, fn func(visible bool)) *VisibilityObserver {
	if math.IsNaN(threshold) || threshold < 0 {
		threshold = DefaultVisibilityThreshold
	}
	if threshold > 1 {
		threshold = 1
	}
	o := &VisibilityObserver{scene: s, node: n, threshold: threshold, fn: fn}
	s.observers = append(s.observers, o)
	return o
}

// Observe is ObserveVisibility with DefaultVisibilityThreshold.
func (s *Scene) Observe(n *Node, fn func(visible bool)) *VisibilityObserver {
	return s.ObserveVisibility(n, DefaultVisibilityThreshold, fn)
}

// Visible returns the current flag.
func (o *VisibilityObserver) Visible() bool {
	return o.visible
}

// Ratio returns the intersection ratio measured on the last evaluation.
func (o *VisibilityObserver) Ratio() float64 {
	return o.ratio
}

// Threshold returns the effective threshold.
func (o *VisibilityObserver) Threshold() float64 {
	return o.threshold
}

// SetTarget moves the observation to n. A visible flag is first reported as
// false for the old target; n is measured from the next Update.
func (o *VisibilityObserver) SetTarget(n *Node) {
	if o.closed || n == o.node {
		return
	}
	o.node = n
	o.ratio = 0
	o.set(false)
}

// Close stops observing. Calling Close more than once is harmless.
func (o *VisibilityObserver) Close() {
	o.closed = true
}

func (o *VisibilityObserver) set(visible bool) {
	if visible == o.visible {
		return
	}
	o.visible = visible
	if o.fn != nil {
		o.fn(visible)
	}
}

// intersectionRatio returns the share of n's bounding box inside the
// viewport of the root it belongs to. ok is false when n cannot be measured.
func (s *Scene) intersectionRatio(n *Node) (ratio float64, ok bool) {
	if n == nil || n.disposed {
		return 0, false
	}
	box, ok := n.WorldBounds()
	if !ok {
		return 0, false
	}
	area := box.Area()
	if area == 0 {
		return 0, false
	}
	view := s.camera.VisibleBounds()
	if n.inOverlay() {
		view = Rect{Width: s.camera.Viewport.Width, Height: s.camera.Viewport.Height}
	}
	return box.Intersection(view).Area() / area, true
}

// evaluateObservers measures every observed node and fires flag changes.
func (s *Scene) evaluateObservers() {
	if len(s.observers) == 0 {
		return
	}
	s.refreshTransforms()

	n := len(s.observers)
	for i := 0; i < n; i++ {
		o := s.observers[i]
		if o.closed {
			continue
		}
		if o.node != nil && o.node.disposed {
			o.closed = true
			continue
		}
		ratio, ok := s.intersectionRatio(o.node)
		if !ok {
			continue
		}
		o.ratio = ratio
		o.set(ratio > 0 && ratio >= o.threshold)
	}

	kept := s.observers[:0]
	for _, o := range s.observers {
		if !o.closed {
			kept = append(kept, o)
		}
	}
	for i := len(kept); i < len(s.observers); i++ {
		s.observers[i] = nil
	}
	s.observers = kept
}

package lumen

import "slices"

type syntheticKind uint8

const (
	syntheticPointer syntheticKind = iota
	syntheticWheel
	syntheticKey
)

// syntheticEvent is one queued input event. The queue feeds one event per
// frame into the same paths real input takes, so scripted clicks hit-test,
// hover and drag exactly like the mouse.
type syntheticEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	pressed          bool
	button           MouseButton
	wheelDY          float64
	key              Key
}

func (s *Scene) queuePointer(x, y float64, pressed bool) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{screenX: x, screenY: y, pressed: pressed})
}

// InjectMove hovers the pointer at a screen point.
func (s *Scene) InjectMove(x, y float64) { s.queuePointer(x, y, false) }

// InjectPress presses the left button at a screen point.
func (s *Scene) InjectPress(x, y float64) { s.queuePointer(x, y, true) }

// InjectDragMove moves the pointer with the left button still held.
func (s *Scene) InjectDragMove(x, y float64) { s.queuePointer(x, y, true) }

// InjectRelease releases the button at a screen point.
func (s *Scene) InjectRelease(x, y float64) { s.queuePointer(x, y, false) }

// InjectClick presses and releases at one point over two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag presses at the start point, walks to the end point in a straight
// line and releases there, using frames frames in total (at least 2).
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	frames = max(frames, 2)
	s.InjectPress(fromX, fromY)
	for i := 1; i < frames-1; i++ {
		t := float64(i) / float64(frames-1)
		s.InjectDragMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectScroll scrolls the page by dy pixels, positive downward.
func (s *Scene) InjectScroll(dy float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticWheel, wheelDY: dy})
}

// InjectKey presses k for one frame.
func (s *Scene) InjectKey(k Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{kind: syntheticKey, key: k})
}

// PendingInput is the number of queued events still to play.
func (s *Scene) PendingInput() int {
	return len(s.injectQueue)
}

// processInjectedInput plays the oldest queued event. It reports false when
// the queue is empty and the real devices should be read instead.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	s.injectQueue = slices.Delete(s.injectQueue, 0, 1)

	switch evt.kind {
	case syntheticWheel:
		s.camera.ScrollBy(evt.wheelDY)
		// Re-run hit testing at the last pointer sample so hover follows
		// the content that scrolled under it.
		if ps := &s.pointer; ps.seen {
			s.processPointer(ps.lastX, ps.lastY, ps.down, ps.button)
		}
	case syntheticKey:
		s.applyKeyScroll(evt.key)
		for _, h := range s.handlers.key {
			h.fn(evt.key)
		}
	default:
		s.processPointer(evt.screenX, evt.screenY, evt.pressed, evt.button)
	}
	return true
}

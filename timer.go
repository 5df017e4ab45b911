package lumen

// Timer is a one-shot callback scheduled on the scene's update loop.
type Timer struct {
	remaining float64
	fn        func()
	stopped   bool
	fired     bool
}

// After schedules fn to run on the update goroutine once delay seconds of
// frame time have elapsed. A delay <= 0 fires on the next Update.
func (s *Scene) After(delay float64, fn func()) *Timer {
	t := &Timer{remaining: delay, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// Stop cancels the timer. It reports whether the timer was still pending.
func (t *Timer) Stop() bool {
	if t == nil || t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Pending reports whether the timer has neither fired nor been stopped.
func (t *Timer) Pending() bool {
	return t != nil && !t.stopped && !t.fired
}

// advanceTimers counts down every timer and fires the expired ones in
// scheduling order. Timers created by a callback start counting next frame.
func (s *Scene) advanceTimers(dt float64) {
	if len(s.timers) == 0 {
		return
	}
	n := len(s.timers)
	for i := 0; i < n; i++ {
		t := s.timers[i]
		if t.stopped {
			continue
		}
		t.remaining -= dt
		if t.remaining <= 0 {
			t.fired = true
			t.fn()
		}
	}
	kept := s.timers[:0]
	for _, t := range s.timers {
		if t.Pending() {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
}

package engine

import "time"

// TimeHandler tracks the soft time limit checked between iterations.
type TimeHandler struct {
	start            time.Time
	limit            time.Duration
	usingCustomDepth bool
}

// newTimeHandler starts the clock. A search with a depth and no movetime, or
// an infinite search, has no time limit.
func newTimeHandler(l Limits) TimeHandler {
	th := TimeHandler{start: time.Now(), limit: l.MoveTime}
	if l.Infinite || l.MoveTime <= 0 {
		th.usingCustomDepth = true
	}
	return th
}

func (th *TimeHandler) Elapsed() time.Duration { return time.Since(th.start) }

// TimeStatus is true once the limit has passed, unless the search runs on depth alone.
func (th *TimeHandler) TimeStatus() bool {
	return !th.usingCustomDepth && th.Elapsed() > th.limit
}

// Package timer provides the per-question countdown.
//
// A Countdown never sleeps or spawns goroutines. The owner schedules a
// tick for the returned task ID once per Period and feeds it back through
// Tick. Starting or stopping the countdown retires the current task ID, so
// ticks that were already scheduled for an earlier question are reported
// as stale and dropped.
package timer

import (
	"fmt"
	"time"
)

// Period is the fixed interval between ticks.
const Period = time.Second

// State is the lifecycle state of a Countdown.
type State int

// Countdown states.
const (
	Idle State = iota
	Running
	Paused
	Expired
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Expired:
		return "expired"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// TaskID identifies one scheduled tick chain.
type TaskID uint64

// TickResult reports what a tick did.
type TickResult int

// Tick results.
const (
	// TickStale means the tick belongs to a retired task.
	TickStale TickResult = iota
	// TickGated means the countdown is paused; the tick was absorbed.
	TickGated
	// TickCounted means remaining time was decremented.
	TickCounted
	// TickExpired means the countdown expired on this tick.
	TickExpired
)

// Reschedule reports whether the owner should schedule another tick.
func (r TickResult) Reschedule() bool {
	return r == TickGated || r == TickCounted
}

// Countdown is a single-question timer with pause and resume.
type Countdown struct {
	onExpire  func()
	state     State
	limit     int
	remaining int
	task      TaskID
}

// New returns an idle Countdown that calls onExpire when time runs out.
func New(onExpire func()) *Countdown {
	return &Countdown{onExpire: onExpire}
}

// Start stops any active countdown and starts a new one. It returns the task
// ID to schedule ticks for, or false when limit is 0 (unlimited) and no
// ticks are needed.
func (c *Countdown) Start(limit int) (TaskID, bool) {
	c.Stop()
	if limit < 0 {
		limit = 0
	}
	c.limit = limit
	c.remaining = limit
	if limit == 0 {
		return 0, false
	}
	c.state = Running
	return c.task, true
}

// Stop retires the current task and returns to Idle. Remaining time is kept
// for display.
func (c *Countdown) Stop() {
	c.task++
	c.state = Idle
}

// Pause freezes a running countdown.
func (c *Countdown) Pause() {
	if c.state == Running {
		c.state = Paused
	}
}

// Resume continues a paused countdown from the frozen value. It is a no-op
// in any other state.
func (c *Countdown) Resume() bool {
	if c.state != Paused || c.remaining < 0 {
		return false
	}
	c.state = Running
	return true
}

// Tick advances the countdown by one Period for the given task.
func (c *Countdown) Tick(id TaskID) TickResult {
	if id != c.task {
		return TickStale
	}
	switch c.state {
	case Paused:
		return TickGated
	case Running:
	default:
		return TickStale
	}
	c.remaining--
	if c.remaining >= 0 {
		return TickCounted
	}
	c.state = Expired
	c.task++
	if c.onExpire != nil {
		c.onExpire()
	}
	return TickExpired
}

// State returns the current lifecycle state.
func (c *Countdown) State() State {
	return c.state
}

// Limit returns the limit the countdown was last started with.
func (c *Countdown) Limit() int {
	return c.limit
}

// Unlimited reports whether the last start had no time limit.
func (c *Countdown) Unlimited() bool {
	return c.limit == 0
}

// Remaining returns the remaining seconds, clamped at 0.
func (c *Countdown) Remaining() int {
	if c.remaining < 0 {
		return 0
	}
	return c.remaining
}

// Display renders the remaining time, or "--" when unlimited.
func (c *Countdown) Display() string {
	if c.Unlimited() {
		return "--"
	}
	return fmt.Sprintf("%d s", c.Remaining())
}

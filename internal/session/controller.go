// Package session implements the per-attempt state machine of a level:
// scramble, rotate and reorder while the clock runs, check, and hand the
// result to whoever listens for completions.
package session

import (
	"math/rand"

	"github.com/vovakirdan/chronolink/internal/catalog"
	"github.com/vovakirdan/chronolink/internal/puzzle"
)

// State is the lifecycle phase of an attempt.
type State int

const (
	StateScrambling State = iota
	StateActive
	StateSolved
	StateAbandoned
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case StateScrambling:
		return "scrambling"
	case StateActive:
		return "active"
	case StateSolved:
		return "solved"
	case StateAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// Completion is emitted once when an attempt is solved.
type Completion struct {
	LevelID int
	Stars   int
	Elapsed int
}

// Hooks are optional callbacks invoked synchronously on state changes.
type Hooks struct {
	// OnReady fires when a command makes the arrangement solved before a
	// check (false to true edge only). A scramble that is already solved
	// starts ready without firing.
	OnReady func()
	// OnInvalid fires when a check fails.
	OnInvalid func()
	// OnSolved fires once when a check succeeds.
	OnSolved func(Completion)
	// OnRotate fires after a piece was turned.
	OnRotate func(instanceID string)
}

// CheckResult describes the outcome of Check.
type CheckResult struct {
	Accepted bool // false when the session was not Active
	Solved   bool
	Stars    int
	Elapsed  int
}

// Controller drives a single attempt at a level.
// It is not safe for concurrent use; callers serialize events.
type Controller struct {
	level  catalog.Level
	hooks  Hooks
	state  State
	pieces []puzzle.Instance

	elapsed int
	stars   int
	ready   bool
	stopped bool
}

// New scrambles the level and starts the attempt with the clock at zero.
func New(level catalog.Level, rng *rand.Rand, hooks Hooks) *Controller {
	c := &Controller{
		level: level,
		hooks: hooks,
		state: StateScrambling,
	}

	c.pieces = puzzle.Scramble(rng, level.Pieces)
	c.state = StateActive
	c.ready = puzzle.IsSolved(c.pieces)

	return c
}

// Rotate turns the instance with the given id by 90 degrees.
// Returns false when the session is not Active or the id is unknown.
func (c *Controller) Rotate(instanceID string) bool {
	if c.state != StateActive {
		return false
	}

	for i := range c.pieces {
		if c.pieces[i].InstanceID != instanceID {
			continue
		}
		c.pieces[i].Rotation = c.pieces[i].Rotation.Add90()
		if c.hooks.OnRotate != nil {
			c.hooks.OnRotate(instanceID)
		}
		c.refreshReady()
		return true
	}
	return false
}

// Reorder replaces the arrangement with next, which must be a permutation
// of the live instances. Rotations are taken from the live state so a
// stale copy cannot undo a rotate.
func (c *Controller) Reorder(next []puzzle.Instance) bool {
	if c.state != StateActive || len(next) != len(c.pieces) {
		return false
	}

	byID := make(map[string]puzzle.Instance, len(c.pieces))
	for _, p := range c.pieces {
		byID[p.InstanceID] = p
	}

	arranged := make([]puzzle.Instance, 0, len(next))
	for _, p := range next {
		live, ok := byID[p.InstanceID]
		if !ok {
			return false
		}
		delete(byID, p.InstanceID)
		arranged = append(arranged, live)
	}

	c.pieces = arranged
	c.refreshReady()
	return true
}

// Move takes the piece at index from and inserts it at index to.
func (c *Controller) Move(from, to int) bool {
	if c.state != StateActive {
		return false
	}
	n := len(c.pieces)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}

	next := make([]puzzle.Instance, 0, n)
	moved := c.pieces[from]
	for i, p := range c.pieces {
		if i == from {
			continue
		}
		next = append(next, p)
	}
	next = append(next[:to], append([]puzzle.Instance{moved}, next[to:]...)...)

	return c.Reorder(next)
}

// Check validates the arrangement. A failed check keeps the clock running;
// a successful one stops it, scores the attempt and emits the completion.
func (c *Controller) Check() CheckResult {
	if c.state != StateActive {
		return CheckResult{Solved: c.state == StateSolved, Stars: c.stars, Elapsed: c.elapsed}
	}

	if !puzzle.IsSolved(c.pieces) {
		if c.hooks.OnInvalid != nil {
			c.hooks.OnInvalid()
		}
		return CheckResult{Accepted: true, Elapsed: c.elapsed}
	}

	c.stopped = true
	c.state = StateSolved
	c.stars = c.level.Thresholds.Stars(c.elapsed)

	if c.hooks.OnSolved != nil {
		c.hooks.OnSolved(Completion{
			LevelID: c.level.ID,
			Stars:   c.stars,
			Elapsed: c.elapsed,
		})
	}

	return CheckResult{Accepted: true, Solved: true, Stars: c.stars, Elapsed: c.elapsed}
}

// Tick advances the clock by one second. Ticks after the clock was stopped
// are ignored and return false.
func (c *Controller) Tick() bool {
	if c.stopped || c.state != StateActive {
		return false
	}
	c.elapsed++
	return true
}

// Leave abandons the attempt. The clock stops the first time; later calls
// do nothing. A solved attempt stays Solved.
func (c *Controller) Leave() {
	if c.stopped {
		return
	}
	c.stopped = true
	if c.state == StateActive || c.state == StateScrambling {
		c.state = StateAbandoned
	}
}

// Running reports whether the clock still accepts ticks.
func (c *Controller) Running() bool {
	return !c.stopped && c.state == StateActive
}

// Pieces returns a copy of the live arrangement.
func (c *Controller) Pieces() []puzzle.Instance {
	out := make([]puzzle.Instance, len(c.pieces))
	copy(out, c.pieces)
	return out
}

// Connections returns the per-pair connected flags of the arrangement.
func (c *Controller) Connections() []bool {
	return puzzle.ConnectedPairs(c.pieces)
}

// Ready reports whether the arrangement is currently solved.
func (c *Controller) Ready() bool { return c.ready }

// Elapsed returns the seconds counted so far.
func (c *Controller) Elapsed() int { return c.elapsed }

// Stars returns the stars earned, or 0 until solved.
func (c *Controller) Stars() int { return c.stars }

// State returns the lifecycle phase.
func (c *Controller) State() State { return c.state }

// Level returns the level being played.
func (c *Controller) Level() catalog.Level { return c.level }

func (c *Controller) refreshReady() {
	was := c.ready
	c.ready = puzzle.IsSolved(c.pieces)
	if c.ready && !was && c.hooks.OnReady != nil {
		c.hooks.OnReady()
	}
}

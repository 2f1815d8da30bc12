// Package campaign drives progression through the level catalog: which
// level is played next, in what order, and how completions are saved.
package campaign

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/chronolink/internal/catalog"
	"github.com/vovakirdan/chronolink/internal/progress"
	"github.com/vovakirdan/chronolink/internal/puzzle"
	"github.com/vovakirdan/chronolink/internal/session"
)

// RunRecorder stores the history of solved attempts.
type RunRecorder interface {
	RecordRun(levelID, stars, seconds int) error
}

// Outcome is the result of handing a completion to the campaign.
type Outcome struct {
	LevelID int
	Stars   int
	Elapsed int

	// NewBest is set when the attempt improved stars or best time.
	NewBest bool
	// NextLevelID is the level that was unlocked, or 0 at the end of the order.
	NextLevelID int
	// Victory is set when the last level of the play order was completed.
	Victory bool
}

// Campaign owns the play order and the hydrated progress list.
// It is not safe for concurrent use.
type Campaign struct {
	cat      catalog.Catalog
	order    []catalog.Level
	index    int
	remixed  bool
	progress progress.List

	store  *progress.Store
	runs   RunRecorder
	logger *log.Logger

	last    Outcome
	hasLast bool
}

// Option configures a Campaign.
type Option func(*Campaign)

// WithRunRecorder records every completion to r.
func WithRunRecorder(r RunRecorder) Option {
	return func(c *Campaign) { c.runs = r }
}

// WithLogger sets the logger used for swallowed failures.
func WithLogger(l *log.Logger) Option {
	return func(c *Campaign) {
		if l != nil {
			c.logger = l
		}
	}
}

// New hydrates progress for cat from store and positions the campaign at
// the first level in canonical order.
func New(cat catalog.Catalog, store *progress.Store, opts ...Option) *Campaign {
	c := &Campaign{
		cat:    cat,
		order:  cat.Levels,
		store:  store,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}

	if store != nil {
		c.progress = store.Hydrate(cat)
	} else {
		c.progress = progress.New(nil).Hydrate(cat)
	}
	return c
}

// Catalog returns the canonical catalog.
func (c *Campaign) Catalog() catalog.Catalog { return c.cat }

// Start resets to canonical order at the first level.
func (c *Campaign) Start() {
	c.order = c.cat.Levels
	c.remixed = false
	c.index = 0
}

// Continue resumes at the highest unlocked level in canonical order, or at
// the level after it when it already has stars. Returns the chosen index.
func (c *Campaign) Continue() int {
	c.Start()

	last := -1
	for i, p := range c.progress {
		if p.Unlocked {
			last = i
		}
	}
	if last < 0 {
		return 0
	}

	if c.progress[last].Stars > 0 && last < len(c.order)-1 {
		last++
	}
	c.index = last
	return c.index
}

// Select jumps to a level by canonical index. Locked levels are refused,
// except the first which is always playable.
func (c *Campaign) Select(index int) bool {
	if index < 0 || index >= len(c.cat.Levels) {
		return false
	}
	if index > 0 && !c.progress[index].Unlocked {
		return false
	}

	c.Start()
	c.index = index
	return true
}

// Remix shuffles the play order and starts over from its first level.
func (c *Campaign) Remix(rng *rand.Rand) {
	c.order = puzzle.Shuffle(rng, c.cat.Levels)
	c.remixed = true
	c.index = 0
}

// Remixed reports whether the play order is shuffled.
func (c *Campaign) Remixed() bool { return c.remixed }

// Current returns the level at the current position.
func (c *Campaign) Current() catalog.Level {
	return c.order[c.index]
}

// Position returns the 1-based position in the play order and its length.
func (c *Campaign) Position() (int, int) {
	return c.index + 1, len(c.order)
}

// IsLastLevel reports whether the current level ends the play order.
func (c *Campaign) IsLastLevel() bool {
	return c.index >= len(c.order)-1
}

// Play starts an attempt at the current level. The session's completion is
// routed through Complete before hooks.OnSolved runs.
func (c *Campaign) Play(rng *rand.Rand, hooks session.Hooks) *session.Controller {
	c.hasLast = false

	user := hooks.OnSolved
	hooks.OnSolved = func(done session.Completion) {
		if out, ok := c.Complete(done); ok {
			c.last, c.hasLast = out, true
		}
		if user != nil {
			user(done)
		}
	}
	return session.New(c.Current(), rng, hooks)
}

// LastOutcome returns the outcome of the most recent attempt started with Play.
func (c *Campaign) LastOutcome() (Outcome, bool) {
	return c.last, c.hasLast
}

// Complete merges a solved attempt into progress, unlocks the next level
// of the play order, saves, and advances. Completions for a level other
// than the current one are ignored.
func (c *Campaign) Complete(done session.Completion) (Outcome, bool) {
	current := c.Current()
	if done.LevelID != current.ID {
		c.logger.Warn("ignoring completion for non-current level",
			"level_id", done.LevelID, "current", current.ID)
		return Outcome{}, false
	}

	out := Outcome{
		LevelID: done.LevelID,
		Stars:   done.Stars,
		Elapsed: done.Elapsed,
		Victory: c.IsLastLevel(),
	}
	if !out.Victory {
		out.NextLevelID = c.order[c.index+1].ID
	}

	before, _ := c.progress.Find(done.LevelID)
	out.NewBest = done.Stars > before.Stars || before.BestTime == nil || done.Elapsed < *before.BestTime

	c.progress = c.progress.Apply(progress.Completion{
		LevelID:     done.LevelID,
		Stars:       done.Stars,
		Elapsed:     done.Elapsed,
		NextLevelID: out.NextLevelID,
	})
	if c.store != nil {
		c.store.Persist(c.progress)
	}

	if c.runs != nil {
		if err := c.runs.RecordRun(done.LevelID, done.Stars, done.Elapsed); err != nil {
			c.logger.Error("failed to record run", "level_id", done.LevelID, "error", err)
		}
	}

	if !out.Victory {
		c.index++
	}
	c.logger.Info("level complete", "level_id", done.LevelID, "stars", done.Stars,
		"elapsed", done.Elapsed, "victory", out.Victory)

	return out, true
}

// Progress returns a copy of the hydrated progress in canonical order.
func (c *Campaign) Progress() progress.List {
	out := make(progress.List, len(c.progress))
	copy(out, c.progress)
	return out
}

// CanContinue reports whether there is anything to resume.
func (c *Campaign) CanContinue() bool {
	return c.progress.CanContinue()
}

// Reset wipes saved progress and rehydrates from a clean state.
func (c *Campaign) Reset() error {
	if c.store == nil {
		c.progress = progress.New(nil).Hydrate(c.cat)
		c.Start()
		return nil
	}
	if err := c.store.Reset(); err != nil {
		return err
	}
	c.progress = c.store.Hydrate(c.cat)
	c.Start()
	return nil
}

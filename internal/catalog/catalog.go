// Package catalog defines the level catalog: ordered levels, their pieces and
// the time thresholds that decide star ratings.
package catalog

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/chronolink/internal/puzzle"
)

// Validation errors returned by Validate.
var (
	ErrEmptyCatalog     = errors.New("catalog: no levels")
	ErrBadLevelID       = errors.New("catalog: level id must be positive")
	ErrDuplicateLevelID = errors.New("catalog: duplicate level id")
	ErrNoPieces         = errors.New("catalog: level has no pieces")
	ErrBadCorrectIndex  = errors.New("catalog: piece indices are not a 0..n-1 permutation")
	ErrDuplicatePieceID = errors.New("catalog: duplicate piece id")
	ErrBadThresholds    = errors.New("catalog: three-star limit must be below two-star limit")
)

// Thresholds are the elapsed-second limits for a level's star ratings.
type Thresholds struct {
	ThreeStar int // Max seconds for 3 stars
	TwoStar   int // Max seconds for 2 stars
}

// Stars rates a solve time. A solved level always earns at least one star.
func (t Thresholds) Stars(elapsed int) int {
	switch {
	case elapsed <= t.ThreeStar:
		return 3
	case elapsed <= t.TwoStar:
		return 2
	default:
		return 1
	}
}

// Level is a single puzzle of the catalog.
// ID is the merge key against saved progress and must never be reused.
type Level struct {
	ID         int
	Name       string
	Pieces     []puzzle.PieceDef
	Thresholds Thresholds
}

// Catalog is the ordered, read-only list of levels.
type Catalog struct {
	Levels []Level
}

// Len returns the number of levels.
func (c Catalog) Len() int {
	return len(c.Levels)
}

// Get returns the level at the given 0-based index.
func (c Catalog) Get(index int) (Level, bool) {
	if index < 0 || index >= len(c.Levels) {
		return Level{}, false
	}
	return c.Levels[index], true
}

// Index returns the catalog position of the level with the given id, or -1.
func (c Catalog) Index(id int) int {
	for i, lvl := range c.Levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}

// IDs returns level ids in catalog order.
func (c Catalog) IDs() []int {
	ids := make([]int, len(c.Levels))
	for i, lvl := range c.Levels {
		ids[i] = lvl.ID
	}
	return ids
}

// Validate checks the catalog invariants.
func (c Catalog) Validate() error {
	if len(c.Levels) == 0 {
		return ErrEmptyCatalog
	}

	seen := make(map[int]bool, len(c.Levels))
	for _, lvl := range c.Levels {
		if lvl.ID <= 0 {
			return fmt.Errorf("level %d: %w", lvl.ID, ErrBadLevelID)
		}
		if seen[lvl.ID] {
			return fmt.Errorf("level %d: %w", lvl.ID, ErrDuplicateLevelID)
		}
		seen[lvl.ID] = true

		if err := lvl.validate(); err != nil {
			return fmt.Errorf("level %d: %w", lvl.ID, err)
		}
	}
	return nil
}

func (l Level) validate() error {
	if len(l.Pieces) == 0 {
		return ErrNoPieces
	}
	if l.Thresholds.ThreeStar >= l.Thresholds.TwoStar {
		return ErrBadThresholds
	}

	indices := make([]bool, len(l.Pieces))
	ids := make(map[string]bool, len(l.Pieces))
	for _, p := range l.Pieces {
		if p.CorrectIndex < 0 || p.CorrectIndex >= len(l.Pieces) || indices[p.CorrectIndex] {
			return ErrBadCorrectIndex
		}
		indices[p.CorrectIndex] = true

		if ids[p.ID] {
			return fmt.Errorf("%q: %w", p.ID, ErrDuplicatePieceID)
		}
		ids[p.ID] = true
	}
	return nil
}

// Package progress owns the durable per-level player state: stars, best
// times and unlock flags. It hydrates saved data against the current level
// catalog and serializes it back through a key-value collaborator.
package progress

// LevelProgress is the persisted record for one level.
// Stars only increase, BestTime only decreases once set, Unlocked never reverts.
type LevelProgress struct {
	LevelID  int  `json:"levelId"`
	Stars    int  `json:"stars"`
	BestTime *int `json:"bestTime"` // nil until the level is first solved
	Unlocked bool `json:"unlocked"`
}

// SaveData is the serialized save blob.
type SaveData struct {
	Version           int                   `json:"version"`
	LastPlayedLevelID int                   `json:"lastPlayedLevelId"`
	Levels            map[int]LevelProgress `json:"levels"`
}

// Completion is a solved attempt handed over by a play session.
type Completion struct {
	LevelID int
	Stars   int
	Elapsed int // seconds

	// NextLevelID is the level that follows in the active play order, 0 if none.
	NextLevelID int
}

// List is the hydrated progress in catalog order.
type List []LevelProgress

// Find returns the progress for a level id.
func (l List) Find(levelID int) (LevelProgress, bool) {
	for _, p := range l {
		if p.LevelID == levelID {
			return p, true
		}
	}
	return LevelProgress{}, false
}

// Apply merges a completion and returns the updated copy.
// The receiver is left untouched.
func (l List) Apply(c Completion) List {
	out := make(List, len(l))
	copy(out, l)

	for i := range out {
		p := &out[i]
		if p.LevelID == c.LevelID {
			p.Stars = max(p.Stars, c.Stars)
			best := c.Elapsed
			if p.BestTime != nil {
				best = min(*p.BestTime, c.Elapsed)
			}
			p.BestTime = &best
		}
	}

	if c.NextLevelID != 0 {
		for i := range out {
			if out[i].LevelID == c.NextLevelID {
				out[i].Unlocked = true
			}
		}
	}
	return out
}

// CanContinue reports whether there is anything to resume: a level with
// stars, or an unlocked level beyond the first.
func (l List) CanContinue() bool {
	for i, p := range l {
		if p.Stars > 0 || (p.Unlocked && i > 0) {
			return true
		}
	}
	return false
}

// TotalStars sums stars across all levels.
func (l List) TotalStars() int {
	total := 0
	for _, p := range l {
		total += p.Stars
	}
	return total
}

// Completed counts levels with at least one star.
func (l List) Completed() int {
	n := 0
	for _, p := range l {
		if p.Stars > 0 {
			n++
		}
	}
	return n
}

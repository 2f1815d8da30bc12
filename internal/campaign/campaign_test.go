package campaign

import (
	"bytes"
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chronolink/internal/catalog"
	"github.com/vovakirdan/chronolink/internal/progress"
	"github.com/vovakirdan/chronolink/internal/puzzle"
	"github.com/vovakirdan/chronolink/internal/session"
)

func testCatalog(ids ...int) catalog.Catalog {
	var cat catalog.Catalog
	for _, id := range ids {
		cat.Levels = append(cat.Levels, catalog.Level{
			ID:   id,
			Name: "level",
			Pieces: []puzzle.PieceDef{
				{ID: "a", CorrectIndex: 0},
				{ID: "b", CorrectIndex: 1},
				{ID: "c", CorrectIndex: 2},
			},
			Thresholds: catalog.Thresholds{ThreeStar: 8, TwoStar: 15},
		})
	}
	return cat
}

type recorder struct {
	runs []session.Completion
	err  error
}

func (r *recorder) RecordRun(levelID, stars, seconds int) error {
	r.runs = append(r.runs, session.Completion{LevelID: levelID, Stars: stars, Elapsed: seconds})
	return r.err
}

func solve(t *testing.T, ctrl *session.Controller) {
	t.Helper()
	pieces := ctrl.Pieces()
	sort.Slice(pieces, func(i, j int) bool { return pieces[i].CorrectIndex < pieces[j].CorrectIndex })
	require.True(t, ctrl.Reorder(pieces))
	for _, p := range ctrl.Pieces() {
		for r := p.Rotation; !r.Upright(); r = r.Add90() {
			require.True(t, ctrl.Rotate(p.InstanceID))
		}
	}
	require.True(t, ctrl.Ready())
}

func TestFullRunScenario(t *testing.T) {
	kv := progress.NewMemoryKV()
	store := progress.New(kv)
	c := New(testCatalog(1, 2, 3), store)

	ctrl := c.Play(rand.New(rand.NewSource(1)), session.Hooks{})
	solve(t, ctrl)
	for i := 0; i < 7; i++ {
		ctrl.Tick()
	}

	res := ctrl.Check()
	require.True(t, res.Solved)
	assert.Equal(t, 3, res.Stars)

	out, ok := c.LastOutcome()
	require.True(t, ok)
	assert.Equal(t, 2, out.NextLevelID)
	assert.False(t, out.Victory)
	assert.True(t, out.NewBest)

	list := c.Progress()
	assert.Equal(t, 3, list[0].Stars)
	require.NotNil(t, list[0].BestTime)
	assert.Equal(t, 7, *list[0].BestTime)
	assert.True(t, list[0].Unlocked)
	assert.True(t, list[1].Unlocked)
	assert.False(t, list[2].Unlocked)

	// The save was written and hydrates back to the same state.
	assert.Equal(t, list, progress.New(kv).Hydrate(testCatalog(1, 2, 3)))
	assert.Equal(t, 2, c.Current().ID)
}

func TestCompleteLastLevelIsVictory(t *testing.T) {
	c := New(testCatalog(1, 2), nil)
	require.True(t, c.Select(0))

	out, ok := c.Complete(session.Completion{LevelID: 1, Stars: 2, Elapsed: 10})
	require.True(t, ok)
	assert.False(t, out.Victory)
	assert.True(t, c.IsLastLevel())

	out, ok = c.Complete(session.Completion{LevelID: 2, Stars: 1, Elapsed: 30})
	require.True(t, ok)
	assert.True(t, out.Victory)
	assert.Zero(t, out.NextLevelID)
	assert.Equal(t, 2, c.Current().ID, "index stays on the last level")
}

func TestCompleteIgnoresStaleLevel(t *testing.T) {
	c := New(testCatalog(1, 2), nil)
	_, ok := c.Complete(session.Completion{LevelID: 2, Stars: 3, Elapsed: 1})
	assert.False(t, ok)
	assert.False(t, c.Progress()[1].Unlocked)
}

func TestCompleteLogsLevelID(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	rec := &recorder{err: errors.New("db locked")}
	c := New(testCatalog(7, 8), nil, WithLogger(logger), WithRunRecorder(rec))

	_, ok := c.Complete(session.Completion{LevelID: 8, Stars: 3, Elapsed: 5})
	require.False(t, ok)
	_, ok = c.Complete(session.Completion{LevelID: 7, Stars: 3, Elapsed: 5})
	require.True(t, ok)

	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		assert.Contains(t, string(line), "level_id=", "line %q", line)
	}
	assert.Contains(t, buf.String(), "level complete")
	assert.Contains(t, buf.String(), "level_id=7")
	assert.Contains(t, buf.String(), "level_id=8")
}

func TestRemixUnlocksInActiveOrder(t *testing.T) {
	c := New(testCatalog(1, 2, 3, 4, 5), nil)
	c.Remix(rand.New(rand.NewSource(42)))
	require.True(t, c.Remixed())

	pos, total := c.Position()
	assert.Equal(t, 1, pos)
	assert.Equal(t, 5, total)

	// Pin the order so the unlock target is known.
	c.order = []catalog.Level{c.cat.Levels[3], c.cat.Levels[0], c.cat.Levels[4], c.cat.Levels[1], c.cat.Levels[2]}

	out, ok := c.Complete(session.Completion{LevelID: 4, Stars: 1, Elapsed: 40})
	require.True(t, ok)
	assert.Equal(t, 1, out.NextLevelID)
	assert.Equal(t, 1, c.Current().ID)

	out, _ = c.Complete(session.Completion{LevelID: 1, Stars: 3, Elapsed: 5})
	assert.Equal(t, 5, out.NextLevelID)

	list := c.Progress()
	p5, _ := list.Find(5)
	assert.True(t, p5.Unlocked, "next in remix order")
	p2, _ := list.Find(2)
	assert.False(t, p2.Unlocked, "canonical successor is not unlocked by a remix run")
}

func TestRemixKeepsLevelSet(t *testing.T) {
	c := New(testCatalog(1, 2, 3, 4, 5, 6), nil)
	c.Remix(rand.New(rand.NewSource(7)))

	var ids []int
	for i := 0; i < 6; i++ {
		ids = append(ids, c.order[i].ID)
	}
	assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6}, ids)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, c.cat.IDs(), "canonical order untouched")
}

func TestSelect(t *testing.T) {
	c := New(testCatalog(1, 2, 3), nil)
	c.Remix(rand.New(rand.NewSource(3)))

	assert.True(t, c.Select(0))
	assert.False(t, c.Remixed(), "select resets to canonical order")
	assert.False(t, c.Select(1), "locked")
	assert.False(t, c.Select(-1))
	assert.False(t, c.Select(3))

	c.Complete(session.Completion{LevelID: 1, Stars: 1, Elapsed: 20})
	assert.True(t, c.Select(1))
	assert.Equal(t, 2, c.Current().ID)
}

func TestContinue(t *testing.T) {
	tests := []struct {
		name  string
		save  string
		index int
	}{
		{"fresh", "", 0},
		{"unlocked without stars", `{"version":1,"levels":{"1":{"levelId":1,"stars":2,"unlocked":true},"2":{"levelId":2,"stars":0,"unlocked":true}}}`, 1},
		{"highest unlocked has stars", `{"version":1,"levels":{"1":{"levelId":1,"stars":2,"unlocked":true},"2":{"levelId":2,"stars":1,"unlocked":true},"3":{"levelId":3,"unlocked":true}}}`, 2},
		{"last level done", `{"version":1,"levels":{"1":{"levelId":1,"stars":2,"unlocked":true},"2":{"levelId":2,"stars":1,"unlocked":true},"3":{"levelId":3,"stars":3,"unlocked":true}}}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := progress.NewMemoryKV()
			if tt.save != "" {
				require.NoError(t, kv.Set(progress.DefaultKey, []byte(tt.save)))
			}
			c := New(testCatalog(1, 2, 3), progress.New(kv))
			assert.Equal(t, tt.index, c.Continue())
			assert.Equal(t, tt.index, c.Current().ID-1)
		})
	}
}

func TestCanContinue(t *testing.T) {
	c := New(testCatalog(1, 2), nil)
	assert.False(t, c.CanContinue())

	c.Complete(session.Completion{LevelID: 1, Stars: 1, Elapsed: 99})
	assert.True(t, c.CanContinue())
}

func TestRunRecorder(t *testing.T) {
	rec := &recorder{err: errors.New("db locked")}
	c := New(testCatalog(1, 2), nil, WithRunRecorder(rec))

	_, ok := c.Complete(session.Completion{LevelID: 1, Stars: 2, Elapsed: 12})
	require.True(t, ok, "recorder failure must not block progress")
	assert.Equal(t, []session.Completion{{LevelID: 1, Stars: 2, Elapsed: 12}}, rec.runs)
	assert.True(t, c.Progress()[1].Unlocked)
}

func TestNewBest(t *testing.T) {
	c := New(testCatalog(1, 2), nil)

	out, _ := c.Complete(session.Completion{LevelID: 1, Stars: 2, Elapsed: 12})
	assert.True(t, out.NewBest)

	c.Select(0)
	out, _ = c.Complete(session.Completion{LevelID: 1, Stars: 1, Elapsed: 20})
	assert.False(t, out.NewBest)

	c.Select(0)
	out, _ = c.Complete(session.Completion{LevelID: 1, Stars: 2, Elapsed: 11})
	assert.True(t, out.NewBest)
}

func TestReset(t *testing.T) {
	kv := progress.NewMemoryKV()
	c := New(testCatalog(1, 2), progress.New(kv))
	c.Complete(session.Completion{LevelID: 1, Stars: 3, Elapsed: 4})
	require.True(t, c.CanContinue())

	require.NoError(t, c.Reset())
	assert.False(t, c.CanContinue())
	_, ok, _ := kv.Get(progress.DefaultKey)
	assert.False(t, ok)
}

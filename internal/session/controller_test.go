package session

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chronolink/internal/catalog"
	"github.com/vovakirdan/chronolink/internal/puzzle"
)

func testLevel(id, n int) catalog.Level {
	lvl := catalog.Level{
		ID:         id,
		Name:       "test",
		Thresholds: catalog.Thresholds{ThreeStar: 8, TwoStar: 15},
	}
	for i := 0; i < n; i++ {
		lvl.Pieces = append(lvl.Pieces, puzzle.PieceDef{
			ID:           string(rune('a' + i)),
			Label:        string(rune('A' + i)),
			CorrectIndex: i,
		})
	}
	return lvl
}

// arrange puts every piece in its correct slot without touching rotations.
func arrange(t *testing.T, c *Controller) {
	t.Helper()
	sorted := c.Pieces()
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].CorrectIndex < sorted[j].CorrectIndex })
	require.True(t, c.Reorder(sorted))
}

// straighten rotates every piece until it is upright.
func straighten(t *testing.T, c *Controller) {
	t.Helper()
	for _, p := range c.Pieces() {
		for turns := 0; !p.Upright(); turns++ {
			require.Less(t, turns, 4)
			require.True(t, c.Rotate(p.InstanceID))
			p = find(c, p.InstanceID)
		}
	}
}

func find(c *Controller, id string) puzzle.Instance {
	for _, p := range c.Pieces() {
		if p.InstanceID == id {
			return p
		}
	}
	return puzzle.Instance{}
}

func TestNewStartsActive(t *testing.T) {
	c := New(testLevel(1, 4), rand.New(rand.NewSource(1)), Hooks{})

	assert.Equal(t, StateActive, c.State())
	assert.Zero(t, c.Elapsed())
	assert.Zero(t, c.Stars())
	assert.Len(t, c.Pieces(), 4)
	assert.True(t, c.Running())
}

func TestRotateFourTimesRestoresState(t *testing.T) {
	c := New(testLevel(1, 3), rand.New(rand.NewSource(2)), Hooks{})
	arrange(t, c)
	straighten(t, c)
	require.True(t, c.Ready())

	id := c.Pieces()[1].InstanceID
	for i := 0; i < 3; i++ {
		require.True(t, c.Rotate(id))
		assert.False(t, c.Ready())
	}
	require.True(t, c.Rotate(id))
	assert.True(t, c.Ready())
	assert.Equal(t, puzzle.Rotation(0), find(c, id).Rotation)
}

func TestRotateUnknownID(t *testing.T) {
	c := New(testLevel(1, 2), rand.New(rand.NewSource(3)), Hooks{})
	assert.False(t, c.Rotate("nope"))
}

func TestReorderRejectsNonPermutations(t *testing.T) {
	c := New(testLevel(1, 3), rand.New(rand.NewSource(4)), Hooks{})
	live := c.Pieces()

	assert.False(t, c.Reorder(live[:2]), "short")
	assert.False(t, c.Reorder([]puzzle.Instance{live[0], live[0], live[1]}), "duplicate")
	stranger := live[2]
	stranger.InstanceID = "stranger"
	assert.False(t, c.Reorder([]puzzle.Instance{live[0], live[1], stranger}), "foreign")
	assert.Equal(t, live, c.Pieces())
}

func TestReorderKeepsLiveRotation(t *testing.T) {
	c := New(testLevel(1, 2), rand.New(rand.NewSource(5)), Hooks{})
	stale := c.Pieces()

	id := stale[0].InstanceID
	before := stale[0].Rotation
	require.True(t, c.Rotate(id))

	require.True(t, c.Reorder([]puzzle.Instance{stale[1], stale[0]}))
	assert.Equal(t, before.Add90(), c.Pieces()[1].Rotation)
}

func TestMove(t *testing.T) {
	c := New(testLevel(1, 4), rand.New(rand.NewSource(6)), Hooks{})
	live := c.Pieces()

	require.True(t, c.Move(0, 3))
	got := c.Pieces()
	assert.Equal(t, live[0].InstanceID, got[3].InstanceID)
	assert.Equal(t, live[1].InstanceID, got[0].InstanceID)

	require.True(t, c.Move(3, 0))
	assert.Equal(t, live, c.Pieces())

	assert.False(t, c.Move(-1, 0))
	assert.False(t, c.Move(0, 4))
	assert.True(t, c.Move(2, 2))
}

func TestCheckInvalidKeepsClockRunning(t *testing.T) {
	invalid := 0
	c := New(testLevel(1, 3), rand.New(rand.NewSource(7)), Hooks{
		OnInvalid: func() { invalid++ },
	})
	arrange(t, c)
	// Guarantee an unsolved arrangement.
	first := c.Pieces()[0]
	if first.Upright() {
		require.True(t, c.Rotate(first.InstanceID))
	}

	c.Tick()
	res := c.Check()
	assert.True(t, res.Accepted)
	assert.False(t, res.Solved)
	assert.Equal(t, 1, invalid)
	assert.Equal(t, StateActive, c.State())

	assert.True(t, c.Tick())
	assert.Equal(t, 2, c.Elapsed())
}

func TestStarsFromElapsed(t *testing.T) {
	tests := []struct {
		elapsed int
		stars   int
	}{
		{0, 3},
		{8, 3},
		{9, 2},
		{15, 2},
		{16, 1},
		{120, 1},
	}

	for _, tt := range tests {
		c := New(testLevel(1, 3), rand.New(rand.NewSource(8)), Hooks{})
		for i := 0; i < tt.elapsed; i++ {
			c.Tick()
		}
		arrange(t, c)
		straighten(t, c)

		res := c.Check()
		assert.True(t, res.Solved)
		assert.Equal(t, tt.stars, res.Stars, "elapsed %d", tt.elapsed)
		assert.Equal(t, tt.stars, c.Stars())
	}
}

func TestSolvedSessionIgnoresCommands(t *testing.T) {
	var completions []Completion
	c := New(testLevel(4, 3), rand.New(rand.NewSource(9)), Hooks{
		OnSolved: func(done Completion) { completions = append(completions, done) },
	})
	c.Tick()
	arrange(t, c)
	straighten(t, c)
	require.True(t, c.Check().Solved)

	snapshot := c.Pieces()
	assert.False(t, c.Rotate(snapshot[0].InstanceID))
	assert.False(t, c.Reorder([]puzzle.Instance{snapshot[2], snapshot[1], snapshot[0]}))
	assert.False(t, c.Move(0, 1))
	assert.False(t, c.Tick())
	assert.Equal(t, snapshot, c.Pieces())
	assert.Equal(t, 1, c.Elapsed())

	again := c.Check()
	assert.False(t, again.Accepted)
	assert.True(t, again.Solved)
	assert.Equal(t, []Completion{{LevelID: 4, Stars: 3, Elapsed: 1}}, completions)

	c.Leave()
	assert.Equal(t, StateSolved, c.State())
}

func TestLeaveStopsClockOnce(t *testing.T) {
	c := New(testLevel(1, 2), rand.New(rand.NewSource(10)), Hooks{})
	c.Tick()
	c.Leave()

	assert.Equal(t, StateAbandoned, c.State())
	assert.False(t, c.Running())
	assert.False(t, c.Tick())
	assert.Equal(t, 1, c.Elapsed())

	c.Leave()
	assert.Equal(t, StateAbandoned, c.State())
	assert.False(t, c.Rotate(c.Pieces()[0].InstanceID))
	assert.False(t, c.Check().Accepted)
}

func TestReadyRisingEdge(t *testing.T) {
	edges := 0
	c := New(testLevel(1, 3), rand.New(rand.NewSource(11)), Hooks{
		OnReady: func() { edges++ },
	})
	arrange(t, c)
	// Start from a known unsolved state.
	first := c.Pieces()[0]
	if first.Upright() {
		require.True(t, c.Rotate(first.InstanceID))
	}
	edges = 0

	straighten(t, c)
	assert.True(t, c.Ready())
	assert.Equal(t, 1, edges)

	// Steady state: a no-op move keeps ready without a new edge.
	require.True(t, c.Move(1, 1))
	assert.Equal(t, 1, edges)

	// Break and restore: a second edge.
	id := c.Pieces()[2].InstanceID
	for i := 0; i < 4; i++ {
		require.True(t, c.Rotate(id))
	}
	assert.True(t, c.Ready())
	assert.Equal(t, 2, edges)
}

func TestNewPresolvedScrambleStartsReadyWithoutEdge(t *testing.T) {
	presolved := 0
	for seed := int64(1); seed <= 200; seed++ {
		edges := 0
		c := New(testLevel(1, 1), rand.New(rand.NewSource(seed)), Hooks{
			OnReady: func() { edges++ },
		})
		if !c.Ready() {
			continue
		}
		presolved++
		assert.Zero(t, edges, "seed %d", seed)

		id := c.Pieces()[0].InstanceID
		require.True(t, c.Rotate(id))
		assert.False(t, c.Ready())
		for i := 0; i < 3; i++ {
			require.True(t, c.Rotate(id))
		}
		assert.True(t, c.Ready())
		assert.Equal(t, 1, edges, "seed %d", seed)
	}
	require.NotZero(t, presolved)
}

func TestOnRotateHook(t *testing.T) {
	var rotated []string
	c := New(testLevel(1, 2), rand.New(rand.NewSource(12)), Hooks{
		OnRotate: func(id string) { rotated = append(rotated, id) },
	})
	id := c.Pieces()[0].InstanceID
	c.Rotate(id)
	c.Rotate("missing")
	assert.Equal(t, []string{id}, rotated)
}

func TestConnectionsFollowArrangement(t *testing.T) {
	c := New(testLevel(1, 3), rand.New(rand.NewSource(13)), Hooks{})
	arrange(t, c)
	straighten(t, c)
	assert.Equal(t, []bool{true, true}, c.Connections())

	require.True(t, c.Rotate(c.Pieces()[1].InstanceID))
	assert.Equal(t, []bool{false, false}, c.Connections())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "active", StateActive.String())
	assert.Equal(t, "abandoned", StateAbandoned.String())
	assert.Equal(t, "unknown", State(42).String())
}

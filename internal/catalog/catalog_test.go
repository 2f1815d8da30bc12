package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/chronolink/internal/puzzle"
)

func TestThresholdsStars(t *testing.T) {
	th := Thresholds{ThreeStar: 8, TwoStar: 15}

	tests := []struct {
		elapsed int
		want    int
	}{
		{0, 3},
		{8, 3},
		{9, 2},
		{15, 2},
		{16, 1},
		{600, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, th.Stars(tt.elapsed), "elapsed=%d", tt.elapsed)
	}
}

func TestDefaultCatalogIsValid(t *testing.T) {
	cat := Default()
	require.NoError(t, cat.Validate())
	assert.Equal(t, 40, cat.Len())

	first, ok := cat.Get(0)
	require.True(t, ok)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, Thresholds{ThreeStar: 8, TwoStar: 15}, first.Thresholds)
	require.Len(t, first.Pieces, 3)
	assert.Equal(t, "IN_0", first.Pieces[0].EntryPoint)
	assert.Equal(t, "OUT_2", first.Pieces[2].ExitPoint)
}

func TestCatalogLookup(t *testing.T) {
	cat := Default()
	assert.Equal(t, 0, cat.Index(1))
	assert.Equal(t, 39, cat.Index(40))
	assert.Equal(t, -1, cat.Index(999))

	_, ok := cat.Get(-1)
	assert.False(t, ok)
	_, ok = cat.Get(cat.Len())
	assert.False(t, ok)

	ids := cat.IDs()
	assert.Len(t, ids, 40)
	assert.Equal(t, 1, ids[0])
}

func level(id int, three, two int, indices ...int) Level {
	lvl := Level{ID: id, Name: "L", Thresholds: Thresholds{ThreeStar: three, TwoStar: two}}
	for i, idx := range indices {
		lvl.Pieces = append(lvl.Pieces, puzzle.PieceDef{ID: string(rune('a' + i)), CorrectIndex: idx})
	}
	return lvl
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cat  Catalog
		want error
	}{
		{"empty", Catalog{}, ErrEmptyCatalog},
		{"zero id", Catalog{Levels: []Level{level(0, 1, 2, 0)}}, ErrBadLevelID},
		{"duplicate id", Catalog{Levels: []Level{level(1, 1, 2, 0), level(1, 1, 2, 0)}}, ErrDuplicateLevelID},
		{"no pieces", Catalog{Levels: []Level{level(1, 1, 2)}}, ErrNoPieces},
		{"equal thresholds", Catalog{Levels: []Level{level(1, 5, 5, 0)}}, ErrBadThresholds},
		{"inverted thresholds", Catalog{Levels: []Level{level(1, 9, 5, 0)}}, ErrBadThresholds},
		{"repeated index", Catalog{Levels: []Level{level(1, 1, 2, 0, 0)}}, ErrBadCorrectIndex},
		{"index gap", Catalog{Levels: []Level{level(1, 1, 2, 0, 2)}}, ErrBadCorrectIndex},
		{"negative index", Catalog{Levels: []Level{level(1, 1, 2, -1)}}, ErrBadCorrectIndex},
		{"valid shuffled indices", Catalog{Levels: []Level{level(1, 1, 2, 2, 0, 1)}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cat.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestValidateDuplicatePieceID(t *testing.T) {
	lvl := level(1, 1, 2, 0, 1)
	lvl.Pieces[1].ID = lvl.Pieces[0].ID
	err := Catalog{Levels: []Level{lvl}}.Validate()
	assert.ErrorIs(t, err, ErrDuplicatePieceID)
}

const customYAML = `
levels:
  - id: 7
    name: Custom
    stars: [5, 9]
    pieces:
      - {id: b, label: Second, index: 1}
      - {id: a, label: First, index: 0, entry: north}
  - id: 3
    name: Implicit
    stars: [4, 8]
    pieces:
      - {id: x, label: X}
      - {id: y, label: Y}
`

func TestParse(t *testing.T) {
	cat, err := Parse([]byte(customYAML))
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	custom := cat.Levels[0]
	assert.Equal(t, 7, custom.ID)
	assert.Equal(t, 1, custom.Pieces[0].CorrectIndex)
	assert.Equal(t, "north", custom.Pieces[1].EntryPoint)
	assert.Equal(t, "OUT_0", custom.Pieces[1].ExitPoint)

	implicit := cat.Levels[1]
	assert.Equal(t, 0, implicit.Pieces[0].CorrectIndex)
	assert.Equal(t, 1, implicit.Pieces[1].CorrectIndex)
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse([]byte("levels: [{id: 1, name: x, stars: [9, 3], pieces: [{id: a}]}]"))
	assert.ErrorIs(t, err, ErrBadThresholds)

	_, err = Parse([]byte("levels: {not: a list"))
	assert.Error(t, err)
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "levels.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customYAML), 0o600))

	cat, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 3}, cat.IDs())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

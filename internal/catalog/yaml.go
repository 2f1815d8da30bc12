package catalog

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/chronolink/internal/puzzle"
)

// YAMLCatalog is the on-disk structure of a level catalog file.
type YAMLCatalog struct {
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel represents a single level in YAML format.
type YAMLLevel struct {
	ID     int         `yaml:"id"`
	Name   string      `yaml:"name"`
	Stars  [2]int      `yaml:"stars"` // [three-star max, two-star max] in seconds
	Pieces []YAMLPiece `yaml:"pieces"`
}

// YAMLPiece represents a piece in YAML format.
// Index defaults to the piece's position in the list when omitted.
type YAMLPiece struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
	Glyph       string `yaml:"glyph,omitempty"`
	Index       *int   `yaml:"index,omitempty"`
	Entry       string `yaml:"entry,omitempty"`
	Exit        string `yaml:"exit,omitempty"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (Catalog, error) {
	var yc YAMLCatalog
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Catalog{}, fmt.Errorf("catalog: yaml unmarshal: %w", err)
	}

	cat := Catalog{Levels: make([]Level, 0, len(yc.Levels))}
	for _, yl := range yc.Levels {
		cat.Levels = append(cat.Levels, yl.toLevel())
	}

	if err := cat.Validate(); err != nil {
		return Catalog{}, err
	}
	return cat, nil
}

func (yl YAMLLevel) toLevel() Level {
	lvl := Level{
		ID:   yl.ID,
		Name: yl.Name,
		Thresholds: Thresholds{
			ThreeStar: yl.Stars[0],
			TwoStar:   yl.Stars[1],
		},
		Pieces: make([]puzzle.PieceDef, 0, len(yl.Pieces)),
	}

	for i, yp := range yl.Pieces {
		idx := i
		if yp.Index != nil {
			idx = *yp.Index
		}
		def := puzzle.PieceDef{
			ID:           yp.ID,
			Label:        yp.Label,
			Description:  yp.Description,
			Glyph:        yp.Glyph,
			CorrectIndex: idx,
			EntryPoint:   yp.Entry,
			ExitPoint:    yp.Exit,
		}
		lvl.Pieces = append(lvl.Pieces, def.WithDefaultConnectors())
	}
	return lvl
}

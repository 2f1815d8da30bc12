// Package puzzle implements the sequencing rules of chronolink: piece
// definitions, live piece instances, the sequence validator and the scrambler.
// Everything here is pure logic with no I/O; randomness is always injected.
package puzzle

import "fmt"

// PieceDef is an immutable step of a level's canonical sequence.
type PieceDef struct {
	ID          string `yaml:"id"`
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
	Glyph       string `yaml:"glyph,omitempty"`

	// CorrectIndex is the 0-based position of this piece in the solved sequence.
	CorrectIndex int `yaml:"index"`

	// EntryPoint and ExitPoint are connector identifiers kept for data
	// compatibility. Validation only looks at CorrectIndex adjacency.
	EntryPoint string `yaml:"entry,omitempty"`
	ExitPoint  string `yaml:"exit,omitempty"`
}

// WithDefaultConnectors fills empty connector ids with IN_<i> / OUT_<i>.
func (p PieceDef) WithDefaultConnectors() PieceDef {
	if p.EntryPoint == "" {
		p.EntryPoint = fmt.Sprintf("IN_%d", p.CorrectIndex)
	}
	if p.ExitPoint == "" {
		p.ExitPoint = fmt.Sprintf("OUT_%d", p.CorrectIndex)
	}
	return p
}

// Rotation is a clockwise orientation in degrees. Values are always
// multiples of 90.
type Rotation int

// Step is the amount a single rotate command adds.
const Step Rotation = 90

// Add90 returns the rotation turned one step clockwise, normalised to [0, 360).
func (r Rotation) Add90() Rotation {
	return (r + Step) % 360
}

// Upright reports whether the rotation is equivalent to 0 degrees.
// Negative values normalise through their absolute value.
func (r Rotation) Upright() bool {
	v := int(r)
	if v < 0 {
		v = -v
	}
	return v%360 == 0
}

// Quarter returns the number of clockwise quarter turns (0..3).
func (r Rotation) Quarter() int {
	q := (int(r) % 360) / 90
	if q < 0 {
		q += 4
	}
	return q
}

// Instance is a live, in-play copy of a piece with its own identity and rotation.
// Instances exist only for the duration of a play session.
type Instance struct {
	PieceDef
	InstanceID string
	Rotation   Rotation
}

// Upright reports whether the instance currently shows zero rotation.
func (in Instance) Upright() bool {
	return in.Rotation.Upright()
}

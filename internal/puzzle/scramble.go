package puzzle

import (
	"math/rand"

	"github.com/google/uuid"
)

// startRotations are the orientations a freshly scrambled piece can show.
var startRotations = [...]Rotation{0, 90, 180, 270}

// Scramble creates one instance per definition with a fresh instance id and a
// uniformly random rotation, then shuffles the order with Fisher-Yates.
// The result may already be solved; callers must handle that.
func Scramble(rng *rand.Rand, defs []PieceDef) []Instance {
	instances := make([]Instance, len(defs))
	for i, def := range defs {
		instances[i] = Instance{
			PieceDef:   def,
			InstanceID: newInstanceID(rng),
			Rotation:   startRotations[rng.Intn(len(startRotations))],
		}
	}

	fisherYates(rng, instances)
	return instances
}

// Shuffle returns a uniformly permuted copy of items. The input is not modified.
func Shuffle[T any](rng *rand.Rand, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	fisherYates(rng, out)
	return out
}

// fisherYates permutes s in place, walking from the last index down to 1.
func fisherYates[T any](rng *rand.Rand, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// newInstanceID draws a UUIDv4 from rng so seeded generators reproduce ids too.
func newInstanceID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

package puzzle

// IsSolved reports whether every piece sits at its correct index and is upright.
// An empty sequence is never solved.
func IsSolved(seq []Instance) bool {
	if len(seq) == 0 {
		return false
	}

	for i, p := range seq {
		if p.CorrectIndex != i {
			return false
		}
		if !p.Upright() {
			return false
		}
	}
	return true
}

// AreConnected reports whether right directly follows left in the canonical
// order and both are upright. Absolute position in the arrangement is not
// considered, so a correct pair in the wrong place still connects.
func AreConnected(left, right Instance) bool {
	return right.CorrectIndex-left.CorrectIndex == 1 &&
		left.Upright() &&
		right.Upright()
}

// ConnectedPairs returns one flag per adjacent pair: result[i] describes
// the link between seq[i] and seq[i+1].
func ConnectedPairs(seq []Instance) []bool {
	if len(seq) < 2 {
		return nil
	}

	pairs := make([]bool, len(seq)-1)
	for i := 0; i < len(seq)-1; i++ {
		pairs[i] = AreConnected(seq[i], seq[i+1])
	}
	return pairs
}

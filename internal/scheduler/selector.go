package scheduler

// Select draws one candidate uniformly at random. The interleaving of
// question kinds comes from mixing both pools before the draw, not from
// weighting one kind over the other.
func Select(candidates []Candidate, rng Rand) (Candidate, error) {
	if len(candidates) == 0 {
		return Candidate{}, ErrNoCandidates
	}
	return candidates[rng.IntN(len(candidates))], nil
}

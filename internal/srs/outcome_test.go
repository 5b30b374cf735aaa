package srs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwalsh/recall/internal/srs"
)

func TestNormalizeScore_PassThrough(t *testing.T) {
	for score := 1; score <= 5; score++ {
		q, err := srs.NormalizeScore(score)
		require.NoError(t, err)
		assert.Equal(t, srs.Quality(score), q)
	}
}

func TestNormalizeScore_OutOfRange(t *testing.T) {
	for _, score := range []int{0, 6, -1, 100} {
		_, err := srs.NormalizeScore(score)
		assert.ErrorIs(t, err, srs.ErrInvalidOutcome, "score %d", score)
	}
}

func TestNormalizeCorrect(t *testing.T) {
	assert.Equal(t, srs.Quality(4), srs.NormalizeCorrect(true))
	assert.Equal(t, srs.Quality(2), srs.NormalizeCorrect(false))
}

// Both item kinds feed the same Advance. For equal (state, quality) inputs
// the results must be identical regardless of where the quality came from.
func TestNormalizedOutcomes_SameAdvancePath(t *testing.T) {
	state := srs.NewSchedule(now)

	fromScore, err := srs.NormalizeScore(4)
	require.NoError(t, err)
	fromCorrect := srs.NormalizeCorrect(true)

	require.Equal(t, fromScore, fromCorrect)
	assert.Equal(t,
		srs.Advance(state, fromScore, now),
		srs.Advance(state, fromCorrect, now),
	)
}

package srs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/srs"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func schedule(ease float64, interval int) models.Schedule {
	return models.Schedule{EaseFactor: ease, IntervalDays: interval, NextReviewAt: now}
}

func TestAdvance_FailureResetsInterval(t *testing.T) {
	for _, q := range []srs.Quality{1, 2} {
		for _, interval := range []int{0, 1, 10, 365} {
			next := srs.Advance(schedule(2.5, interval), q, now)

			assert.Equal(t, 0, next.IntervalDays, "quality %d, interval %d", q, interval)
			assert.Equal(t, now.Add(10*time.Minute), next.NextReviewAt,
				"failed items come back in ten minutes")
		}
	}
}

func TestAdvance_FailureReducesEase(t *testing.T) {
	next := srs.Advance(schedule(2.5, 10), 2, now)
	assert.InDelta(t, 2.3, next.EaseFactor, 1e-9)
}

func TestAdvance_FirstSuccess(t *testing.T) {
	next := srs.Advance(schedule(2.5, 0), 4, now)

	assert.Equal(t, 1, next.IntervalDays)
	assert.Equal(t, now.AddDate(0, 0, 1), next.NextReviewAt)
}

func TestAdvance_SecondSuccess(t *testing.T) {
	next := srs.Advance(schedule(2.5, 1), 4, now)
	assert.Equal(t, 3, next.IntervalDays)
}

func TestAdvance_IntervalGrowsByEase(t *testing.T) {
	// Interval growth uses the ease the item carried into the review:
	// 10 * 2.5 = 25, even though a perfect answer raises ease to 2.6.
	next := srs.Advance(schedule(2.5, 10), 5, now)

	assert.Equal(t, 25, next.IntervalDays)
	assert.InDelta(t, 2.6, next.EaseFactor, 1e-9)
	assert.Equal(t, now.AddDate(0, 0, 25), next.NextReviewAt)
}

func TestAdvance_EaseAdjustmentByQuality(t *testing.T) {
	tests := []struct {
		quality  srs.Quality
		expected float64
	}{
		{5, 2.6},  // +0.1
		{4, 2.5},  // unchanged
		{3, 2.36}, // -0.14
	}

	for _, tt := range tests {
		next := srs.Advance(schedule(2.5, 5), tt.quality, now)
		assert.InDelta(t, tt.expected, next.EaseFactor, 1e-9, "quality %d", tt.quality)
	}
}

func TestAdvance_EaseNeverBelowFloor(t *testing.T) {
	s := schedule(1.3, 10)
	for i := 0; i < 20; i++ {
		s = srs.Advance(s, 1, now)
		require.GreaterOrEqual(t, s.EaseFactor, 1.3)
	}

	// The success formula can also push downward (quality 3 subtracts 0.14).
	s = schedule(1.3, 5)
	for i := 0; i < 20; i++ {
		s = srs.Advance(s, 3, now)
		require.GreaterOrEqual(t, s.EaseFactor, 1.3)
	}
}

func TestAdvance_IntervalCap(t *testing.T) {
	next := srs.Advance(schedule(2.5, 300), 5, now)
	assert.Equal(t, 365, next.IntervalDays)

	// Repeated perfect reviews stay at the cap.
	s := schedule(2.5, 365)
	for i := 0; i < 5; i++ {
		s = srs.Advance(s, 5, now)
		require.Equal(t, 365, s.IntervalDays)
	}
}

func TestAdvance_OutOfRangeQualityClamped(t *testing.T) {
	// Defends the state machine even if a caller skips normalization.
	fail := srs.Advance(schedule(2.5, 10), 0, now)
	assert.Equal(t, 0, fail.IntervalDays)

	pass := srs.Advance(schedule(2.5, 0), 7, now)
	assert.Equal(t, 1, pass.IntervalDays)
}

func TestAdvance_FailureThenRecovery(t *testing.T) {
	s := schedule(2.5, 10)

	s = srs.Advance(s, 2, now)
	assert.Equal(t, 0, s.IntervalDays)

	s = srs.Advance(s, 4, now)
	assert.Equal(t, 1, s.IntervalDays, "first success after a reset restarts the ladder")

	s = srs.Advance(s, 4, now)
	assert.Equal(t, 3, s.IntervalDays)
}

func TestNewSchedule(t *testing.T) {
	s := srs.NewSchedule(now)

	assert.Equal(t, srs.InitialEase, s.EaseFactor)
	assert.Equal(t, 0, s.IntervalDays)
	assert.Equal(t, now, s.NextReviewAt)
}

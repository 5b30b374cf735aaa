package srs

import (
	"math"
	"time"

	"github.com/dwalsh/recall/internal/models"
)

const (
	// InitialEase is the ease factor assigned to never-reviewed items.
	InitialEase = 2.5
	// MinEase is the floor below which items become impossible to escape.
	MinEase = 1.3
	// MaxIntervalDays caps the interval so items never disappear for good.
	MaxIntervalDays = 365
	// failureRetry is how soon a failed item comes back.
	failureRetry = 10 * time.Minute
)

// NewSchedule returns the schedule state of an item that was just created:
// due immediately with the default ease.
func NewSchedule(now time.Time) models.Schedule {
	return models.Schedule{
		EaseFactor:   InitialEase,
		IntervalDays: 0,
		NextReviewAt: now,
	}
}

// Advance computes the next schedule state from the current state and the
// review quality. Pure and total: same inputs, same output, no side effects.
// Static questions and math templates share this one implementation.
//
// Failure (quality < 3) resets the interval and brings the item back in ten
// minutes; a near-term re-exposure beats waiting a full day after a miss.
// Success walks the 0 -> 1 -> 3 -> interval*ease progression, with the
// interval growing from the ease the item had going into this review and the
// ease adjusted by the SM-2 formula for the next one.
func Advance(s models.Schedule, q Quality, now time.Time) models.Schedule {
	if q < QualityMin {
		q = QualityMin
	} else if q > QualityMax {
		q = QualityMax
	}

	if q < 3 {
		return models.Schedule{
			EaseFactor:   clampEase(s.EaseFactor - 0.2),
			IntervalDays: 0,
			NextReviewAt: now.Add(failureRetry),
		}
	}

	var interval int
	switch {
	case s.IntervalDays == 0:
		interval = 1
	case s.IntervalDays == 1:
		interval = 3
	default:
		interval = int(math.Round(float64(s.IntervalDays) * s.EaseFactor))
	}
	if interval > MaxIntervalDays {
		interval = MaxIntervalDays
	}

	// EF' = EF + (0.1 - (5-q) * (0.08 + (5-q) * 0.02))
	penalty := float64(QualityMax - q)
	ease := clampEase(s.EaseFactor + 0.1 - penalty*(0.08+penalty*0.02))

	return models.Schedule{
		EaseFactor:   ease,
		IntervalDays: interval,
		NextReviewAt: now.AddDate(0, 0, interval),
	}
}

func clampEase(ease float64) float64 {
	if ease < MinEase {
		return MinEase
	}
	// Two decimals is plenty of precision and keeps stored values stable.
	return math.Round(ease*100) / 100
}

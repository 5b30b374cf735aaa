package srs

import (
	"errors"
	"fmt"
)

// Quality is the normalized 1-5 ordinal outcome of a single review.
// 5 perfect, 4 correct with hesitation, 3 correct with difficulty,
// 2 incorrect but close, 1 complete failure.
type Quality int

const (
	QualityMin Quality = 1
	QualityMax Quality = 5
)

// ErrInvalidOutcome reports a quality score outside the 1-5 scale.
// This indicates a broken grading collaborator, not bad user input.
var ErrInvalidOutcome = errors.New("quality score outside 1-5 range")

// NormalizeScore validates a free-text grading score as a Quality.
func NormalizeScore(score int) (Quality, error) {
	if score < int(QualityMin) || score > int(QualityMax) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidOutcome, score)
	}
	return Quality(score), nil
}

// NormalizeCorrect maps a binary math outcome onto the quality scale.
// Correct maps to 4 and incorrect to 2: a solid pass and a solid fail,
// deliberately avoiding quality 1 so a miss on randomized numbers never
// triggers the harshest penalty.
func NormalizeCorrect(correct bool) Quality {
	if correct {
		return 4
	}
	return 2
}

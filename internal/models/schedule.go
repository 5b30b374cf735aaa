package models

import "time"

// Schedule is the spaced-repetition state attached to a reviewable item.
// It is owned 1:1 by a static question or by a math template, never by a
// generated math question instance.
type Schedule struct {
	EaseFactor   float64   `json:"ease_factor"`
	IntervalDays int       `json:"interval_days"`
	NextReviewAt time.Time `json:"next_review_at"`
}

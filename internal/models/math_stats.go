package models

import "time"

// TemplateProgressStat is one row of the math stats report. Templates that
// were never attempted appear with defaults and IsDue=true.
type TemplateProgressStat struct {
	TemplateType    string     `json:"template_type"`
	Concept         string     `json:"concept"`
	Topic           string     `json:"topic"`
	EaseFactor      float64    `json:"ease_factor"`
	IntervalDays    int        `json:"interval_days"`
	NextReviewAt    *time.Time `json:"next_review_at"`
	TotalAttempts   int        `json:"total_attempts"`
	CorrectAttempts int        `json:"correct_attempts"`
	Accuracy        float64    `json:"accuracy"`
	IsDue           bool       `json:"is_due"`
}

type MathStatsSummary struct {
	TotalTemplates  int     `json:"total_templates"`
	TemplatesDue    int     `json:"templates_due"`
	TotalAttempts   int     `json:"total_attempts"`
	OverallAccuracy float64 `json:"overall_accuracy"`
}

type MathStats struct {
	Templates []TemplateProgressStat `json:"templates"`
	Summary   MathStatsSummary       `json:"summary"`
}

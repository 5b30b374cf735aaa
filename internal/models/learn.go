package models

import "time"

// Item kinds on the wire. "regular" is a stored question/answer pair,
// "math" is a freshly generated problem instance.
const (
	ItemKindRegular = "regular"
	ItemKindMath    = "math"
)

// LearnItem is the unified "next thing to study" presented to the learner.
// Exactly one of QuestionID / MathQuestionID is set, per QuestionType.
// The reference answer and the exact numeric answer are never included.
type LearnItem struct {
	QuestionType   string    `json:"question_type"`
	QuestionID     int64     `json:"question_id,omitempty"`
	MathQuestionID string    `json:"math_question_id,omitempty"`
	TemplateType   string    `json:"template_type,omitempty"`
	Topic          string    `json:"topic"`
	DisplayText    string    `json:"display_text"`
	Hint           string    `json:"hint,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// ReviewResult is the unified outcome of one submitted answer.
// Score is set for regular items; IsCorrect and (when wrong)
// CorrectAnswer are set for math items.
type ReviewResult struct {
	ID            int64    `json:"id"`
	QuestionType  string   `json:"question_type"`
	UserAnswer    string   `json:"user_answer"`
	LLMFeedback   string   `json:"llm_feedback"`
	Score         *int     `json:"score,omitempty"`
	IsCorrect     *bool    `json:"is_correct,omitempty"`
	CorrectAnswer *float64 `json:"correct_answer,omitempty"`
}

// LearnStats summarizes the review queue for the static question pool.
type LearnStats struct {
	TotalQuestions int     `json:"total_questions"`
	DueNow         int     `json:"due_now"`
	DueToday       int     `json:"due_today"`
	NeverReviewed  int     `json:"never_reviewed"`
	AvgEaseFactor  float64 `json:"avg_ease_factor"`
}

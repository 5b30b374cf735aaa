package models

import "time"

// Review is an append-only record of one graded free-text answer.
type Review struct {
	ID          int64     `json:"id"`
	QuestionID  int64     `json:"question_id"`
	UserAnswer  string    `json:"user_answer"`
	LLMFeedback string    `json:"llm_feedback"`
	Score       int       `json:"score"`
	CreatedAt   time.Time `json:"created_at"`
}

// MathReview is an append-only record of one graded math answer,
// referencing the generated instance it graded.
type MathReview struct {
	ID             int64     `json:"id"`
	MathQuestionID string    `json:"math_question_id"`
	UserAnswer     float64   `json:"user_answer"`
	IsCorrect      bool      `json:"is_correct"`
	LLMFeedback    string    `json:"llm_feedback"`
	CreatedAt      time.Time `json:"created_at"`
}

// MathHistoryEntry joins a math review with the question it graded.
type MathHistoryEntry struct {
	ID            int64     `json:"id"`
	TemplateType  string    `json:"template_type"`
	Topic         string    `json:"topic"`
	Question      string    `json:"question"`
	UserAnswer    float64   `json:"user_answer"`
	CorrectAnswer float64   `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	Feedback      string    `json:"feedback"`
	CreatedAt     time.Time `json:"created_at"`
}

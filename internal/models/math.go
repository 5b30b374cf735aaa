package models

import "time"

// TemplateProgress is the singular schedule state of a math template.
// A missing row means the template has never been attempted.
type TemplateProgress struct {
	TemplateType string `json:"template_type"`
	Schedule
	TotalAttempts   int       `json:"total_attempts"`
	CorrectAttempts int       `json:"correct_attempts"`
	CreatedAt       time.Time `json:"created_at"`
}

// TemplateInfo describes one catalog template for listing endpoints.
type TemplateInfo struct {
	TemplateType string `json:"template_type"`
	Topic        string `json:"topic"`
	Concept      string `json:"concept"`
	AsksFor      string `json:"asks_for"`
}

// MathSubmitResult is the graded outcome of one math submission. The exact
// answer is revealed here; callers that must withhold it on correct
// answers clear it themselves.
type MathSubmitResult struct {
	ID             int64     `json:"id"`
	MathQuestionID string    `json:"math_question_id"`
	TemplateType   string    `json:"template_type"`
	UserAnswer     float64   `json:"user_answer"`
	IsCorrect      bool      `json:"is_correct"`
	CorrectAnswer  float64   `json:"correct_answer"`
	LLMFeedback    string    `json:"llm_feedback"`
	CreatedAt      time.Time `json:"created_at"`
}

// MathQuestion is one generated problem instance. Instances are ephemeral:
// created at selection time, graded once, kept only for history. Scheduling
// state lives on the template, not here.
type MathQuestion struct {
	ID            string             `json:"id"`
	TemplateType  string             `json:"template_type"`
	Topic         string             `json:"topic"`
	Params        map[string]float64 `json:"params"`
	CorrectAnswer float64            `json:"-"`
	DisplayText   string             `json:"display_text"`
	CreatedAt     time.Time          `json:"created_at"`
}

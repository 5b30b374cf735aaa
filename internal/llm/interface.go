package llm

import (
	"context"
	"errors"
)

// ErrTimeout means the collaborator did not answer within the configured
// deadline. The caller should surface a retryable error and leave schedule
// state untouched.
var ErrTimeout = errors.New("llm request timed out")

// IsTimeout reports whether err is (or wraps) ErrTimeout.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// Feedback is the parsed reply from the grading collaborator.
type Feedback struct {
	// Score is the 1-5 quality grade, or 0 when the reply carried none.
	Score   int
	Verdict string
	Missing string
	Tip     string
	Raw     string
}

// RefinedQA is a polished question/answer pair. When the reply cannot be
// parsed the original texts are kept.
type RefinedQA struct {
	Question string
	Answer   string
	Raw      string
}

// ClientInterface defines the interface for LLM collaborator operations.
// This interface enables testability by allowing mock implementations.
type ClientInterface interface {
	GradeAnswer(ctx context.Context, questionText, userAnswer string, referenceAnswer *string) (*Feedback, error)
	RephraseQuestion(ctx context.Context, questionText string) (string, error)
	RenderWordProblem(ctx context.Context, concept string, params map[string]float64, asksFor, example string) (string, error)
	MathFeedback(ctx context.Context, question, concept string, correctAnswer, userAnswer float64, isCorrect bool) (string, error)
	RefineQA(ctx context.Context, topic, question, answer string) (*RefinedQA, error)
	Provider() string
	SetProvider(provider string) error
}

// Ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dwalsh/recall/internal/llm"
)

// MockLLMClient is a mock implementation of llm.ClientInterface
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) GradeAnswer(ctx context.Context, questionText, userAnswer string, referenceAnswer *string) (*llm.Feedback, error) {
	args := m.Called(ctx, questionText, userAnswer, referenceAnswer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.Feedback), args.Error(1)
}

func (m *MockLLMClient) RephraseQuestion(ctx context.Context, questionText string) (string, error) {
	args := m.Called(ctx, questionText)
	return args.String(0), args.Error(1)
}

func (m *MockLLMClient) RenderWordProblem(ctx context.Context, concept string, params map[string]float64, asksFor, example string) (string, error) {
	args := m.Called(ctx, concept, params, asksFor, example)
	return args.String(0), args.Error(1)
}

func (m *MockLLMClient) MathFeedback(ctx context.Context, question, concept string, correctAnswer, userAnswer float64, isCorrect bool) (string, error) {
	args := m.Called(ctx, question, concept, correctAnswer, userAnswer, isCorrect)
	return args.String(0), args.Error(1)
}

func (m *MockLLMClient) RefineQA(ctx context.Context, topic, question, answer string) (*llm.RefinedQA, error) {
	args := m.Called(ctx, topic, question, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llm.RefinedQA), args.Error(1)
}

func (m *MockLLMClient) Provider() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockLLMClient) SetProvider(provider string) error {
	args := m.Called(provider)
	return args.Error(0)
}

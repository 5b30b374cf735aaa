package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dwalsh/recall/internal/models"
)

// MockMathQuestionRepository is a mock implementation of repository.MathQuestionRepository
type MockMathQuestionRepository struct {
	mock.Mock
}

func (m *MockMathQuestionRepository) Insert(ctx context.Context, q models.MathQuestion) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockMathQuestionRepository) Get(ctx context.Context, id string) (*models.MathQuestion, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MathQuestion), args.Error(1)
}

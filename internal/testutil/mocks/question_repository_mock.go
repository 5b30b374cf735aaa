package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/dwalsh/recall/internal/models"
	"github.com/dwalsh/recall/internal/repository"
)

// MockQuestionRepository is a mock implementation of repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Insert(ctx context.Context, q models.Question) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) Get(ctx context.Context, id int64) (*models.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) List(ctx context.Context, filter models.QuestionFilter) ([]models.Question, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(ctx context.Context, q models.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) DueQuestionIDs(ctx context.Context, topic, tag string, now time.Time) ([]int64, error) {
	args := m.Called(ctx, topic, tag, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockQuestionRepository) RandomQuestionIDs(ctx context.Context, topic, tag string, limit int) ([]int64, error) {
	args := m.Called(ctx, topic, tag, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockQuestionRepository) AdvanceSchedule(ctx context.Context, id int64, now time.Time, advance repository.AdvanceFunc) (*models.Question, error) {
	args := m.Called(ctx, id, now, advance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Stats(ctx context.Context, topic, tag string, now time.Time) (*models.LearnStats, error) {
	args := m.Called(ctx, topic, tag, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnStats), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dwalsh/recall/internal/models"
)

// MockReviewRepository is a mock implementation of repository.ReviewRepository
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) InsertReview(ctx context.Context, r models.Review) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) InsertMathReview(ctx context.Context, r models.MathReview) (int64, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReviewRepository) MathHistory(ctx context.Context, limit int) ([]models.MathHistoryEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MathHistoryEntry), args.Error(1)
}

package mocks

import (
	"context"

	"github.com/ljovanovic/movie-booking-api/internal/domain"
)

type MockAiringRepo struct {
	domain.AiringRepository
	GetBookableByMovieFunc func(ctx context.Context, movieID int) ([]domain.Airing, error)
}

func (m *MockAiringRepo) GetBookableByMovie(ctx context.Context, movieID int) ([]domain.Airing, error) {
	return m.GetBookableByMovieFunc(ctx, movieID)
}

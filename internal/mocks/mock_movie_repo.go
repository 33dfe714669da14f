package mocks

import (
	"context"

	"github.com/ljovanovic/movie-booking-api/internal/domain"
)

type MockMovieRepo struct {
	domain.MovieRepository
	GetAllFunc        func(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error)
	GetByIdFunc       func(ctx context.Context, id int) (*domain.Movie, error)
	GetExportableFunc func(ctx context.Context) ([]domain.ExportMovie, error)
}

func (m *MockMovieRepo) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	return m.GetAllFunc(ctx, filters)
}

func (m *MockMovieRepo) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	return m.GetByIdFunc(ctx, id)
}

func (m *MockMovieRepo) GetExportable(ctx context.Context) ([]domain.ExportMovie, error) {
	return m.GetExportableFunc(ctx)
}

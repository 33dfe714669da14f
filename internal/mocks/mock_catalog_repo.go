package mocks

import (
	"context"

	"github.com/ljovanovic/movie-booking-api/internal/domain"
)

type MockCatalogRepo struct {
	domain.CatalogRepository
	GetCategoriesFunc func(ctx context.Context) ([]domain.Category, error)
	GetHallsFunc      func(ctx context.Context) ([]domain.Hall, error)
}

func (m *MockCatalogRepo) GetCategories(ctx context.Context) ([]domain.Category, error) {
	return m.GetCategoriesFunc(ctx)
}

func (m *MockCatalogRepo) GetHalls(ctx context.Context) ([]domain.Hall, error) {
	return m.GetHallsFunc(ctx)
}

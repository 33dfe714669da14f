package mocks

import (
	"context"

	"github.com/ljovanovic/movie-booking-api/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockReservationRepo struct {
	mock.Mock
	domain.ReservationRepository
}

func (m *MockReservationRepo) Reserve(
	ctx context.Context,
	req domain.ReservationRequest) (domain.ReservationOutcome, *domain.Reservation, error) {

	args := m.Called(ctx, req)

	var reservation *domain.Reservation
	if args.Get(1) != nil {
		reservation = args.Get(1).(*domain.Reservation)
	}

	return args.Get(0).(domain.ReservationOutcome), reservation, args.Error(2)
}

func (m *MockReservationRepo) Exists(
	ctx context.Context,
	customerName, movieName string,
	airingID int) (bool, error) {

	args := m.Called(ctx, customerName, movieName, airingID)
	return args.Bool(0), args.Error(1)
}

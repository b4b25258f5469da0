package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wanderlane/travelbook/backend/internal/application/services"
	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
)

type mockTourRepo struct {
	mock.Mock
}

func (m *mockTourRepo) Create(ctx context.Context, tour *entities.Tour) error {
	return m.Called(ctx, tour).Error(0)
}

func (m *mockTourRepo) GetByID(ctx context.Context, id string) (*entities.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Tour), args.Error(1)
}

func (m *mockTourRepo) Update(ctx context.Context, tour *entities.Tour) error {
	return m.Called(ctx, tour).Error(0)
}

func (m *mockTourRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockTourRepo) List(ctx context.Context, filter repositories.TourFilter) ([]*entities.Tour, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Tour), args.Error(1)
}

func (m *mockTourRepo) SearchForCustomer(ctx context.Context, query repositories.TourSearchQuery) ([]entities.TourSummary, int, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entities.TourSummary), args.Int(1), args.Error(2)
}

type mockDepartureRepo struct {
	mock.Mock
}

func (m *mockDepartureRepo) Create(ctx context.Context, dep *entities.Departure) error {
	return m.Called(ctx, dep).Error(0)
}

func (m *mockDepartureRepo) GetByID(ctx context.Context, id string) (*entities.Departure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Departure), args.Error(1)
}

func (m *mockDepartureRepo) Update(ctx context.Context, dep *entities.Departure) error {
	return m.Called(ctx, dep).Error(0)
}

func (m *mockDepartureRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockDepartureRepo) ListByTour(ctx context.Context, tourID string) ([]*entities.Departure, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Departure), args.Error(1)
}

func TestTourService_CreateDeparture_DefaultsStatusAndSeats(t *testing.T) {
	tours := &mockTourRepo{}
	departures := &mockDepartureRepo{}
	service := services.NewTourService(tours, departures, nil, nil, testCatalogConfig())

	tours.On("GetByID", mock.Anything, "t1").Return(&entities.Tour{ID: "t1"}, nil)
	departures.On("Create", mock.Anything, mock.MatchedBy(func(dep *entities.Departure) bool {
		return dep.Status == entities.DepartureStatusScheduled && dep.SeatsLeft == dep.SeatsTotal
	})).Return(nil)

	err := service.CreateDeparture(context.Background(), &entities.Departure{
		TourID:        "t1",
		DepartureDate: time.Now().AddDate(0, 1, 0),
		SeatsTotal:    30,
	})

	assert.NoError(t, err)
	departures.AssertExpectations(t)
}

func TestTourService_CreateDeparture_RequiresExistingTour(t *testing.T) {
	tours := &mockTourRepo{}
	departures := &mockDepartureRepo{}
	service := services.NewTourService(tours, departures, nil, nil, testCatalogConfig())

	tours.On("GetByID", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("tour not found"))

	err := service.CreateDeparture(context.Background(), &entities.Departure{
		TourID:        "missing",
		DepartureDate: time.Now().AddDate(0, 1, 0),
		SeatsTotal:    30,
	})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	departures.AssertNotCalled(t, "Create")
}

func TestTourService_ListDepartures_ReturnsRepoRows(t *testing.T) {
	tours := &mockTourRepo{}
	departures := &mockDepartureRepo{}
	service := services.NewTourService(tours, departures, nil, nil, testCatalogConfig())

	rows := []*entities.Departure{{ID: "d1", TourID: "t1", SeatsTotal: 30, SeatsLeft: 12}}
	departures.On("ListByTour", mock.Anything, "t1").Return(rows, nil)

	got, err := service.ListDepartures(context.Background(), "t1")

	assert.NoError(t, err)
	assert.Equal(t, rows, got)
}

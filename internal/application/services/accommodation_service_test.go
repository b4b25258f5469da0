package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/wanderlane/travelbook/backend/internal/application/services"
	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	"github.com/wanderlane/travelbook/backend/pkg/config"
	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
)

type mockAccommodationRepo struct {
	mock.Mock
}

func (m *mockAccommodationRepo) Create(ctx context.Context, acc *entities.Accommodation) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *mockAccommodationRepo) GetByID(ctx context.Context, id string) (*entities.Accommodation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Accommodation), args.Error(1)
}

func (m *mockAccommodationRepo) Update(ctx context.Context, acc *entities.Accommodation) error {
	return m.Called(ctx, acc).Error(0)
}

func (m *mockAccommodationRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAccommodationRepo) List(ctx context.Context, filter repositories.AccommodationFilter) ([]*entities.Accommodation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Accommodation), args.Error(1)
}

func (m *mockAccommodationRepo) SearchForCustomer(ctx context.Context, query repositories.AccommodationSearchQuery) ([]entities.AccommodationSummary, int, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]entities.AccommodationSummary), args.Int(1), args.Error(2)
}

func testCatalogConfig() config.CatalogConfig {
	return config.CatalogConfig{DefaultPageSize: 12, MaxPageSize: 100, HoldSeconds: 600}
}

func TestAccommodationService_SearchForCustomer_DefaultsPaging(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	repo.On("SearchForCustomer", mock.Anything, mock.MatchedBy(func(q repositories.AccommodationSearchQuery) bool {
		return q.PageIndex == 1 && q.PageSize == 12
	})).Return([]entities.AccommodationSummary{{ID: "acc-1", Name: "Seaside Inn"}}, 25, nil)

	items, meta, err := service.SearchForCustomer(context.Background(), repositories.AccommodationSearchQuery{})

	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 25, meta.TotalCount)
	assert.Equal(t, 1, meta.Page)
	assert.Equal(t, 12, meta.PageSize)
	assert.Equal(t, 3, meta.TotalPages)
	repo.AssertExpectations(t)
}

func TestAccommodationService_SearchForCustomer_EmptyResultKeepsOnePage(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	repo.On("SearchForCustomer", mock.Anything, mock.Anything).
		Return([]entities.AccommodationSummary{}, 0, nil)

	items, meta, err := service.SearchForCustomer(context.Background(), repositories.AccommodationSearchQuery{PageIndex: 1, PageSize: 12})

	assert.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, 0, meta.TotalCount)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestAccommodationService_SearchForCustomer_RejectsInvertedPriceRange(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	from, to := 500.0, 100.0
	_, _, err := service.SearchForCustomer(context.Background(), repositories.AccommodationSearchQuery{
		Filter: repositories.AccommodationSearchFilter{PriceFrom: &from, PriceTo: &to},
	})

	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	repo.AssertNotCalled(t, "SearchForCustomer")
}

func TestAccommodationService_SearchForCustomer_RejectsInvertedStayDates(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	checkIn, checkOut := "2026-09-20", "2026-09-15"
	_, _, err := service.SearchForCustomer(context.Background(), repositories.AccommodationSearchQuery{
		Filter: repositories.AccommodationSearchFilter{CheckInDate: &checkIn, CheckOutDate: &checkOut},
	})

	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	repo.AssertNotCalled(t, "SearchForCustomer")
}

func TestAccommodationService_SearchForCustomer_RejectsMalformedStayDates(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	checkIn := "next friday"
	_, _, err := service.SearchForCustomer(context.Background(), repositories.AccommodationSearchQuery{
		Filter: repositories.AccommodationSearchFilter{CheckInDate: &checkIn},
	})

	assert.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	repo.AssertNotCalled(t, "SearchForCustomer")
}

// Stay dates are carried through the query untouched; nothing filters on
// them until an availability model exists.
func TestAccommodationService_SearchForCustomer_PassesStayDatesThrough(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	checkIn, checkOut := "2026-09-15", "2026-09-20"
	repo.On("SearchForCustomer", mock.Anything, mock.MatchedBy(func(q repositories.AccommodationSearchQuery) bool {
		return q.Filter.CheckInDate != nil && *q.Filter.CheckInDate == checkIn &&
			q.Filter.CheckOutDate != nil && *q.Filter.CheckOutDate == checkOut
	})).Return([]entities.AccommodationSummary{}, 0, nil)

	_, _, err := service.SearchForCustomer(context.Background(), repositories.AccommodationSearchQuery{
		Filter: repositories.AccommodationSearchFilter{CheckInDate: &checkIn, CheckOutDate: &checkOut},
	})

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAccommodationService_SearchForCustomer_CapsPageSize(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	repo.On("SearchForCustomer", mock.Anything, mock.MatchedBy(func(q repositories.AccommodationSearchQuery) bool {
		return q.PageSize == 100
	})).Return([]entities.AccommodationSummary{}, 0, nil)

	_, meta, err := service.SearchForCustomer(context.Background(), repositories.AccommodationSearchQuery{PageIndex: 1, PageSize: 5000})

	assert.NoError(t, err)
	assert.Equal(t, 100, meta.PageSize)
	repo.AssertExpectations(t)
}

func TestAccommodationService_Create_AssignsIDAndTimestamps(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	acc := &entities.Accommodation{Name: "Harbor View Hotel", CityID: 3}
	err := service.Create(context.Background(), acc)

	assert.NoError(t, err)
	assert.NotEmpty(t, acc.ID)
	assert.False(t, acc.CreatedAt.IsZero())
	assert.Equal(t, acc.CreatedAt, acc.UpdatedAt)
}

func TestAccommodationService_Create_RequiresName(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	err := service.Create(context.Background(), &entities.Accommodation{})

	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	repo.AssertNotCalled(t, "Create")
}

func TestAccommodationService_SearchForCustomer_PropagatesRepoError(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	repo.On("SearchForCustomer", mock.Anything, mock.Anything).
		Return(nil, 0, errors.New("connection refused"))

	_, _, err := service.SearchForCustomer(context.Background(), repositories.AccommodationSearchQuery{PageIndex: 1})

	assert.Error(t, err)
}

func TestAccommodationService_List_ReturnsRepoRows(t *testing.T) {
	repo := &mockAccommodationRepo{}
	service := services.NewAccommodationService(repo, nil, nil, nil, testCatalogConfig())

	rows := []*entities.Accommodation{
		{ID: "a1", Name: "Harbor View Hotel"},
		{ID: "a2", Name: "Old Town Hostel"},
	}
	repo.On("List", mock.Anything, mock.Anything).Return(rows, nil)

	got, err := service.List(context.Background(), repositories.AccommodationFilter{Limit: 10})

	assert.NoError(t, err)
	assert.Equal(t, rows, got)
}

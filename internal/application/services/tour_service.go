package services

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/providers"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	"github.com/wanderlane/travelbook/backend/pkg/config"
	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
)

// TourService coordinates tour persistence, departures, the search index,
// and the customer-facing tour search.
type TourService struct {
	repo       repositories.TourRepository
	departures repositories.DepartureRepository
	searchRepo repositories.CatalogSearchRepository
	cache      providers.CacheProvider
	cfg        config.CatalogConfig
}

func NewTourService(
	repo repositories.TourRepository,
	departures repositories.DepartureRepository,
	searchRepo repositories.CatalogSearchRepository,
	cache providers.CacheProvider,
	cfg config.CatalogConfig,
) *TourService {
	return &TourService{
		repo:       repo,
		departures: departures,
		searchRepo: searchRepo,
		cache:      cache,
		cfg:        cfg,
	}
}

func (s *TourService) Create(ctx context.Context, tour *entities.Tour) error {
	if tour.Name == "" {
		return apperrors.NewValidationError("tour name is required")
	}
	if tour.BasePriceAdult <= 0 {
		return apperrors.NewValidationError("basePriceAdult must be positive")
	}
	if tour.ID == "" {
		tour.ID = uuid.New().String()
	}
	now := time.Now()
	tour.CreatedAt = now
	tour.UpdatedAt = now

	if err := s.repo.Create(ctx, tour); err != nil {
		return err
	}
	s.indexTour(ctx, tour)
	return nil
}

func (s *TourService) GetByID(ctx context.Context, id string) (*entities.Tour, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TourService) Update(ctx context.Context, tour *entities.Tour) error {
	tour.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, tour); err != nil {
		return err
	}
	s.indexTour(ctx, tour)
	return nil
}

func (s *TourService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.searchRepo != nil {
		if err := s.searchRepo.DeleteTour(ctx, id); err != nil {
			// Log error but don't fail the request (eventual consistency)
			log.Printf("Warning: failed to remove tour %s from search index: %v", id, err)
		}
	}
	return nil
}

func (s *TourService) List(ctx context.Context, filter repositories.TourFilter) ([]*entities.Tour, error) {
	return s.repo.List(ctx, filter)
}

func (s *TourService) SearchForCustomer(ctx context.Context, query repositories.TourSearchQuery) ([]entities.TourSummary, entities.ResultMeta, error) {
	pageIndex, pageSize, err := normalizePaging(query.PageIndex, query.PageSize, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)
	if err != nil {
		return nil, entities.ResultMeta{}, err
	}
	query.PageIndex = pageIndex
	query.PageSize = pageSize
	if err := validatePriceRange(query.Filter.PriceFrom, query.Filter.PriceTo); err != nil {
		return nil, entities.ResultMeta{}, err
	}

	type cachedPage struct {
		Items []entities.TourSummary `json:"items"`
		Meta  entities.ResultMeta    `json:"meta"`
	}
	key := searchCacheKey("tours", query)
	if s.cache != nil && key != "" {
		if raw, err := s.cache.Get(ctx, key); err == nil && raw != nil {
			var page cachedPage
			if json.Unmarshal(raw, &page) == nil {
				return page.Items, page.Meta, nil
			}
		}
	}

	items, total, err := s.repo.SearchForCustomer(ctx, query)
	if err != nil {
		return nil, entities.ResultMeta{}, err
	}
	meta := newResultMeta(total, pageIndex, pageSize)

	if s.cache != nil && key != "" {
		if raw, err := json.Marshal(cachedPage{Items: items, Meta: meta}); err == nil {
			if err := s.cache.Set(ctx, key, raw, searchCacheTTLSeconds); err != nil {
				log.Printf("Warning: failed to cache tour search page: %v", err)
			}
		}
	}
	return items, meta, nil
}

func (s *TourService) Suggest(ctx context.Context, prefix string, limit int) ([]entities.TourSummary, error) {
	if s.searchRepo == nil {
		return []entities.TourSummary{}, nil
	}
	if limit < 1 || limit > 20 {
		limit = 10
	}
	return s.searchRepo.SuggestTours(ctx, prefix, limit)
}

// CreateDeparture attaches a scheduled departure to an existing tour.
func (s *TourService) CreateDeparture(ctx context.Context, dep *entities.Departure) error {
	if dep.TourID == "" {
		return apperrors.NewValidationError("tourId is required")
	}
	if dep.SeatsTotal < 1 {
		return apperrors.NewValidationError("seatsTotal must be at least 1")
	}
	if _, err := s.repo.GetByID(ctx, dep.TourID); err != nil {
		return err
	}
	if dep.ID == "" {
		dep.ID = uuid.New().String()
	}
	if dep.Status == "" {
		dep.Status = entities.DepartureStatusScheduled
	}
	if dep.SeatsLeft == 0 {
		dep.SeatsLeft = dep.SeatsTotal
	}
	now := time.Now()
	dep.CreatedAt = now
	dep.UpdatedAt = now
	return s.departures.Create(ctx, dep)
}

func (s *TourService) UpdateDeparture(ctx context.Context, dep *entities.Departure) error {
	if dep.SeatsLeft > dep.SeatsTotal {
		return apperrors.NewValidationError("seatsLeft cannot exceed seatsTotal")
	}
	dep.UpdatedAt = time.Now()
	return s.departures.Update(ctx, dep)
}

func (s *TourService) DeleteDeparture(ctx context.Context, id string) error {
	return s.departures.Delete(ctx, id)
}

func (s *TourService) ListDepartures(ctx context.Context, tourID string) ([]*entities.Departure, error) {
	return s.departures.ListByTour(ctx, tourID)
}

func (s *TourService) indexTour(ctx context.Context, tour *entities.Tour) {
	if s.searchRepo == nil {
		return
	}
	if err := s.searchRepo.IndexTour(ctx, tour); err != nil {
		// Log error but don't fail the request (eventual consistency)
		log.Printf("Warning: failed to index tour %s: %v", tour.ID, err)
	}
}

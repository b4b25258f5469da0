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

// AccommodationService coordinates accommodation persistence, the search
// index, and the customer-facing search flow.
type AccommodationService struct {
	repo       repositories.AccommodationRepository
	roomTypes  repositories.RoomTypeRepository
	searchRepo repositories.CatalogSearchRepository
	cache      providers.CacheProvider
	cfg        config.CatalogConfig
}

func NewAccommodationService(
	repo repositories.AccommodationRepository,
	roomTypes repositories.RoomTypeRepository,
	searchRepo repositories.CatalogSearchRepository,
	cache providers.CacheProvider,
	cfg config.CatalogConfig,
) *AccommodationService {
	return &AccommodationService{
		repo:       repo,
		roomTypes:  roomTypes,
		searchRepo: searchRepo,
		cache:      cache,
		cfg:        cfg,
	}
}

func (s *AccommodationService) Create(ctx context.Context, acc *entities.Accommodation) error {
	if acc.Name == "" {
		return apperrors.NewValidationError("accommodation name is required")
	}
	if acc.ID == "" {
		acc.ID = uuid.New().String()
	}
	now := time.Now()
	acc.CreatedAt = now
	acc.UpdatedAt = now

	if err := s.repo.Create(ctx, acc); err != nil {
		return err
	}
	s.indexAccommodation(ctx, acc)
	return nil
}

func (s *AccommodationService) GetByID(ctx context.Context, id string) (*entities.Accommodation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AccommodationService) Update(ctx context.Context, acc *entities.Accommodation) error {
	acc.UpdatedAt = time.Now()
	if err := s.repo.Update(ctx, acc); err != nil {
		return err
	}
	s.indexAccommodation(ctx, acc)
	return nil
}

func (s *AccommodationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.searchRepo != nil {
		if err := s.searchRepo.DeleteAccommodation(ctx, id); err != nil {
			// Log error but don't fail the request (eventual consistency)
			log.Printf("Warning: failed to remove accommodation %s from search index: %v", id, err)
		}
	}
	return nil
}

func (s *AccommodationService) List(ctx context.Context, filter repositories.AccommodationFilter) ([]*entities.Accommodation, error) {
	return s.repo.List(ctx, filter)
}

// SearchForCustomer runs the customer search: validate, consult the result
// cache, hit the database, then assemble the page metadata.
func (s *AccommodationService) SearchForCustomer(ctx context.Context, query repositories.AccommodationSearchQuery) ([]entities.AccommodationSummary, entities.ResultMeta, error) {
	pageIndex, pageSize, err := normalizePaging(query.PageIndex, query.PageSize, s.cfg.DefaultPageSize, s.cfg.MaxPageSize)
	if err != nil {
		return nil, entities.ResultMeta{}, err
	}
	query.PageIndex = pageIndex
	query.PageSize = pageSize
	if err := validatePriceRange(query.Filter.PriceFrom, query.Filter.PriceTo); err != nil {
		return nil, entities.ResultMeta{}, err
	}
	if err := validateStayDates(query.Filter.CheckInDate, query.Filter.CheckOutDate); err != nil {
		return nil, entities.ResultMeta{}, err
	}

	type cachedPage struct {
		Items []entities.AccommodationSummary `json:"items"`
		Meta  entities.ResultMeta             `json:"meta"`
	}
	key := searchCacheKey("accommodations", query)
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
				log.Printf("Warning: failed to cache accommodation search page: %v", err)
			}
		}
	}
	return items, meta, nil
}

// Suggest returns name-prefix matches from the search index for type-ahead
func (s *AccommodationService) Suggest(ctx context.Context, prefix string, limit int) ([]entities.AccommodationSummary, error) {
	if s.searchRepo == nil {
		return []entities.AccommodationSummary{}, nil
	}
	if limit < 1 || limit > 20 {
		limit = 10
	}
	return s.searchRepo.SuggestAccommodations(ctx, prefix, limit)
}

// indexAccommodation pushes the current state of an accommodation (with its
// cheapest active room type) into the search index. Failures are logged only.
func (s *AccommodationService) indexAccommodation(ctx context.Context, acc *entities.Accommodation) {
	if s.searchRepo == nil {
		return
	}
	minPrice := 0.0
	if s.roomTypes != nil {
		roomTypes, err := s.roomTypes.ListByAccommodation(ctx, acc.ID)
		if err != nil {
			log.Printf("Warning: failed to load room types for indexing accommodation %s: %v", acc.ID, err)
		}
		for _, rt := range roomTypes {
			if !rt.IsActive {
				continue
			}
			if minPrice == 0 || rt.PricePerNight < minPrice {
				minPrice = rt.PricePerNight
			}
		}
	}
	if err := s.searchRepo.IndexAccommodation(ctx, acc, minPrice); err != nil {
		// Log error but don't fail the request (eventual consistency)
		log.Printf("Warning: failed to index accommodation %s: %v", acc.ID, err)
	}
}

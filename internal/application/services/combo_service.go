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

// ComboService manages package deals (flight/bus + accommodation bundles).
type ComboService struct {
	repo  repositories.ComboRepository
	cache providers.CacheProvider
	cfg   config.CatalogConfig
}

func NewComboService(repo repositories.ComboRepository, cache providers.CacheProvider, cfg config.CatalogConfig) *ComboService {
	return &ComboService{repo: repo, cache: cache, cfg: cfg}
}

func (s *ComboService) Create(ctx context.Context, combo *entities.Combo) error {
	if combo.Name == "" {
		return apperrors.NewValidationError("combo name is required")
	}
	if combo.BasePriceAdult <= 0 {
		return apperrors.NewValidationError("basePriceAdult must be positive")
	}
	if combo.ID == "" {
		combo.ID = uuid.New().String()
	}
	now := time.Now()
	combo.CreatedAt = now
	combo.UpdatedAt = now
	return s.repo.Create(ctx, combo)
}

func (s *ComboService) GetByID(ctx context.Context, id string) (*entities.Combo, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ComboService) Update(ctx context.Context, combo *entities.Combo) error {
	combo.UpdatedAt = time.Now()
	return s.repo.Update(ctx, combo)
}

func (s *ComboService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *ComboService) List(ctx context.Context, filter repositories.ComboFilter) ([]*entities.Combo, error) {
	return s.repo.List(ctx, filter)
}

func (s *ComboService) SearchForCustomer(ctx context.Context, query repositories.ComboSearchQuery) ([]entities.ComboSummary, entities.ResultMeta, error) {
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
		Items []entities.ComboSummary `json:"items"`
		Meta  entities.ResultMeta     `json:"meta"`
	}
	key := searchCacheKey("combos", query)
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
				log.Printf("Warning: failed to cache combo search page: %v", err)
			}
		}
	}
	return items, meta, nil
}

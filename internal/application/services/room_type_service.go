package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
)

// RoomTypeService manages the room inventory attached to an accommodation.
type RoomTypeService struct {
	repo           repositories.RoomTypeRepository
	accommodations repositories.AccommodationRepository
}

func NewRoomTypeService(repo repositories.RoomTypeRepository, accommodations repositories.AccommodationRepository) *RoomTypeService {
	return &RoomTypeService{repo: repo, accommodations: accommodations}
}

func (s *RoomTypeService) Create(ctx context.Context, rt *entities.RoomType) error {
	if rt.AccommodationID == "" {
		return apperrors.NewValidationError("accommodationId is required")
	}
	if rt.PricePerNight <= 0 {
		return apperrors.NewValidationError("pricePerNight must be positive")
	}
	// Referenced accommodation must exist before inventory attaches to it.
	if _, err := s.accommodations.GetByID(ctx, rt.AccommodationID); err != nil {
		return err
	}
	if rt.ID == "" {
		rt.ID = uuid.New().String()
	}
	now := time.Now()
	rt.CreatedAt = now
	rt.UpdatedAt = now
	return s.repo.Create(ctx, rt)
}

func (s *RoomTypeService) GetByID(ctx context.Context, id string) (*entities.RoomType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RoomTypeService) Update(ctx context.Context, rt *entities.RoomType) error {
	if rt.PricePerNight <= 0 {
		return apperrors.NewValidationError("pricePerNight must be positive")
	}
	rt.UpdatedAt = time.Now()
	return s.repo.Update(ctx, rt)
}

func (s *RoomTypeService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *RoomTypeService) ListByAccommodation(ctx context.Context, accommodationID string) ([]*entities.RoomType, error) {
	return s.repo.ListByAccommodation(ctx, accommodationID)
}

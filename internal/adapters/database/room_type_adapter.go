package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
)

// RoomTypeAdapter implements RoomTypeRepository
type RoomTypeAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewRoomTypeAdapter creates a new room type adapter
func NewRoomTypeAdapter(client *postgres.Client) repositories.RoomTypeRepository {
	return &RoomTypeAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var roomTypeColumns = []interface{}{
	"id", "accommodation_id", "name", "price_per_night",
	"capacity_adult", "capacity_child", "total_rooms",
	"is_active", "created_at", "updated_at",
}

// Create creates a new room type
func (a *RoomTypeAdapter) Create(ctx context.Context, roomType *entities.RoomType) error {
	record := goqu.Record{
		"id":               roomType.ID,
		"accommodation_id": roomType.AccommodationID,
		"name":             roomType.Name,
		"price_per_night":  roomType.PricePerNight,
		"capacity_adult":   roomType.CapacityAdult,
		"capacity_child":   roomType.CapacityChild,
		"total_rooms":      roomType.TotalRooms,
		"is_active":        roomType.IsActive,
		"created_at":       roomType.CreatedAt,
		"updated_at":       roomType.UpdatedAt,
	}

	query, args, err := a.db.Insert("room_types").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create room type", err)
	}

	return nil
}

// GetByID retrieves a room type by ID
func (a *RoomTypeAdapter) GetByID(ctx context.Context, id string) (*entities.RoomType, error) {
	query, args, err := a.db.Select(roomTypeColumns...).
		From("room_types").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	roomType := &entities.RoomType{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&roomType.ID,
		&roomType.AccommodationID,
		&roomType.Name,
		&roomType.PricePerNight,
		&roomType.CapacityAdult,
		&roomType.CapacityChild,
		&roomType.TotalRooms,
		&roomType.IsActive,
		&roomType.CreatedAt,
		&roomType.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("room type with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get room type", err)
	}

	return roomType, nil
}

// Update updates a room type
func (a *RoomTypeAdapter) Update(ctx context.Context, roomType *entities.RoomType) error {
	roomType.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":            roomType.Name,
		"price_per_night": roomType.PricePerNight,
		"capacity_adult":  roomType.CapacityAdult,
		"capacity_child":  roomType.CapacityChild,
		"total_rooms":     roomType.TotalRooms,
		"is_active":       roomType.IsActive,
		"updated_at":      roomType.UpdatedAt,
	}

	query, args, err := a.db.Update("room_types").
		Set(record).
		Where(goqu.Ex{"id": roomType.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update room type", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("room type with id %s not found", roomType.ID))
	}

	return nil
}

// Delete deletes a room type (soft delete)
func (a *RoomTypeAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Update("room_types").
		Set(goqu.Record{
			"is_active":  false,
			"updated_at": time.Now(),
		}).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete room type", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("room type with id %s not found", id))
	}

	return nil
}

// ListByAccommodation retrieves all room types of one accommodation
func (a *RoomTypeAdapter) ListByAccommodation(ctx context.Context, accommodationID string) ([]*entities.RoomType, error) {
	query, args, err := a.db.Select(roomTypeColumns...).
		From("room_types").
		Where(goqu.Ex{"accommodation_id": accommodationID}).
		Order(goqu.I("price_per_night").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list room types", err)
	}
	defer rows.Close()

	roomTypes := []*entities.RoomType{}
	for rows.Next() {
		roomType := &entities.RoomType{}
		err := rows.Scan(
			&roomType.ID,
			&roomType.AccommodationID,
			&roomType.Name,
			&roomType.PricePerNight,
			&roomType.CapacityAdult,
			&roomType.CapacityChild,
			&roomType.TotalRooms,
			&roomType.IsActive,
			&roomType.CreatedAt,
			&roomType.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan room type", err)
		}
		roomTypes = append(roomTypes, roomType)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating room types", err)
	}

	return roomTypes, nil
}

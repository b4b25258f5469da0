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

// DepartureAdapter implements DepartureRepository
type DepartureAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewDepartureAdapter creates a new departure adapter
func NewDepartureAdapter(client *postgres.Client) repositories.DepartureRepository {
	return &DepartureAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var departureColumns = []interface{}{
	"id", "tour_id", "departure_date", "seats_total", "seats_left",
	"status", "created_at", "updated_at",
}

// Create creates a new departure
func (a *DepartureAdapter) Create(ctx context.Context, departure *entities.Departure) error {
	record := goqu.Record{
		"id":             departure.ID,
		"tour_id":        departure.TourID,
		"departure_date": departure.DepartureDate,
		"seats_total":    departure.SeatsTotal,
		"seats_left":     departure.SeatsLeft,
		"status":         string(departure.Status),
		"created_at":     departure.CreatedAt,
		"updated_at":     departure.UpdatedAt,
	}

	query, args, err := a.db.Insert("departures").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create departure", err)
	}

	return nil
}

// GetByID retrieves a departure by ID
func (a *DepartureAdapter) GetByID(ctx context.Context, id string) (*entities.Departure, error) {
	query, args, err := a.db.Select(departureColumns...).
		From("departures").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	departure := &entities.Departure{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&departure.ID,
		&departure.TourID,
		&departure.DepartureDate,
		&departure.SeatsTotal,
		&departure.SeatsLeft,
		&departure.Status,
		&departure.CreatedAt,
		&departure.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("departure with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get departure", err)
	}

	return departure, nil
}

// Update updates a departure
func (a *DepartureAdapter) Update(ctx context.Context, departure *entities.Departure) error {
	departure.UpdatedAt = time.Now()

	record := goqu.Record{
		"departure_date": departure.DepartureDate,
		"seats_total":    departure.SeatsTotal,
		"seats_left":     departure.SeatsLeft,
		"status":         string(departure.Status),
		"updated_at":     departure.UpdatedAt,
	}

	query, args, err := a.db.Update("departures").
		Set(record).
		Where(goqu.Ex{"id": departure.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update departure", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("departure with id %s not found", departure.ID))
	}

	return nil
}

// Delete removes a departure
func (a *DepartureAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("departures").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete departure", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("departure with id %s not found", id))
	}

	return nil
}

// ListByTour retrieves all departures of one tour, soonest first
func (a *DepartureAdapter) ListByTour(ctx context.Context, tourID string) ([]*entities.Departure, error) {
	query, args, err := a.db.Select(departureColumns...).
		From("departures").
		Where(goqu.Ex{"tour_id": tourID}).
		Order(goqu.I("departure_date").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list departures", err)
	}
	defer rows.Close()

	departures := []*entities.Departure{}
	for rows.Next() {
		departure := &entities.Departure{}
		err := rows.Scan(
			&departure.ID,
			&departure.TourID,
			&departure.DepartureDate,
			&departure.SeatsTotal,
			&departure.SeatsLeft,
			&departure.Status,
			&departure.CreatedAt,
			&departure.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan departure", err)
		}
		departures = append(departures, departure)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating departures", err)
	}

	return departures, nil
}

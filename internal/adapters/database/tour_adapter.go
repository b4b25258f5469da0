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

// TourAdapter implements TourRepository
type TourAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewTourAdapter creates a new tour adapter
func NewTourAdapter(client *postgres.Client) repositories.TourRepository {
	return &TourAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var tourColumns = []interface{}{
	"id", "name", "departure_city_id", "destination_city_id",
	"tour_type_id", "tour_category_id", "base_price_adult", "base_price_child",
	"duration_days", "description", "rating", "review_count",
	"is_active", "created_at", "updated_at",
}

// Create creates a new tour
func (a *TourAdapter) Create(ctx context.Context, tour *entities.Tour) error {
	record := goqu.Record{
		"id":                  tour.ID,
		"name":                tour.Name,
		"departure_city_id":   tour.DepartureCityID,
		"destination_city_id": tour.DestinationCityID,
		"tour_type_id":        tour.TourTypeID,
		"tour_category_id":    tour.TourCategoryID,
		"base_price_adult":    tour.BasePriceAdult,
		"base_price_child":    tour.BasePriceChild,
		"duration_days":       tour.DurationDays,
		"description":         tour.Description,
		"rating":              tour.Rating,
		"review_count":        tour.ReviewCount,
		"is_active":           tour.IsActive,
		"created_at":          tour.CreatedAt,
		"updated_at":          tour.UpdatedAt,
	}

	query, args, err := a.db.Insert("tours").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create tour", err)
	}

	return nil
}

// GetByID retrieves a tour by ID
func (a *TourAdapter) GetByID(ctx context.Context, id string) (*entities.Tour, error) {
	query, args, err := a.db.Select(tourColumns...).
		From("tours").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	tour := &entities.Tour{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&tour.ID,
		&tour.Name,
		&tour.DepartureCityID,
		&tour.DestinationCityID,
		&tour.TourTypeID,
		&tour.TourCategoryID,
		&tour.BasePriceAdult,
		&tour.BasePriceChild,
		&tour.DurationDays,
		&tour.Description,
		&tour.Rating,
		&tour.ReviewCount,
		&tour.IsActive,
		&tour.CreatedAt,
		&tour.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("tour with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get tour", err)
	}

	return tour, nil
}

// Update updates a tour
func (a *TourAdapter) Update(ctx context.Context, tour *entities.Tour) error {
	tour.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":                tour.Name,
		"departure_city_id":   tour.DepartureCityID,
		"destination_city_id": tour.DestinationCityID,
		"tour_type_id":        tour.TourTypeID,
		"tour_category_id":    tour.TourCategoryID,
		"base_price_adult":    tour.BasePriceAdult,
		"base_price_child":    tour.BasePriceChild,
		"duration_days":       tour.DurationDays,
		"description":         tour.Description,
		"rating":              tour.Rating,
		"review_count":        tour.ReviewCount,
		"is_active":           tour.IsActive,
		"updated_at":          tour.UpdatedAt,
	}

	query, args, err := a.db.Update("tours").
		Set(record).
		Where(goqu.Ex{"id": tour.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update tour", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("tour with id %s not found", tour.ID))
	}

	return nil
}

// Delete deletes a tour (soft delete)
func (a *TourAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Update("tours").
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
		return apperrors.NewInternalError("failed to delete tour", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("tour with id %s not found", id))
	}

	return nil
}

// List retrieves tours with back-office filters
func (a *TourAdapter) List(ctx context.Context, filter repositories.TourFilter) ([]*entities.Tour, error) {
	ds := a.db.Select(tourColumns...).From("tours")

	if filter.DepartureCityID != nil {
		ds = ds.Where(goqu.Ex{"departure_city_id": *filter.DepartureCityID})
	}
	if filter.DestinationCityID != nil {
		ds = ds.Where(goqu.Ex{"destination_city_id": *filter.DestinationCityID})
	}
	if filter.TourTypeID != nil {
		ds = ds.Where(goqu.Ex{"tour_type_id": *filter.TourTypeID})
	}
	if filter.TourCategoryID != nil {
		ds = ds.Where(goqu.Ex{"tour_category_id": *filter.TourCategoryID})
	}
	if filter.IsActive != nil {
		ds = ds.Where(goqu.Ex{"is_active": *filter.IsActive})
	}

	ds = ds.Order(goqu.I("created_at").Desc())

	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list tours", err)
	}
	defer rows.Close()

	tours := []*entities.Tour{}
	for rows.Next() {
		tour := &entities.Tour{}
		err := rows.Scan(
			&tour.ID,
			&tour.Name,
			&tour.DepartureCityID,
			&tour.DestinationCityID,
			&tour.TourTypeID,
			&tour.TourCategoryID,
			&tour.BasePriceAdult,
			&tour.BasePriceChild,
			&tour.DurationDays,
			&tour.Description,
			&tour.Rating,
			&tour.ReviewCount,
			&tour.IsActive,
			&tour.CreatedAt,
			&tour.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan tour", err)
		}
		tours = append(tours, tour)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating tours", err)
	}

	return tours, nil
}

// SearchForCustomer filters the whole active tour catalog first, then
// paginates. Only bookable departures (scheduled, seats left) count toward
// the departure date filter and the nextDeparture projection.
func (a *TourAdapter) SearchForCustomer(ctx context.Context, query repositories.TourSearchQuery) ([]entities.TourSummary, int, error) {
	filter := query.Filter

	base := a.db.Select(
		goqu.I("t.id"),
		goqu.I("t.name"),
		goqu.I("t.departure_city_id"),
		goqu.I("t.destination_city_id"),
		goqu.I("t.tour_type_id"),
		goqu.I("t.tour_category_id"),
		goqu.I("t.duration_days"),
		goqu.I("t.rating"),
		goqu.I("t.review_count"),
		goqu.I("t.base_price_adult"),
		goqu.MIN(goqu.I("d.departure_date")).As("next_departure"),
	).
		From(goqu.T("tours").As("t")).
		LeftJoin(
			goqu.T("departures").As("d"),
			goqu.On(
				goqu.I("d.tour_id").Eq(goqu.I("t.id")),
				goqu.I("d.status").Eq(string(entities.DepartureStatusScheduled)),
				goqu.I("d.seats_left").Gt(0),
			),
		).
		Where(goqu.I("t.is_active").Eq(true))

	if filter.PriceFrom != nil {
		base = base.Where(goqu.I("t.base_price_adult").Gte(*filter.PriceFrom))
	}
	if filter.PriceTo != nil {
		base = base.Where(goqu.I("t.base_price_adult").Lte(*filter.PriceTo))
	}
	if filter.DepartureCityID != nil {
		base = base.Where(goqu.I("t.departure_city_id").Eq(*filter.DepartureCityID))
	}
	if filter.DestinationCityID != nil {
		base = base.Where(goqu.I("t.destination_city_id").Eq(*filter.DestinationCityID))
	}
	if filter.TourTypeID != nil {
		base = base.Where(goqu.I("t.tour_type_id").Eq(*filter.TourTypeID))
	}
	if filter.TourCategoryID != nil {
		base = base.Where(goqu.I("t.tour_category_id").Eq(*filter.TourCategoryID))
	}
	if filter.DepartureDate != nil {
		// Filtering on the joined column drops tours with no bookable
		// departure on that date.
		base = base.Where(goqu.L("d.departure_date::date = ?", *filter.DepartureDate))
	}

	base = base.GroupBy(
		goqu.I("t.id"),
		goqu.I("t.name"),
		goqu.I("t.departure_city_id"),
		goqu.I("t.destination_city_id"),
		goqu.I("t.tour_type_id"),
		goqu.I("t.tour_category_id"),
		goqu.I("t.duration_days"),
		goqu.I("t.rating"),
		goqu.I("t.review_count"),
		goqu.I("t.base_price_adult"),
	)

	countSQL, countArgs, err := a.db.From(base.As("matches")).
		Select(goqu.COUNT("*")).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var totalCount int
	if err := a.client.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count tours", err)
	}

	page := base.Order(goqu.I("t.rating").Desc(), goqu.I("t.name").Asc()).
		Limit(uint(query.PageSize)).
		Offset(uint((query.PageIndex - 1) * query.PageSize))

	pageSQL, pageArgs, err := page.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to search tours", err)
	}
	defer rows.Close()

	summaries := []entities.TourSummary{}
	for rows.Next() {
		var s entities.TourSummary
		var nextDeparture sql.NullTime
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.DepartureCityID,
			&s.DestinationCityID,
			&s.TourTypeID,
			&s.TourCategoryID,
			&s.DurationDays,
			&s.Rating,
			&s.ReviewCount,
			&s.BasePriceAdult,
			&nextDeparture,
		)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan tour summary", err)
		}
		s.AverageRating = s.Rating
		if nextDeparture.Valid {
			s.NextDeparture = nextDeparture.Time.Format("2006-01-02")
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("error iterating tour summaries", err)
	}

	return summaries, totalCount, nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
)

// AccommodationAdapter implements AccommodationRepository
type AccommodationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAccommodationAdapter creates a new accommodation adapter
func NewAccommodationAdapter(client *postgres.Client) repositories.AccommodationRepository {
	return &AccommodationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var accommodationColumns = []interface{}{
	"id", "name", "city_id", "star_rating", "accommodation_type",
	"description", "address", "rating", "review_count",
	"is_active", "created_at", "updated_at",
}

// Create creates a new accommodation
func (a *AccommodationAdapter) Create(ctx context.Context, accommodation *entities.Accommodation) error {
	record := goqu.Record{
		"id":                 accommodation.ID,
		"name":               accommodation.Name,
		"city_id":            accommodation.CityID,
		"star_rating":        accommodation.StarRating,
		"accommodation_type": accommodation.AccommodationType,
		"description":        accommodation.Description,
		"address":            accommodation.Address,
		"rating":             accommodation.Rating,
		"review_count":       accommodation.ReviewCount,
		"is_active":          accommodation.IsActive,
		"created_at":         accommodation.CreatedAt,
		"updated_at":         accommodation.UpdatedAt,
	}

	query, args, err := a.db.Insert("accommodations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create accommodation", err)
	}

	return nil
}

// GetByID retrieves an accommodation by ID
func (a *AccommodationAdapter) GetByID(ctx context.Context, id string) (*entities.Accommodation, error) {
	query, args, err := a.db.Select(accommodationColumns...).
		From("accommodations").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	accommodation := &entities.Accommodation{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&accommodation.ID,
		&accommodation.Name,
		&accommodation.CityID,
		&accommodation.StarRating,
		&accommodation.AccommodationType,
		&accommodation.Description,
		&accommodation.Address,
		&accommodation.Rating,
		&accommodation.ReviewCount,
		&accommodation.IsActive,
		&accommodation.CreatedAt,
		&accommodation.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("accommodation with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get accommodation", err)
	}

	return accommodation, nil
}

// Update updates an accommodation
func (a *AccommodationAdapter) Update(ctx context.Context, accommodation *entities.Accommodation) error {
	accommodation.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":               accommodation.Name,
		"city_id":            accommodation.CityID,
		"star_rating":        accommodation.StarRating,
		"accommodation_type": accommodation.AccommodationType,
		"description":        accommodation.Description,
		"address":            accommodation.Address,
		"rating":             accommodation.Rating,
		"review_count":       accommodation.ReviewCount,
		"is_active":          accommodation.IsActive,
		"updated_at":         accommodation.UpdatedAt,
	}

	query, args, err := a.db.Update("accommodations").
		Set(record).
		Where(goqu.Ex{"id": accommodation.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update accommodation", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("accommodation with id %s not found", accommodation.ID))
	}

	return nil
}

// Delete deletes an accommodation (soft delete)
func (a *AccommodationAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Update("accommodations").
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
		return apperrors.NewInternalError("failed to delete accommodation", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("accommodation with id %s not found", id))
	}

	return nil
}

// List retrieves accommodations with back-office filters
func (a *AccommodationAdapter) List(ctx context.Context, filter repositories.AccommodationFilter) ([]*entities.Accommodation, error) {
	ds := a.db.Select(accommodationColumns...).From("accommodations")

	if filter.CityID != nil {
		ds = ds.Where(goqu.Ex{"city_id": *filter.CityID})
	}

	if filter.AccommodationType != "" {
		ds = ds.Where(goqu.Ex{"accommodation_type": filter.AccommodationType})
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
		return nil, apperrors.NewInternalError("failed to list accommodations", err)
	}
	defer rows.Close()

	accommodations := []*entities.Accommodation{}
	for rows.Next() {
		accommodation := &entities.Accommodation{}
		err := rows.Scan(
			&accommodation.ID,
			&accommodation.Name,
			&accommodation.CityID,
			&accommodation.StarRating,
			&accommodation.AccommodationType,
			&accommodation.Description,
			&accommodation.Address,
			&accommodation.Rating,
			&accommodation.ReviewCount,
			&accommodation.IsActive,
			&accommodation.CreatedAt,
			&accommodation.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan accommodation", err)
		}
		accommodations = append(accommodations, accommodation)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating accommodations", err)
	}

	return accommodations, nil
}

// SearchForCustomer filters the whole active catalog first, then paginates.
// The price facet is the cheapest active room type that satisfies the
// requested occupancy, so priceFrom/priceTo apply to the derived minimum,
// not to individual room types.
func (a *AccommodationAdapter) SearchForCustomer(ctx context.Context, query repositories.AccommodationSearchQuery) ([]entities.AccommodationSummary, int, error) {
	filter := query.Filter

	base := a.db.Select(
		goqu.I("a.id"),
		goqu.I("a.name"),
		goqu.I("a.city_id"),
		goqu.I("a.star_rating"),
		goqu.I("a.accommodation_type"),
		goqu.I("a.rating"),
		goqu.I("a.review_count"),
		goqu.MIN(goqu.I("rt.price_per_night")).As("min_room_type_price"),
	).
		From(goqu.T("accommodations").As("a")).
		Join(goqu.T("room_types").As("rt"), goqu.On(goqu.I("rt.accommodation_id").Eq(goqu.I("a.id")))).
		Where(goqu.I("a.is_active").Eq(true)).
		Where(goqu.I("rt.is_active").Eq(true))

	if filter.CityID != nil {
		base = base.Where(goqu.I("a.city_id").Eq(*filter.CityID))
	}
	if filter.StarRating != nil {
		base = base.Where(goqu.I("a.star_rating").Eq(*filter.StarRating))
	}
	if filter.AccommodationType != nil {
		base = base.Where(goqu.I("a.accommodation_type").Eq(*filter.AccommodationType))
	}

	// Occupancy constrains which room types count toward the price facet.
	if filter.NumOfAdult != nil {
		base = base.Where(goqu.I("rt.capacity_adult").Gte(*filter.NumOfAdult))
	}
	if filter.NumOfChild != nil {
		base = base.Where(goqu.I("rt.capacity_child").Gte(*filter.NumOfChild))
	}
	if filter.NumOfRoom != nil {
		base = base.Where(goqu.I("rt.total_rooms").Gte(*filter.NumOfRoom))
	}

	base = base.GroupBy(
		goqu.I("a.id"),
		goqu.I("a.name"),
		goqu.I("a.city_id"),
		goqu.I("a.star_rating"),
		goqu.I("a.accommodation_type"),
		goqu.I("a.rating"),
		goqu.I("a.review_count"),
	)

	if filter.PriceFrom != nil {
		base = base.Having(goqu.MIN(goqu.I("rt.price_per_night")).Gte(*filter.PriceFrom))
	}
	if filter.PriceTo != nil {
		base = base.Having(goqu.MIN(goqu.I("rt.price_per_night")).Lte(*filter.PriceTo))
	}

	// Count the fully filtered set before pagination so meta.totalCount
	// reflects every matching accommodation, not just the current page.
	countSQL, countArgs, err := a.db.From(base.As("matches")).
		Select(goqu.COUNT("*")).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var totalCount int
	if err := a.client.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count accommodations", err)
	}

	page := base.Order(goqu.I("a.rating").Desc(), goqu.I("a.name").Asc()).
		Limit(uint(query.PageSize)).
		Offset(uint((query.PageIndex - 1) * query.PageSize))

	pageSQL, pageArgs, err := page.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to search accommodations", err)
	}
	defer rows.Close()

	summaries := []entities.AccommodationSummary{}
	for rows.Next() {
		var s entities.AccommodationSummary
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.CityID,
			&s.StarRating,
			&s.AccommodationType,
			&s.Rating,
			&s.ReviewCount,
			&s.MinRoomTypePrice,
		)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan accommodation summary", err)
		}
		s.AverageRating = s.Rating
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("error iterating accommodation summaries", err)
	}

	return summaries, totalCount, nil
}

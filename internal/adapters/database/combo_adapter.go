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

// ComboAdapter implements ComboRepository
type ComboAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewComboAdapter creates a new combo adapter
func NewComboAdapter(client *postgres.Client) repositories.ComboRepository {
	return &ComboAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var comboColumns = []interface{}{
	"id", "name", "departure_city_id", "destination_city_id", "vehicle",
	"base_price_adult", "base_price_child", "duration_days", "description",
	"rating", "review_count", "is_active", "created_at", "updated_at",
}

// Create creates a new combo
func (a *ComboAdapter) Create(ctx context.Context, combo *entities.Combo) error {
	record := goqu.Record{
		"id":                  combo.ID,
		"name":                combo.Name,
		"departure_city_id":   combo.DepartureCityID,
		"destination_city_id": combo.DestinationCityID,
		"vehicle":             combo.Vehicle,
		"base_price_adult":    combo.BasePriceAdult,
		"base_price_child":    combo.BasePriceChild,
		"duration_days":       combo.DurationDays,
		"description":         combo.Description,
		"rating":              combo.Rating,
		"review_count":        combo.ReviewCount,
		"is_active":           combo.IsActive,
		"created_at":          combo.CreatedAt,
		"updated_at":          combo.UpdatedAt,
	}

	query, args, err := a.db.Insert("combos").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create combo", err)
	}

	return nil
}

// GetByID retrieves a combo by ID
func (a *ComboAdapter) GetByID(ctx context.Context, id string) (*entities.Combo, error) {
	query, args, err := a.db.Select(comboColumns...).
		From("combos").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	combo := &entities.Combo{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&combo.ID,
		&combo.Name,
		&combo.DepartureCityID,
		&combo.DestinationCityID,
		&combo.Vehicle,
		&combo.BasePriceAdult,
		&combo.BasePriceChild,
		&combo.DurationDays,
		&combo.Description,
		&combo.Rating,
		&combo.ReviewCount,
		&combo.IsActive,
		&combo.CreatedAt,
		&combo.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("combo with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get combo", err)
	}

	return combo, nil
}

// Update updates a combo
func (a *ComboAdapter) Update(ctx context.Context, combo *entities.Combo) error {
	combo.UpdatedAt = time.Now()

	record := goqu.Record{
		"name":                combo.Name,
		"departure_city_id":   combo.DepartureCityID,
		"destination_city_id": combo.DestinationCityID,
		"vehicle":             combo.Vehicle,
		"base_price_adult":    combo.BasePriceAdult,
		"base_price_child":    combo.BasePriceChild,
		"duration_days":       combo.DurationDays,
		"description":         combo.Description,
		"rating":              combo.Rating,
		"review_count":        combo.ReviewCount,
		"is_active":           combo.IsActive,
		"updated_at":          combo.UpdatedAt,
	}

	query, args, err := a.db.Update("combos").
		Set(record).
		Where(goqu.Ex{"id": combo.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update combo", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("combo with id %s not found", combo.ID))
	}

	return nil
}

// Delete deletes a combo (soft delete)
func (a *ComboAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Update("combos").
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
		return apperrors.NewInternalError("failed to delete combo", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}

	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("combo with id %s not found", id))
	}

	return nil
}

// List retrieves combos with back-office filters
func (a *ComboAdapter) List(ctx context.Context, filter repositories.ComboFilter) ([]*entities.Combo, error) {
	ds := a.db.Select(comboColumns...).From("combos")

	if filter.DepartureCityID != nil {
		ds = ds.Where(goqu.Ex{"departure_city_id": *filter.DepartureCityID})
	}
	if filter.DestinationCityID != nil {
		ds = ds.Where(goqu.Ex{"destination_city_id": *filter.DestinationCityID})
	}
	if filter.Vehicle != "" {
		ds = ds.Where(goqu.Ex{"vehicle": filter.Vehicle})
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
		return nil, apperrors.NewInternalError("failed to list combos", err)
	}
	defer rows.Close()

	combos := []*entities.Combo{}
	for rows.Next() {
		combo := &entities.Combo{}
		err := rows.Scan(
			&combo.ID,
			&combo.Name,
			&combo.DepartureCityID,
			&combo.DestinationCityID,
			&combo.Vehicle,
			&combo.BasePriceAdult,
			&combo.BasePriceChild,
			&combo.DurationDays,
			&combo.Description,
			&combo.Rating,
			&combo.ReviewCount,
			&combo.IsActive,
			&combo.CreatedAt,
			&combo.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan combo", err)
		}
		combos = append(combos, combo)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating combos", err)
	}

	return combos, nil
}

// SearchForCustomer filters the whole active combo catalog first, then paginates
func (a *ComboAdapter) SearchForCustomer(ctx context.Context, query repositories.ComboSearchQuery) ([]entities.ComboSummary, int, error) {
	filter := query.Filter

	ds := a.db.Select(
		"id", "name", "departure_city_id", "destination_city_id", "vehicle",
		"duration_days", "rating", "review_count", "base_price_adult",
	).
		From("combos").
		Where(goqu.I("is_active").Eq(true))

	if filter.PriceFrom != nil {
		ds = ds.Where(goqu.I("base_price_adult").Gte(*filter.PriceFrom))
	}
	if filter.PriceTo != nil {
		ds = ds.Where(goqu.I("base_price_adult").Lte(*filter.PriceTo))
	}
	if filter.DepartureCityID != nil {
		ds = ds.Where(goqu.I("departure_city_id").Eq(*filter.DepartureCityID))
	}
	if filter.DestinationCityID != nil {
		ds = ds.Where(goqu.I("destination_city_id").Eq(*filter.DestinationCityID))
	}
	if filter.Vehicle != nil {
		ds = ds.Where(goqu.I("vehicle").Eq(*filter.Vehicle))
	}
	if filter.DepartureDate != nil {
		ds = ds.Where(goqu.L(
			"EXISTS (SELECT 1 FROM combo_departures cd WHERE cd.combo_id = combos.id AND cd.status = 'scheduled' AND cd.seats_left > 0 AND cd.departure_date::date = ?)",
			*filter.DepartureDate,
		))
	}

	countSQL, countArgs, err := a.db.From(ds.As("matches")).
		Select(goqu.COUNT("*")).
		ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build count query", err)
	}

	var totalCount int
	if err := a.client.DB().QueryRowContext(ctx, countSQL, countArgs...).Scan(&totalCount); err != nil {
		return nil, 0, apperrors.NewInternalError("failed to count combos", err)
	}

	page := ds.Order(goqu.I("rating").Desc(), goqu.I("name").Asc()).
		Limit(uint(query.PageSize)).
		Offset(uint((query.PageIndex - 1) * query.PageSize))

	pageSQL, pageArgs, err := page.ToSQL()
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to build search query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, pageSQL, pageArgs...)
	if err != nil {
		return nil, 0, apperrors.NewInternalError("failed to search combos", err)
	}
	defer rows.Close()

	summaries := []entities.ComboSummary{}
	for rows.Next() {
		var s entities.ComboSummary
		err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.DepartureCityID,
			&s.DestinationCityID,
			&s.Vehicle,
			&s.DurationDays,
			&s.Rating,
			&s.ReviewCount,
			&s.BasePriceAdult,
		)
		if err != nil {
			return nil, 0, apperrors.NewInternalError("failed to scan combo summary", err)
		}
		s.AverageRating = s.Rating
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewInternalError("error iterating combo summaries", err)
	}

	return summaries, totalCount, nil
}

package search

import (
	"context"
	"fmt"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	tsclient "github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements catalog name search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

var _ repositories.CatalogSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// InitSchema ensures both catalog collections exist
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	schemas := []*api.CollectionSchema{
		{
			Name: tsclient.AccommodationsCollection,
			Fields: []api.Field{
				{Name: "id", Type: "string"},
				{Name: "name", Type: "string"},
				{Name: "accommodation_type", Type: "string", Facet: pointer.True()},
				{Name: "city_id", Type: "int32", Facet: pointer.True()},
				{Name: "star_rating", Type: "int32", Facet: pointer.True()},
				{Name: "rating", Type: "float"},
				{Name: "review_count", Type: "int32"},
				{Name: "min_room_type_price", Type: "float"},
				{Name: "created_at", Type: "int64"},
			},
			DefaultSortingField: pointer.String("created_at"),
		},
		{
			Name: tsclient.ToursCollection,
			Fields: []api.Field{
				{Name: "id", Type: "string"},
				{Name: "name", Type: "string"},
				{Name: "departure_city_id", Type: "int32", Facet: pointer.True()},
				{Name: "destination_city_id", Type: "int32", Facet: pointer.True()},
				{Name: "tour_type_id", Type: "int32", Facet: pointer.True()},
				{Name: "tour_category_id", Type: "int32", Facet: pointer.True()},
				{Name: "duration_days", Type: "int32"},
				{Name: "rating", Type: "float"},
				{Name: "review_count", Type: "int32"},
				{Name: "base_price_adult", Type: "float"},
				{Name: "created_at", Type: "int64"},
			},
			DefaultSortingField: pointer.String("created_at"),
		},
	}

	for _, schema := range schemas {
		_, err := a.client.Client().Collection(schema.Name).Retrieve(ctx)
		if err == nil {
			continue // collection exists
		}
		if _, err := a.client.Client().Collections().Create(ctx, schema); err != nil {
			return fmt.Errorf("failed to create typesense collection %s: %w", schema.Name, err)
		}
	}

	return nil
}

// IndexAccommodation upserts one accommodation document
func (a *TypesenseAdapter) IndexAccommodation(ctx context.Context, accommodation *entities.Accommodation, minRoomTypePrice float64) error {
	document := map[string]interface{}{
		"id":                  accommodation.ID,
		"name":                accommodation.Name,
		"accommodation_type":  accommodation.AccommodationType,
		"city_id":             accommodation.CityID,
		"star_rating":         accommodation.StarRating,
		"rating":              accommodation.Rating,
		"review_count":        accommodation.ReviewCount,
		"min_room_type_price": minRoomTypePrice,
		"created_at":          accommodation.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(tsclient.AccommodationsCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index accommodation: %w", err)
	}

	return nil
}

// DeleteAccommodation removes an accommodation from the index
func (a *TypesenseAdapter) DeleteAccommodation(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.AccommodationsCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete accommodation from index: %w", err)
	}
	return nil
}

// SuggestAccommodations runs a prefix name search against the index
func (a *TypesenseAdapter) SuggestAccommodations(ctx context.Context, query string, limit int) ([]entities.AccommodationSummary, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.AccommodationsCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest accommodations: %w", err)
	}

	summaries := []entities.AccommodationSummary{}
	if result.Hits == nil {
		return summaries, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		s := entities.AccommodationSummary{
			ID:   stringField(doc, "id"),
			Name: stringField(doc, "name"),
		}
		s.AccommodationType = stringField(doc, "accommodation_type")
		s.CityID = intField(doc, "city_id")
		s.StarRating = intField(doc, "star_rating")
		s.Rating = floatField(doc, "rating")
		s.AverageRating = s.Rating
		s.ReviewCount = intField(doc, "review_count")
		s.MinRoomTypePrice = floatField(doc, "min_room_type_price")

		summaries = append(summaries, s)
	}

	return summaries, nil
}

// IndexTour upserts one tour document
func (a *TypesenseAdapter) IndexTour(ctx context.Context, tour *entities.Tour) error {
	document := map[string]interface{}{
		"id":                  tour.ID,
		"name":                tour.Name,
		"departure_city_id":   tour.DepartureCityID,
		"destination_city_id": tour.DestinationCityID,
		"tour_type_id":        tour.TourTypeID,
		"tour_category_id":    tour.TourCategoryID,
		"duration_days":       tour.DurationDays,
		"rating":              tour.Rating,
		"review_count":        tour.ReviewCount,
		"base_price_adult":    tour.BasePriceAdult,
		"created_at":          tour.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(tsclient.ToursCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index tour: %w", err)
	}

	return nil
}

// DeleteTour removes a tour from the index
func (a *TypesenseAdapter) DeleteTour(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.ToursCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete tour from index: %w", err)
	}
	return nil
}

// SuggestTours runs a prefix name search against the index
func (a *TypesenseAdapter) SuggestTours(ctx context.Context, query string, limit int) ([]entities.TourSummary, error) {
	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.ToursCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest tours: %w", err)
	}

	summaries := []entities.TourSummary{}
	if result.Hits == nil {
		return summaries, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document

		s := entities.TourSummary{
			ID:   stringField(doc, "id"),
			Name: stringField(doc, "name"),
		}
		s.DepartureCityID = intField(doc, "departure_city_id")
		s.DestinationCityID = intField(doc, "destination_city_id")
		s.TourTypeID = intField(doc, "tour_type_id")
		s.TourCategoryID = intField(doc, "tour_category_id")
		s.DurationDays = intField(doc, "duration_days")
		s.Rating = floatField(doc, "rating")
		s.AverageRating = s.Rating
		s.ReviewCount = intField(doc, "review_count")
		s.BasePriceAdult = floatField(doc, "base_price_adult")

		summaries = append(summaries, s)
	}

	return summaries, nil
}

// Typesense returns map[string]interface{} documents, so fields need safe casts.

func stringField(doc map[string]interface{}, key string) string {
	if v, ok := doc[key].(string); ok {
		return v
	}
	return ""
}

func floatField(doc map[string]interface{}, key string) float64 {
	if v, ok := doc[key].(float64); ok {
		return v
	}
	return 0
}

func intField(doc map[string]interface{}, key string) int {
	if v, ok := doc[key].(float64); ok {
		return int(v)
	}
	return 0
}

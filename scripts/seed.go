// Seed populates a development database with a small catalog: three city
// markets, accommodations with room inventory, scheduled tours, and combos.
// Set RESET_DB=true to truncate catalog tables first.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wanderlane/travelbook/backend/internal/adapters/database"
	"github.com/wanderlane/travelbook/backend/internal/adapters/search"
	"github.com/wanderlane/travelbook/backend/internal/application/services"
	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/postgres"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/typesense"
	"github.com/wanderlane/travelbook/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	var searchRepo repositories.CatalogSearchRepository
	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Typesense unavailable, seeding without index: %v", err)
	} else {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
	}

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				combo_departures,
				combos,
				departures,
				tours,
				room_types,
				accommodations
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to truncate tables: %v", err)
		}
	}

	accommodationRepo := database.NewAccommodationAdapter(pgClient)
	roomTypeRepo := database.NewRoomTypeAdapter(pgClient)
	tourRepo := database.NewTourAdapter(pgClient)
	departureRepo := database.NewDepartureAdapter(pgClient)
	comboRepo := database.NewComboAdapter(pgClient)

	accommodationService := services.NewAccommodationService(accommodationRepo, roomTypeRepo, searchRepo, nil, cfg.Catalog)
	roomTypeService := services.NewRoomTypeService(roomTypeRepo, accommodationRepo)
	tourService := services.NewTourService(tourRepo, departureRepo, searchRepo, nil, cfg.Catalog)
	comboService := services.NewComboService(comboRepo, nil, cfg.Catalog)

	seedAccommodations(ctx, accommodationService, roomTypeService)
	seedTours(ctx, tourService)
	seedCombos(ctx, comboService)

	log.Println("Seeding complete")
}

func seedAccommodations(ctx context.Context, accommodations *services.AccommodationService, roomTypes *services.RoomTypeService) {
	seeds := []struct {
		name     string
		cityID   int
		stars    int
		accType  string
		rating   float64
		reviews  int
		rooms    []entities.RoomType
	}{
		{
			name: "Harbor View Hotel", cityID: 1, stars: 4, accType: "hotel", rating: 4.4, reviews: 312,
			rooms: []entities.RoomType{
				{Name: "Standard Double", PricePerNight: 120, CapacityAdult: 2, CapacityChild: 1, TotalRooms: 28, IsActive: true},
				{Name: "Harbor Suite", PricePerNight: 240, CapacityAdult: 2, CapacityChild: 2, TotalRooms: 6, IsActive: true},
			},
		},
		{
			name: "Old Town Hostel", cityID: 1, stars: 2, accType: "hostel", rating: 4.1, reviews: 845,
			rooms: []entities.RoomType{
				{Name: "Dorm Bed", PricePerNight: 22, CapacityAdult: 1, TotalRooms: 60, IsActive: true},
				{Name: "Private Twin", PricePerNight: 65, CapacityAdult: 2, TotalRooms: 10, IsActive: true},
			},
		},
		{
			name: "Lakeside Resort & Spa", cityID: 2, stars: 5, accType: "resort", rating: 4.8, reviews: 190,
			rooms: []entities.RoomType{
				{Name: "Garden Villa", PricePerNight: 380, CapacityAdult: 2, CapacityChild: 2, TotalRooms: 12, IsActive: true},
				{Name: "Lake Bungalow", PricePerNight: 520, CapacityAdult: 4, CapacityChild: 2, TotalRooms: 8, IsActive: true},
			},
		},
		{
			name: "Mountain Pass Lodge", cityID: 3, stars: 3, accType: "lodge", rating: 4.3, reviews: 97,
			rooms: []entities.RoomType{
				{Name: "Alpine Room", PricePerNight: 95, CapacityAdult: 2, CapacityChild: 1, TotalRooms: 20, IsActive: true},
			},
		},
	}

	for _, seed := range seeds {
		acc := &entities.Accommodation{
			Name:              seed.name,
			CityID:            seed.cityID,
			StarRating:        seed.stars,
			AccommodationType: seed.accType,
			Description:       fmt.Sprintf("%s in city %d", seed.name, seed.cityID),
			Rating:            seed.rating,
			ReviewCount:       seed.reviews,
			IsActive:          true,
		}
		if err := accommodations.Create(ctx, acc); err != nil {
			log.Printf("Warning: failed to seed accommodation %s: %v", seed.name, err)
			continue
		}
		for _, room := range seed.rooms {
			room.AccommodationID = acc.ID
			rt := room
			if err := roomTypes.Create(ctx, &rt); err != nil {
				log.Printf("Warning: failed to seed room type %s: %v", rt.Name, err)
			}
		}
		log.Printf("Seeded accommodation %s (%d room types)", seed.name, len(seed.rooms))
	}
}

func seedTours(ctx context.Context, tours *services.TourService) {
	departureBase := time.Now().AddDate(0, 1, 0)

	seeds := []struct {
		name          string
		depCity       int
		destCity      int
		tourType      int
		tourCategory  int
		priceAdult    float64
		priceChild    float64
		durationDays  int
		departures    int
	}{
		{name: "Coastal Highlights", depCity: 1, destCity: 2, tourType: 1, tourCategory: 1, priceAdult: 450, priceChild: 280, durationDays: 3, departures: 4},
		{name: "Alpine Trek", depCity: 2, destCity: 3, tourType: 2, tourCategory: 2, priceAdult: 780, priceChild: 0, durationDays: 6, departures: 2},
		{name: "City Food Walk", depCity: 1, destCity: 1, tourType: 3, tourCategory: 1, priceAdult: 85, priceChild: 45, durationDays: 1, departures: 8},
	}

	for _, seed := range seeds {
		tour := &entities.Tour{
			Name:              seed.name,
			DepartureCityID:   seed.depCity,
			DestinationCityID: seed.destCity,
			TourTypeID:        seed.tourType,
			TourCategoryID:    seed.tourCategory,
			BasePriceAdult:    seed.priceAdult,
			BasePriceChild:    seed.priceChild,
			DurationDays:      seed.durationDays,
			IsActive:          true,
		}
		if err := tours.Create(ctx, tour); err != nil {
			log.Printf("Warning: failed to seed tour %s: %v", seed.name, err)
			continue
		}
		for i := 0; i < seed.departures; i++ {
			dep := &entities.Departure{
				TourID:        tour.ID,
				DepartureDate: departureBase.AddDate(0, 0, i*7),
				SeatsTotal:    30,
				Status:        entities.DepartureStatusScheduled,
			}
			if err := tours.CreateDeparture(ctx, dep); err != nil {
				log.Printf("Warning: failed to seed departure for %s: %v", seed.name, err)
			}
		}
		log.Printf("Seeded tour %s (%d departures)", seed.name, seed.departures)
	}
}

func seedCombos(ctx context.Context, combos *services.ComboService) {
	seeds := []entities.Combo{
		{Name: "Fly & Stay: Lakeside", DepartureCityID: 1, DestinationCityID: 2, Vehicle: "plane", BasePriceAdult: 690, BasePriceChild: 420, IsActive: true},
		{Name: "Bus & Lodge: Mountain Weekend", DepartureCityID: 2, DestinationCityID: 3, Vehicle: "bus", BasePriceAdult: 240, BasePriceChild: 150, IsActive: true},
	}

	for i := range seeds {
		combo := seeds[i]
		if err := combos.Create(ctx, &combo); err != nil {
			log.Printf("Warning: failed to seed combo %s: %v", combo.Name, err)
			continue
		}
		log.Printf("Seeded combo %s", combo.Name)
	}
}

// The indexer backfills the Typesense catalog collections from Postgres.
// Run it once after a bulk import, or with -interval for periodic reindexing.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/wanderlane/travelbook/backend/internal/adapters/database"
	"github.com/wanderlane/travelbook/backend/internal/adapters/search"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/postgres"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/typesense"
	"github.com/wanderlane/travelbook/backend/pkg/config"
)

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collections before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	var err error
	if intervalValue != "" {
		interval, err = time.ParseDuration(intervalValue)
		if err != nil {
			log.Fatalf("Invalid interval %q: %v", intervalValue, err)
		}
		if interval <= 0 {
			log.Fatalf("Interval must be greater than zero")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			log.Printf("Reindex failed: %v", err)
		}

		if interval <= 0 {
			break
		}

		reset = false
		log.Printf("Reindex complete. Next run in %s.", interval)

		select {
		case <-ctx.Done():
			log.Println("Reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	accommodationRepo := database.NewAccommodationAdapter(pgClient)
	roomTypeRepo := database.NewRoomTypeAdapter(pgClient)
	tourRepo := database.NewTourAdapter(pgClient)

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset || os.Getenv("RESET_TYPESENSE") == "true" {
		for _, collection := range []string{typesense.AccommodationsCollection, typesense.ToursCollection} {
			log.Printf("Deleting collection %s before reindex", collection)
			if _, err := tsClient.Client().Collection(collection).Delete(ctx); err != nil {
				log.Printf("Warning: failed to delete collection %s: %v", collection, err)
			}
		}
	}

	adapter := search.NewTypesenseAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	accommodations, err := accommodationRepo.List(ctx, repositories.AccommodationFilter{Limit: 1000})
	if err != nil {
		return err
	}

	log.Printf("Indexing %d accommodations...", len(accommodations))
	indexed := 0
	for _, acc := range accommodations {

		minPrice := 0.0
		roomTypes, err := roomTypeRepo.ListByAccommodation(ctx, acc.ID)
		if err != nil {
			log.Printf("Warning: failed to load room types for %s: %v", acc.ID, err)
		}
		for _, rt := range roomTypes {
			if !rt.IsActive {
				continue
			}
			if minPrice == 0 || rt.PricePerNight < minPrice {
				minPrice = rt.PricePerNight
			}
		}

		if err := adapter.IndexAccommodation(ctx, acc, minPrice); err != nil {
			log.Printf("Warning: failed to index accommodation %s: %v", acc.ID, err)
			continue
		}
		indexed++
	}
	log.Printf("Indexed %d/%d accommodations", indexed, len(accommodations))

	tours, err := tourRepo.List(ctx, repositories.TourFilter{Limit: 1000})
	if err != nil {
		return err
	}

	log.Printf("Indexing %d tours...", len(tours))
	indexed = 0
	for _, tour := range tours {
		if err := adapter.IndexTour(ctx, tour); err != nil {
			log.Printf("Warning: failed to index tour %s: %v", tour.ID, err)
			continue
		}
		indexed++
	}
	log.Printf("Indexed %d/%d tours", indexed, len(tours))

	return nil
}

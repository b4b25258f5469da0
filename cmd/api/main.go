package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wanderlane/travelbook/backend/internal/adapters/cache"
	"github.com/wanderlane/travelbook/backend/internal/adapters/database"
	"github.com/wanderlane/travelbook/backend/internal/adapters/search"
	"github.com/wanderlane/travelbook/backend/internal/api/handlers"
	"github.com/wanderlane/travelbook/backend/internal/api/routes"
	"github.com/wanderlane/travelbook/backend/internal/application/services"
	"github.com/wanderlane/travelbook/backend/internal/domain/providers"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/postgres"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/redis"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/clients/typesense"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/observability"
	"github.com/wanderlane/travelbook/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Redis is optional: the catalog works without result caching.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Println("Redis client initialized successfully")
	}

	// Typesense is optional: suggestions degrade to empty results without it.
	var searchRepo repositories.CatalogSearchRepository
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
	} else {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
		log.Println("Typesense client initialized successfully")
	}

	// Adapters
	accommodationRepo := database.NewAccommodationAdapter(pgClient)
	roomTypeRepo := database.NewRoomTypeAdapter(pgClient)
	tourRepo := database.NewTourAdapter(pgClient)
	departureRepo := database.NewDepartureAdapter(pgClient)
	comboRepo := database.NewComboAdapter(pgClient)

	// Services
	accommodationService := services.NewAccommodationService(accommodationRepo, roomTypeRepo, searchRepo, cacheProvider, cfg.Catalog)
	roomTypeService := services.NewRoomTypeService(roomTypeRepo, accommodationRepo)
	tourService := services.NewTourService(tourRepo, departureRepo, searchRepo, cacheProvider, cfg.Catalog)
	comboService := services.NewComboService(comboRepo, cacheProvider, cfg.Catalog)

	// Handlers
	accommodationHandler := handlers.NewAccommodationHandler(accommodationService, accommodationService)
	roomTypeHandler := handlers.NewRoomTypeHandler(roomTypeService)
	tourHandler := handlers.NewTourHandler(tourService, tourService)
	comboHandler := handlers.NewComboHandler(comboService, comboService)

	router := routes.NewRouter(
		accommodationHandler,
		roomTypeHandler,
		tourHandler,
		comboHandler,
		metrics,
	)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}

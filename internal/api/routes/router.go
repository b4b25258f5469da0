package routes

import (
	"net/http"

	"github.com/wanderlane/travelbook/backend/internal/api/handlers"
	"github.com/wanderlane/travelbook/backend/internal/api/middleware"
	"github.com/wanderlane/travelbook/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	accommodationHandler *handlers.AccommodationHandler
	roomTypeHandler      *handlers.RoomTypeHandler
	tourHandler          *handlers.TourHandler
	comboHandler         *handlers.ComboHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	accommodationHandler *handlers.AccommodationHandler,
	roomTypeHandler *handlers.RoomTypeHandler,
	tourHandler *handlers.TourHandler,
	comboHandler *handlers.ComboHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                  http.NewServeMux(),
		accommodationHandler: accommodationHandler,
		roomTypeHandler:      roomTypeHandler,
		tourHandler:          tourHandler,
		comboHandler:         comboHandler,
		metrics:              metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Accommodation endpoints
	r.mux.HandleFunc("POST /api/accommodations/search-for-customer", r.accommodationHandler.SearchForCustomer)
	r.mux.HandleFunc("GET /api/accommodations/suggest", r.accommodationHandler.Suggest)
	r.mux.HandleFunc("GET /api/accommodations", r.accommodationHandler.ListAccommodations)
	r.mux.HandleFunc("POST /api/accommodations", r.accommodationHandler.CreateAccommodation)
	r.mux.HandleFunc("GET /api/accommodations/{id}", r.accommodationHandler.GetAccommodation)
	r.mux.HandleFunc("PUT /api/accommodations/{id}", r.accommodationHandler.UpdateAccommodation)
	r.mux.HandleFunc("DELETE /api/accommodations/{id}", r.accommodationHandler.DeleteAccommodation)

	// Room type endpoints
	r.mux.HandleFunc("POST /api/accommodations/{id}/room-types", r.roomTypeHandler.CreateRoomType)
	r.mux.HandleFunc("GET /api/accommodations/{id}/room-types", r.roomTypeHandler.ListRoomTypes)
	r.mux.HandleFunc("PUT /api/room-types/{id}", r.roomTypeHandler.UpdateRoomType)
	r.mux.HandleFunc("DELETE /api/room-types/{id}", r.roomTypeHandler.DeleteRoomType)

	// Tour endpoints
	r.mux.HandleFunc("POST /api/tours/search-for-customer", r.tourHandler.SearchForCustomer)
	r.mux.HandleFunc("GET /api/tours/suggest", r.tourHandler.Suggest)
	r.mux.HandleFunc("GET /api/tours", r.tourHandler.ListTours)
	r.mux.HandleFunc("POST /api/tours", r.tourHandler.CreateTour)
	r.mux.HandleFunc("GET /api/tours/{id}", r.tourHandler.GetTour)
	r.mux.HandleFunc("PUT /api/tours/{id}", r.tourHandler.UpdateTour)
	r.mux.HandleFunc("DELETE /api/tours/{id}", r.tourHandler.DeleteTour)

	// Departure endpoints
	r.mux.HandleFunc("POST /api/tours/{id}/departures", r.tourHandler.CreateDeparture)
	r.mux.HandleFunc("GET /api/tours/{id}/departures", r.tourHandler.ListDepartures)
	r.mux.HandleFunc("PUT /api/departures/{id}", r.tourHandler.UpdateDeparture)
	r.mux.HandleFunc("DELETE /api/departures/{id}", r.tourHandler.DeleteDeparture)

	// Combo endpoints
	r.mux.HandleFunc("POST /api/combos/search-for-customer", r.comboHandler.SearchForCustomer)
	r.mux.HandleFunc("GET /api/combos", r.comboHandler.ListCombos)
	r.mux.HandleFunc("POST /api/combos", r.comboHandler.CreateCombo)
	r.mux.HandleFunc("GET /api/combos/{id}", r.comboHandler.GetCombo)
	r.mux.HandleFunc("PUT /api/combos/{id}", r.comboHandler.UpdateCombo)
	r.mux.HandleFunc("DELETE /api/combos/{id}", r.comboHandler.DeleteCombo)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so preflights never reach the mux
	handler = middleware.CORSMiddleware(handler)

	return handler
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
)

// TourSearcher is the slice of the tour service the customer handler needs.
type TourSearcher interface {
	SearchForCustomer(ctx context.Context, query repositories.TourSearchQuery) ([]entities.TourSummary, entities.ResultMeta, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]entities.TourSummary, error)
}

// TourAdmin covers the back-office tour and departure surface.
type TourAdmin interface {
	Create(ctx context.Context, tour *entities.Tour) error
	GetByID(ctx context.Context, id string) (*entities.Tour, error)
	Update(ctx context.Context, tour *entities.Tour) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repositories.TourFilter) ([]*entities.Tour, error)
	CreateDeparture(ctx context.Context, dep *entities.Departure) error
	UpdateDeparture(ctx context.Context, dep *entities.Departure) error
	DeleteDeparture(ctx context.Context, id string) error
	ListDepartures(ctx context.Context, tourID string) ([]*entities.Departure, error)
}

// TourHandler handles tour-related HTTP requests
type TourHandler struct {
	searcher TourSearcher
	admin    TourAdmin
}

func NewTourHandler(searcher TourSearcher, admin TourAdmin) *TourHandler {
	return &TourHandler{searcher: searcher, admin: admin}
}

// SearchForCustomer handles POST /api/tours/search-for-customer
func (h *TourHandler) SearchForCustomer(w http.ResponseWriter, r *http.Request) {
	var query repositories.TourSearchQuery
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		respondWithEnvelopeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, meta, err := h.searcher.SearchForCustomer(r.Context(), query)
	if err != nil {
		status, message := statusForError(err)
		respondWithEnvelopeError(w, status, message)
		return
	}
	if items == nil {
		items = []entities.TourSummary{}
	}

	respondWithEnvelope(w, http.StatusOK, map[string]interface{}{
		"tours": items,
		"meta":  meta,
	}, "search completed")
}

// Suggest handles GET /api/tours/suggest?q=...
func (h *TourHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("q")
	if prefix == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	items, err := h.searcher.Suggest(r.Context(), prefix, 10)
	if err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tours": items,
		"count": len(items),
	})
}

// CreateTour handles POST /api/tours
func (h *TourHandler) CreateTour(w http.ResponseWriter, r *http.Request) {
	var tour entities.Tour
	if err := json.NewDecoder(r.Body).Decode(&tour); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.admin.Create(r.Context(), &tour); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusCreated, tour)
}

// GetTour handles GET /api/tours/{id}
func (h *TourHandler) GetTour(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "tour ID is required")
		return
	}

	tour, err := h.admin.GetByID(r.Context(), id)
	if err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusOK, tour)
}

// UpdateTour handles PUT /api/tours/{id}
func (h *TourHandler) UpdateTour(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "tour ID is required")
		return
	}

	var tour entities.Tour
	if err := json.NewDecoder(r.Body).Decode(&tour); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tour.ID = id

	if err := h.admin.Update(r.Context(), &tour); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusOK, tour)
}

// DeleteTour handles DELETE /api/tours/{id}
func (h *TourHandler) DeleteTour(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "tour ID is required")
		return
	}

	if err := h.admin.Delete(r.Context(), id); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTours handles GET /api/tours
func (h *TourHandler) ListTours(w http.ResponseWriter, r *http.Request) {
	tours, err := h.admin.List(r.Context(), repositories.TourFilter{Limit: 50})
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list tours")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"tours": tours,
		"count": len(tours),
	})
}

// CreateDeparture handles POST /api/tours/{id}/departures
func (h *TourHandler) CreateDeparture(w http.ResponseWriter, r *http.Request) {
	tourID := r.PathValue("id")
	if tourID == "" {
		respondWithError(w, http.StatusBadRequest, "tour ID is required")
		return
	}

	var dep entities.Departure
	if err := json.NewDecoder(r.Body).Decode(&dep); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dep.TourID = tourID

	if err := h.admin.CreateDeparture(r.Context(), &dep); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusCreated, dep)
}

// ListDepartures handles GET /api/tours/{id}/departures
func (h *TourHandler) ListDepartures(w http.ResponseWriter, r *http.Request) {
	tourID := r.PathValue("id")
	if tourID == "" {
		respondWithError(w, http.StatusBadRequest, "tour ID is required")
		return
	}

	departures, err := h.admin.ListDepartures(r.Context(), tourID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list departures")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"departures": departures,
		"count":      len(departures),
	})
}

// UpdateDeparture handles PUT /api/departures/{id}
func (h *TourHandler) UpdateDeparture(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "departure ID is required")
		return
	}

	var dep entities.Departure
	if err := json.NewDecoder(r.Body).Decode(&dep); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	dep.ID = id

	if err := h.admin.UpdateDeparture(r.Context(), &dep); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusOK, dep)
}

// DeleteDeparture handles DELETE /api/departures/{id}
func (h *TourHandler) DeleteDeparture(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "departure ID is required")
		return
	}

	if err := h.admin.DeleteDeparture(r.Context(), id); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

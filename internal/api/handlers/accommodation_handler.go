package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
)

// AccommodationSearcher is the slice of the accommodation service the
// customer-facing handler needs.
type AccommodationSearcher interface {
	SearchForCustomer(ctx context.Context, query repositories.AccommodationSearchQuery) ([]entities.AccommodationSummary, entities.ResultMeta, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]entities.AccommodationSummary, error)
}

// AccommodationAdmin covers the back-office CRUD surface.
type AccommodationAdmin interface {
	Create(ctx context.Context, acc *entities.Accommodation) error
	GetByID(ctx context.Context, id string) (*entities.Accommodation, error)
	Update(ctx context.Context, acc *entities.Accommodation) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repositories.AccommodationFilter) ([]*entities.Accommodation, error)
}

// AccommodationHandler handles accommodation-related HTTP requests
type AccommodationHandler struct {
	searcher AccommodationSearcher
	admin    AccommodationAdmin
}

func NewAccommodationHandler(searcher AccommodationSearcher, admin AccommodationAdmin) *AccommodationHandler {
	return &AccommodationHandler{searcher: searcher, admin: admin}
}

// SearchForCustomer handles POST /api/accommodations/search-for-customer
func (h *AccommodationHandler) SearchForCustomer(w http.ResponseWriter, r *http.Request) {
	var query repositories.AccommodationSearchQuery
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
		items = []entities.AccommodationSummary{}
	}

	respondWithEnvelope(w, http.StatusOK, map[string]interface{}{
		"accommodations": items,
		"meta":           meta,
	}, "search completed")
}

// Suggest handles GET /api/accommodations/suggest?q=...
func (h *AccommodationHandler) Suggest(w http.ResponseWriter, r *http.Request) {
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
		"accommodations": items,
		"count":          len(items),
	})
}

// CreateAccommodation handles POST /api/accommodations
func (h *AccommodationHandler) CreateAccommodation(w http.ResponseWriter, r *http.Request) {
	var acc entities.Accommodation
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.admin.Create(r.Context(), &acc); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusCreated, acc)
}

// GetAccommodation handles GET /api/accommodations/{id}
func (h *AccommodationHandler) GetAccommodation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "accommodation ID is required")
		return
	}

	acc, err := h.admin.GetByID(r.Context(), id)
	if err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusOK, acc)
}

// UpdateAccommodation handles PUT /api/accommodations/{id}
func (h *AccommodationHandler) UpdateAccommodation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "accommodation ID is required")
		return
	}

	var acc entities.Accommodation
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	acc.ID = id

	if err := h.admin.Update(r.Context(), &acc); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusOK, acc)
}

// DeleteAccommodation handles DELETE /api/accommodations/{id}
func (h *AccommodationHandler) DeleteAccommodation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "accommodation ID is required")
		return
	}

	if err := h.admin.Delete(r.Context(), id); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAccommodations handles GET /api/accommodations
func (h *AccommodationHandler) ListAccommodations(w http.ResponseWriter, r *http.Request) {
	filter := repositories.AccommodationFilter{
		AccommodationType: r.URL.Query().Get("type"),
		Limit:             50,
	}

	accommodations, err := h.admin.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list accommodations")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"accommodations": accommodations,
		"count":          len(accommodations),
	})
}

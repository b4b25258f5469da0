package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
)

// RoomTypeAdmin covers room inventory management for an accommodation.
type RoomTypeAdmin interface {
	Create(ctx context.Context, rt *entities.RoomType) error
	GetByID(ctx context.Context, id string) (*entities.RoomType, error)
	Update(ctx context.Context, rt *entities.RoomType) error
	Delete(ctx context.Context, id string) error
	ListByAccommodation(ctx context.Context, accommodationID string) ([]*entities.RoomType, error)
}

// RoomTypeHandler handles room-type HTTP requests
type RoomTypeHandler struct {
	admin RoomTypeAdmin
}

func NewRoomTypeHandler(admin RoomTypeAdmin) *RoomTypeHandler {
	return &RoomTypeHandler{admin: admin}
}

// CreateRoomType handles POST /api/accommodations/{id}/room-types
func (h *RoomTypeHandler) CreateRoomType(w http.ResponseWriter, r *http.Request) {
	accommodationID := r.PathValue("id")
	if accommodationID == "" {
		respondWithError(w, http.StatusBadRequest, "accommodation ID is required")
		return
	}

	var rt entities.RoomType
	if err := json.NewDecoder(r.Body).Decode(&rt); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rt.AccommodationID = accommodationID

	if err := h.admin.Create(r.Context(), &rt); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusCreated, rt)
}

// ListRoomTypes handles GET /api/accommodations/{id}/room-types
func (h *RoomTypeHandler) ListRoomTypes(w http.ResponseWriter, r *http.Request) {
	accommodationID := r.PathValue("id")
	if accommodationID == "" {
		respondWithError(w, http.StatusBadRequest, "accommodation ID is required")
		return
	}

	roomTypes, err := h.admin.ListByAccommodation(r.Context(), accommodationID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list room types")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"roomTypes": roomTypes,
		"count":     len(roomTypes),
	})
}

// UpdateRoomType handles PUT /api/room-types/{id}
func (h *RoomTypeHandler) UpdateRoomType(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "room type ID is required")
		return
	}

	var rt entities.RoomType
	if err := json.NewDecoder(r.Body).Decode(&rt); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	rt.ID = id

	if err := h.admin.Update(r.Context(), &rt); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusOK, rt)
}

// DeleteRoomType handles DELETE /api/room-types/{id}
func (h *RoomTypeHandler) DeleteRoomType(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "room type ID is required")
		return
	}

	if err := h.admin.Delete(r.Context(), id); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

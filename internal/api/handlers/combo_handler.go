package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wanderlane/travelbook/backend/internal/domain/entities"
	"github.com/wanderlane/travelbook/backend/internal/domain/repositories"
)

// ComboSearcher is the slice of the combo service the customer handler needs.
type ComboSearcher interface {
	SearchForCustomer(ctx context.Context, query repositories.ComboSearchQuery) ([]entities.ComboSummary, entities.ResultMeta, error)
}

// ComboAdmin covers the back-office combo surface.
type ComboAdmin interface {
	Create(ctx context.Context, combo *entities.Combo) error
	GetByID(ctx context.Context, id string) (*entities.Combo, error)
	Update(ctx context.Context, combo *entities.Combo) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter repositories.ComboFilter) ([]*entities.Combo, error)
}

// ComboHandler handles combo-related HTTP requests
type ComboHandler struct {
	searcher ComboSearcher
	admin    ComboAdmin
}

func NewComboHandler(searcher ComboSearcher, admin ComboAdmin) *ComboHandler {
	return &ComboHandler{searcher: searcher, admin: admin}
}

// SearchForCustomer handles POST /api/combos/search-for-customer
func (h *ComboHandler) SearchForCustomer(w http.ResponseWriter, r *http.Request) {
	var query repositories.ComboSearchQuery
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
		items = []entities.ComboSummary{}
	}

	respondWithEnvelope(w, http.StatusOK, map[string]interface{}{
		"combos": items,
		"meta":   meta,
	}, "search completed")
}

// CreateCombo handles POST /api/combos
func (h *ComboHandler) CreateCombo(w http.ResponseWriter, r *http.Request) {
	var combo entities.Combo
	if err := json.NewDecoder(r.Body).Decode(&combo); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.admin.Create(r.Context(), &combo); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusCreated, combo)
}

// GetCombo handles GET /api/combos/{id}
func (h *ComboHandler) GetCombo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "combo ID is required")
		return
	}

	combo, err := h.admin.GetByID(r.Context(), id)
	if err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusOK, combo)
}

// UpdateCombo handles PUT /api/combos/{id}
func (h *ComboHandler) UpdateCombo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "combo ID is required")
		return
	}

	var combo entities.Combo
	if err := json.NewDecoder(r.Body).Decode(&combo); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	combo.ID = id

	if err := h.admin.Update(r.Context(), &combo); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	respondWithJSON(w, http.StatusOK, combo)
}

// DeleteCombo handles DELETE /api/combos/{id}
func (h *ComboHandler) DeleteCombo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "combo ID is required")
		return
	}

	if err := h.admin.Delete(r.Context(), id); err != nil {
		status, message := statusForError(err)
		respondWithError(w, status, message)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCombos handles GET /api/combos
func (h *ComboHandler) ListCombos(w http.ResponseWriter, r *http.Request) {
	filter := repositories.ComboFilter{
		Vehicle: r.URL.Query().Get("vehicle"),
		Limit:   50,
	}

	combos, err := h.admin.List(r.Context(), filter)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to list combos")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"combos": combos,
		"count":  len(combos),
	})
}

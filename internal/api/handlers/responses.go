package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/wanderlane/travelbook/backend/pkg/errors"
)

// envelope is the customer-facing response shape. Failed requests carry
// success=false and an empty data object so clients always see both keys.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithEnvelope(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	respondWithJSON(w, statusCode, envelope{Success: true, Data: data, Message: message})
}

func respondWithEnvelopeError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, envelope{Success: false, Data: map[string]interface{}{}, Message: message})
}

// statusForError maps application error types onto HTTP status codes
func statusForError(err error) (int, string) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			return http.StatusNotFound, appErr.Message
		case apperrors.ErrorTypeValidation:
			return http.StatusBadRequest, appErr.Message
		case apperrors.ErrorTypeConflict:
			return http.StatusConflict, appErr.Message
		case apperrors.ErrorTypeUnauthorized:
			return http.StatusUnauthorized, appErr.Message
		case apperrors.ErrorTypeExternal:
			return http.StatusBadGateway, appErr.Message
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

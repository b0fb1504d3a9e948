package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/canken881226/amazon-Listing-Tool/listing"
	"github.com/canken881226/amazon-Listing-Tool/repository"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsmContentType = "application/vnd.ms-excel.sheet.macroEnabled.12"
)

// ErrorResponse is the JSON body of a failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorf("❌ Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// statusForError maps the listing error taxonomy to HTTP status codes
func statusForError(err error) int {
	switch {
	case errors.Is(err, listing.ErrMissingInput), errors.Is(err, listing.ErrInvalidTemplate):
		return http.StatusBadRequest
	case errors.Is(err, listing.ErrEmptyCatalog):
		return http.StatusUnprocessableEntity
	case errors.Is(err, repository.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, listing.ErrAnnotationFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

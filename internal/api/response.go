package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/erazemk/trznica/internal/listing"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 1 << 20

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("error encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps listing errors to status codes.
func serviceError(w http.ResponseWriter, err error) {
	if verr, ok := listing.AsValidation(err); ok {
		jsonResponse(w, http.StatusUnprocessableEntity, map[string]any{
			"error":  verr.Message,
			"fields": verr.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, listing.ErrCategoryNotFound):
		jsonError(w, http.StatusNotFound, "category not found")
	case errors.Is(err, listing.ErrItemNotFound):
		jsonError(w, http.StatusNotFound, "item not found")
	case errors.Is(err, listing.ErrFetchFailed):
		jsonError(w, http.StatusInternalServerError, "failed to load items")
	case errors.Is(err, listing.ErrPhotoRejected):
		jsonError(w, http.StatusUnprocessableEntity, "photo rejected")
	default:
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(target)
}

package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/erazemk/trznica/internal/store"
)

// Media handles GET /media/{bucket}/{key...}.
func (s *Server) Media(w http.ResponseWriter, r *http.Request) {
	obj, err := s.Objects.GetObject(r.Context(), r.PathValue("bucket"), r.PathValue("key"))
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to get object", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(obj.Data)))
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	if _, err := w.Write(obj.Data); err != nil {
		slog.Error("failed to write object response", "error", err)
	}
}

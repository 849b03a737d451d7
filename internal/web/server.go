package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/erazemk/trznica/internal/formtoken"
	"github.com/erazemk/trznica/internal/listing"
	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/requestid"
)

// ObjectReader serves stored photos.
type ObjectReader interface {
	GetObject(ctx context.Context, bucket, key string) (*model.Object, error)
}

// Server holds all dependencies for page handlers.
type Server struct {
	Listings  *listing.Service
	Objects   ObjectReader
	Templates *Templates
	Tokens    *formtoken.Issuer
}

func (s *Server) page(r *http.Request, title string) PageData {
	return PageData{
		Title:      title,
		Path:       r.URL.Path,
		Categories: s.Listings.Categories().All(),
	}
}

// token issues a form token, leaving it empty if signing fails. A form
// submitted without a token is answered with the expired-form message.
func (s *Server) token(purpose string) string {
	tok, err := s.Tokens.Issue(purpose)
	if err != nil {
		slog.Error("failed to issue form token", "purpose", purpose, "error", err)
		return ""
	}
	return tok
}

func (s *Server) checkToken(r *http.Request, purpose string) bool {
	if _, err := s.Tokens.Verify(purpose, r.FormValue(formtoken.FieldName)); err != nil {
		slog.Warn("rejected form token", "purpose", purpose, "path", r.URL.Path, "error", err)
		return false
	}
	return true
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request, heading, message string) {
	s.Templates.Render(w, http.StatusNotFound, "not_found.html", &struct {
		PageData
		Heading string
		Message string
	}{
		PageData: s.page(r, heading),
		Heading:  heading,
		Message:  message,
	})
}

// logFrom returns the default logger tagged with the request ID.
func logFrom(r *http.Request) *slog.Logger {
	if id := requestid.FromContext(r.Context()); id != "" {
		return slog.With("request_id", id)
	}
	return slog.Default()
}

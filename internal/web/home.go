package web

import (
	"net/http"

	"github.com/erazemk/trznica/internal/model"
)

// Home handles GET /.
func (s *Server) Home(w http.ResponseWriter, r *http.Request) {
	items, err := s.Listings.Recent(r.Context())

	data := &struct {
		PageData
		Items []model.Item
	}{
		PageData: s.page(r, "Today's picks"),
		Items:    items,
	}
	if err != nil {
		data.Error = "Failed to load items"
	}
	s.Templates.Render(w, http.StatusOK, "home.html", data)
}

package api

import (
	"net/http"

	"github.com/erazemk/trznica/internal/listing"
	"github.com/erazemk/trznica/internal/model"
)

// CategoriesHandler serves the category registry and category listings.
type CategoriesHandler struct {
	Listings *listing.Service
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, h.Listings.Categories().All())
}

// Items handles GET /api/categories/{slug}/items.
func (h *CategoriesHandler) Items(w http.ResponseWriter, r *http.Request) {
	cl, err := h.Listings.Browse(r.Context(), r.PathValue("slug"))
	if err != nil {
		serviceError(w, err)
		return
	}

	items := listing.Filter(cl.Items, r.URL.Query().Get("q"))
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, map[string]any{
		"category": cl.Category,
		"total":    len(cl.Items),
		"items":    items,
	})
}

package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/erazemk/trznica/internal/category"
	"github.com/erazemk/trznica/internal/listing"
	"github.com/erazemk/trznica/internal/model"
)

// skeletonCards is how many placeholder cards the category shell shows.
const skeletonCards = 6

// resultsData feeds the "results" fragment.
type resultsData struct {
	Slug     string
	Category category.Category
	Items    []model.Item
	Total    int
	Query    string
	NotFound bool
	Failed   bool
}

// CategoryPage handles GET /category/{slug}.
func (s *Server) CategoryPage(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	cat, ok := s.Listings.Categories().BySlug(slug)
	if !ok {
		s.notFound(w, r, "Category Not Found", fmt.Sprintf("The category %q doesn't exist.", slug))
		return
	}

	s.Templates.Render(w, http.StatusOK, "category.html", &struct {
		PageData
		Category  category.Category
		Query     string
		Skeletons []struct{}
	}{
		PageData:  s.page(r, cat.Name),
		Category:  cat,
		Query:     r.URL.Query().Get("q"),
		Skeletons: make([]struct{}, skeletonCards),
	})
}

// CategoryItems handles GET /category/{slug}/items.
func (s *Server) CategoryItems(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	query := r.URL.Query().Get("q")

	cl, err := s.Listings.Browse(r.Context(), slug)
	switch {
	case errors.Is(err, listing.ErrCategoryNotFound):
		s.Templates.RenderFragment(w, http.StatusNotFound, "results", &resultsData{Slug: slug, NotFound: true})
		return
	case err != nil:
		s.Templates.RenderFragment(w, http.StatusInternalServerError, "results", &resultsData{
			Slug:     slug,
			Category: cl.Category,
			Query:    query,
			Failed:   true,
		})
		return
	}

	s.Templates.RenderFragment(w, http.StatusOK, "results", &resultsData{
		Slug:     slug,
		Category: cl.Category,
		Items:    listing.Filter(cl.Items, query),
		Total:    len(cl.Items),
		Query:    query,
	})
}

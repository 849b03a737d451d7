package web

import (
	"net/http"
	"time"

	"github.com/erazemk/trznica/internal/formtoken"
	"github.com/erazemk/trznica/internal/listing"
	webembed "github.com/erazemk/trznica/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(svc *listing.Service, objects ObjectReader, tokens *formtoken.Issuer) (http.Handler, error) {
	templates, err := LoadTemplates(time.Now)
	if err != nil {
		return nil, err
	}

	s := &Server{
		Listings:  svc,
		Objects:   objects,
		Templates: templates,
		Tokens:    tokens,
	}

	mux := http.NewServeMux()

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))
	mux.HandleFunc("GET /media/{bucket}/{key...}", s.Media)

	mux.HandleFunc("GET /{$}", s.Home)

	mux.HandleFunc("GET /category/{slug}", s.CategoryPage)
	mux.HandleFunc("GET /category/{slug}/items", s.CategoryItems)

	mux.HandleFunc("GET /item/{id}", s.ItemPage)
	mux.HandleFunc("POST /item/{id}/contact", s.ContactSubmit)

	mux.HandleFunc("GET /create", s.CreatePage)
	mux.HandleFunc("POST /create", s.CreateSubmit)
	mux.HandleFunc("POST /create/preview", s.CreatePreview)

	return mux, nil
}

package api

import (
	"net/http"

	"github.com/erazemk/trznica/internal/listing"
)

// NewRouter creates the API router with all endpoints registered, plus the
// health check at /healthz. broker may be nil when events are disabled.
func NewRouter(svc *listing.Service, db Pinger, broker BrokerStatus) http.Handler {
	mux := http.NewServeMux()

	categoriesHandler := &CategoriesHandler{Listings: svc}
	itemsHandler := &ItemsHandler{Listings: svc}
	healthHandler := &HealthHandler{DB: db, Broker: broker}

	mux.HandleFunc("GET /healthz", healthHandler.Check)

	mux.HandleFunc("GET /api/categories", categoriesHandler.List)
	mux.HandleFunc("GET /api/categories/{slug}/items", categoriesHandler.Items)

	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("POST /api/items/{id}/messages", itemsHandler.CreateMessage)

	return mux
}

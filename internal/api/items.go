package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/erazemk/trznica/internal/listing"
)

// ItemsHandler serves single items, listing creation and contact messages.
type ItemsHandler struct {
	Listings *listing.Service
}

type createItemRequest struct {
	Title       string      `json:"title"`
	Category    string      `json:"category"`
	Price       json.Number `json:"price"`
	Location    string      `json:"location"`
	Email       string      `json:"email"`
	Description string      `json:"description"`
}

type messageRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := h.Listings.Item(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/items. Photos are only accepted through the web form.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Listings.Create(r.Context(), listing.Draft{
		Title:       req.Title,
		Category:    req.Category,
		Price:       req.Price.String(),
		Location:    req.Location,
		Email:       req.Email,
		Description: req.Description,
	}, nil)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, item)
}

// CreateMessage handles POST /api/items/{id}/messages.
func (h *ItemsHandler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req messageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.Listings.ContactSeller(r.Context(), id, req.Email, req.Message)
	if err != nil {
		serviceError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, msg)
}

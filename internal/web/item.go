package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/erazemk/trznica/internal/formtoken"
	"github.com/erazemk/trznica/internal/listing"
	"github.com/erazemk/trznica/internal/model"
)

// Page messages for the contact form.
const (
	msgItemNotFound = "Item not found."
	msgMessageSent  = "Message sent successfully!"
	msgSendFailed   = "Failed to send message"
	msgFormExpired  = "This form has expired. Please try again."
)

// maxContactBody bounds a contact form submission.
const maxContactBody = 64 << 10

type contactForm struct {
	Email   string
	Message string
}

// ItemPage handles GET /item/{id}.
func (s *Server) ItemPage(w http.ResponseWriter, r *http.Request) {
	item, ok := s.lookupItem(w, r)
	if !ok {
		return
	}

	data := s.itemData(r, item, contactForm{Message: listing.DefaultContactMessage})
	if r.URL.Query().Get("sent") == "1" {
		data.Success = msgMessageSent
	}
	s.Templates.Render(w, http.StatusOK, "item.html", data)
}

// ContactSubmit handles POST /item/{id}/contact.
func (s *Server) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	item, ok := s.lookupItem(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxContactBody)
	form := contactForm{
		Email:   r.FormValue("email"),
		Message: r.FormValue("message"),
	}

	if !s.checkToken(r, formtoken.PurposeContact) {
		data := s.itemData(r, item, form)
		data.Error = msgFormExpired
		s.Templates.Render(w, http.StatusBadRequest, "item.html", data)
		return
	}

	msg, err := s.Listings.ContactSeller(r.Context(), item.ID, form.Email, form.Message)
	if err != nil {
		if errors.Is(err, listing.ErrItemNotFound) {
			s.notFound(w, r, msgItemNotFound, "")
			return
		}

		data := s.itemData(r, item, form)
		status := http.StatusInternalServerError
		data.Error = msgSendFailed
		if verr, ok := listing.AsValidation(err); ok {
			status = http.StatusUnprocessableEntity
			data.Error = verr.Message
		}
		s.Templates.Render(w, status, "item.html", data)
		return
	}

	logFrom(r).Info("contact message sent", "item", item.ID, "message", msg.ID)
	http.Redirect(w, r, fmt.Sprintf("/item/%d?sent=1", item.ID), http.StatusSeeOther)
}

// lookupItem resolves the {id} path value. Any failure renders the
// not-found page, which has no contact form.
func (s *Server) lookupItem(w http.ResponseWriter, r *http.Request) (*model.Item, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.notFound(w, r, msgItemNotFound, "")
		return nil, false
	}

	item, err := s.Listings.Item(r.Context(), id)
	if err != nil {
		s.notFound(w, r, msgItemNotFound, "")
		return nil, false
	}
	return item, true
}

type itemPage struct {
	PageData
	Item         *model.Item
	CategorySlug string
	Form         contactForm
}

func (s *Server) itemData(r *http.Request, item *model.Item, form contactForm) *itemPage {
	p := &itemPage{
		PageData: s.page(r, item.Title),
		Item:     item,
		Form:     form,
	}
	if cat, ok := s.Listings.Categories().ByName(item.Category); ok {
		p.CategorySlug = cat.Slug
	}
	p.Token = s.token(formtoken.PurposeContact)
	return p
}

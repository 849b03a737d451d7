package web

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/erazemk/trznica/internal/format"
	"github.com/erazemk/trznica/internal/formtoken"
	"github.com/erazemk/trznica/internal/listing"
)

// Page messages for the creation form.
const (
	msgCreated      = "Listing created successfully!"
	msgCreateFailed = "Error creating listing. Please try again."
)

// Limits on the text fields of a listing submission.
const (
	maxFieldBytes  = 64 << 10
	maxFieldsBytes = 1 << 20
)

var errFormTooLarge = errors.New("form too large")

type createPage struct {
	PageData
	Draft         listing.Draft
	Preview       listing.Preview
	Invalid       map[string]string
	MaxPhotoBytes int64
	LoudRejection bool
}

// CreatePage handles GET /create.
func (s *Server) CreatePage(w http.ResponseWriter, r *http.Request) {
	data := s.createData(r, listing.Draft{}, nil)
	if r.URL.Query().Get("created") == "1" {
		data.Success = msgCreated
	}
	s.Templates.Render(w, http.StatusOK, "create.html", data)
}

// CreateSubmit handles POST /create.
func (s *Server) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	form, err := s.parseCreateForm(w, r)
	if err != nil {
		logFrom(r).Warn("failed to parse listing form", "error", err)
		data := s.createData(r, form.draft, nil)
		data.Error = msgCreateFailed
		s.Templates.Render(w, http.StatusBadRequest, "create.html", data)
		return
	}

	if !s.checkToken(r, formtoken.PurposeCreate) {
		data := s.createData(r, form.draft, nil)
		data.Error = msgFormExpired
		s.Templates.Render(w, http.StatusBadRequest, "create.html", data)
		return
	}

	photo, err := s.Listings.AttachPhoto(form.filename, form.photo)
	if err != nil {
		data := s.createData(r, form.draft, nil)
		data.Error = s.photoError(err)
		data.Invalid = map[string]string{"photo": "rejected"}
		s.Templates.Render(w, http.StatusUnprocessableEntity, "create.html", data)
		return
	}

	item, err := s.Listings.Create(r.Context(), form.draft, photo)
	if err != nil {
		data := s.createData(r, form.draft, photo)
		status := http.StatusInternalServerError
		data.Error = msgCreateFailed
		if verr, ok := listing.AsValidation(err); ok {
			status = http.StatusUnprocessableEntity
			data.Error = verr.Message
			data.Invalid = verr.Fields
		}
		s.Templates.Render(w, status, "create.html", data)
		return
	}

	logFrom(r).Info("listing submitted", "id", item.ID, "image", item.Image != nil)
	http.Redirect(w, r, "/create?created=1", http.StatusSeeOther)
}

// CreatePreview handles POST /create/preview.
func (s *Server) CreatePreview(w http.ResponseWriter, r *http.Request) {
	form, err := s.parseCreateForm(w, r)
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	photo, err := s.Listings.AttachPhoto(form.filename, form.photo)
	if err != nil {
		photo = nil
	}
	s.Templates.RenderFragment(w, http.StatusOK, "preview", s.Listings.Preview(form.draft, photo))
}

// createForm is a parsed listing submission. photo holds at most one byte
// more than the photo limit.
type createForm struct {
	draft    listing.Draft
	filename string
	photo    []byte
}

// parseCreateForm streams a listing submission. Text fields are bounded;
// the photo is cut one byte past the photo limit and the rest discarded,
// so an oversized photo still reaches the rejection policy instead of
// failing the whole form. The returned form is never nil and holds
// whatever fields were read before an error.
func (s *Server) parseCreateForm(w http.ResponseWriter, r *http.Request) (*createForm, error) {
	form := &createForm{}

	mr, err := r.MultipartReader()
	if errors.Is(err, http.ErrNotMultipart) {
		r.Body = http.MaxBytesReader(w, r.Body, maxFieldsBytes)
		err = r.ParseForm()
		form.draft = draftFromForm(r)
		return form, err
	}

	values := url.Values{}
	if err == nil {
		err = form.readParts(mr, values, s.Listings.Config().MaxPhotoBytes)
	}
	r.Form, r.PostForm = values, values
	form.draft = draftFromForm(r)
	return form, err
}

func (f *createForm) readParts(mr *multipart.Reader, values url.Values, maxPhoto int64) error {
	var fieldBytes int64
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading form: %w", err)
		}

		switch {
		case part.FormName() == "photo" && f.photo == nil:
			f.filename = part.FileName()
			if f.photo, err = io.ReadAll(io.LimitReader(part, maxPhoto+1)); err != nil {
				return fmt.Errorf("reading photo: %w", err)
			}
			if _, err := io.Copy(io.Discard, part); err != nil {
				return fmt.Errorf("reading photo: %w", err)
			}
		case part.FileName() != "" || part.FormName() == "photo":
			if _, err := io.Copy(io.Discard, part); err != nil {
				return fmt.Errorf("reading form: %w", err)
			}
		default:
			data, err := io.ReadAll(io.LimitReader(part, maxFieldBytes+1))
			if err != nil {
				return fmt.Errorf("reading field %s: %w", part.FormName(), err)
			}
			fieldBytes += int64(len(data))
			if len(data) > maxFieldBytes || fieldBytes > maxFieldsBytes {
				return fmt.Errorf("field %s: %w", part.FormName(), errFormTooLarge)
			}
			values.Add(part.FormName(), string(data))
		}
	}
}

func (s *Server) photoError(err error) string {
	if errors.Is(err, listing.ErrPhotoRejected) {
		return fmt.Sprintf("Photo must be an image of at most %s", format.Bytes(s.Listings.Config().MaxPhotoBytes))
	}
	return msgCreateFailed
}

func (s *Server) createData(r *http.Request, d listing.Draft, photo *listing.Photo) *createPage {
	cfg := s.Listings.Config()
	p := &createPage{
		PageData:      s.page(r, "Create new listing"),
		Draft:         d,
		Preview:       s.Listings.Preview(d, photo),
		MaxPhotoBytes: cfg.MaxPhotoBytes,
		LoudRejection: cfg.PhotoRejection == listing.PhotoRejectLoud,
	}
	p.Token = s.token(formtoken.PurposeCreate)
	return p
}

func draftFromForm(r *http.Request) listing.Draft {
	return listing.Draft{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Price:       r.FormValue("price"),
		Location:    r.FormValue("location"),
		Email:       r.FormValue("email"),
		Description: r.FormValue("description"),
	}
}

package listing

import (
	"github.com/erazemk/trznica/internal/format"
	"github.com/erazemk/trznica/internal/imaging"
)

// Preview is the live card shown next to the creation form.
type Preview struct {
	Title    string
	Price    string
	Category string
	Location string
	Email    string
	PhotoURL string
}

// Preview renders a draft the way its listing card would look, with
// placeholders for the missing fields. It never fails.
func (s *Service) Preview(d Draft, photo *Photo) Preview {
	d = d.Normalize()
	p := Preview{
		Title:    placeholder(d.Title, "Title"),
		Price:    "Price",
		Location: d.Location,
		Email:    placeholder(d.Email, "seller@email.com"),
	}
	if price, err := ParsePrice(d.Price); err == nil && d.Price != "" {
		p.Price = format.Price(price)
	}
	if cat, ok := s.categories.BySlug(d.Category); ok {
		p.Category = cat.Name
	}
	if photo != nil {
		url, err := imaging.PreviewDataURL(photo.Data)
		if err != nil {
			s.log.Debug("rendering preview thumbnail", "error", err)
		} else {
			p.PhotoURL = url
		}
	}
	return p
}

func placeholder(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

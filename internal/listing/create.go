package listing

import (
	"context"
	"fmt"

	"github.com/erazemk/trznica/internal/model"
)

// Create validates the draft, uploads the photo if there is one, resolves
// the category and stores the listing. The steps run in that order and never
// overlap. Nothing is uploaded or stored when a field is missing or invalid.
func (s *Service) Create(ctx context.Context, d Draft, photo *Photo) (*model.Item, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	price, err := ParsePrice(d.Price)
	if err != nil {
		return nil, err
	}

	var image *string
	if photo != nil {
		url, err := s.uploadPhoto(ctx, photo)
		switch {
		case err == nil:
			image = &url
		case s.cfg.UploadFailure == UploadAbort:
			s.log.Error("photo upload failed", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
		default:
			s.log.Warn("photo upload failed, creating listing without image", "error", err)
		}
	}

	cat, ok := s.categories.BySlug(d.Category)
	if !ok {
		return nil, &ValidationError{
			Message: MsgInvalidCategory,
			Fields:  map[string]string{"category": "unknown"},
			err:     ErrUnknownCategory,
		}
	}

	item, err := s.items.CreateItem(ctx, model.NewItem{
		Title:        d.Title,
		Category:     cat.Name,
		Price:        price,
		Location:     model.StringPtr(d.Location),
		ContactEmail: d.Email,
		Description:  model.StringPtr(d.Description),
		Image:        image,
	})
	if err != nil {
		s.log.Error("creating item", "title", d.Title, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}

	s.metrics.ListingCreated(item.Image != nil)
	s.log.Info("listing created", "id", item.ID, "category", item.Category)
	return item, nil
}

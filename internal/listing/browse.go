package listing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/erazemk/trznica/internal/category"
	"github.com/erazemk/trznica/internal/model"
	"github.com/erazemk/trznica/internal/store"
)

// CategoryListing is one category's items, newest first.
type CategoryListing struct {
	Category category.Category
	Items    []model.Item
}

// Browse returns the items listed under the category with the given slug.
// An unknown slug fails with ErrCategoryNotFound without touching the store.
// Store failures are reported as ErrFetchFailed alongside the resolved category.
func (s *Service) Browse(ctx context.Context, slug string) (*CategoryListing, error) {
	cat, ok := s.categories.BySlug(slug)
	if !ok {
		return nil, ErrCategoryNotFound
	}

	items, err := s.items.ListItemsByCategory(ctx, cat.Name)
	if err != nil {
		s.log.Error("listing category items", "category", cat.Name, "error", err)
		return &CategoryListing{Category: cat}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return &CategoryListing{Category: cat, Items: items}, nil
}

// Recent returns the newest items across all categories.
func (s *Service) Recent(ctx context.Context) ([]model.Item, error) {
	items, err := s.items.ListRecentItems(ctx, s.cfg.RecentLimit)
	if err != nil {
		s.log.Error("listing recent items", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return items, nil
}

// Item returns a single item. A missing item is ErrItemNotFound; a store
// failure is ErrFetchFailed.
func (s *Service) Item(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.items.GetItem(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		s.log.Error("getting item", "id", id, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return item, nil
}

// Filter keeps the items whose title, description or location contains
// term, ignoring case. An empty term keeps everything. Order is preserved.
func Filter(items []model.Item, term string) []model.Item {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return items
	}

	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		if matches(&it, term) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it *model.Item, term string) bool {
	if strings.Contains(strings.ToLower(it.Title), term) {
		return true
	}
	if it.Description != nil && strings.Contains(strings.ToLower(*it.Description), term) {
		return true
	}
	return it.Location != nil && strings.Contains(strings.ToLower(*it.Location), term)
}

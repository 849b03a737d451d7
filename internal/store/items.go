package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/erazemk/trznica/internal/model"
)

var itemColumns = []string{
	"id", "title", "category", "price", "location",
	"contact_email", "description", "image", "created_at",
}

func scanItem(row rowScanner) (*model.Item, error) {
	item := &model.Item{}
	var location, description, image sql.NullString
	err := row.Scan(&item.ID, &item.Title, &item.Category, &item.Price, &location,
		&item.ContactEmail, &description, &image, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	item.Location = nullString(location)
	item.Description = nullString(description)
	item.Image = nullString(image)
	return item, nil
}

// CreateItem inserts a new item and returns the stored row.
func (s *Store) CreateItem(ctx context.Context, in model.NewItem) (*model.Item, error) {
	query, args, err := s.sb.Insert("items").
		Columns("title", "category", "price", "location", "contact_email", "description", "image").
		Values(in.Title, in.Category, in.Price, in.Location, in.ContactEmail, in.Description, in.Image).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building item insert: %w", err)
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	return s.GetItem(ctx, id)
}

// GetItem returns an item by ID, or ErrNotFound.
func (s *Store) GetItem(ctx context.Context, id int64) (*model.Item, error) {
	query, args, err := s.sb.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building item query: %w", err)
	}

	item, err := scanItem(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// ListItemsByCategory returns all items stored under the category name,
// newest first.
func (s *Store) ListItemsByCategory(ctx context.Context, category string) ([]model.Item, error) {
	return s.listItems(ctx, s.sb.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"category": category}).
		OrderBy("created_at DESC", "id DESC"))
}

// ListRecentItems returns the most recently created items across all categories.
func (s *Store) ListRecentItems(ctx context.Context, limit int) ([]model.Item, error) {
	if limit <= 0 {
		limit = 12
	}
	return s.listItems(ctx, s.sb.Select(itemColumns...).
		From("items").
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)))
}

func (s *Store) listItems(ctx context.Context, builder sq.SelectBuilder) ([]model.Item, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building items query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

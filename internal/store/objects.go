package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/erazemk/trznica/internal/model"
)

// UploadObject stores data under bucket/key. Keys are never overwritten: a
// second upload to the same key fails.
func (s *Store) UploadObject(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if bucket == "" || key == "" {
		return fmt.Errorf("uploading object: bucket and key required")
	}

	query, args, err := s.sb.Insert("objects").
		Columns("bucket", "key", "content_type", "data").
		Values(bucket, key, contentType, data).
		ToSql()
	if err != nil {
		return fmt.Errorf("building object insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("uploading object %s/%s: %w", bucket, key, err)
	}
	return nil
}

// GetObject returns a stored object, or ErrNotFound.
func (s *Store) GetObject(ctx context.Context, bucket, key string) (*model.Object, error) {
	query, args, err := s.sb.Select("bucket", "key", "content_type", "data", "created_at").
		From("objects").
		Where(sq.Eq{"bucket": bucket, "key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building object query: %w", err)
	}

	obj := &model.Object{}
	err = s.db.QueryRowContext(ctx, query, args...).
		Scan(&obj.Bucket, &obj.Key, &obj.ContentType, &obj.Data, &obj.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting object: %w", err)
	}
	return obj, nil
}

// ObjectURLs builds public URLs for stored objects.
type ObjectURLs struct {
	// BaseURL is prepended to every path; empty yields root-relative URLs.
	BaseURL string
}

// PublicURL returns the address at which bucket/key is served.
func (u ObjectURLs) PublicURL(bucket, key string) string {
	return strings.TrimRight(u.BaseURL, "/") + "/media/" + url.PathEscape(bucket) + "/" + url.PathEscape(key)
}

// Objects pairs object storage with URL resolution.
type Objects struct {
	*Store
	ObjectURLs
}

package store

import (
	"context"
	"fmt"

	"github.com/erazemk/trznica/internal/model"
)

// CreateMessage records a contact message. Messages are write-only; there is
// no read path.
func (s *Store) CreateMessage(ctx context.Context, msg model.ContactMessage) (*model.ContactMessage, error) {
	query, args, err := s.sb.Insert("emails").
		Columns("from_email", "to_email", "message", "item_id").
		Values(msg.FromEmail, msg.ToEmail, msg.Message, msg.ItemID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building message insert: %w", err)
	}

	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&msg.ID); err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}
	return &msg, nil
}

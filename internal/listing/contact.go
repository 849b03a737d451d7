package listing

import (
	"context"
	"fmt"
	"strings"

	"github.com/erazemk/trznica/internal/model"
)

// DefaultContactMessage pre-fills the contact form.
const DefaultContactMessage = "I'm interested in your item!"

// ContactRequest is one message from a buyer to a seller.
type ContactRequest struct {
	FromEmail string
	ToEmail   string
	Message   string
	ItemID    int64
}

// Validate checks the sender address, the recipient and the message body.
func (r ContactRequest) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(r.FromEmail) == "" {
		fields["email"] = "required"
	}
	if strings.TrimSpace(r.Message) == "" {
		fields["message"] = "required"
	}
	if strings.TrimSpace(r.ToEmail) == "" || r.ItemID <= 0 {
		fields["item"] = "required"
	}
	if len(fields) > 0 {
		return &ValidationError{Message: MsgRequiredFields, Fields: fields}
	}
	if err := validate.Var(strings.TrimSpace(r.FromEmail), "email"); err != nil {
		return &ValidationError{Message: MsgInvalidEmail, Fields: map[string]string{"email": "invalid"}}
	}
	return nil
}

// Contact stores a contact message. Every call stores a new row; repeated
// submissions are not merged. The notifier runs after the write and its
// failure does not fail the call.
func (s *Service) Contact(ctx context.Context, r ContactRequest) (*model.ContactMessage, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	msg, err := s.messages.CreateMessage(ctx, model.ContactMessage{
		FromEmail: strings.TrimSpace(r.FromEmail),
		ToEmail:   r.ToEmail,
		Message:   r.Message,
		ItemID:    r.ItemID,
	})
	if err != nil {
		s.log.Error("creating message", "item", r.ItemID, "error", err)
		return nil, fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	s.metrics.MessageCreated()

	if s.notifier != nil {
		if err := s.notifier.MessageCreated(ctx, msg); err != nil {
			s.log.Warn("notifying message", "id", msg.ID, "error", err)
		}
	}
	return msg, nil
}

// ContactSeller sends a message to the contact address of the item with the
// given id. The recipient always comes from the stored item.
func (s *Service) ContactSeller(ctx context.Context, itemID int64, fromEmail, message string) (*model.ContactMessage, error) {
	item, err := s.Item(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.Contact(ctx, ContactRequest{
		FromEmail: fromEmail,
		ToEmail:   item.ContactEmail,
		Message:   message,
		ItemID:    item.ID,
	})
}

package listing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/trznica/internal/model"
)

func TestContactStoresEverySubmission(t *testing.T) {
	h := newHarness(t, Config{})
	req := ContactRequest{FromEmail: "buyer@example.com", ToEmail: "seller@example.com", Message: DefaultContactMessage, ItemID: 1}

	for range 2 {
		_, err := h.svc.Contact(context.Background(), req)
		require.NoError(t, err)
	}
	require.Len(t, h.messages.rows, 2)
	assert.Equal(t, h.messages.rows[0].Message, h.messages.rows[1].Message)
	assert.Equal(t, []int64{1, 2}, h.notifier.seen)
	assert.Equal(t, 2, h.metrics.messages)
}

func TestContactValidation(t *testing.T) {
	h := newHarness(t, Config{})
	tests := []struct {
		name  string
		req   ContactRequest
		field string
	}{
		{"missing sender", ContactRequest{ToEmail: "s@example.com", Message: "hi", ItemID: 1}, "email"},
		{"blank message", ContactRequest{FromEmail: "b@example.com", ToEmail: "s@example.com", Message: "  ", ItemID: 1}, "message"},
		{"no item", ContactRequest{FromEmail: "b@example.com", ToEmail: "s@example.com", Message: "hi"}, "item"},
		{"bad sender", ContactRequest{FromEmail: "nope", ToEmail: "s@example.com", Message: "hi", ItemID: 1}, "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.svc.Contact(context.Background(), tt.req)
			verr, ok := AsValidation(err)
			require.True(t, ok)
			assert.True(t, verr.Has(tt.field))
		})
	}
	assert.Empty(t, h.messages.rows)
}

func TestContactWriteFailure(t *testing.T) {
	h := newHarness(t, Config{})
	h.messages.err = errBoom

	_, err := h.svc.Contact(context.Background(), ContactRequest{FromEmail: "b@example.com", ToEmail: "s@example.com", Message: "hi", ItemID: 1})
	assert.ErrorIs(t, err, ErrWriteFailed)
	assert.Empty(t, h.notifier.seen)
}

func TestContactNotifierFailureIgnored(t *testing.T) {
	h := newHarness(t, Config{})
	h.notifier.err = errBoom

	msg, err := h.svc.Contact(context.Background(), ContactRequest{FromEmail: "b@example.com", ToEmail: "s@example.com", Message: "hi", ItemID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(1), msg.ID)
}

func TestContactSellerResolvesRecipient(t *testing.T) {
	h := newHarness(t, Config{})
	h.items.items = []model.Item{{ID: 5, Title: "Lamp", ContactEmail: "owner@example.com"}}

	msg, err := h.svc.ContactSeller(context.Background(), 5, "buyer@example.com", "Still available?")
	require.NoError(t, err)
	assert.Equal(t, "owner@example.com", msg.ToEmail)
	assert.Equal(t, int64(5), msg.ItemID)

	_, err = h.svc.ContactSeller(context.Background(), 6, "buyer@example.com", "hi")
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Len(t, h.messages.rows, 1)
}

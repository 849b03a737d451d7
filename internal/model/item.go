package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is a marketplace listing.
type Item struct {
	ID           int64           `json:"id"`
	Title        string          `json:"title"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	Location     *string         `json:"location"`
	ContactEmail string          `json:"contact_email"`
	Description  *string         `json:"description"`
	Image        *string         `json:"image"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewItem holds the fields a caller supplies when inserting an item.
// ID and CreatedAt are assigned by the store.
type NewItem struct {
	Title        string
	Category     string
	Price        decimal.Decimal
	Location     *string
	ContactEmail string
	Description  *string
	Image        *string
}

// SearchText returns the lower-cased text the category search matches against.
func (i Item) SearchText() string {
	return lowerJoin(i.Title, deref(i.Description), deref(i.Location))
}

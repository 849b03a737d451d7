package model

// ContactMessage is a buyer inquiry about an item. It is written once and
// never read back by the application.
type ContactMessage struct {
	ID        int64  `json:"id"`
	FromEmail string `json:"from_email"`
	ToEmail   string `json:"to_email"`
	Message   string `json:"message"`
	ItemID    int64  `json:"item_id"`
}

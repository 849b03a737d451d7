package listing

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate = validator.New()
	priceRe  = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)$`)
)

// Draft is the listing form as submitted.
type Draft struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Location    string `json:"location"`
	Email       string `json:"email"`
	Description string `json:"description"`
}

// Normalize trims surrounding whitespace from every field.
func (d Draft) Normalize() Draft {
	return Draft{
		Title:       strings.TrimSpace(d.Title),
		Category:    strings.TrimSpace(d.Category),
		Price:       strings.TrimSpace(d.Price),
		Location:    strings.TrimSpace(d.Location),
		Email:       strings.TrimSpace(d.Email),
		Description: strings.TrimSpace(d.Description),
	}
}

// Validate checks required fields, the price and the email address.
// It does not resolve the category slug.
func (d Draft) Validate() error {
	d = d.Normalize()
	fields := map[string]string{}
	for name, v := range map[string]string{
		"title":    d.Title,
		"category": d.Category,
		"price":    d.Price,
		"email":    d.Email,
	} {
		if v == "" {
			fields[name] = "required"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Message: MsgRequiredFields, Fields: fields}
	}

	if _, err := ParsePrice(d.Price); err != nil {
		return &ValidationError{Message: MsgInvalidPrice, Fields: map[string]string{"price": "invalid"}}
	}
	if err := validate.Var(d.Email, "email"); err != nil {
		return &ValidationError{Message: MsgInvalidEmail, Fields: map[string]string{"email": "invalid"}}
	}
	return nil
}

// ParsePrice parses a non-negative base-10 decimal such as "120" or "19.99".
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !priceRe.MatchString(s) {
		return decimal.Zero, &ValidationError{Message: MsgInvalidPrice, Fields: map[string]string{"price": "invalid"}}
	}
	return decimal.NewFromString(s)
}

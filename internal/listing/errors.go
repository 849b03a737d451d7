package listing

import (
	"errors"
	"sort"
	"strings"
)

// Failure kinds surfaced to pages and the API.
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrItemNotFound     = errors.New("item not found")
	ErrFetchFailed      = errors.New("failed to load items")
	ErrUnknownCategory  = errors.New("invalid category selected")
	ErrUploadFailed     = errors.New("photo upload failed")
	ErrWriteFailed      = errors.New("failed to save")
	ErrPhotoRejected    = errors.New("photo rejected")
)

// Messages shown for validation failures.
const (
	MsgRequiredFields  = "Please fill in all required fields"
	MsgInvalidPrice    = "Price must be a non-negative number"
	MsgInvalidEmail    = "Please enter a valid email address"
	MsgInvalidMessage  = "Please enter a message"
	MsgInvalidCategory = "Invalid category selected"
)

// ValidationError reports user input that blocks a write. Fields maps form
// field names to a short problem description.
type ValidationError struct {
	Message string
	Fields  map[string]string
	err     error
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return e.Message + " (" + strings.Join(names, ", ") + ")"
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	_, ok := e.Fields[field]
	return ok
}

// AsValidation returns the ValidationError wrapped in err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

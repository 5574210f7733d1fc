// internal/integrations/prestashop/errors.go
package prestashop

import (
	"errors"
	"fmt"
)

// kindError is a sentinel that also names its result type for the tool boundary.
type kindError struct {
	kind string
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Kind() string  { return e.kind }

var (
	// ErrNotFound: entity absent on read-before-update or lookup by name.
	ErrNotFound error = &kindError{kind: "not_found", msg: "prestashop: not found"}
	// ErrAlreadyPresent: the menu tree already holds the category.
	ErrAlreadyPresent error = &kindError{kind: "conflict", msg: "prestashop: already present"}
	// ErrInvalidInput: caller supplied something the webservice cannot take.
	ErrInvalidInput error = &kindError{kind: "invalid_arguments", msg: "prestashop: invalid input"}
	// ErrInvalidConfig: client configuration is unusable.
	ErrInvalidConfig error = &kindError{kind: "configuration_invalid", msg: "prestashop: invalid configuration"}
)

// APIError is a non-2xx answer or a transport failure (Status 0).
type APIError struct {
	Method   string
	Resource string
	Status   int
	Body     string
	Err      error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("HTTP client error: %v", e.Err)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error { return e.Err }

func (e *APIError) Kind() string { return "api_error" }

// Details end up next to the message in the rendered error result.
func (e *APIError) Details() map[string]any {
	return map[string]any{
		"status":   e.Status,
		"body":     e.Body,
		"method":   e.Method,
		"resource": e.Resource,
	}
}

func notFound(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func isNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

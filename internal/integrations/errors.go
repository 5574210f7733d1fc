// internal/integrations/errors.go
package integrations

import (
	"errors"
	"fmt"
)

// Result types of failed calls.
const (
	KindAPI              = "api_error"
	KindNotFound         = "not_found"
	KindConflict         = "conflict"
	KindInvalidArguments = "invalid_arguments"
	KindUnknownTool      = "unknown_tool"
	KindInternal         = "internal_error"
)

type kindError struct {
	kind string
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Kind() string  { return e.kind }

var ErrInvalidArguments error = &kindError{kind: KindInvalidArguments, msg: "invalid arguments"}

func invalidArgs(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArguments, fmt.Sprintf(format, args...))
}

func unknownTool(name string) error {
	return &kindError{kind: KindUnknownTool, msg: "Unknown tool: " + name}
}

// KindOf finds the first error in the chain that names its kind. Anything else is internal.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindInternal
}

func detailsOf(err error) map[string]any {
	var d interface{ Details() map[string]any }
	if errors.As(err, &d) {
		return d.Details()
	}
	return nil
}

type panicError struct{ v any }

func (e *panicError) Error() string { return fmt.Sprintf("panic: %v", e.v) }

// internal/integrations/types.go
package integrations

import (
	"context"
	"time"
)

type ParamType string

const (
	TypeString  ParamType = "string"
	TypeInteger ParamType = "integer"
	TypeNumber  ParamType = "number"
	TypeBoolean ParamType = "boolean"
	TypeArray   ParamType = "array"
)

// Param describes one tool argument as advertised to the host.
type Param struct {
	Name        string
	Type        ParamType
	Description string
	Required    bool
	Default     any       // filled in before the handler runs when the caller omits the argument
	Enum        []string  // allowed string values
	Items       ParamType // element type of arrays
}

type Handler func(ctx context.Context, args *Args) (any, error)

type Tool struct {
	Name        string
	Description string
	Params      []Param
	Handler     Handler
}

// Call is what observers learn about a finished invocation.
type Call struct {
	ID       string
	Tool     string
	Args     map[string]any
	Result   Result
	Started  time.Time
	Duration time.Duration
}

// CallObserver is notified after every call, successful or not.
type CallObserver interface {
	ObserveCall(ctx context.Context, c Call)
}

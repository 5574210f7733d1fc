// internal/integrations/registry.go
package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Registry struct {
	mu        sync.RWMutex
	tools     map[string]Tool
	order     []string
	observers []CallObserver
	log       zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		tools: map[string]Tool{},
		log:   log.With().Str("component", "tools").Logger(),
	}
}

func (r *Registry) Register(t Tool) error {
	if t.Name == "" || t.Handler == nil {
		return fmt.Errorf("tool %q: name and handler are required", t.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.tools[t.Name]; dup {
		return fmt.Errorf("tool %q already registered", t.Name)
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
	return nil
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// All returns the tools in registration order.
func (r *Registry) All() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

func (r *Registry) Observe(o CallObserver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, o)
}

// Call runs one tool. It never returns a Go error: every failure is folded into the Result.
func (r *Registry) Call(ctx context.Context, name string, raw map[string]any) Result {
	call := Call{ID: uuid.NewString(), Tool: name, Args: raw, Started: time.Now()}
	log := r.log.With().Str("call_id", call.ID).Str("tool", name).Logger()

	t, ok := r.Get(name)
	if !ok {
		call.Result = Result{Tool: name, Err: unknownTool(name)}
	} else {
		call.Result = r.invoke(ctx, t, raw)
	}
	call.Duration = time.Since(call.Started)

	if call.Result.OK() {
		log.Info().Dur("took", call.Duration).Msg("tool call ok")
	} else {
		log.Warn().Err(call.Result.Err).Str("type", call.Result.Kind()).Dur("took", call.Duration).Msg("tool call failed")
	}

	r.mu.RLock()
	observers := append([]CallObserver(nil), r.observers...)
	r.mu.RUnlock()
	for _, o := range observers {
		o.ObserveCall(ctx, call)
	}
	return call.Result
}

func (r *Registry) invoke(ctx context.Context, t Tool, raw map[string]any) (res Result) {
	res.Tool = t.Name
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Str("tool", t.Name).Interface("panic", p).Msg("tool handler panicked")
			res = Result{Tool: t.Name, Err: &panicError{v: p}}
		}
	}()

	args := make(map[string]any, len(raw)+len(t.Params))
	for k, v := range raw {
		args[k] = v
	}
	for _, p := range t.Params {
		if v, ok := args[p.Name]; ok && v != nil {
			if len(p.Enum) > 0 && !oneOf(v, p.Enum) {
				return Result{Tool: t.Name, Err: invalidArgs("%s must be one of %v, got %v", p.Name, p.Enum, v)}
			}
			continue
		}
		if p.Required {
			return Result{Tool: t.Name, Err: invalidArgs("missing required argument: %s", p.Name)}
		}
		if p.Default != nil {
			args[p.Name] = p.Default
		}
	}

	data, err := t.Handler(ctx, NewArgs(args))
	if err != nil {
		return Result{Tool: t.Name, Err: err}
	}
	return Result{Tool: t.Name, Data: data}
}

func oneOf(v any, allowed []string) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// Result is the outcome of one call: Data on success, Err otherwise.
type Result struct {
	Tool string
	Data any
	Err  error
}

func (r Result) OK() bool { return r.Err == nil }

// Kind is "ok" for successful calls and the error type otherwise.
func (r Result) Kind() string {
	if r.Err == nil {
		return "ok"
	}
	return KindOf(r.Err)
}

var messagePrefix = map[string]string{
	KindAPI:      "PrestaShop API Error: ",
	KindInternal: "Tool execution failed: ",
}

// Render is the mapping handed back to the host.
func (r Result) Render() any {
	if r.Err == nil {
		if r.Data == nil {
			return map[string]any{}
		}
		return r.Data
	}
	kind := r.Kind()
	out := map[string]any{
		"error": messagePrefix[kind] + r.Err.Error(),
		"type":  kind,
	}
	for k, v := range detailsOf(r.Err) {
		if _, taken := out[k]; !taken {
			out[k] = v
		}
	}
	return out
}

func (r Result) JSON() (string, error) {
	b, err := json.MarshalIndent(r.Render(), "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}

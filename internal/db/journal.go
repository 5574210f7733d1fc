package db

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"

	"github.com/latinogino/prestashop-mcp/internal/integrations"
)

const redacted = "***"

// plainArgs are stored verbatim besides ids and flags; every other value is masked.
var plainArgs = map[string]bool{"limit": true, "position": true, "cache_type": true, "display": true}

// Journal records every tool call in tool_calls.
type Journal struct {
	h   *Handle
	log zerolog.Logger
}

func NewJournal(h *Handle, log zerolog.Logger) *Journal {
	return &Journal{h: h, log: log.With().Str("component", "journal").Logger()}
}

// ObserveCall never fails the call it describes; write errors are only logged.
func (j *Journal) ObserveCall(ctx context.Context, c integrations.Call) {
	row := ToolCall{
		ID:         c.ID,
		Tool:       c.Tool,
		Arguments:  redactArgs(c.Args),
		Outcome:    c.Result.Kind(),
		DurationMS: c.Duration.Milliseconds(),
		CreatedAt:  c.Started,
	}
	if c.Result.Err != nil {
		row.Error = c.Result.Err.Error()
	}
	if err := j.h.DB.WithContext(context.WithoutCancel(ctx)).Create(&row).Error; err != nil {
		j.log.Error().Err(err).Str("call_id", c.ID).Msg("journal write failed")
	}
}

// Recent returns the newest n calls, newest first.
func (j *Journal) Recent(ctx context.Context, n int) ([]ToolCall, error) {
	var rows []ToolCall
	err := j.h.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(n).
		Find(&rows).Error
	return rows, err
}

// redactArgs keeps every argument name but only the values of ids, flags and paging
// arguments.
func redactArgs(args map[string]any) string {
	clean := make(map[string]any, len(args))
	for k, v := range args {
		if keepArg(k, v) {
			clean[k] = v
			continue
		}
		clean[k] = redacted
	}
	b, err := json.Marshal(clean)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func keepArg(name string, v any) bool {
	name = strings.ToLower(name)
	if plainArgs[name] || strings.HasSuffix(name, "_id") || strings.HasSuffix(name, "_ids") {
		return true
	}
	_, isBool := v.(bool)
	return isBool || v == nil
}

// internal/integrations/prestashop/update.go
package prestashop

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// mergeFunc overlays caller-supplied fields on a fetched record.
type mergeFunc func(rec Record) error

// fetch reads resource/id and returns the record under entity.
func (c *Client) fetch(ctx context.Context, resource, entity, id string) (Record, error) {
	if err := validateID(entity, id); err != nil {
		return nil, err
	}
	resp, err := c.get(ctx, resource+"/"+id, nil)
	if err != nil {
		return nil, err
	}
	rec, ok := resp.Map(entity)
	if !ok {
		return nil, notFound("%s %s", entity, id)
	}
	return rec, nil
}

// patch is the read-merge-write cycle every update goes through. The webservice wants the
// whole record on PUT, so fields the caller did not name are echoed from the fetched copy.
func (c *Client) patch(ctx context.Context, resource, entity, id string, merge mergeFunc) (Record, error) {
	current, err := c.fetch(ctx, resource, entity, id)
	if err != nil {
		return nil, err
	}
	return c.putMerged(ctx, resource, entity, id, current, merge)
}

// putMerged writes current with merge applied, for callers that already hold the full record.
func (c *Client) putMerged(ctx context.Context, resource, entity, id string, current Record, merge mergeFunc) (Record, error) {
	next := current.Clone()
	if merge != nil {
		if err := merge(next); err != nil {
			return nil, err
		}
	}
	return c.put(ctx, resource+"/"+id, Record{entity: next})
}

func validateID(what, id string) error {
	if id == "" {
		return fmt.Errorf("%w: %s id is required", ErrInvalidInput, what)
	}
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return fmt.Errorf("%w: %s id must be numeric, got %q", ErrInvalidInput, what, id)
	}
	return nil
}

// listOf extracts the records of a collection answer ({"products": [...]}).
// A single mapping (XML answers with one child) counts as a one element list.
func listOf(resp Record, key string) []Record {
	switch t := resp[key].(type) {
	case []any:
		out := make([]Record, 0, len(t))
		for _, item := range t {
			if rec, ok := asRecord(item); ok {
				out = append(out, rec)
			}
		}
		return out
	case []Record:
		return t
	case []map[string]any:
		out := make([]Record, 0, len(t))
		for _, item := range t {
			out = append(out, Record(item))
		}
		return out
	default:
		if rec, ok := asRecord(t); ok {
			return []Record{rec}
		}
	}
	return nil
}

func listQuery(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}

// displayParam turns "id,name" into the bracketed form the webservice expects.
func displayParam(display string) string {
	display = strings.TrimSpace(display)
	if display == "" || display == "full" || strings.HasPrefix(display, "[") {
		return display
	}
	return "[" + display + "]"
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

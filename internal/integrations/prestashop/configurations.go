// internal/integrations/prestashop/configurations.go
package prestashop

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// ListConfigurations lists configuration values, optionally only those whose name starts with prefix.
func (c *Client) ListConfigurations(ctx context.Context, prefix string, limit int) (Record, error) {
	q := listQuery(limit)
	q.Set("display", "full")
	if prefix != "" {
		q.Set("filter[name]", "["+prefix+"]%")
	}
	return c.get(ctx, "configurations", q)
}

// GetConfiguration looks a configuration row up by its exact name.
func (c *Client) GetConfiguration(ctx context.Context, name string) (Record, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: configuration name is required", ErrInvalidInput)
	}
	q := url.Values{}
	q.Set("filter[name]", "["+name+"]")
	q.Set("display", "full")
	resp, err := c.get(ctx, "configurations", q)
	if err != nil {
		return nil, err
	}
	for _, row := range listOf(resp, "configurations") {
		if row.String("name") == name {
			return row, nil
		}
	}
	return nil, notFound("configuration %s", name)
}

// SetConfiguration rewrites the value of an existing configuration row.
func (c *Client) SetConfiguration(ctx context.Context, name, value string) (Record, error) {
	row, err := c.GetConfiguration(ctx, name)
	if err != nil {
		return nil, err
	}
	return c.putMerged(ctx, "configurations", "configuration", row.String("id"), row, func(r Record) error {
		r["value"] = value
		return nil
	})
}

// configValues fetches every configuration in names with one OR filter, keyed by name.
// Names the shop does not know are absent from the result.
func (c *Client) configValues(ctx context.Context, names ...string) (map[string]string, error) {
	q := url.Values{}
	q.Set("filter[name]", "["+strings.Join(names, "|")+"]")
	q.Set("display", "[id,name,value]")
	resp, err := c.get(ctx, "configurations", q)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(names))
	for _, row := range listOf(resp, "configurations") {
		out[row.String("name")] = row.String("value")
	}
	return out, nil
}

// configsByPrefix is configValues for a name prefix.
func (c *Client) configsByPrefix(ctx context.Context, prefixes ...string) (Record, error) {
	out := Record{}
	for _, prefix := range prefixes {
		resp, err := c.ListConfigurations(ctx, prefix, 0)
		if err != nil {
			return nil, err
		}
		for _, row := range listOf(resp, "configurations") {
			out[row.String("name")] = row.String("value")
		}
	}
	return out, nil
}

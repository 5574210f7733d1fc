// internal/integrations/prestashop/modules.go
package prestashop

import (
	"context"
	"fmt"
	"net/url"
)

func (c *Client) ListModules(ctx context.Context, limit int, name string) (Record, error) {
	q := listQuery(limit)
	q.Set("display", "full")
	if name != "" {
		q.Set("filter[name]", "["+name+"]%")
	}
	return c.get(ctx, "modules", q)
}

func (c *Client) findModule(ctx context.Context, name string) (Record, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: module name is required", ErrInvalidInput)
	}
	q := url.Values{}
	q.Set("filter[name]", "["+name+"]")
	q.Set("display", "full")
	resp, err := c.get(ctx, "modules", q)
	if err != nil {
		return nil, err
	}
	for _, m := range listOf(resp, "modules") {
		if m.String("name") == name {
			return m, nil
		}
	}
	return nil, notFound("module %s", name)
}

func (c *Client) GetModuleByName(ctx context.Context, name string) (Record, error) {
	m, err := c.findModule(ctx, name)
	if err != nil {
		return nil, err
	}
	return Record{"module": m}, nil
}

// InstallModule registers the module with the shop. An already known module is returned as is.
func (c *Client) InstallModule(ctx context.Context, name string) (Record, error) {
	existing, err := c.findModule(ctx, name)
	switch {
	case err == nil:
		return Record{"module": existing, "message": fmt.Sprintf("Module %s is already installed", name)}, nil
	case !isNotFound(err):
		return nil, err
	}
	return c.post(ctx, "modules", Record{
		"module": Record{"name": name, "active": "1"},
	})
}

func (c *Client) UpdateModuleStatus(ctx context.Context, name string, active bool) (Record, error) {
	m, err := c.findModule(ctx, name)
	if err != nil {
		return nil, err
	}
	id := m.String("id")
	if err := validateID("module", id); err != nil {
		return nil, err
	}
	return c.putMerged(ctx, "modules", "module", id, m, func(r Record) error {
		r["active"] = boolFlag(active)
		return nil
	})
}

// internal/integrations/prestashop/shop.go
package prestashop

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// TestConnection issues the cheapest authenticated read there is.
func (c *Client) TestConnection(ctx context.Context) (Record, error) {
	if _, err := c.get(ctx, "configurations", listQuery(1)); err != nil {
		return nil, err
	}
	return Record{"status": "success", "message": "API connection working", "xml_enabled": true}, nil
}

func (c *Client) GetShopInfo(ctx context.Context) (Record, error) {
	info, err := c.configsByPrefix(ctx, "PS_SHOP_")
	if err != nil {
		return nil, err
	}
	return Record{"shop_info": info}, nil
}

// Theme settings live in plain configuration rows.

func (c *Client) GetThemes(ctx context.Context) (Record, error) {
	settings, err := c.configsByPrefix(ctx, "PS_THEME", "PS_LOGO")
	if err != nil {
		return nil, err
	}
	return Record{"theme_settings": settings}, nil
}

func (c *Client) UpdateThemeSetting(ctx context.Context, name, value string) (Record, error) {
	if !strings.HasPrefix(name, "PS_") {
		return nil, fmt.Errorf("%w: theme setting %q must start with PS_", ErrInvalidInput, name)
	}
	return c.SetConfiguration(ctx, name, value)
}

// CacheAll is the only cache kind the webservice can reach.
const CacheAll = "all"

var cacheSettings = []string{
	"PS_SMARTY_CACHE",
	"PS_SMARTY_FORCE_COMPILE",
	"PS_CSS_THEME_CACHE",
	"PS_JS_THEME_CACHE",
	"PS_HTACCESS_CACHE_CONTROL",
}

// Bumping these makes the front office rebuild its combined CSS/JS bundles.
var cacheVersionKeys = []string{"PS_CCCJS_VERSION", "PS_CCCCSS_VERSION"}

func (c *Client) GetCacheStatus(ctx context.Context) (Record, error) {
	values, err := c.configValues(ctx, cacheSettings...)
	if err != nil {
		return nil, err
	}
	status := Record{}
	for _, name := range cacheSettings {
		v, ok := values[name]
		if !ok {
			continue
		}
		status[name] = Record{"value": v, "enabled": v == "1"}
	}
	return Record{"cache_status": status}, nil
}

func (c *Client) ClearCache(ctx context.Context, kind string) (Record, error) {
	if kind == "" {
		kind = CacheAll
	}
	if kind != CacheAll {
		return nil, fmt.Errorf("%w: unsupported cache type %q", ErrInvalidInput, kind)
	}

	// all versions are read and parsed before the first write
	rows := make([]Record, 0, len(cacheVersionKeys))
	next := make([]string, 0, len(cacheVersionKeys))
	for _, name := range cacheVersionKeys {
		row, err := c.GetConfiguration(ctx, name)
		if err != nil {
			return nil, err
		}
		n := 0
		if v := strings.TrimSpace(row.String("value")); v != "" {
			if n, err = strconv.Atoi(v); err != nil {
				return nil, fmt.Errorf("%w: %s holds %q, not a version number", ErrInvalidInput, name, v)
			}
		}
		rows = append(rows, row)
		next = append(next, strconv.Itoa(n+1))
	}

	bumped := Record{}
	for i, row := range rows {
		if _, err := c.putMerged(ctx, "configurations", "configuration", row.String("id"), row, func(r Record) error {
			r["value"] = next[i]
			return nil
		}); err != nil {
			return nil, err
		}
		bumped[cacheVersionKeys[i]] = next[i]
	}
	return Record{
		"success":    true,
		"cache_type": kind,
		"message":    "Cache cleared",
		"versions":   bumped,
	}, nil
}

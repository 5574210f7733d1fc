// internal/integrations/prestashop/categories.go
package prestashop

import (
	"context"
	"fmt"
)

type CategoryInput struct {
	Name        string `mapstructure:"name" validate:"required"`
	Description string `mapstructure:"description"`
	ParentID    string `mapstructure:"parent_id"` // defaults to Home
	Active      bool   `mapstructure:"active"`
}

type CategoryUpdate struct {
	Name        *string `mapstructure:"name"`
	Description *string `mapstructure:"description"`
	Active      *bool   `mapstructure:"active"`
}

func (c *Client) ListCategories(ctx context.Context, limit int, parentID string) (Record, error) {
	q := listQuery(limit)
	if parentID != "" {
		if err := validateID("parent category", parentID); err != nil {
			return nil, err
		}
		q.Set("filter[id_parent]", parentID)
	}
	return c.get(ctx, "categories", q)
}

func (c *Client) GetCategory(ctx context.Context, id string) (Record, error) {
	rec, err := c.fetch(ctx, "categories", "category", id)
	if err != nil {
		return nil, err
	}
	return Record{"category": rec}, nil
}

func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (Record, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	parent := in.ParentID
	if parent == "" {
		parent = defaultCategoryID
	}
	if err := validateID("parent category", parent); err != nil {
		return nil, err
	}

	langs := c.Languages()
	cat := Record{
		"name":             langs.Field(in.Name),
		"link_rewrite":     langs.Field(Slug(in.Name)),
		"description":      langs.Field(in.Description),
		"id_parent":        parent,
		"active":           boolFlag(in.Active),
		"is_root_category": "0",
	}
	return c.post(ctx, "categories", Record{"category": cat})
}

func (c *Client) UpdateCategory(ctx context.Context, id string, u CategoryUpdate) (Record, error) {
	langs := c.Languages()
	return c.patch(ctx, "categories", "category", id, func(cat Record) error {
		if u.Name != nil {
			cat["name"] = langs.Field(*u.Name)
			cat["link_rewrite"] = langs.Field(Slug(*u.Name))
		}
		if u.Description != nil {
			cat["description"] = langs.Field(*u.Description)
		}
		if u.Active != nil {
			cat["active"] = boolFlag(*u.Active)
		}
		return nil
	})
}

func (c *Client) DeleteCategory(ctx context.Context, id string) (Record, error) {
	if err := validateID("category", id); err != nil {
		return nil, err
	}
	if _, err := c.delete(ctx, "categories/"+id); err != nil {
		return nil, err
	}
	return Record{"success": true, "message": fmt.Sprintf("Category %s deleted", id)}, nil
}

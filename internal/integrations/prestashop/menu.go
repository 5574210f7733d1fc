// internal/integrations/prestashop/menu.go
package prestashop

import (
	"context"
	"fmt"
	"strings"
)

const (
	menuTreeKey    = "PS_MENU_TREE"
	categoryPrefix = "CAT"
)

// MenuTree is the decoded PS_MENU_TREE value: "CAT3,CAT6,LNK1".
// Only CAT tokens are managed here; other tokens (custom links, CMS pages) are kept in place.
type MenuTree struct {
	tokens []string
}

func ParseMenuTree(value string) MenuTree {
	var t MenuTree
	for _, tok := range strings.Split(value, ",") {
		if tok = strings.TrimSpace(tok); tok != "" {
			t.tokens = append(t.tokens, tok)
		}
	}
	return t
}

func (t MenuTree) String() string { return strings.Join(t.tokens, ",") }

// Categories returns the category ids in menu order.
func (t MenuTree) Categories() []string {
	out := make([]string, 0, len(t.tokens))
	for _, tok := range t.tokens {
		if id, ok := strings.CutPrefix(tok, categoryPrefix); ok {
			out = append(out, id)
		}
	}
	return out
}

func (t MenuTree) Contains(id string) bool {
	for _, tok := range t.tokens {
		if tok == categoryPrefix+id {
			return true
		}
	}
	return false
}

// Insert places the category at position (0 based, clamped) or appends when position is nil.
func (t *MenuTree) Insert(id string, position *int) {
	tok := categoryPrefix + id
	if position == nil || *position >= len(t.tokens) {
		t.tokens = append(t.tokens, tok)
		return
	}
	at := max(*position, 0)
	t.tokens = append(t.tokens[:at], append([]string{tok}, t.tokens[at:]...)...)
}

func (t *MenuTree) Remove(id string) bool {
	for i, tok := range t.tokens {
		if tok == categoryPrefix+id {
			t.tokens = append(t.tokens[:i], t.tokens[i+1:]...)
			return true
		}
	}
	return false
}

func (t MenuTree) describe() Record {
	cats := t.Categories()
	items := make([]any, len(t.tokens))
	for i, tok := range t.tokens {
		items[i] = tok
	}
	ids := make([]any, len(cats))
	for i, id := range cats {
		ids[i] = id
	}
	return Record{
		"raw_value":      t.String(),
		"items":          items,
		"category_ids":   ids,
		"category_count": len(cats),
	}
}

func (c *Client) menuTree(ctx context.Context) (Record, MenuTree, error) {
	row, err := c.GetConfiguration(ctx, menuTreeKey)
	if err != nil {
		return nil, MenuTree{}, err
	}
	return row, ParseMenuTree(row.String("value")), nil
}

func (c *Client) writeMenuTree(ctx context.Context, row Record, tree MenuTree) error {
	_, err := c.putMerged(ctx, "configurations", "configuration", row.String("id"), row, func(r Record) error {
		r["value"] = tree.String()
		return nil
	})
	return err
}

func (c *Client) GetMenuTree(ctx context.Context) (Record, error) {
	_, tree, err := c.menuTree(ctx)
	if err != nil {
		return nil, err
	}
	return Record{"menu_tree": tree.describe()}, nil
}

func (c *Client) AddCategoryToMenu(ctx context.Context, categoryID string, position *int) (Record, error) {
	if err := validateID("category", categoryID); err != nil {
		return nil, err
	}
	row, tree, err := c.menuTree(ctx)
	if err != nil {
		return nil, err
	}
	if tree.Contains(categoryID) {
		return nil, fmt.Errorf("%w: category %s is already in the menu tree", ErrAlreadyPresent, categoryID)
	}
	tree.Insert(categoryID, position)
	if err := c.writeMenuTree(ctx, row, tree); err != nil {
		return nil, err
	}
	return Record{
		"success":   true,
		"message":   fmt.Sprintf("Category %s added to menu", categoryID),
		"menu_tree": tree.describe(),
	}, nil
}

func (c *Client) RemoveCategoryFromMenu(ctx context.Context, categoryID string) (Record, error) {
	if err := validateID("category", categoryID); err != nil {
		return nil, err
	}
	row, tree, err := c.menuTree(ctx)
	if err != nil {
		return nil, err
	}
	if !tree.Remove(categoryID) {
		return nil, notFound("category %s in menu tree", categoryID)
	}
	if err := c.writeMenuTree(ctx, row, tree); err != nil {
		return nil, err
	}
	return Record{
		"success":   true,
		"message":   fmt.Sprintf("Category %s removed from menu", categoryID),
		"menu_tree": tree.describe(),
	}, nil
}

// SetMenuTree replaces the category entries with ids, in that order. Tokens that are not
// categories follow the categories. Blank ids are skipped.
func (c *Client) SetMenuTree(ctx context.Context, raw []string) (Record, error) {
	ids := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, id := range raw {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if err := validateID("category", id); err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: category %s listed twice", ErrInvalidInput, id)
		}
		seen[id] = true
		ids = append(ids, id)
	}

	row, old, err := c.menuTree(ctx)
	if err != nil {
		return nil, err
	}
	var next MenuTree
	for _, id := range ids {
		next.tokens = append(next.tokens, categoryPrefix+id)
	}
	for _, tok := range old.tokens {
		if !strings.HasPrefix(tok, categoryPrefix) {
			next.tokens = append(next.tokens, tok)
		}
	}
	if err := c.writeMenuTree(ctx, row, next); err != nil {
		return nil, err
	}
	return Record{
		"success":   true,
		"message":   "Menu tree updated",
		"menu_tree": next.describe(),
	}, nil
}

// GetMainMenuLinks reads the ps_mainmenu module settings. The custom links themselves live in
// module tables the webservice does not expose.
func (c *Client) GetMainMenuLinks(ctx context.Context) (Record, error) {
	links, err := c.configsByPrefix(ctx, "MOD_BLOCKTOPMENU_")
	if err != nil {
		return nil, err
	}
	return Record{"main_menu_links": links}, nil
}

// GetMenuTreeStatus combines the category navigation with the module settings.
func (c *Client) GetMenuTreeStatus(ctx context.Context) (Record, error) {
	tree, err := c.GetMenuTree(ctx)
	if err != nil {
		return nil, err
	}
	out := Record{"menu_tree": tree["menu_tree"]}
	if links, err := c.GetMainMenuLinks(ctx); err != nil {
		out["main_menu_links"] = Record{"error": err.Error()}
	} else {
		out["main_menu_links"] = links["main_menu_links"]
	}
	return out, nil
}

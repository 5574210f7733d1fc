package prestashop

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latinogino/prestashop-mcp/internal/integrations"
)

func newRegistry(t *testing.T, c *Client) *integrations.Registry {
	t.Helper()
	reg := integrations.NewRegistry(zerolog.Nop())
	require.NoError(t, Register(reg, c))
	return reg
}

func rendered(t *testing.T, res integrations.Result) map[string]any {
	t.Helper()
	text, err := res.JSON()
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	return out
}

func TestTools_Catalogue(t *testing.T) {
	c, err := NewClient(Config{ShopURL: "https://shop.example.com", APIKey: "K"})
	require.NoError(t, err)
	reg := newRegistry(t, c)

	assert.Equal(t, []string{
		"test_connection", "get_shop_info", "get_configurations",
		"get_categories", "create_category", "update_category", "delete_category",
		"get_products", "create_product", "update_product", "delete_product",
		"update_product_stock", "update_product_price",
		"get_customers", "create_customer", "update_customer",
		"get_orders", "update_order_status", "get_order_states",
		"get_modules", "get_module_by_name", "install_module", "update_module_status",
		"get_main_menu_links", "get_menu_tree", "add_category_to_menu", "remove_category_from_menu",
		"update_menu_tree", "get_menu_tree_status",
		"clear_cache", "get_cache_status", "get_themes", "update_theme_setting",
	}, reg.Names())

	assert.Error(t, Register(reg, c), "second registration must collide")
}

func TestTools_NotFoundReadIsAnAPIErrorResult(t *testing.T) {
	shop := newFakeShop(t)
	shop.handle("GET /api/products/404", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("Product not found"))
	})
	reg := newRegistry(t, shop.client(t))

	res := reg.Call(context.Background(), "get_products", map[string]any{"product_id": "404"})
	require.False(t, res.OK())

	out := rendered(t, res)
	assert.Equal(t, "api_error", out["type"])
	assert.Equal(t, float64(404), out["status"])
	assert.Equal(t, "Product not found", out["body"])
	assert.Equal(t, "PrestaShop API Error: API request failed with status 404: Product not found", out["error"])
}

func TestTools_CreateProductNumericArguments(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("POST /api/products", http.StatusCreated, J{"product": J{"id": "42"}})
	shop.reply("GET /api/stock_availables", http.StatusOK, stockRows("42"))
	shop.reply("PUT /api/stock_availables/7", http.StatusOK, J{"stock_available": J{"id": "7"}})
	reg := newRegistry(t, shop.client(t))

	res := reg.Call(context.Background(), "create_product", map[string]any{
		"name": "Red Mug", "price": 9.99, "quantity": float64(5), "category_id": float64(3),
	})
	require.True(t, res.OK(), "%v", res.Err)
	assert.Len(t, shop.requests(), 3)
	assert.Contains(t, shop.requests()[0].Body, "<id_category_default>3</id_category_default>")
}

func TestTools_ArgumentErrors(t *testing.T) {
	shop := newFakeShop(t)
	reg := newRegistry(t, shop.client(t))
	ctx := context.Background()

	tests := []struct {
		name string
		tool string
		args map[string]any
	}{
		{"missing required", "create_product", map[string]any{"name": "Mug"}},
		{"wrong type", "update_product_stock", map[string]any{"product_id": "1", "quantity": "many"}},
		{"fractional quantity", "update_product_stock", map[string]any{"product_id": "1", "quantity": 1.5}},
		{"negative price", "update_product_price", map[string]any{"product_id": "1", "price": -2.0}},
		{"non boolean active", "update_module_status", map[string]any{"module_name": "ps_banner", "active": "perhaps"}},
		{"enum", "clear_cache", map[string]any{"cache_type": "smarty"}},
		{"non numeric id", "delete_product", map[string]any{"product_id": "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := reg.Call(ctx, tt.tool, tt.args)
			assert.Equal(t, "invalid_arguments", rendered(t, res)["type"])
		})
	}
	assert.Empty(t, shop.requests())
}

func TestTools_MenuConflict(t *testing.T) {
	shop := menuShop(t, "CAT3,CAT6,CAT7")
	reg := newRegistry(t, shop.client(t))

	out := rendered(t, reg.Call(context.Background(), "add_category_to_menu", map[string]any{"category_id": "7"}))
	assert.Equal(t, "conflict", out["type"])
	assert.Contains(t, out["error"], "already in the menu tree")
}

func TestTools_DefaultsApplied(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("GET /api/modules", http.StatusOK, J{"modules": []any{}})
	reg := newRegistry(t, shop.client(t))

	res := reg.Call(context.Background(), "get_modules", nil)
	require.True(t, res.OK())
	assert.Equal(t, "20", shop.requests()[0].Query.Get("limit"))
}

func TestTools_MenuTreeFromCommaList(t *testing.T) {
	shop := menuShop(t, "CAT3,LNK2")
	reg := newRegistry(t, shop.client(t))

	res := reg.Call(context.Background(), "update_menu_tree", map[string]any{"category_ids": "6, 10 ,,3"})
	require.True(t, res.OK(), "%v", res.Err)
	assert.Contains(t, shop.writes()[0].Body, "<value>CAT6,CAT10,CAT3,LNK2</value>")
}

func TestTools_UpdateProductKeepsOmittedFields(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("GET /api/products/5", http.StatusOK, J{"product": J{"id": "5", "price": "4.000000", "active": "1"}})
	shop.reply("PUT /api/products/5", http.StatusOK, J{"product": J{"id": "5"}})
	reg := newRegistry(t, shop.client(t))

	res := reg.Call(context.Background(), "update_product", map[string]any{"product_id": float64(5), "active": "false"})
	require.True(t, res.OK(), "%v", res.Err)
	body := shop.writes()[0].Body
	assert.Contains(t, body, "<active>0</active>")
	assert.Contains(t, body, "<price>4.000000</price>")
}

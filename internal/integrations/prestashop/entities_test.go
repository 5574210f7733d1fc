package prestashop

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("POST /api/customers", http.StatusCreated, J{"customer": J{"id": "15"}})
	c := shop.client(t)

	_, err := c.CreateCustomer(context.Background(), CustomerInput{
		Email: "jane@example.com", Firstname: "Jane", Lastname: "Doe", Password: "s3cret!", Active: true,
	})
	require.NoError(t, err)

	body := shop.writes()[0].Body
	assert.Contains(t, body, "<passwd>s3cret!</passwd>")
	assert.Contains(t, body, "<id_default_group>3</id_default_group>")
	assert.Contains(t, body, "<id_lang>1</id_lang>")
	assert.Contains(t, body, "<newsletter>0</newsletter>")
	assert.Contains(t, body, "<associations><groups><group><id>3</id></group></groups></associations>")
}

func TestCreateCustomer_InvalidEmail(t *testing.T) {
	shop := newFakeShop(t)
	c := shop.client(t)

	_, err := c.CreateCustomer(context.Background(), CustomerInput{
		Email: "not-an-email", Firstname: "Jane", Lastname: "Doe", Password: "x",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, shop.requests())
}

func TestUpdateCustomer(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("GET /api/customers/15", http.StatusOK, J{"customer": J{
		"id": "15", "email": "old@example.com", "lastname": "Doe", "passwd": "hash",
	}})
	shop.reply("PUT /api/customers/15", http.StatusOK, J{"customer": J{"id": "15"}})
	c := shop.client(t)

	email := "new@example.com"
	_, err := c.UpdateCustomer(context.Background(), "15", CustomerUpdate{Email: &email})
	require.NoError(t, err)

	body := shop.writes()[0].Body
	assert.Contains(t, body, "<email>new@example.com</email>")
	assert.Contains(t, body, "<lastname>Doe</lastname>")
	assert.Contains(t, body, "<passwd>hash</passwd>")
}

func TestListCustomers(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("GET /api/customers", http.StatusOK, J{"customers": []any{}})
	c := shop.client(t)

	_, err := c.ListCustomers(context.Background(), 10, "jane@")
	require.NoError(t, err)
	q := shop.requests()[0].Query
	assert.Equal(t, "[jane@]%", q.Get("filter[email]"))
	assert.Equal(t, "[id,email,firstname,lastname,active,date_add]", q.Get("display"))
}

func TestOrders(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("GET /api/orders", http.StatusOK, J{"orders": []any{}})
	shop.reply("POST /api/order_histories", http.StatusCreated, J{"order_history": J{"id": "90"}})
	shop.reply("GET /api/order_states", http.StatusOK, J{"order_states": []any{J{"id": "2"}}})
	c := shop.client(t)
	ctx := context.Background()

	_, err := c.ListOrders(ctx, 10, "15", "2")
	require.NoError(t, err)
	q := shop.requests()[0].Query
	assert.Equal(t, "15", q.Get("filter[id_customer]"))
	assert.Equal(t, "2", q.Get("filter[current_state]"))

	_, err = c.UpdateOrderStatus(ctx, "8", "4")
	require.NoError(t, err)
	assert.Equal(t,
		"<prestashop><order_history><id_order>8</id_order><id_order_state>4</id_order_state></order_history></prestashop>",
		shop.writes()[0].Body)

	states, err := c.ListOrderStates(ctx)
	require.NoError(t, err)
	assert.Len(t, listOf(states, "order_states"), 1)
}

func TestSetConfiguration(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("GET /api/configurations", http.StatusOK, configRow("11", "PS_SHOP_NAME", "Old"))
	shop.reply("PUT /api/configurations/11", http.StatusOK, J{"configuration": J{"id": "11"}})
	c := shop.client(t)

	_, err := c.SetConfiguration(context.Background(), "PS_SHOP_NAME", "New")
	require.NoError(t, err)
	assert.Equal(t, "[PS_SHOP_NAME]", shop.requests()[0].Query.Get("filter[name]"))
	assert.Contains(t, shop.writes()[0].Body, "<value>New</value>")
}

func TestGetConfiguration_IgnoresOtherNames(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("GET /api/configurations", http.StatusOK, configRow("11", "PS_SHOP_NAME_OTHER", "x"))
	c := shop.client(t)

	_, err := c.GetConfiguration(context.Background(), "PS_SHOP_NAME")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestModules(t *testing.T) {
	shop := newFakeShop(t)
	shop.handle("GET /api/modules", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filter[name]") == "[ps_mainmenu]" {
			writeJSON(w, http.StatusOK, J{"modules": []any{J{"id": "4", "name": "ps_mainmenu", "active": "1"}}})
			return
		}
		writeJSON(w, http.StatusOK, []any{})
	})
	shop.reply("PUT /api/modules/4", http.StatusOK, J{"module": J{"id": "4"}})
	shop.reply("POST /api/modules", http.StatusCreated, J{"module": J{"id": "5"}})
	c := shop.client(t)
	ctx := context.Background()

	m, err := c.GetModuleByName(ctx, "ps_mainmenu")
	require.NoError(t, err)
	assert.Contains(t, m, "module")

	_, err = c.GetModuleByName(ctx, "ps_missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.UpdateModuleStatus(ctx, "ps_mainmenu", false)
	require.NoError(t, err)
	assert.Contains(t, shop.writes()[0].Body, "<active>0</active>")

	res, err := c.InstallModule(ctx, "ps_mainmenu")
	require.NoError(t, err)
	assert.Contains(t, res["message"], "already installed")
	assert.Len(t, shop.writes(), 1)

	_, err = c.InstallModule(ctx, "ps_new")
	require.NoError(t, err)
	assert.Equal(t, "<prestashop><module><active>1</active><name>ps_new</name></module></prestashop>", shop.writes()[1].Body)
}

func TestCacheStatus(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("GET /api/configurations", http.StatusOK, J{"configurations": []any{
		J{"id": "1", "name": "PS_SMARTY_CACHE", "value": "1"},
		J{"id": "2", "name": "PS_CSS_THEME_CACHE", "value": "0"},
	}})
	c := shop.client(t)

	res, err := c.GetCacheStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Record{
		"PS_SMARTY_CACHE":    Record{"value": "1", "enabled": true},
		"PS_CSS_THEME_CACHE": Record{"value": "0", "enabled": false},
	}, res["cache_status"])
	assert.Equal(t,
		"[PS_SMARTY_CACHE|PS_SMARTY_FORCE_COMPILE|PS_CSS_THEME_CACHE|PS_JS_THEME_CACHE|PS_HTACCESS_CACHE_CONTROL]",
		shop.requests()[0].Query.Get("filter[name]"))
}

func TestClearCache(t *testing.T) {
	shop := newFakeShop(t)
	shop.handle("GET /api/configurations", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("filter[name]") {
		case "[PS_CCCJS_VERSION]":
			writeJSON(w, http.StatusOK, configRow("20", "PS_CCCJS_VERSION", "7"))
		case "[PS_CCCCSS_VERSION]":
			writeJSON(w, http.StatusOK, configRow("21", "PS_CCCCSS_VERSION", ""))
		}
	})
	shop.reply("PUT /api/configurations/20", http.StatusOK, J{})
	shop.reply("PUT /api/configurations/21", http.StatusOK, J{})
	c := shop.client(t)

	res, err := c.ClearCache(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, Record{"PS_CCCJS_VERSION": "8", "PS_CCCCSS_VERSION": "1"}, res["versions"])

	_, err = c.ClearCache(context.Background(), "smarty")
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Len(t, shop.writes(), 2)
}

func TestClearCache_CorruptVersion(t *testing.T) {
	shop := newFakeShop(t)
	shop.handle("GET /api/configurations", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("filter[name]") {
		case "[PS_CCCJS_VERSION]":
			writeJSON(w, http.StatusOK, configRow("20", "PS_CCCJS_VERSION", "7"))
		case "[PS_CCCCSS_VERSION]":
			writeJSON(w, http.StatusOK, configRow("21", "PS_CCCCSS_VERSION", "v2"))
		}
	})
	c := shop.client(t)

	_, err := c.ClearCache(context.Background(), CacheAll)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), `PS_CCCCSS_VERSION holds "v2"`)
	assert.Empty(t, shop.writes())
}

func TestThemes(t *testing.T) {
	shop := newFakeShop(t)
	shop.handle("GET /api/configurations", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("filter[name]") {
		case "[PS_THEME]%":
			writeJSON(w, http.StatusOK, configRow("30", "PS_THEME_NAME", "classic"))
		case "[PS_LOGO]%":
			writeJSON(w, http.StatusOK, configRow("31", "PS_LOGO", "logo.png"))
		case "[PS_LOGO]":
			writeJSON(w, http.StatusOK, configRow("31", "PS_LOGO", "logo.png"))
		}
	})
	shop.reply("PUT /api/configurations/31", http.StatusOK, J{})
	c := shop.client(t)
	ctx := context.Background()

	res, err := c.GetThemes(ctx)
	require.NoError(t, err)
	assert.Equal(t, Record{"PS_THEME_NAME": "classic", "PS_LOGO": "logo.png"}, res["theme_settings"])

	_, err = c.UpdateThemeSetting(ctx, "THEME_NAME", "x")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = c.UpdateThemeSetting(ctx, "PS_LOGO", "new.png")
	require.NoError(t, err)
	assert.Contains(t, shop.writes()[0].Body, "<value>new.png</value>")
}

func TestShop(t *testing.T) {
	shop := newFakeShop(t)
	shop.reply("GET /api/configurations", http.StatusOK, configRow("1", "PS_SHOP_NAME", "Demo"))
	c := shop.client(t)
	ctx := context.Background()

	res, err := c.TestConnection(ctx)
	require.NoError(t, err)
	assert.Equal(t, "success", res["status"])
	assert.Equal(t, "1", shop.requests()[0].Query.Get("limit"))

	info, err := c.GetShopInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, Record{"PS_SHOP_NAME": "Demo"}, info["shop_info"])
}

// internal/integrations/prestashop/tools.go
package prestashop

import (
	"context"

	"github.com/latinogino/prestashop-mcp/internal/integrations"
)

type param = integrations.Param

func str(name, desc string) param {
	return param{Name: name, Type: integrations.TypeString, Description: desc}
}

func integer(name, desc string) param {
	return param{Name: name, Type: integrations.TypeInteger, Description: desc}
}

func number(name, desc string) param {
	return param{Name: name, Type: integrations.TypeNumber, Description: desc}
}

func boolean(name, desc string) param {
	return param{Name: name, Type: integrations.TypeBoolean, Description: desc}
}

func required(p param) param {
	p.Required = true
	return p
}

func withDefault(p param, v any) param {
	p.Default = v
	return p
}

// done keeps a typed nil Record from reaching the host as a non-nil result.
func done(v Record, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// handle binds the call arguments into T before running fn.
func handle[T any](fn func(context.Context, T) (Record, error)) integrations.Handler {
	return func(ctx context.Context, a *integrations.Args) (any, error) {
		var in T
		if err := a.Bind(&in); err != nil {
			return nil, err
		}
		return done(fn(ctx, in))
	}
}

func plain(fn func(context.Context) (Record, error)) integrations.Handler {
	return func(ctx context.Context, _ *integrations.Args) (any, error) {
		return done(fn(ctx))
	}
}

type (
	configurationArgs struct {
		Prefix string `mapstructure:"prefix"`
		Limit  int    `mapstructure:"limit" validate:"gte=0"`
	}
	categoryListArgs struct {
		Limit    int    `mapstructure:"limit" validate:"gte=0"`
		ParentID string `mapstructure:"parent_id"`
	}
	categoryIDArgs struct {
		CategoryID string `mapstructure:"category_id" validate:"required"`
	}
	categoryUpdateArgs struct {
		CategoryID     string `mapstructure:"category_id" validate:"required"`
		CategoryUpdate `mapstructure:",squash"`
	}
	productIDArgs struct {
		ProductID string `mapstructure:"product_id" validate:"required"`
	}
	productUpdateArgs struct {
		ProductID     string `mapstructure:"product_id" validate:"required"`
		ProductUpdate `mapstructure:",squash"`
	}
	stockArgs struct {
		ProductID string `mapstructure:"product_id" validate:"required"`
		Quantity  *int   `mapstructure:"quantity" validate:"required"`
	}
	priceArgs struct {
		ProductID string   `mapstructure:"product_id" validate:"required"`
		Price     *float64 `mapstructure:"price" validate:"required,gte=0"`
		Wholesale *float64 `mapstructure:"wholesale_price" validate:"omitempty,gte=0"`
	}
	customerListArgs struct {
		Limit int    `mapstructure:"limit" validate:"gte=0"`
		Email string `mapstructure:"email_filter"`
	}
	customerUpdateArgs struct {
		CustomerID     string `mapstructure:"customer_id" validate:"required"`
		CustomerUpdate `mapstructure:",squash"`
	}
	orderListArgs struct {
		Limit      int    `mapstructure:"limit" validate:"gte=0"`
		CustomerID string `mapstructure:"customer_id"`
		Status     string `mapstructure:"status"`
	}
	orderStatusArgs struct {
		OrderID  string `mapstructure:"order_id" validate:"required"`
		StatusID string `mapstructure:"status_id" validate:"required"`
	}
	moduleListArgs struct {
		Limit int    `mapstructure:"limit" validate:"gte=0"`
		Name  string `mapstructure:"module_name"`
	}
	moduleArgs struct {
		Name string `mapstructure:"module_name" validate:"required"`
	}
	moduleStatusArgs struct {
		Name   string `mapstructure:"module_name" validate:"required"`
		Active *bool  `mapstructure:"active" validate:"required"`
	}
	menuAddArgs struct {
		CategoryID string `mapstructure:"category_id" validate:"required"`
		Position   *int   `mapstructure:"position"`
	}
	menuTreeArgs struct {
		CategoryIDs []string `mapstructure:"category_ids" validate:"required"`
	}
	cacheArgs struct {
		CacheType string `mapstructure:"cache_type" validate:"omitempty,oneof=all"`
	}
	themeSettingArgs struct {
		Name  string `mapstructure:"setting_name" validate:"required"`
		Value string `mapstructure:"value"`
	}
)

// Tools is the full catalogue served over MCP.
func Tools(c *Client) []integrations.Tool {
	return []integrations.Tool{
		// connection and shop
		{
			Name:        "test_connection",
			Description: "Test PrestaShop API connection",
			Handler:     plain(c.TestConnection),
		},
		{
			Name:        "get_shop_info",
			Description: "Get general shop information and statistics",
			Handler:     plain(c.GetShopInfo),
		},
		{
			Name:        "get_configurations",
			Description: "Get shop configuration values, optionally filtered by name prefix",
			Params: []param{
				str("prefix", "Only return configurations whose name starts with this prefix (e.g. PS_SHOP_)"),
				integer("limit", "Maximum number of configurations to retrieve"),
			},
			Handler: handle(func(ctx context.Context, in configurationArgs) (Record, error) {
				return c.ListConfigurations(ctx, in.Prefix, in.Limit)
			}),
		},

		// categories
		{
			Name:        "get_categories",
			Description: "Get PrestaShop categories",
			Params: []param{
				withDefault(integer("limit", "Number of categories to retrieve"), 10),
				str("parent_id", "Filter by parent category ID"),
			},
			Handler: handle(func(ctx context.Context, in categoryListArgs) (Record, error) {
				return c.ListCategories(ctx, in.Limit, in.ParentID)
			}),
		},
		{
			Name:        "create_category",
			Description: "Create a new category",
			Params: []param{
				required(str("name", "Category name")),
				str("description", "Category description"),
				withDefault(str("parent_id", "Parent category ID"), defaultCategoryID),
				withDefault(boolean("active", "Whether category is active"), true),
			},
			Handler: handle(c.CreateCategory),
		},
		{
			Name:        "update_category",
			Description: "Update an existing category",
			Params: []param{
				required(str("category_id", "Category ID to update")),
				str("name", "New category name"),
				str("description", "New category description"),
				boolean("active", "Whether category is active"),
			},
			Handler: handle(func(ctx context.Context, in categoryUpdateArgs) (Record, error) {
				return c.UpdateCategory(ctx, in.CategoryID, in.CategoryUpdate)
			}),
		},
		{
			Name:        "delete_category",
			Description: "Delete a category",
			Params:      []param{required(str("category_id", "Category ID to delete"))},
			Handler: handle(func(ctx context.Context, in categoryIDArgs) (Record, error) {
				return c.DeleteCategory(ctx, in.CategoryID)
			}),
		},

		// products
		{
			Name: "get_products",
			Description: "Unified product retrieval - supports both single product by ID and multiple products " +
				"with comprehensive filtering and enhancement options",
			Params: []param{
				str("product_id", "Retrieve single product by ID (takes precedence over other params)"),
				withDefault(integer("limit", "Number of products to retrieve for list queries"), 10),
				str("category_id", "Filter by category ID"),
				str("name_filter", "Filter by product name"),
				withDefault(boolean("include_details", "Include complete product information"), false),
				withDefault(boolean("include_stock", "Include stock/inventory information"), false),
				withDefault(boolean("include_category_info", "Include category details"), false),
				str("display", "Comma-separated list of specific fields to include (e.g., 'id,name,price')"),
			},
			Handler: handle(c.ListProducts),
		},
		{
			Name:        "create_product",
			Description: "Create a new product",
			Params: []param{
				required(str("name", "Product name")),
				required(number("price", "Product price")),
				str("description", "Product description"),
				str("category_id", "Category ID"),
				integer("quantity", "Initial stock quantity"),
				str("reference", "Product reference/SKU"),
				number("weight", "Product weight"),
			},
			Handler: handle(c.CreateProduct),
		},
		{
			Name:        "update_product",
			Description: "Update an existing product",
			Params: []param{
				required(str("product_id", "Product ID to update")),
				str("name", "New product name"),
				number("price", "New product price"),
				str("description", "New product description"),
				str("category_id", "New category ID"),
				boolean("active", "Whether product is active"),
			},
			Handler: handle(func(ctx context.Context, in productUpdateArgs) (Record, error) {
				return c.UpdateProduct(ctx, in.ProductID, in.ProductUpdate)
			}),
		},
		{
			Name:        "delete_product",
			Description: "Delete a product",
			Params:      []param{required(str("product_id", "Product ID to delete"))},
			Handler: handle(func(ctx context.Context, in productIDArgs) (Record, error) {
				return c.DeleteProduct(ctx, in.ProductID)
			}),
		},
		{
			Name:        "update_product_stock",
			Description: "Update product stock quantity",
			Params: []param{
				required(str("product_id", "Product ID")),
				required(integer("quantity", "New stock quantity")),
			},
			Handler: handle(func(ctx context.Context, in stockArgs) (Record, error) {
				return c.UpdateProductStock(ctx, in.ProductID, *in.Quantity)
			}),
		},
		{
			Name:        "update_product_price",
			Description: "Update product price",
			Params: []param{
				required(str("product_id", "Product ID")),
				required(number("price", "New price")),
				number("wholesale_price", "New wholesale price"),
			},
			Handler: handle(func(ctx context.Context, in priceArgs) (Record, error) {
				return c.UpdateProductPrice(ctx, in.ProductID, *in.Price, in.Wholesale)
			}),
		},

		// customers
		{
			Name:        "get_customers",
			Description: "Get PrestaShop customers",
			Params: []param{
				withDefault(integer("limit", "Number of customers to retrieve"), 10),
				str("email_filter", "Filter by email"),
			},
			Handler: handle(func(ctx context.Context, in customerListArgs) (Record, error) {
				return c.ListCustomers(ctx, in.Limit, in.Email)
			}),
		},
		{
			Name:        "create_customer",
			Description: "Create a new customer",
			Params: []param{
				required(str("email", "Customer email")),
				required(str("firstname", "First name")),
				required(str("lastname", "Last name")),
				required(str("password", "Customer password")),
				withDefault(boolean("active", "Whether customer is active"), true),
			},
			Handler: handle(c.CreateCustomer),
		},
		{
			Name:        "update_customer",
			Description: "Update an existing customer",
			Params: []param{
				required(str("customer_id", "Customer ID to update")),
				str("email", "New email"),
				str("firstname", "New first name"),
				str("lastname", "New last name"),
				boolean("active", "Whether customer is active"),
			},
			Handler: handle(func(ctx context.Context, in customerUpdateArgs) (Record, error) {
				return c.UpdateCustomer(ctx, in.CustomerID, in.CustomerUpdate)
			}),
		},

		// orders
		{
			Name:        "get_orders",
			Description: "Get PrestaShop orders",
			Params: []param{
				withDefault(integer("limit", "Number of orders to retrieve"), 10),
				str("customer_id", "Filter by customer ID"),
				str("status", "Filter by order status"),
			},
			Handler: handle(func(ctx context.Context, in orderListArgs) (Record, error) {
				return c.ListOrders(ctx, in.Limit, in.CustomerID, in.Status)
			}),
		},
		{
			Name:        "update_order_status",
			Description: "Update order status",
			Params: []param{
				required(str("order_id", "Order ID")),
				required(str("status_id", "New status ID")),
			},
			Handler: handle(func(ctx context.Context, in orderStatusArgs) (Record, error) {
				return c.UpdateOrderStatus(ctx, in.OrderID, in.StatusID)
			}),
		},
		{
			Name:        "get_order_states",
			Description: "Get available order states/statuses",
			Handler:     plain(c.ListOrderStates),
		},

		// modules
		{
			Name:        "get_modules",
			Description: "Get PrestaShop modules",
			Params: []param{
				withDefault(integer("limit", "Number of modules to retrieve"), 20),
				str("module_name", "Filter by module name"),
			},
			Handler: handle(func(ctx context.Context, in moduleListArgs) (Record, error) {
				return c.ListModules(ctx, in.Limit, in.Name)
			}),
		},
		{
			Name:        "get_module_by_name",
			Description: "Get specific module by technical name",
			Params:      []param{required(str("module_name", "Module technical name"))},
			Handler: handle(func(ctx context.Context, in moduleArgs) (Record, error) {
				return c.GetModuleByName(ctx, in.Name)
			}),
		},
		{
			Name:        "install_module",
			Description: "Install a PrestaShop module",
			Params:      []param{required(str("module_name", "Module technical name to install"))},
			Handler: handle(func(ctx context.Context, in moduleArgs) (Record, error) {
				return c.InstallModule(ctx, in.Name)
			}),
		},
		{
			Name:        "update_module_status",
			Description: "Activate or deactivate a module",
			Params: []param{
				required(str("module_name", "Module technical name")),
				required(boolean("active", "Whether module should be active")),
			},
			Handler: handle(func(ctx context.Context, in moduleStatusArgs) (Record, error) {
				return c.UpdateModuleStatus(ctx, in.Name, *in.Active)
			}),
		},

		// navigation
		{
			Name:        "get_main_menu_links",
			Description: "Get ps_mainmenu navigation settings",
			Handler:     plain(c.GetMainMenuLinks),
		},
		{
			Name:        "get_menu_tree",
			Description: "Get PS_MENU_TREE configuration - categories displayed in main navigation",
			Handler:     plain(c.GetMenuTree),
		},
		{
			Name:        "add_category_to_menu",
			Description: "Add a category to the main navigation menu tree",
			Params: []param{
				required(str("category_id", "Category ID to add to navigation")),
				integer("position", "Position in menu (optional, defaults to end)"),
			},
			Handler: handle(func(ctx context.Context, in menuAddArgs) (Record, error) {
				return c.AddCategoryToMenu(ctx, in.CategoryID, in.Position)
			}),
		},
		{
			Name:        "remove_category_from_menu",
			Description: "Remove a category from the main navigation menu tree",
			Params:      []param{required(str("category_id", "Category ID to remove from navigation"))},
			Handler: handle(func(ctx context.Context, in categoryIDArgs) (Record, error) {
				return c.RemoveCategoryFromMenu(ctx, in.CategoryID)
			}),
		},
		{
			Name:        "update_menu_tree",
			Description: "Update the complete menu tree with new category order",
			Params: []param{{
				Name:        "category_ids",
				Type:        integrations.TypeArray,
				Items:       integrations.TypeString,
				Description: "Ordered list of category IDs for navigation",
				Required:    true,
			}},
			Handler: handle(func(ctx context.Context, in menuTreeArgs) (Record, error) {
				return c.SetMenuTree(ctx, in.CategoryIDs)
			}),
		},
		{
			Name:        "get_menu_tree_status",
			Description: "Get comprehensive menu tree status including both custom links and category navigation",
			Handler:     plain(c.GetMenuTreeStatus),
		},

		// cache and themes
		{
			Name:        "clear_cache",
			Description: "Clear PrestaShop cache",
			Params: []param{{
				Name:        "cache_type",
				Type:        integrations.TypeString,
				Description: "Type of cache to clear",
				Default:     CacheAll,
				Enum:        []string{CacheAll},
			}},
			Handler: handle(func(ctx context.Context, in cacheArgs) (Record, error) {
				return c.ClearCache(ctx, in.CacheType)
			}),
		},
		{
			Name:        "get_cache_status",
			Description: "Get current cache configuration status",
			Handler:     plain(c.GetCacheStatus),
		},
		{
			Name:        "get_themes",
			Description: "Get available themes and current theme settings",
			Handler:     plain(c.GetThemes),
		},
		{
			Name:        "update_theme_setting",
			Description: "Update a theme configuration setting",
			Params: []param{
				required(str("setting_name", "Theme setting name (e.g., PS_LOGO, PS_THEME_NAME)")),
				required(str("value", "New setting value")),
			},
			Handler: handle(func(ctx context.Context, in themeSettingArgs) (Record, error) {
				return c.UpdateThemeSetting(ctx, in.Name, in.Value)
			}),
		},
	}
}

// Register adds the whole catalogue to reg.
func Register(reg *integrations.Registry, c *Client) error {
	for _, t := range Tools(c) {
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}

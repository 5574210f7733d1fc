// internal/integrations/prestashop/products.go
package prestashop

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"
)

const (
	descriptionShortMax = 160
	metaTitleMax        = 70
	defaultCategoryID   = "2" // "Home" on a stock install
)

type ProductInput struct {
	Name        string   `mapstructure:"name" validate:"required"`
	Price       float64  `mapstructure:"price" validate:"gte=0"`
	Description string   `mapstructure:"description"`
	CategoryID  string   `mapstructure:"category_id"`
	Quantity    *int     `mapstructure:"quantity"`
	Reference   string   `mapstructure:"reference"`
	Weight      *float64 `mapstructure:"weight" validate:"omitempty,gte=0"`
}

// ProductUpdate names the fields a partial update may touch; nil means "keep".
type ProductUpdate struct {
	Name        *string  `mapstructure:"name"`
	Price       *float64 `mapstructure:"price" validate:"omitempty,gte=0"`
	Description *string  `mapstructure:"description"`
	CategoryID  *string  `mapstructure:"category_id"`
	Active      *bool    `mapstructure:"active"`
}

type ProductQuery struct {
	Limit      int            `mapstructure:"limit" validate:"gte=0"`
	ID         string         `mapstructure:"product_id"`
	Name       string         `mapstructure:"name_filter"`
	CategoryID string         `mapstructure:"category_id"`
	Display    string         `mapstructure:"display"`
	Details    bool           `mapstructure:"include_details"`
	Enhance    ProductEnhance `mapstructure:",squash"`
}

// ProductEnhance selects the best-effort lookups merged into a product read.
type ProductEnhance struct {
	Stock    bool `mapstructure:"include_stock"`
	Category bool `mapstructure:"include_category_info"`
}

func (e ProductEnhance) requested() bool { return e.Stock || e.Category }

func price(v float64) string { return decimal.NewFromFloat(v).String() }

// productDefaults covers every field the back office needs to show the product.
// Leaving "state" out produces a draft that never shows up in the catalog.
func (c *Client) productDefaults(in ProductInput) Record {
	langs := c.Languages()
	weight := "0"
	if in.Weight != nil {
		weight = price(*in.Weight)
	}
	categoryID := in.CategoryID
	if categoryID == "" {
		categoryID = defaultCategoryID
	}

	p := Record{
		"name":         langs.Field(in.Name),
		"link_rewrite": langs.Field(Slug(in.Name)),

		"price":               price(in.Price),
		"state":               "1",
		"active":              "1",
		"available_for_order": "1",
		"show_price":          "1",

		"id_category_default": categoryID,

		"minimal_quantity": "1",
		"low_stock_alert":  "0",

		"weight": weight,
		"width":  "0",
		"height": "0",
		"depth":  "0",

		"is_virtual":              "0",
		"cache_default_attribute": "0",
		"id_default_image":        "0",

		"id_tax_rules_group":       "1",
		"additional_shipping_cost": "0.00",
		"unit_price":               "0.000000",
		"unity":                    "",
		"unit_price_ratio":         "0.000000",
		"ecotax":                   "0.000000",

		"customizable":              "0",
		"uploadable_files":          "0",
		"text_fields":               "0",
		"out_of_stock":              "2",
		"depends_on_stock":          "0",
		"advanced_stock_management": "0",

		"indexed":        "1",
		"visibility":     "both",
		"condition":      "new",
		"show_condition": "0",
		"online_only":    "0",

		"available_date": "0000-00-00",
		"date_add":       "",
		"date_upd":       "",

		"cache_is_pack":         "0",
		"cache_has_attachments": "0",
		"is_pack":               "0",

		"redirect_type":      "404",
		"id_type_redirected": "0",

		"id_manufacturer": "0",
		"id_supplier":     "0",

		"description":       langs.Field(in.Description),
		"description_short": langs.Field(truncate(in.Description, descriptionShortMax)),
		"available_now":     langs.Field(""),
		"available_later":   langs.Field(""),
		"meta_description":  langs.Field(""),
		"meta_keywords":     langs.Field(""),
		"meta_title":        langs.Field(truncate(in.Name, metaTitleMax)),
	}
	if in.Reference != "" {
		p["reference"] = in.Reference
	}
	if in.CategoryID != "" {
		p["associations"] = Record{
			"categories": Record{
				"category": Record{"id": in.CategoryID},
			},
		}
	}
	return p
}

// CreateProduct writes the product and then, separately, its stock. Stock lives in the
// stock_availables sub-resource; a failure there is attached as "warning".
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (Record, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if in.CategoryID != "" {
		if err := validateID("category", in.CategoryID); err != nil {
			return nil, err
		}
	}

	result, err := c.post(ctx, "products", Record{"product": c.productDefaults(in)})
	if err != nil {
		return nil, err
	}
	if in.Quantity == nil {
		return result, nil
	}

	product, _ := result.Map("product")
	id := product.String("id")
	if id == "" {
		result["warning"] = "Product created but no id was returned, stock not updated"
		return result, nil
	}
	stock, err := c.UpdateProductStock(ctx, id, *in.Quantity)
	if err != nil {
		c.log.Warn().Err(err).Str("product_id", id).Msg("product created but stock update failed")
		result["warning"] = fmt.Sprintf("Product created but stock update failed: %v", err)
		return result, nil
	}
	if sa, ok := stock.Map("stock_available"); ok {
		result["stock_available"] = sa
	}
	return result, nil
}

// GetProduct reads one product. A missing product is an error; failed enhancement
// lookups are not, they land inline as {"error": ...}.
func (c *Client) GetProduct(ctx context.Context, id string, display string, enhance ProductEnhance) (Record, error) {
	if err := validateID("product", id); err != nil {
		return nil, err
	}
	q := url.Values{}
	if d := displayParam(display); d != "" {
		q.Set("display", d)
	}
	resp, err := c.get(ctx, "products/"+id, q)
	if err != nil {
		return nil, err
	}
	product, ok := resp.Map("product")
	if !ok {
		return nil, notFound("product %s", id)
	}

	out := Record{"product": product}
	if enhance.Stock {
		if stock, err := c.findStock(ctx, id); err != nil {
			out["stock_info"] = Record{"error": err.Error()}
		} else {
			out["stock_info"] = stock
		}
	}
	if enhance.Category {
		out["category_info"] = c.categoryInfo(ctx, product.String("id_category_default"))
	}
	return out, nil
}

func (c *Client) categoryInfo(ctx context.Context, categoryID string) Record {
	if categoryID == "" {
		return Record{"error": "product has no default category"}
	}
	cat, err := c.GetCategory(ctx, categoryID)
	if err != nil {
		return Record{"error": err.Error()}
	}
	return cat
}

// ListProducts lists products; with enhancement each item is re-read through GetProduct
// and falls back to the plain list entry when that read fails.
func (c *Client) ListProducts(ctx context.Context, pq ProductQuery) (Record, error) {
	if pq.ID != "" {
		return c.GetProduct(ctx, pq.ID, pq.Display, pq.Enhance)
	}

	q := listQuery(pq.Limit)
	if pq.Name != "" {
		q.Set("filter[name]", "["+pq.Name+"]%")
	}
	if pq.CategoryID != "" {
		if err := validateID("category", pq.CategoryID); err != nil {
			return nil, err
		}
		q.Set("filter[id_category_default]", pq.CategoryID)
	}
	display := displayParam(pq.Display)
	if pq.Details {
		display = "full"
	}
	if display != "" {
		q.Set("display", display)
	}

	resp, err := c.get(ctx, "products", q)
	if err != nil {
		return nil, err
	}
	if !pq.Enhance.requested() {
		return resp, nil
	}

	items := listOf(resp, "products")
	enhanced := make([]any, 0, len(items))
	for _, item := range items {
		id := item.String("id")
		full, err := c.GetProduct(ctx, id, display, pq.Enhance)
		if err != nil {
			c.log.Warn().Err(err).Str("product_id", id).Msg("enhancement failed, keeping list entry")
			enhanced = append(enhanced, item)
			continue
		}
		enhanced = append(enhanced, full)
	}
	resp["products"] = enhanced
	return resp, nil
}

// UpdateProduct rewrites the fields derived from name and description along with them.
func (c *Client) UpdateProduct(ctx context.Context, id string, u ProductUpdate) (Record, error) {
	langs := c.Languages()
	if u.CategoryID != nil {
		if err := validateID("category", *u.CategoryID); err != nil {
			return nil, err
		}
	}
	return c.patch(ctx, "products", "product", id, func(p Record) error {
		if u.Name != nil {
			p["name"] = langs.Field(*u.Name)
			p["link_rewrite"] = langs.Field(Slug(*u.Name))
			p["meta_title"] = langs.Field(truncate(*u.Name, metaTitleMax))
		}
		if u.Price != nil {
			p["price"] = price(*u.Price)
		}
		if u.Description != nil {
			p["description"] = langs.Field(*u.Description)
			p["description_short"] = langs.Field(truncate(*u.Description, descriptionShortMax))
		}
		if u.CategoryID != nil {
			p["id_category_default"] = *u.CategoryID
		}
		if u.Active != nil {
			p["active"] = boolFlag(*u.Active)
		}
		return nil
	})
}

func (c *Client) UpdateProductPrice(ctx context.Context, id string, newPrice float64, wholesale *float64) (Record, error) {
	return c.patch(ctx, "products", "product", id, func(p Record) error {
		p["price"] = price(newPrice)
		if wholesale != nil {
			p["wholesale_price"] = price(*wholesale)
		}
		return nil
	})
}

func (c *Client) DeleteProduct(ctx context.Context, id string) (Record, error) {
	if err := validateID("product", id); err != nil {
		return nil, err
	}
	if _, err := c.delete(ctx, "products/"+id); err != nil {
		return nil, err
	}
	return Record{"success": true, "message": fmt.Sprintf("Product %s deleted", id)}, nil
}

// findStock locates the stock_available row of a product (the one without combination).
func (c *Client) findStock(ctx context.Context, productID string) (Record, error) {
	q := url.Values{}
	q.Set("filter[id_product]", productID)
	q.Set("display", "full")
	resp, err := c.get(ctx, "stock_availables", q)
	if err != nil {
		return nil, err
	}
	rows := listOf(resp, "stock_availables")
	if len(rows) == 0 {
		return nil, notFound("stock for product %s", productID)
	}
	for _, row := range rows {
		if attr := row.String("id_product_attribute"); attr == "" || attr == "0" {
			return row, nil
		}
	}
	return rows[0], nil
}

// UpdateProductStock sets the quantity on the product's stock_available row.
func (c *Client) UpdateProductStock(ctx context.Context, productID string, quantity int) (Record, error) {
	if err := validateID("product", productID); err != nil {
		return nil, err
	}
	stock, err := c.findStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	stockID := stock.String("id")
	if err := validateID("stock_available", stockID); err != nil {
		return nil, err
	}
	return c.putMerged(ctx, "stock_availables", "stock_available", stockID, stock, func(r Record) error {
		r["quantity"] = strconv.Itoa(quantity)
		return nil
	})
}

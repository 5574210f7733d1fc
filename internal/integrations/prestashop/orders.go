// internal/integrations/prestashop/orders.go
package prestashop

import (
	"context"
	"net/url"
)

func (c *Client) ListOrders(ctx context.Context, limit int, customerID, status string) (Record, error) {
	q := listQuery(limit)
	q.Set("display", "full")
	if customerID != "" {
		if err := validateID("customer", customerID); err != nil {
			return nil, err
		}
		q.Set("filter[id_customer]", customerID)
	}
	if status != "" {
		if err := validateID("order state", status); err != nil {
			return nil, err
		}
		q.Set("filter[current_state]", status)
	}
	return c.get(ctx, "orders", q)
}

// UpdateOrderStatus appends an order history entry; the shop moves current_state itself
// (and sends the matching customer mail), a PUT on the order would not.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, statusID string) (Record, error) {
	if err := validateID("order", orderID); err != nil {
		return nil, err
	}
	if err := validateID("order state", statusID); err != nil {
		return nil, err
	}
	return c.post(ctx, "order_histories", Record{
		"order_history": Record{
			"id_order":       orderID,
			"id_order_state": statusID,
		},
	})
}

func (c *Client) ListOrderStates(ctx context.Context) (Record, error) {
	q := url.Values{}
	q.Set("display", "full")
	return c.get(ctx, "order_states", q)
}

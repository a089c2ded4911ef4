package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bookcourier/bookcourier/internal/domain"
)

// CreateOrder submits an order draft. The idempotency key must be stable
// for one wizard session so an ambiguous retry cannot create a duplicate
// order.
// POST /orders
func (c *Client) CreateOrder(ctx context.Context, draft domain.OrderDraft, idempotencyKey string) (*domain.Order, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/orders", draft, true)
	if err != nil {
		return nil, err
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	var resp struct {
		envelope
		Order *domain.Order `json:"order"`
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "order created",
		slog.String("book_id", draft.BookID),
	)
	return resp.Order, nil
}

// MyOrders lists the signed-in user's own orders.
// GET /orders/my
func (c *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	var resp struct {
		envelope
		Orders []domain.Order `json:"orders"`
	}
	if err := c.getJSON(ctx, "/orders/my", true, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}
	if resp.Orders == nil {
		resp.Orders = []domain.Order{}
	}
	return resp.Orders, nil
}

// ListOrders lists all orders across users. Librarian/admin dashboards only;
// the backend enforces the authorization.
// GET /orders
func (c *Client) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var resp struct {
		envelope
		Orders []domain.Order `json:"orders"`
	}
	if err := c.getJSON(ctx, "/orders", true, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}
	if resp.Orders == nil {
		resp.Orders = []domain.Order{}
	}
	return resp.Orders, nil
}

// UpdateOrderStatus moves an order to a new status.
// PATCH /orders/{id}/status
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	req, err := c.newRequest(ctx, http.MethodPatch, "/orders/"+url.PathEscape(orderID)+"/status", body, true)
	if err != nil {
		return nil, err
	}

	var resp struct {
		envelope
		Order *domain.Order `json:"order"`
	}
	if err := c.do(ctx, req, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}
	return resp.Order, nil
}

package api

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/bookcourier/bookcourier/internal/domain"
)

// rawInvoice captures every field name the backend has ever used for
// invoice data. Normalization into domain.Invoice happens exactly once,
// here at the API boundary, so view code never deals with alternates.
type rawInvoice struct {
	OrderID    string `json:"orderId"`
	OrderIDAlt string `json:"order_id"`

	InvoiceNumber string `json:"invoiceNumber"`
	InvoiceNo     string `json:"invoiceNo"`
	Number        string `json:"number"`

	IssuedAt    string `json:"issuedAt"`
	InvoiceDate string `json:"invoiceDate"`
	Date        string `json:"date"`

	CustomerName string `json:"customerName"`
	UserName     string `json:"userName"`

	CustomerEmail string `json:"customerEmail"`
	UserEmail     string `json:"userEmail"`

	BookName string `json:"bookName"`
	Title    string `json:"title"`

	Amount     json.Number `json:"amount"`
	Total      json.Number `json:"total"`
	GrandTotal json.Number `json:"grandTotal"`

	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`
}

// firstNonEmpty returns the first non-empty string of the candidates.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseInvoiceTime accepts the timestamp layouts observed in invoice
// payloads. A zero time is returned when nothing parses.
func parseInvoiceTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

// normalizeInvoice maps a raw invoice payload to the canonical shape.
func normalizeInvoice(raw rawInvoice) domain.Invoice {
	var value float64
	for _, n := range []json.Number{raw.Amount, raw.Total, raw.GrandTotal} {
		if n == "" {
			continue
		}
		if f, err := n.Float64(); err == nil {
			value = f
			break
		}
	}

	return domain.Invoice{
		OrderID:       firstNonEmpty(raw.OrderID, raw.OrderIDAlt),
		InvoiceNumber: firstNonEmpty(raw.InvoiceNumber, raw.InvoiceNo, raw.Number),
		IssuedAt:      parseInvoiceTime(firstNonEmpty(raw.IssuedAt, raw.InvoiceDate, raw.Date)),
		CustomerName:  firstNonEmpty(raw.CustomerName, raw.UserName),
		CustomerEmail: firstNonEmpty(raw.CustomerEmail, raw.UserEmail),
		BookName:      firstNonEmpty(raw.BookName, raw.Title),
		Amount:        value,
		PaymentMethod: raw.PaymentMethod,
		PaymentStatus: raw.PaymentStatus,
	}
}

// GetInvoice fetches and normalizes the invoice for an order.
// GET /orders/{id}/invoice
func (c *Client) GetInvoice(ctx context.Context, orderID string) (*domain.Invoice, error) {
	var resp struct {
		envelope
		Invoice rawInvoice `json:"invoice"`
	}
	if err := c.getJSON(ctx, "/orders/"+url.PathEscape(orderID)+"/invoice", true, &resp); err != nil {
		return nil, err
	}
	if err := resp.reject(); err != nil {
		return nil, err
	}

	inv := normalizeInvoice(resp.Invoice)
	if inv.OrderID == "" {
		inv.OrderID = orderID
	}
	return &inv, nil
}

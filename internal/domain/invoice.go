package domain

import "time"

// Invoice is the canonical internal shape for invoice data. The backend's
// invoice payloads are loosely shaped with alternate field names across
// versions; the API layer normalizes them into this struct once, at the
// boundary, so nothing downstream has to guess field names.
type Invoice struct {
	OrderID       string
	InvoiceNumber string
	IssuedAt      time.Time
	CustomerName  string
	CustomerEmail string
	BookName      string
	Amount        float64
	PaymentMethod string
	PaymentStatus string
}

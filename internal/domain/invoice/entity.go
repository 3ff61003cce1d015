package invoice

import "time"

// Invoice represents a persisted invoice record. The total price is the
// value supplied by the caller at generation time and is never recomputed
// from the line items.
type Invoice struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	Items         []LineItem
	TotalPrice    float64
	CreatedAt     time.Time
}

// LineItem is a single product row on an invoice.
type LineItem struct {
	Name      string
	Quantity  int64
	UnitPrice float64
}

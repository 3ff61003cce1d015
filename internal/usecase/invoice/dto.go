package invoice

import "time"

// Customer is the customer snapshot embedded in a generation request.
type Customer struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// LineItemInput is a single product row in a generation request.
type LineItemInput struct {
	Name     string  `validate:"required"`
	Quantity int64   `validate:"gte=0"`
	Price    float64 `validate:"gte=0"`
}

// GenerateRequest represents the request payload for generating an invoice
// PDF. TotalPrice is taken as-is; it is never recomputed from the items.
type GenerateRequest struct {
	Customer   Customer        `validate:"required"`
	Items      []LineItemInput `validate:"required,min=1,dive"`
	TotalPrice float64         `validate:"gte=0"`
}

// InvoiceSummary is a single invoice in a listing response.
type InvoiceSummary struct {
	ID         int64
	TotalPrice float64
	ItemCount  int
	CreatedAt  time.Time
}

// ListResponse represents the response payload for listing a customer's invoices.
type ListResponse struct {
	Invoices []InvoiceSummary
}

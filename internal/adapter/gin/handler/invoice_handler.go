package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoice-service/internal/adapter/gin/middleware"
	"invoice-service/internal/usecase/invoice"
	"invoice-service/pkg/apperrors"
)

// InvoiceHandler handles HTTP requests for invoice generation and listing.
type InvoiceHandler struct {
	uc  invoice.Usecase
	log *zap.Logger
}

// NewInvoiceHandler creates a new InvoiceHandler instance
func NewInvoiceHandler(uc invoice.Usecase, log *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		uc:  uc,
		log: log,
	}
}

// CustomerRequest is the customer snapshot in a generation request
type CustomerRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

// ProductRequest is a single product row in a generation request
type ProductRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity int64   `json:"quantity"`
	Price    float64 `json:"price"`
}

// GenerateRequest represents the HTTP request body for PDF generation.
// TotalPrice is a pointer so that a missing field is distinguishable from a
// legitimate zero total.
type GenerateRequest struct {
	User       CustomerRequest  `json:"user" binding:"required"`
	Products   []ProductRequest `json:"products" binding:"required,min=1,dive"`
	TotalPrice *float64         `json:"totalPrice" binding:"required"`
}

// ErrorResponse represents an error response for the invoice endpoints
type ErrorResponse struct {
	Error string `json:"error"`
}

// InvoiceResponse is a single invoice in a listing response
type InvoiceResponse struct {
	ID         int64     `json:"id"`
	TotalPrice float64   `json:"totalPrice"`
	ItemCount  int       `json:"itemCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ListInvoicesResponse represents the HTTP response for listing invoices
type ListInvoicesResponse struct {
	Invoices []InvoiceResponse `json:"invoices"`
}

// GeneratePDF handles POST /api/auth/generate-pdf. On success the response
// body is the raw PDF, served as an attachment.
func (h *InvoiceHandler) GeneratePDF(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("invalid generate-pdf request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	ucReq := invoice.GenerateRequest{
		Customer: invoice.Customer{
			Name:  req.User.Name,
			Email: req.User.Email,
		},
		TotalPrice: *req.TotalPrice,
	}
	for _, p := range req.Products {
		ucReq.Items = append(ucReq.Items, invoice.LineItemInput{
			Name:     p.Name,
			Quantity: p.Quantity,
			Price:    p.Price,
		})
	}

	pdf, err := h.uc.Generate(c.Request.Context(), ucReq)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=invoice.pdf")
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ListInvoices handles GET /api/invoices. The customer email comes from the
// verified token claims, never from the request.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	claims := middleware.ClaimsFromContext(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.uc.ListByCustomer(c.Request.Context(), claims.Email)
	if err != nil {
		h.log.Error("failed to list invoices", zap.String("email", claims.Email), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list invoices"})
		return
	}

	out := ListInvoicesResponse{Invoices: make([]InvoiceResponse, len(resp.Invoices))}
	for i, inv := range resp.Invoices {
		out.Invoices[i] = InvoiceResponse{
			ID:         inv.ID,
			TotalPrice: inv.TotalPrice,
			ItemCount:  inv.ItemCount,
			CreatedAt:  inv.CreatedAt,
		}
	}

	c.JSON(http.StatusOK, out)
}

// handleError maps usecase errors onto HTTP responses. Render and storage
// failures collapse to one generic message.
func (h *InvoiceHandler) handleError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: validationErr.Error()})
		return
	}

	h.log.Error("invoice request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Error generating invoice"})
}

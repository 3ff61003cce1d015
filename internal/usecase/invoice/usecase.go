package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	domain "invoice-service/internal/domain/invoice"
	"invoice-service/pkg/apperrors"
)

// Repository defines the interface for invoice store access.
type Repository interface {
	Create(ctx context.Context, inv *domain.Invoice) (int64, error)
	ListByCustomerEmail(ctx context.Context, email string) ([]domain.Invoice, error)
}

// Renderer turns an HTML document into PDF bytes. The production
// implementation drives a headless browser; anything able to rasterize HTML
// can be substituted.
type Renderer interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// Service implements the invoice generation pipeline: persist the record,
// build the HTML document, render it to PDF.
type Service struct {
	repo     Repository
	renderer Renderer
	log      *zap.Logger
	validate *validator.Validate
	now      func() time.Time
}

// New creates a new invoice Service.
func New(r Repository, renderer Renderer, log *zap.Logger) *Service {
	return &Service{
		repo:     r,
		renderer: renderer,
		log:      log,
		validate: validator.New(),
		now:      time.Now,
	}
}

func formatValidationError(err error) error {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		var messages []string
		for _, e := range validationErrors {
			switch e.Tag() {
			case "required":
				messages = append(messages, fmt.Sprintf("%s is required", e.Field()))
			case "email":
				messages = append(messages, fmt.Sprintf("%s must be a valid email", e.Field()))
			case "gte":
				messages = append(messages, fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
			case "min":
				messages = append(messages, fmt.Sprintf("%s must have at least %s entries", e.Field(), e.Param()))
			default:
				messages = append(messages, fmt.Sprintf("%s is invalid", e.Field()))
			}
		}
		return apperrors.NewValidationError("", strings.Join(messages, ", "))
	}
	return err
}

// Generate persists the invoice exactly as received and renders it to PDF.
// The record is written before rendering and is not rolled back if the
// render step fails afterwards.
func (s *Service) Generate(ctx context.Context, in GenerateRequest) ([]byte, error) {
	s.log.Info("generating invoice",
		zap.String("customer_email", in.Customer.Email),
		zap.Int("items", len(in.Items)),
		zap.Float64("total_price", in.TotalPrice),
	)

	if err := s.validate.Struct(in); err != nil {
		s.log.Warn("validate failed", zap.Error(err))
		return nil, formatValidationError(err)
	}

	inv := &domain.Invoice{
		CustomerName:  in.Customer.Name,
		CustomerEmail: in.Customer.Email,
		TotalPrice:    in.TotalPrice,
	}
	for _, item := range in.Items {
		inv.Items = append(inv.Items, domain.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	id, err := s.repo.Create(ctx, inv)
	if err != nil {
		s.log.Error("failed to persist invoice", zap.Error(err))
		return nil, apperrors.NewRenderError("failed to persist invoice", err)
	}

	html, err := buildHTML(in, s.now())
	if err != nil {
		s.log.Error("failed to build invoice document", zap.Int64("invoice_id", id), zap.Error(err))
		return nil, apperrors.NewRenderError("failed to build invoice document", err)
	}

	pdf, err := s.renderer.RenderHTML(ctx, html)
	if err != nil {
		s.log.Error("failed to render invoice PDF", zap.Int64("invoice_id", id), zap.Error(err))
		return nil, apperrors.NewRenderError("failed to render invoice PDF", err)
	}

	s.log.Info("invoice rendered", zap.Int64("invoice_id", id), zap.Int("pdf_bytes", len(pdf)))
	return pdf, nil
}

// ListByCustomer returns all invoices recorded for the given customer email,
// newest first.
func (s *Service) ListByCustomer(ctx context.Context, email string) (*ListResponse, error) {
	invoices, err := s.repo.ListByCustomerEmail(ctx, email)
	if err != nil {
		s.log.Error("failed to list invoices", zap.String("customer_email", email), zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list invoices", err)
	}

	resp := &ListResponse{Invoices: make([]InvoiceSummary, len(invoices))}
	for i, inv := range invoices {
		resp.Invoices[i] = InvoiceSummary{
			ID:         inv.ID,
			TotalPrice: inv.TotalPrice,
			ItemCount:  len(inv.Items),
			CreatedAt:  inv.CreatedAt,
		}
	}
	return resp, nil
}

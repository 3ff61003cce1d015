package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"invoice-service/internal/domain/invoice"
)

// InvoiceRepoPG implements the invoice.Repository interface using PostgreSQL and GORM.
type InvoiceRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewInvoiceRepoPG creates a new instance of InvoiceRepoPG.
func NewInvoiceRepoPG(db *gorm.DB, log *zap.Logger) *InvoiceRepoPG {
	return &InvoiceRepoPG{db: db, log: log}
}

// InvoiceSchema represents the database schema for the invoices table.
type InvoiceSchema struct {
	ID            int64               `gorm:"primaryKey;autoIncrement"`
	CustomerName  string              `gorm:"not null"`
	CustomerEmail string              `gorm:"not null;index"`
	TotalPrice    float64             `gorm:"not null"`
	CreatedAt     time.Time           `gorm:"autoCreateTime"`
	Items         []InvoiceItemSchema `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the InvoiceSchema model.
func (InvoiceSchema) TableName() string {
	return "invoices"
}

// InvoiceItemSchema represents the database schema for invoice line items.
// Row order preserves the order the items were submitted in.
type InvoiceItemSchema struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	InvoiceID int64   `gorm:"not null;index"`
	Name      string  `gorm:"not null"`
	Quantity  int64   `gorm:"not null"`
	UnitPrice float64 `gorm:"not null"`
}

// TableName specifies the table name for the InvoiceItemSchema model.
func (InvoiceItemSchema) TableName() string {
	return "invoice_items"
}

// Create inserts an invoice and its line items in a single association write.
func (r *InvoiceRepoPG) Create(ctx context.Context, inv *invoice.Invoice) (int64, error) {
	if inv == nil {
		return 0, errors.New("invoice cannot be nil")
	}

	model := InvoiceSchema{
		CustomerName:  inv.CustomerName,
		CustomerEmail: inv.CustomerEmail,
		TotalPrice:    inv.TotalPrice,
	}
	for _, item := range inv.Items {
		model.Items = append(model.Items, InvoiceItemSchema{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		r.log.Error("failed to create invoice in db", zap.Error(err), zap.String("customer_email", inv.CustomerEmail))
		return 0, fmt.Errorf("failed to create invoice: %w", err)
	}

	r.log.Info("invoice created in db", zap.Int64("id", model.ID), zap.Int("items", len(model.Items)))
	return model.ID, nil
}

// ListByCustomerEmail retrieves all invoices for a customer, newest first.
func (r *InvoiceRepoPG) ListByCustomerEmail(ctx context.Context, email string) ([]invoice.Invoice, error) {
	var models []InvoiceSchema
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("invoice_items.id ASC") }).
		Where("customer_email = ?", email).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		r.log.Error("failed to list invoices from db", zap.Error(err), zap.String("customer_email", email))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]invoice.Invoice, len(models))
	for i, model := range models {
		invoices[i] = toDomainInvoice(model)
	}
	return invoices, nil
}

func toDomainInvoice(model InvoiceSchema) invoice.Invoice {
	inv := invoice.Invoice{
		ID:            model.ID,
		CustomerName:  model.CustomerName,
		CustomerEmail: model.CustomerEmail,
		TotalPrice:    model.TotalPrice,
		CreatedAt:     model.CreatedAt,
	}
	for _, item := range model.Items {
		inv.Items = append(inv.Items, invoice.LineItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return inv
}

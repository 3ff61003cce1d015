package postgres

import "gorm.io/gorm"

// Migrate creates or updates the users and invoices tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserSchema{},
		&InvoiceSchema{},
		&InvoiceItemSchema{},
	)
}

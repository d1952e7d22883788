package migrations

import (
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/migration"
)

func init() {
	migration.Register("20260101000002_create_orders_table", &CreateOrdersTable{})
}

type CreateOrdersTable struct{}

// Up creates orders with its restrict key to users.
func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("orders")
}

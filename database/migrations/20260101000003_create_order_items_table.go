package migrations

import (
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/migration"
)

func init() {
	migration.Register("20260101000003_create_order_items_table", &CreateOrderItemsTable{})
}

type CreateOrderItemsTable struct{}

// Up creates order_items. The cascade key to orders is declared on the
// parent's Items association, so it is added separately. SQLite cannot
// ALTER TABLE ADD CONSTRAINT; there the services remove lines explicitly.
func (m *CreateOrderItemsTable) Up(db *gorm.DB) error {
	if err := db.Migrator().CreateTable(&models.OrderItem{}); err != nil {
		return err
	}
	if db.Dialector.Name() == "sqlite" {
		return nil
	}
	if db.Migrator().HasConstraint(&models.Order{}, "Items") {
		return nil
	}
	return db.Migrator().CreateConstraint(&models.Order{}, "Items")
}

func (m *CreateOrderItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items")
}

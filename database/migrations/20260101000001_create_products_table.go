package migrations

import (
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/migration"
)

func init() {
	migration.Register("20260101000001_create_products_table", &CreateProductsTable{})
}

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

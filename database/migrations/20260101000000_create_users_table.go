package migrations

import (
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
}

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.Migrator().CreateTable(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

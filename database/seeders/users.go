package seeders

import (
	"time"

	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/auth"
)

func init() {
	Register("users", SeedUsers)
}

// SeedUsers creates the demo administrator and client when the users table
// is empty.
func SeedUsers(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.User{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	adminHash, err := auth.HashPassword("Admin123!")
	if err != nil {
		return err
	}
	clientHash, err := auth.HashPassword("Client123!")
	if err != nil {
		return err
	}

	users := []models.User{
		{
			FirstName:    "Admin",
			LastName:     "System",
			Age:          30,
			DateOfBirth:  time.Date(1994, 1, 1, 0, 0, 0, 0, time.UTC),
			Country:      "Colombia",
			State:        "Antioquia",
			City:         "Medellín",
			Phone:        "3001234567",
			Address:      "Calle 123 #45-67",
			Username:     "admin",
			PasswordHash: adminHash,
			Role:         models.RoleAdministrator,
		},
		{
			FirstName:    "Cliente",
			LastName:     "Demo",
			Age:          25,
			DateOfBirth:  time.Date(1999, 5, 15, 0, 0, 0, 0, time.UTC),
			Country:      "Colombia",
			State:        "Antioquia",
			City:         "Medellín",
			Phone:        "3009876543",
			Address:      "Carrera 50 #20-30",
			Username:     "cliente",
			PasswordHash: clientHash,
			Role:         models.RoleClient,
		},
	}
	return db.Create(&users).Error
}

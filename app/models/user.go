package models

import (
	"strings"
	"time"
)

// User is a registered account.
type User struct {
	Base
	FirstName       string    `gorm:"size:100;not null"            json:"firstName"`
	LastName        string    `gorm:"size:100;not null"            json:"lastName"`
	Age             int       `gorm:"not null;default:0"           json:"age"`
	DateOfBirth     time.Time `json:"dateOfBirth"`
	Country         string    `gorm:"size:100"                     json:"country"`
	State           string    `gorm:"size:100"                     json:"state"`
	City            string    `gorm:"size:100"                     json:"city"`
	Phone           string    `gorm:"size:20"                      json:"phone"`
	Address         string    `gorm:"size:200"                     json:"address"`
	ProfileImageURL string    `gorm:"size:500"                     json:"profileImageUrl"`
	Username        string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	PasswordHash    string    `gorm:"size:255;not null"            json:"-"`
	Role            Role      `gorm:"not null;default:1;index"     json:"role"`
}

// FullName is "First Last", trimmed when either part is empty.
func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsAdmin reports whether the user holds the Administrator role.
func (u User) IsAdmin() bool { return u.Role == RoleAdministrator }

// Package events defines the domain events fired by the services.
package events

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kicksup/kicksup/app/models"
)

const (
	NameOrderPlaced        = "order.placed"
	NameOrderStatusChanged = "order.status_changed"
	NameUserRegistered     = "user.registered"
	NameLoginAttempted     = "auth.login_attempted"
	NameProductDeleted     = "product.deleted"
)

// OrderPlaced fires after the order transaction commits.
type OrderPlaced struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Total   decimal.Decimal
	Lines   int
}

func (OrderPlaced) EventName() string { return NameOrderPlaced }

type OrderStatusChanged struct {
	OrderID uuid.UUID
	From    models.OrderStatus
	To      models.OrderStatus
}

func (OrderStatusChanged) EventName() string { return NameOrderStatusChanged }

type UserRegistered struct {
	UserID   uuid.UUID
	Username string
	Role     models.Role
}

func (UserRegistered) EventName() string { return NameUserRegistered }

// LoginAttempted fires for every login, successful or not. UserID is
// uuid.Nil when the username is unknown.
type LoginAttempted struct {
	Username string
	UserID   uuid.UUID
	Success  bool
}

func (LoginAttempted) EventName() string { return NameLoginAttempted }

// ProductDeleted carries the image so listeners can clean up uploads.
type ProductDeleted struct {
	ProductID uuid.UUID
	Code      string
	ImageURL  string
}

func (ProductDeleted) EventName() string { return NameProductDeleted }

package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a placed purchase. TotalAmount is the sum of its item subtotals.
type Order struct {
	Base
	UserID          uuid.UUID       `gorm:"type:char(36);not null;index"     json:"userId"`
	User            *User           `gorm:"constraint:OnDelete:RESTRICT"     json:"user,omitempty"`
	Status          OrderStatus     `gorm:"not null;default:1;index"         json:"status"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null"      json:"totalAmount"`
	DeliveryAddress string          `gorm:"size:300;not null"                json:"deliveryAddress"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

// OrderItem is one line of an order. UnitPrice is the product price at the
// time the order was placed.
type OrderItem struct {
	Base
	OrderID   uuid.UUID       `gorm:"type:char(36);not null;index"  json:"orderId"`
	ProductID uuid.UUID       `gorm:"type:char(36);not null;index"  json:"productId"`
	Product   *Product        `gorm:"constraint:OnDelete:RESTRICT"  json:"product,omitempty"`
	Quantity  int             `gorm:"not null"                      json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"   json:"unitPrice"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(18,2);not null"   json:"subtotal"`
}

// Total sums the item subtotals.
func (o Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal)
	}
	return total
}

// LineSubtotal is price times quantity.
func LineSubtotal(price decimal.Decimal, qty int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(qty)))
}

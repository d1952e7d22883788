package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/kicksup/kicksup/app/models"
)

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token    string    `json:"token"`
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type ProductDTO struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	ImageURL     string          `json:"imageUrl"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Size         models.Size     `json:"size"`
	SizeDisplay  string          `json:"sizeDisplay"`
	Color        models.Color    `json:"color"`
	ColorDisplay string          `json:"colorDisplay"`
	Price        decimal.Decimal `json:"price"`
	Stock        int             `json:"stock"`
	IsAvailable  bool            `json:"isAvailable"`
}

func NewProductDTO(p models.Product) ProductDTO {
	return ProductDTO{
		ID:           p.ID,
		Code:         p.Code,
		ImageURL:     p.ImageURL,
		Name:         p.Name,
		Description:  p.Description,
		Size:         p.Size,
		SizeDisplay:  p.Size.String(),
		Color:        p.Color,
		ColorDisplay: p.Color.String(),
		Price:        p.Price,
		Stock:        p.Stock,
		IsAvailable:  p.IsAvailable(),
	}
}

type OrderItemDTO struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductCode     string          `json:"productCode"`
	ProductImageURL string          `json:"productImageUrl"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

type OrderDTO struct {
	ID              uuid.UUID          `json:"id"`
	UserID          uuid.UUID          `json:"userId"`
	UserName        string             `json:"userName"`
	Status          models.OrderStatus `json:"status"`
	StatusDisplay   string             `json:"statusDisplay"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	DeliveryAddress string             `json:"deliveryAddress"`
	CreatedAt       time.Time          `json:"createdAt"`
	Items           []OrderItemDTO     `json:"items"`
}

// NewOrderDTO projects an order loaded with its user, items and products.
func NewOrderDTO(o models.Order) OrderDTO {
	dto := OrderDTO{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status,
		StatusDisplay:   o.Status.Display(),
		TotalAmount:     o.TotalAmount,
		DeliveryAddress: o.DeliveryAddress,
		CreatedAt:       o.CreatedAt,
	}
	if o.User != nil {
		dto.UserName = o.User.FullName()
	}
	dto.Items = lo.Map(o.Items, func(it models.OrderItem, _ int) OrderItemDTO {
		item := OrderItemDTO{
			ID:        it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		}
		if it.Product != nil {
			item.ProductName = it.Product.Name
			item.ProductCode = it.Product.Code
			item.ProductImageURL = it.Product.ImageURL
		}
		return item
	})
	return dto
}

// UserProfileDTO is what a user sees about themselves.
type UserProfileDTO struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"fullName"`
	Username        string    `json:"username"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	ProfileImageURL string    `json:"profileImageUrl"`
}

func NewUserProfileDTO(u models.User) UserProfileDTO {
	return UserProfileDTO{
		ID:              u.ID,
		FullName:        u.FullName(),
		Username:        u.Username,
		Phone:           u.Phone,
		Address:         u.Address,
		ProfileImageURL: u.ProfileImageURL,
	}
}

// UserDTO is the administrator's view of an account. It never carries the
// password hash.
type UserDTO struct {
	ID              uuid.UUID   `json:"id"`
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	FullName        string      `json:"fullName"`
	Age             int         `json:"age"`
	DateOfBirth     time.Time   `json:"dateOfBirth"`
	Country         string      `json:"country"`
	State           string      `json:"state"`
	City            string      `json:"city"`
	Phone           string      `json:"phone"`
	Address         string      `json:"address"`
	ProfileImageURL string      `json:"profileImageUrl"`
	Username        string      `json:"username"`
	Role            models.Role `json:"role"`
	CreatedAt       time.Time   `json:"createdAt"`
}

func NewUserDTO(u models.User) UserDTO {
	return UserDTO{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		FullName:        u.FullName(),
		Age:             u.Age,
		DateOfBirth:     u.DateOfBirth,
		Country:         u.Country,
		State:           u.State,
		City:            u.City,
		Phone:           u.Phone,
		Address:         u.Address,
		ProfileImageURL: u.ProfileImageURL,
		Username:        u.Username,
		Role:            u.Role,
		CreatedAt:       u.CreatedAt,
	}
}

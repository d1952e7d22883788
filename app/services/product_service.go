package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/kicksup/kicksup/app/events"
	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/repositories"
	"github.com/kicksup/kicksup/pkg/event"
	"github.com/kicksup/kicksup/pkg/result"
)

// ProductRequest is the body of create and update.
type ProductRequest struct {
	Code        string          `json:"code"        validate:"required,max=50"`
	ImageURL    string          `json:"imageUrl"    validate:"max=500"`
	Name        string          `json:"name"        validate:"required,max=200"`
	Description string          `json:"description" validate:"max=1000"`
	Size        models.Size     `json:"size"        validate:"enum"`
	Color       models.Color    `json:"color"       validate:"enum"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"       validate:"gte=0"`
}

func (r ProductRequest) check() []string {
	var errs []string
	if r.Price.IsNegative() {
		errs = append(errs, "price must not be negative")
	}
	if r.Stock < 0 {
		errs = append(errs, "stock must not be negative")
	}
	if !r.Size.IsValid() {
		errs = append(errs, "size must be one of 7, 8, 9, 10")
	}
	if !r.Color.IsValid() {
		errs = append(errs, "color must be White, Black or Gray")
	}
	return errs
}

func (r ProductRequest) apply(p *models.Product) {
	p.Code = strings.TrimSpace(r.Code)
	p.ImageURL = r.ImageURL
	p.Name = strings.TrimSpace(r.Name)
	p.Description = r.Description
	p.Size = r.Size
	p.Color = r.Color
	p.Price = r.Price.Round(2)
	p.Stock = r.Stock
}

type ProductService struct {
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository
	events   event.Dispatcher
}

func NewProductService(products *repositories.ProductRepository, orders *repositories.OrderRepository, events event.Dispatcher) *ProductService {
	return &ProductService{products: products, orders: orders, events: events}
}

func (s *ProductService) List(ctx context.Context, f repositories.ProductFilter) (result.Result[[]ProductDTO], error) {
	products, err := s.products.Search(ctx, f)
	if err != nil {
		return result.Result[[]ProductDTO]{}, fmt.Errorf("search products: %w", err)
	}
	return result.Success(lo.Map(products, func(p models.Product, _ int) ProductDTO {
		return NewProductDTO(p)
	})), nil
}

func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (result.Result[ProductDTO], error) {
	found, err := s.products.FindByID(ctx, id)
	if err != nil {
		return result.Result[ProductDTO]{}, fmt.Errorf("find product: %w", err)
	}
	p, ok := found.Get()
	if !ok {
		return result.Failure[ProductDTO](result.NotFound, MsgProductNotFound), nil
	}
	return result.Success(NewProductDTO(p)), nil
}

func (s *ProductService) Create(ctx context.Context, req ProductRequest) (result.Result[ProductDTO], error) {
	if errs := req.check(); len(errs) > 0 {
		return result.Failures[ProductDTO](result.Validation, errs...), nil
	}

	taken, err := s.products.CodeTaken(ctx, strings.TrimSpace(req.Code), uuid.Nil)
	if err != nil {
		return result.Result[ProductDTO]{}, fmt.Errorf("check code: %w", err)
	}
	if taken {
		return result.Failure[ProductDTO](result.Validation, MsgCodeTaken), nil
	}

	var p models.Product
	req.apply(&p)
	if err := s.products.Create(ctx, &p); err != nil {
		return result.Result[ProductDTO]{}, fmt.Errorf("create product: %w", err)
	}
	return result.Success(NewProductDTO(p)), nil
}

// Update overwrites every mutable field.
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req ProductRequest) (result.Result[ProductDTO], error) {
	found, err := s.products.FindByID(ctx, id)
	if err != nil {
		return result.Result[ProductDTO]{}, fmt.Errorf("find product: %w", err)
	}
	p, ok := found.Get()
	if !ok {
		return result.Failure[ProductDTO](result.NotFound, MsgProductNotFound), nil
	}
	if errs := req.check(); len(errs) > 0 {
		return result.Failures[ProductDTO](result.Validation, errs...), nil
	}

	taken, err := s.products.CodeTaken(ctx, strings.TrimSpace(req.Code), id)
	if err != nil {
		return result.Result[ProductDTO]{}, fmt.Errorf("check code: %w", err)
	}
	if taken {
		return result.Failure[ProductDTO](result.Validation, MsgCodeTakenByOther), nil
	}

	req.apply(&p)
	if err := s.products.Update(ctx, &p); err != nil {
		return result.Result[ProductDTO]{}, fmt.Errorf("update product: %w", err)
	}
	return result.Success(NewProductDTO(p)), nil
}

// Delete removes a product no order line references.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (result.Result[bool], error) {
	found, err := s.products.FindByID(ctx, id)
	if err != nil {
		return result.Result[bool]{}, fmt.Errorf("find product: %w", err)
	}
	p, ok := found.Get()
	if !ok {
		return result.Failure[bool](result.NotFound, MsgProductNotFound), nil
	}

	used, err := s.orders.ExistsForProduct(ctx, id)
	if err != nil {
		return result.Result[bool]{}, fmt.Errorf("check order lines: %w", err)
	}
	if used {
		return result.Failure[bool](result.Conflict, MsgProductHasOrders), nil
	}

	if err := s.products.Delete(ctx, &p); err != nil {
		return result.Result[bool]{}, fmt.Errorf("delete product: %w", err)
	}
	fire(ctx, s.events, events.ProductDeleted{ProductID: p.ID, Code: p.Code, ImageURL: p.ImageURL})
	return result.Success(true), nil
}

package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/kicksup/kicksup/app/events"
	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/repositories"
	"github.com/kicksup/kicksup/pkg/event"
	"github.com/kicksup/kicksup/pkg/result"
)

type OrderLineRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// CreateOrderRequest is the client body. The owner comes from the token.
type CreateOrderRequest struct {
	DeliveryAddress string             `json:"deliveryAddress" validate:"required,max=300"`
	Items           []OrderLineRequest `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"enum"`
}

type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	users    *repositories.UserRepository
	events   event.Dispatcher
}

func NewOrderService(
	orders *repositories.OrderRepository,
	products *repositories.ProductRepository,
	users *repositories.UserRepository,
	events event.Dispatcher,
) *OrderService {
	return &OrderService{orders: orders, products: products, users: users, events: events}
}

func insufficientStock(p models.Product, available int) string {
	return fmt.Sprintf("Insufficient stock for product %s (available: %d)", p.Name, available)
}

// Create places an order for userID. Checks run in a fixed order so the
// same bad request always yields the same error: owner, empty list,
// quantities, unknown products, then stock line by line.
func (s *OrderService) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (result.Result[OrderDTO], error) {
	owner, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return result.Result[OrderDTO]{}, fmt.Errorf("find user: %w", err)
	}
	if owner.IsAbsent() {
		return result.Failure[OrderDTO](result.Validation, MsgUserNotFound), nil
	}

	if len(req.Items) == 0 {
		return result.Failure[OrderDTO](result.Validation, MsgEmptyOrder), nil
	}
	if lo.SomeBy(req.Items, func(l OrderLineRequest) bool { return l.Quantity <= 0 }) {
		return result.Failure[OrderDTO](result.Validation, MsgBadQuantity), nil
	}

	ids := lo.Uniq(lo.Map(req.Items, func(l OrderLineRequest, _ int) uuid.UUID { return l.ProductID }))
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return result.Result[OrderDTO]{}, fmt.Errorf("load products: %w", err)
	}
	if len(found) < len(ids) {
		return result.Failure[OrderDTO](result.Validation, MsgProductsNotFound), nil
	}
	byID := lo.KeyBy(found, func(p models.Product) uuid.UUID { return p.ID })

	// Stock is tracked per product so repeated lines draw from the same pool.
	remaining := lo.MapValues(byID, func(p models.Product, _ uuid.UUID) int { return p.Stock })
	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		p := byID[line.ProductID]
		if line.Quantity > remaining[p.ID] {
			return result.Failure[OrderDTO](result.Validation, insufficientStock(p, remaining[p.ID])), nil
		}
		sub := models.LineSubtotal(p.Price, line.Quantity)
		total = total.Add(sub)
		remaining[p.ID] -= line.Quantity
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Quantity:  line.Quantity,
			UnitPrice: p.Price,
			Subtotal:  sub,
		})
	}

	order := models.Order{
		UserID:          userID,
		Status:          models.StatusInProcess,
		TotalAmount:     total,
		DeliveryAddress: req.DeliveryAddress,
		Items:           items,
	}
	if err := s.orders.Place(ctx, &order); err != nil {
		// Another order took the stock between our read and the write.
		var stockErr *repositories.InsufficientStockError
		if errors.As(err, &stockErr) {
			return result.Failure[OrderDTO](result.Validation, insufficientStock(byID[stockErr.ProductID], 0)), nil
		}
		return result.Result[OrderDTO]{}, fmt.Errorf("place order: %w", err)
	}

	dto, err := s.load(ctx, order.ID)
	if err != nil {
		return result.Result[OrderDTO]{}, err
	}
	fire(ctx, s.events, events.OrderPlaced{OrderID: order.ID, UserID: userID, Total: total, Lines: len(items)})
	return result.Success(dto), nil
}

func (s *OrderService) load(ctx context.Context, id uuid.UUID) (OrderDTO, error) {
	found, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return OrderDTO{}, fmt.Errorf("reload order: %w", err)
	}
	o, ok := found.Get()
	if !ok {
		return OrderDTO{}, fmt.Errorf("reload order %s: not found", id)
	}
	return NewOrderDTO(o), nil
}

// GetAll lists orders newest first. The caller decides the user scope.
func (s *OrderService) GetAll(ctx context.Context, f repositories.OrderFilter) (result.Result[[]OrderDTO], error) {
	orders, err := s.orders.List(ctx, f)
	if err != nil {
		return result.Result[[]OrderDTO]{}, fmt.Errorf("list orders: %w", err)
	}
	return result.Success(lo.Map(orders, func(o models.Order, _ int) OrderDTO {
		return NewOrderDTO(o)
	})), nil
}

// GetByID returns any order. Ownership is checked by the caller.
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (result.Result[OrderDTO], error) {
	found, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return result.Result[OrderDTO]{}, fmt.Errorf("find order: %w", err)
	}
	o, ok := found.Get()
	if !ok {
		return result.Failure[OrderDTO](result.NotFound, MsgOrderNotFound), nil
	}
	return result.Success(NewOrderDTO(o)), nil
}

// UpdateStatus sets any status from any status.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (result.Result[OrderDTO], error) {
	if !status.IsValid() {
		return result.Failure[OrderDTO](result.Validation, fmt.Sprintf("invalid status %d", int(status))), nil
	}

	found, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return result.Result[OrderDTO]{}, fmt.Errorf("find order: %w", err)
	}
	o, ok := found.Get()
	if !ok {
		return result.Failure[OrderDTO](result.NotFound, MsgOrderNotFound), nil
	}

	if err := s.orders.SetStatus(ctx, id, status); err != nil {
		return result.Result[OrderDTO]{}, fmt.Errorf("set status: %w", err)
	}
	previous := o.Status
	o.Status = status

	fire(ctx, s.events, events.OrderStatusChanged{OrderID: id, From: previous, To: status})
	return result.Success(NewOrderDTO(o)), nil
}

// Delete removes the order and its lines without restocking.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) (result.Result[bool], error) {
	found, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return result.Result[bool]{}, fmt.Errorf("find order: %w", err)
	}
	if found.IsAbsent() {
		return result.Failure[bool](result.NotFound, MsgOrderNotFound), nil
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return result.Result[bool]{}, fmt.Errorf("delete order: %w", err)
	}
	return result.Success(true), nil
}

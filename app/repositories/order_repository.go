package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/mo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/database"
	"github.com/kicksup/kicksup/pkg/orm"
)

// orderPreloads is what an OrderDTO needs.
var orderPreloads = []string{"User", "Items", "Items.Product"}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	Status mo.Option[models.OrderStatus]
	UserID mo.Option[uuid.UUID]
}

// InsufficientStockError is returned by Place when a conditional stock
// decrement matched no row.
type InsufficientStockError struct {
	ProductID uuid.UUID
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}

// OrderRepository handles database operations for Order and OrderItem.
type OrderRepository struct {
	q  orm.Query[models.Order]
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	if db == nil {
		db = database.DB
	}
	return &OrderRepository{q: orm.For[models.Order](db), db: db}
}

// FindByID loads an order with its user, items and their products.
func (r *OrderRepository) FindByID(ctx context.Context, id uuid.UUID) (mo.Option[models.Order], error) {
	return r.q.Find(ctx, id, orderPreloads...)
}

// List returns matching orders, newest first.
func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	tx := r.q.DB(ctx)
	for _, p := range orderPreloads {
		tx = tx.Preload(p)
	}
	if status, ok := f.Status.Get(); ok {
		tx = tx.Where("status = ?", status)
	}
	if userID, ok := f.UserID.Get(); ok {
		tx = tx.Where("user_id = ?", userID)
	}

	var orders []models.Order
	err := tx.Order("created_at desc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	return r.q.Exists(ctx, "user_id = ?", userID)
}

// ExistsForProduct reports whether any order line references the product.
func (r *OrderRepository) ExistsForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	return orm.For[models.OrderItem](r.db).Exists(ctx, "product_id = ?", productID)
}

// Place decrements stock for every line and writes the order with its
// items in one transaction. Each decrement only applies while enough stock
// remains; otherwise everything rolls back with *InsufficientStockError.
func (r *OrderRepository) Place(ctx context.Context, order *models.Order) error {
	return orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		for _, it := range order.Items {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", it.ProductID, it.Quantity).
				Update("stock", gorm.Expr("stock - ?", it.Quantity))
			if res.Error != nil {
				return fmt.Errorf("decrement stock: %w", res.Error)
			}
			if res.RowsAffected == 0 {
				return &InsufficientStockError{ProductID: it.ProductID}
			}
		}

		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).Create(&order.Items).Error; err != nil {
			return fmt.Errorf("create order items: %w", err)
		}
		return nil
	})
}

// SetStatus changes only the status column.
func (r *OrderRepository) SetStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return r.q.DB(ctx).Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes the order and its lines. Stock is not restored.
func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return orm.Transaction(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Order{}).Error
	})
}

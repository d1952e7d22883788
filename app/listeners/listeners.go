// Package listeners reacts to domain events: metrics, audit logs and
// cleanup of uploaded images.
package listeners

import (
	"context"
	"strings"

	"github.com/kicksup/kicksup/app/events"
	"github.com/kicksup/kicksup/pkg/event"
	"github.com/kicksup/kicksup/pkg/logger"
	"github.com/kicksup/kicksup/pkg/metrics"
	"github.com/kicksup/kicksup/pkg/storage"
)

// ImageRefs reports whether anything still points at an image URL.
type ImageRefs interface {
	ImageInUse(ctx context.Context, url string) (bool, error)
}

// Register subscribes every listener on bus. disk may be nil, in which case
// product images are never cleaned up.
func Register(bus *event.Bus, disk storage.Disk, refs ImageRefs) {
	bus.Listen(events.NameOrderPlaced, OrderPlaced)
	bus.Listen(events.NameOrderStatusChanged, OrderStatusChanged)
	bus.Listen(events.NameUserRegistered, UserRegistered)
	bus.Listen(events.NameLoginAttempted, LoginAttempted)
	if disk != nil {
		bus.Listen(events.NameProductDeleted, DeleteProductImage(disk, refs))
	}
}

func OrderPlaced(ctx context.Context, e event.Event) {
	placed, ok := e.(events.OrderPlaced)
	if !ok {
		return
	}
	metrics.OrdersPlaced.Inc()
	metrics.OrderRevenue.Add(placed.Total.InexactFloat64())
	logger.WithCtx(ctx).Info("order placed",
		"order_id", placed.OrderID,
		"user_id", placed.UserID,
		"total", placed.Total.StringFixed(2),
		"lines", placed.Lines,
	)
}

func OrderStatusChanged(ctx context.Context, e event.Event) {
	changed, ok := e.(events.OrderStatusChanged)
	if !ok {
		return
	}
	metrics.OrderStatusChanges.WithLabelValues(changed.To.String()).Inc()
	logger.WithCtx(ctx).Info("order status changed",
		"order_id", changed.OrderID,
		"from", changed.From.String(),
		"to", changed.To.String(),
	)
}

func UserRegistered(ctx context.Context, e event.Event) {
	reg, ok := e.(events.UserRegistered)
	if !ok {
		return
	}
	metrics.UsersRegistered.Inc()
	logger.WithCtx(ctx).Info("user registered", "user_id", reg.UserID, "username", reg.Username, "role", reg.Role.String())
}

func LoginAttempted(ctx context.Context, e event.Event) {
	attempt, ok := e.(events.LoginAttempted)
	if !ok {
		return
	}
	if attempt.Success {
		metrics.Logins.WithLabelValues("success").Inc()
		return
	}
	metrics.Logins.WithLabelValues("failure").Inc()
	logger.WithCtx(ctx).Warn("login failed", "username", attempt.Username)
}

// DeleteProductImage removes a deleted product's image when it lives on
// disk and nothing else references it. Images hosted elsewhere are left
// alone.
func DeleteProductImage(disk storage.Disk, refs ImageRefs) event.Handler {
	prefix := disk.URL("")
	return func(ctx context.Context, e event.Event) {
		deleted, ok := e.(events.ProductDeleted)
		if !ok || deleted.ImageURL == "" || !strings.HasPrefix(deleted.ImageURL, prefix) {
			return
		}
		if refs != nil {
			used, err := refs.ImageInUse(ctx, deleted.ImageURL)
			if err != nil {
				logger.WithCtx(ctx).Warn("listeners: check image references", "url", deleted.ImageURL, "error", err)
				return
			}
			if used {
				return
			}
		}
		key := strings.TrimPrefix(deleted.ImageURL, prefix)
		if err := disk.Delete(ctx, key); err != nil {
			logger.WithCtx(ctx).Warn("listeners: delete product image", "key", key, "error", err)
			return
		}
		logger.WithCtx(ctx).Info("product image deleted", "product_id", deleted.ProductID, "key", key)
	}
}

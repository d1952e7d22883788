package listeners

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kicksup/kicksup/app/events"
	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/pkg/event"
	"github.com/kicksup/kicksup/pkg/metrics"
	"github.com/kicksup/kicksup/pkg/storage"
)

func TestMetricsListeners(t *testing.T) {
	bus := event.NewBus(nil)
	Register(bus, nil, nil)
	ctx := context.Background()

	placed := testutil.ToFloat64(metrics.OrdersPlaced)
	revenue := testutil.ToFloat64(metrics.OrderRevenue)
	shipped := testutil.ToFloat64(metrics.OrderStatusChanges.WithLabelValues("Shipped"))
	failures := testutil.ToFloat64(metrics.Logins.WithLabelValues("failure"))
	registered := testutil.ToFloat64(metrics.UsersRegistered)

	bus.Dispatch(ctx, events.OrderPlaced{OrderID: uuid.New(), Total: decimal.NewFromInt(1500), Lines: 2})
	bus.Dispatch(ctx, events.OrderStatusChanged{OrderID: uuid.New(), From: models.StatusPaid, To: models.StatusShipped})
	bus.Dispatch(ctx, events.LoginAttempted{Username: "ghost"})
	bus.Dispatch(ctx, events.UserRegistered{UserID: uuid.New(), Username: "x", Role: models.RoleClient})

	assert.Equal(t, placed+1, testutil.ToFloat64(metrics.OrdersPlaced))
	assert.Equal(t, revenue+1500, testutil.ToFloat64(metrics.OrderRevenue))
	assert.Equal(t, shipped+1, testutil.ToFloat64(metrics.OrderStatusChanges.WithLabelValues("Shipped")))
	assert.Equal(t, failures+1, testutil.ToFloat64(metrics.Logins.WithLabelValues("failure")))
	assert.Equal(t, registered+1, testutil.ToFloat64(metrics.UsersRegistered))
}

type imageRefs map[string]bool

func (r imageRefs) ImageInUse(_ context.Context, url string) (bool, error) {
	return r[url], nil
}

type brokenRefs struct{}

func (brokenRefs) ImageInUse(context.Context, string) (bool, error) {
	return false, errors.New("db down")
}

func TestDeleteProductImage(t *testing.T) {
	disk := storage.NewLocalDisk(t.TempDir(), "http://localhost:8080/storage")
	ctx := context.Background()
	require.NoError(t, disk.Put(ctx, "images/shoe.png", strings.NewReader("png"), "image/png"))

	handler := DeleteProductImage(disk, imageRefs{})

	// Foreign URLs are ignored.
	handler(ctx, events.ProductDeleted{ImageURL: "https://images.unsplash.com/photo-1?w=500"})
	ok, err := disk.Exists(ctx, "images/shoe.png")
	require.NoError(t, err)
	assert.True(t, ok)

	handler(ctx, events.ProductDeleted{ProductID: uuid.New(), ImageURL: disk.URL("images/shoe.png")})
	ok, err = disk.Exists(ctx, "images/shoe.png")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteProductImageKeepsSharedImage(t *testing.T) {
	disk := storage.NewLocalDisk(t.TempDir(), "http://localhost:8080/storage")
	ctx := context.Background()
	require.NoError(t, disk.Put(ctx, "images/shared.png", strings.NewReader("png"), "image/png"))
	url := disk.URL("images/shared.png")

	DeleteProductImage(disk, imageRefs{url: true})(ctx, events.ProductDeleted{ProductID: uuid.New(), ImageURL: url})
	ok, err := disk.Exists(ctx, "images/shared.png")
	require.NoError(t, err)
	assert.True(t, ok, "image still referenced elsewhere")

	// An unanswerable reference check keeps the file too.
	DeleteProductImage(disk, brokenRefs{})(ctx, events.ProductDeleted{ProductID: uuid.New(), ImageURL: url})
	ok, err = disk.Exists(ctx, "images/shared.png")
	require.NoError(t, err)
	assert.True(t, ok)
}

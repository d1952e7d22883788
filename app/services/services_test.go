package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/repositories"
	"github.com/kicksup/kicksup/app/services"
	"github.com/kicksup/kicksup/pkg/event"
	"github.com/kicksup/kicksup/pkg/testkit"
)

// recorder captures dispatched events synchronously.
type recorder struct {
	mu     sync.Mutex
	events []event.Event
}

func (r *recorder) Dispatch(_ context.Context, e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.EventName())
	}
	return out
}

type fixture struct {
	db       *gorm.DB
	rec      *recorder
	users    *repositories.UserRepository
	products *repositories.ProductRepository
	orders   *repositories.OrderRepository

	auth     *services.AuthService
	catalog  *services.ProductService
	ordering *services.OrderService
	accounts *services.UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testkit.NewSeededDB(t)
	f := &fixture{
		db:       db,
		rec:      &recorder{},
		users:    repositories.NewUserRepository(db),
		products: repositories.NewProductRepository(db),
		orders:   repositories.NewOrderRepository(db),
	}
	f.auth = services.NewAuthService(f.users, f.rec)
	f.catalog = services.NewProductService(f.products, f.orders, f.rec)
	f.ordering = services.NewOrderService(f.orders, f.products, f.users, f.rec)
	f.accounts = services.NewUserService(f.users, f.orders)
	return f
}

func (f *fixture) user(t *testing.T, username string) models.User {
	t.Helper()
	found, err := f.users.FindByUsername(context.Background(), username)
	require.NoError(t, err)
	return found.MustGet()
}

func (f *fixture) product(t *testing.T, code string) models.Product {
	t.Helper()
	found, err := f.products.Search(context.Background(), repositories.ProductFilter{SearchTerm: code})
	require.NoError(t, err)
	require.Len(t, found, 1)
	return found[0]
}

// Package routes wires controllers onto the router.
package routes

import (
	"gorm.io/gorm"

	"github.com/kicksup/kicksup/app/controllers"
	"github.com/kicksup/kicksup/app/models"
	"github.com/kicksup/kicksup/app/services"
	"github.com/kicksup/kicksup/pkg/ctx"
	"github.com/kicksup/kicksup/pkg/middleware"
	"github.com/kicksup/kicksup/pkg/rbac"
	"github.com/kicksup/kicksup/pkg/router"
	"github.com/kicksup/kicksup/pkg/storage"
)

// Deps is everything the route table needs. Services may be built over a
// nil database for route:list, since nothing is called until a request
// arrives.
type Deps struct {
	Auth     *services.AuthService
	Products *services.ProductService
	Orders   *services.OrderService
	Users    *services.UserService

	DB   func() *gorm.DB
	Disk func() storage.Disk

	UploadMaxBytes int64

	// AuthLimit throttles /api/auth. Nil disables it.
	AuthLimit router.Middleware
}

func RegisterAPI(r *router.Router, d Deps) {
	health := controllers.NewHealthController(d.DB)
	r.Get("/health", "health", ctx.Wrap(health.Check))

	authController := controllers.NewAuthController(d.Auth)
	productController := controllers.NewProductController(d.Products, r)
	orderController := controllers.NewOrderController(d.Orders, r)
	userController := controllers.NewUserController(d.Users)
	uploadController := controllers.NewUploadController(d.Disk, d.UploadMaxBytes)

	api := r.Group("/api")
	admin := rbac.HasRole(models.RoleAdministrator.String())

	var authMW []router.Middleware
	if d.AuthLimit != nil {
		authMW = append(authMW, d.AuthLimit)
	}
	authGroup := api.Group("/auth", authMW...)
	authGroup.Post("/login", "auth.login", ctx.Wrap(authController.Login))
	authGroup.Post("/register", "auth.register", ctx.Wrap(authController.Register))

	products := api.Group("/products")
	products.Get("/", "products.index", ctx.Wrap(productController.Index))
	products.Get("/{id}", "products.show", ctx.Wrap(productController.Show))

	adminProducts := products.Group("", middleware.AuthMiddleware, admin)
	adminProducts.Post("/", "products.store", ctx.Wrap(productController.Store))
	adminProducts.Put("/{id}", "products.update", ctx.Wrap(productController.Update))
	adminProducts.Delete("/{id}", "products.destroy", ctx.Wrap(productController.Destroy))

	protected := api.Group("", middleware.AuthMiddleware)

	orders := protected.Group("/orders")
	orders.Get("/", "orders.index", ctx.Wrap(orderController.Index))
	orders.Get("/{id}", "orders.show", ctx.Wrap(orderController.Show))
	orders.Post("/", "orders.store", ctx.Wrap(orderController.Store))
	orders.Patch("/{id}/status", "orders.status", ctx.Wrap(orderController.UpdateStatus), admin)
	orders.Delete("/{id}", "orders.destroy", ctx.Wrap(orderController.Destroy), admin)

	users := protected.Group("/users")
	users.Get("/profile", "users.profile", ctx.Wrap(userController.Profile))
	users.Put("/profile", "users.profile.update", ctx.Wrap(userController.UpdateProfile))
	users.Get("/", "users.index", ctx.Wrap(userController.Index), admin)
	users.Delete("/{id}", "users.destroy", ctx.Wrap(userController.Destroy), admin)
	users.Put("/{id}/role", "users.role", ctx.Wrap(userController.UpdateRole), admin)

	protected.Post("/uploads/images", "uploads.images", ctx.Wrap(uploadController.Image))
}

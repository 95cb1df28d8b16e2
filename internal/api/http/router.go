package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/BadhanCB/outfitex-backend/internal/api/http/handlers"
	"github.com/BadhanCB/outfitex-backend/internal/domain"
)

// Guard builds role-checking middleware. With no roles any verified
// principal passes.
type Guard interface {
	Require(roles ...domain.Role) fiber.Handler
}

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health   *handlers.HealthHandler
	Catalog  *handlers.CatalogHandler
	Products *handlers.ProductHandler
	Auth     *handlers.AuthHandler
	Orders   *handlers.OrderHandler
	Guard    Guard
	Metrics  http.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Health.Root)
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	app.Get("/products", cfg.Catalog.All)
	app.Post("/products", cfg.Catalog.Filter)
	app.Get("/products/featured", cfg.Catalog.Featured)
	app.Get("/products/top-selling", cfg.Catalog.TopSelling)
	app.Get("/products/latest", cfg.Catalog.Latest)
	app.Get("/products/collection/:name", cfg.Catalog.ByCollection)
	app.Get("/products/category/:name", cfg.Catalog.ByCategory)
	app.Get("/product/:slug", cfg.Catalog.GetBySlug)

	app.Post("/products/new", cfg.Guard.Require(domain.RoleSeller), cfg.Products.Create)
	app.Patch("/products/:slug/featured", cfg.Guard.Require(domain.RoleAdmin), cfg.Products.SetFeatured)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/user", cfg.Auth.RegisterBuyer)
	app.Post("/seller", cfg.Auth.RegisterSeller)
	app.Get("/authenticate-with-jwt", cfg.Guard.Require(), cfg.Auth.Me)
	app.Post("/change-photo", cfg.Guard.Require(), cfg.Auth.ChangePhoto)

	app.Post("/order", cfg.Guard.Require(domain.RoleBuyer), cfg.Orders.Place)
}

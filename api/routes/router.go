package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/wms-backend/api/controllers"
	"github.com/angelmondragon/wms-backend/api/middleware"
	"github.com/angelmondragon/wms-backend/internal/auth"
	"github.com/angelmondragon/wms-backend/internal/inventory"
	"github.com/angelmondragon/wms-backend/internal/orders"
	"github.com/angelmondragon/wms-backend/internal/reports"
	"github.com/angelmondragon/wms-backend/internal/users"
	"github.com/angelmondragon/wms-backend/internal/warehouses"
	pkgAuth "github.com/angelmondragon/wms-backend/pkg/auth"
	"github.com/angelmondragon/wms-backend/pkg/auth/session"
	"github.com/angelmondragon/wms-backend/pkg/config"
	"github.com/angelmondragon/wms-backend/pkg/logger"
	"github.com/angelmondragon/wms-backend/pkg/metrics"
)

// Deps carries everything the router mounts. Redis-backed members (Redis,
// RateLimiter, Revocations) stay nil when Redis is not configured.
type Deps struct {
	DB          controllers.Pinger
	Redis       controllers.Pinger
	RateLimiter middleware.RateLimiterStore
	Revocations session.RevocationChecker
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTPMetrics

	Auth       auth.Service
	Users      users.Service
	Inventory  inventory.Service
	Orders     orders.Service
	Warehouses warehouses.Service
	Reports    reports.Service
	Seeder     controllers.Seeder
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.ErrorDebug(!cfg.App.IsProd()),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", controllers.Health(cfg))

		if !cfg.App.IsProd() {
			r.Post("/seed", controllers.SeedDatabase(deps.Seeder, logg))
			r.Post("/force-seed", controllers.ForceSeed(deps.Seeder, logg))
			r.Post("/seed-more", controllers.SeedMore(deps.Seeder, logg))
		}

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimiter, logg)).Post("/register", controllers.AuthRegister(deps.Auth, logg))
			r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimiter, logg)).Post("/login", controllers.AuthLogin(deps.Auth, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.Revocations, logg))
				r.Get("/me", controllers.AuthMe(deps.Auth, logg))
				r.Post("/logout", controllers.AuthLogout(deps.Auth, logg))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.Revocations, logg))

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission(pkgAuth.PermUsersRead, logg)).Get("/", controllers.UsersList(deps.Users, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermUsersRead, logg)).Get("/{id}", controllers.UserDetail(deps.Users, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermUsersWrite, logg)).Put("/{id}", controllers.UserUpdate(deps.Users, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermUsersWrite, logg)).Delete("/{id}", controllers.UserDelete(deps.Users, logg))
			})

			r.Route("/inventory", func(r chi.Router) {
				r.With(middleware.RequirePermission(pkgAuth.PermInventoryRead, logg)).Get("/", controllers.InventoryList(deps.Inventory, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermInventoryRead, logg)).Get("/{id}", controllers.InventoryDetail(deps.Inventory, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermInventoryWrite, logg)).Put("/{id}", controllers.InventoryUpdate(deps.Inventory, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermInventoryWrite, logg)).Delete("/{id}", controllers.InventoryDelete(deps.Inventory, logg))
			})

			r.Route("/orders", func(r chi.Router) {
				r.With(middleware.RequirePermission(pkgAuth.PermOrdersRead, logg)).Get("/", controllers.OrdersList(deps.Orders, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermOrdersWrite, logg)).Post("/", controllers.OrderCreate(deps.Orders, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermOrdersRead, logg)).Get("/{id}", controllers.OrderDetail(deps.Orders, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermOrdersWrite, logg)).Put("/{id}", controllers.OrderUpdate(deps.Orders, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermOrdersWrite, logg)).Delete("/{id}", controllers.OrderDelete(deps.Orders, logg))
			})

			warehouseRoutes := func(r chi.Router) {
				r.With(middleware.RequirePermission(pkgAuth.PermWarehousesRead, logg)).Get("/", controllers.WarehousesList(deps.Warehouses, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermWarehousesRead, logg)).Get("/{id}", controllers.WarehouseDetail(deps.Warehouses, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermWarehousesWrite, logg)).Post("/", controllers.WarehouseCreate(deps.Warehouses, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermWarehousesWrite, logg)).Put("/{id}", controllers.WarehouseUpdate(deps.Warehouses, logg))
				r.With(middleware.RequirePermission(pkgAuth.PermWarehousesWrite, logg)).Delete("/{id}", controllers.WarehouseDelete(deps.Warehouses, logg))
			}
			// the dashboard calls the singular path; the plural is the REST name
			r.Route("/warehouse", warehouseRoutes)
			r.Route("/warehouses", warehouseRoutes)

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(pkgAuth.PermReportsRead, logg))
				r.Get("/metrics", controllers.ReportMetrics(deps.Reports, logg))
				r.Get("/top-products", controllers.ReportTopProducts(deps.Reports, logg))
				r.Get("/warehouse-performance", controllers.ReportWarehousePerformance(deps.Reports, logg))
				r.Get("/order-status", controllers.ReportOrderStatus(deps.Reports, logg))
				r.Get("/inventory-levels", controllers.ReportInventoryLevels(deps.Reports, logg))
				r.Get("/activity-summary", controllers.ReportActivitySummary(deps.Reports, logg))
			})
		})
	})

	return r
}

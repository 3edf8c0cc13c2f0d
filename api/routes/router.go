package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/arbrands/storefront-backend/api/controllers"
	"github.com/arbrands/storefront-backend/api/middleware"
	"github.com/arbrands/storefront-backend/internal/accounts"
	"github.com/arbrands/storefront-backend/internal/auth"
	"github.com/arbrands/storefront-backend/internal/categories"
	"github.com/arbrands/storefront-backend/internal/products"
	"github.com/arbrands/storefront-backend/pkg/config"
	"github.com/arbrands/storefront-backend/pkg/db"
	"github.com/arbrands/storefront-backend/pkg/logger"
	"github.com/arbrands/storefront-backend/pkg/redis"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *db.Client
	Redis       *redis.Client
	AccountRepo *accounts.Repository
	AuthSvc     auth.Service
	CategorySvc categories.Service
	ProductSvc  products.Service
}

// NewRouter assembles the public surface: open auth and catalog reads, with
// catalog mutations stacked behind the token guard and the admin gate.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
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

	authGuard := middleware.Auth(cfg.JWT, deps.AccountRepo, logg)
	adminGate := middleware.RequireAdmin(logg)

	// Throttling needs Redis; without it the auth endpoints run unthrottled.
	rateLimit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if deps.Redis == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, deps.Redis, logg)
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(rateLimit(registerPolicy)).Post("/register", controllers.AuthRegister(deps.AuthSvc, logg))
		r.With(rateLimit(loginPolicy)).Post("/login", controllers.AuthLogin(deps.AuthSvc, logg))
		if !cfg.App.IsProd() {
			r.With(rateLimit(registerPolicy)).Post("/register-admin", controllers.AuthRegisterAdmin(deps.AuthSvc, logg))
		}
		r.With(authGuard).Get("/profile", controllers.AuthProfile(logg))
	})

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Get("/", controllers.CategoryList(deps.CategorySvc, logg))
		r.Get("/{categoryId}", controllers.CategoryGet(deps.CategorySvc, logg))

		r.Group(func(r chi.Router) {
			r.Use(authGuard, adminGate)
			r.Post("/", controllers.CategoryCreate(deps.CategorySvc, logg))
			r.Put("/{categoryId}", controllers.CategoryUpdate(deps.CategorySvc, logg))
			r.Delete("/{categoryId}", controllers.CategoryDelete(deps.CategorySvc, logg))
		})
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.ProductSvc, logg))
		r.Get("/{productId}", controllers.ProductGet(deps.ProductSvc, logg))

		r.Group(func(r chi.Router) {
			r.Use(authGuard, adminGate)
			r.Post("/", controllers.ProductCreate(deps.ProductSvc, logg))
			// Updates are partial regardless of verb; PUT mirrors the old API.
			r.Put("/{productId}", controllers.ProductUpdate(deps.ProductSvc, logg))
			r.Patch("/{productId}", controllers.ProductUpdate(deps.ProductSvc, logg))
			r.Delete("/{productId}", controllers.ProductDelete(deps.ProductSvc, logg))
		})
	})

	return r
}

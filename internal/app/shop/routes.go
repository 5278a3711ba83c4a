package shop

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/auth/signup"
	categoryadd "github.com/magabrotheeeer/shop-backend/internal/http/handlers/category/add"
	categorylist "github.com/magabrotheeeer/shop-backend/internal/http/handlers/category/list"
	categoryremove "github.com/magabrotheeeer/shop-backend/internal/http/handlers/category/remove"
	categoryupdate "github.com/magabrotheeeer/shop-backend/internal/http/handlers/category/update"
	"github.com/magabrotheeeer/shop-backend/internal/http/handlers/health"
	orderaccept "github.com/magabrotheeeer/shop-backend/internal/http/handlers/order/accept"
	orderlist "github.com/magabrotheeeer/shop-backend/internal/http/handlers/order/list"
	orderplace "github.com/magabrotheeeer/shop-backend/internal/http/handlers/order/place"
	productadd "github.com/magabrotheeeer/shop-backend/internal/http/handlers/product/add"
	productlist "github.com/magabrotheeeer/shop-backend/internal/http/handlers/product/list"
	productremove "github.com/magabrotheeeer/shop-backend/internal/http/handlers/product/remove"
	productupdate "github.com/magabrotheeeer/shop-backend/internal/http/handlers/product/update"
	"github.com/magabrotheeeer/shop-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/shop-backend/internal/metrics"
	authservice "github.com/magabrotheeeer/shop-backend/internal/services/auth"
	catalogservice "github.com/magabrotheeeer/shop-backend/internal/services/catalog"
	orderservice "github.com/magabrotheeeer/shop-backend/internal/services/order"

	_ "github.com/magabrotheeeer/shop-backend/docs"
)

// Deps содержит зависимости для регистрации маршрутов.
type Deps struct {
	Logger      *slog.Logger
	Auth        *authservice.AuthService
	Catalog     *catalogservice.Service
	Orders      *orderservice.Service
	DB          health.Pinger
	Metrics     *metrics.Metrics
	Limiter     *middlewarectx.RateLimiter
	CORSOrigins []string
	StaticDir   string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, d Deps) {
	logger := d.Logger

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.CORS(d.CORSOrigins),
		middlewarectx.Metrics(d.Metrics.HTTPDuration),
		middlewarectx.BearerToken,
	)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", health.New(logger, d.DB).ServeHTTP)

		// Публичные операции записи ограничены по частоте
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, d.Limiter))
			r.Post("/signup", signup.New(logger, d.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, d.Auth).ServeHTTP)
			r.Post("/order/place", orderplace.New(logger, d.Orders).ServeHTTP)
		})

		r.Get("/categories", categorylist.New(logger, d.Catalog).ServeHTTP)
		r.Post("/category/add", categoryadd.New(logger, d.Catalog).ServeHTTP)
		r.Put("/category/update", categoryupdate.New(logger, d.Catalog).ServeHTTP)
		r.Delete("/category/delete", categoryremove.New(logger, d.Catalog).ServeHTTP)

		r.Get("/products", productlist.New(logger, d.Catalog).ServeHTTP)
		r.Post("/product/add", productadd.New(logger, d.Catalog).ServeHTTP)
		r.Put("/product/update", productupdate.New(logger, d.Catalog).ServeHTTP)
		r.Delete("/product/delete", productremove.New(logger, d.Catalog).ServeHTTP)

		r.Get("/orders", orderlist.New(logger, d.Orders).ServeHTTP)
		r.Put("/order/accept", orderaccept.New(logger, d.Orders).ServeHTTP)
	})

	r.Handle("/metrics", d.Metrics.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)

	if info, err := os.Stat(d.StaticDir); err == nil && info.IsDir() {
		r.Handle("/*", http.FileServer(http.Dir(d.StaticDir)))
	} else if d.StaticDir != "" {
		logger.Info("static directory not found, frontend is not served", slog.String("dir", d.StaticDir))
	}
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/architdhariwal/sms-backend/internal/api/http/handlers"
	"github.com/architdhariwal/sms-backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Students       *handlers.StudentsHandler
	Books          *handlers.BooksHandler
	AuthMiddleware *auth.AuthMiddleware
	LoginLimiter   *LoginLimiter
	// Metrics is served on /metrics when set.
	Metrics prometheus.Gatherer
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Metrics, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")

	login := []fiber.Handler{cfg.Auth.Login}
	if cfg.LoginLimiter != nil {
		login = append([]fiber.Handler{cfg.LoginLimiter.Handle}, login...)
	}
	api.Post("/auth/login", login...)
	api.Post("/students/register", cfg.Students.Register)

	students := api.Group("/students", cfg.AuthMiddleware.Handle)
	students.Get("/", cfg.Students.List)
	students.Get("/:admissionNumber", cfg.Students.Get)
	students.Put("/:admissionNumber", cfg.Students.Update)
	students.Delete("/:admissionNumber", cfg.Students.Delete)

	books := api.Group("/books", cfg.AuthMiddleware.Handle)
	books.Post("/add", cfg.Books.Add)
	books.Get("/", cfg.Books.List)
	books.Get("/:isbn", cfg.Books.Get)
	books.Put("/:isbn", cfg.Books.Update)
	books.Delete("/:isbn", cfg.Books.Delete)
}

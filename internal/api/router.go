package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/99minutos/products-api/docs"
	"github.com/99minutos/products-api/internal/api/handler"
	"github.com/99minutos/products-api/internal/api/middleware"
	"github.com/99minutos/products-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	AuthService    ports.AuthService
	ProductService ports.ProductService
	Tokens         middleware.TokenVerifier
	// Checks are run by the readiness probe, keyed by dependency name.
	Checks map[string]handler.DependencyCheck
	// Registry receives the HTTP metrics. Nil means the prometheus default.
	Registry *prometheus.Registry
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))

	metricsMW := echoprometheus.MiddlewareConfig{Subsystem: "products_api"}
	metricsHandler := echoprometheus.NewHandler()
	if d.Registry != nil {
		metricsMW.Registerer = d.Registry
		metricsHandler = echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Registry})
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(metricsMW))

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.AuthService)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Product routes (bearer token required) ---
	productHandler := handler.NewProductHandler(d.ProductService)
	products := e.Group("/products", middleware.Auth(d.Tokens))
	products.GET("", productHandler.List)
	products.POST("", productHandler.Create)
	products.PATCH("/:id", productHandler.Update)
	products.DELETE("/:id", productHandler.Inactivate)

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.Liveness)
	e.GET("/health/ready", handler.NewReadinessHandler(d.Checks).Readiness)

	e.GET("/metrics", metricsHandler)
	e.GET("/api/*", echoSwagger.WrapHandler)

	return e
}

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/backoffice/catalog-api/docs"
	"github.com/backoffice/catalog-api/internal/api/handler"
	"github.com/backoffice/catalog-api/internal/api/middleware"
	"github.com/backoffice/catalog-api/internal/core/domain"
	"github.com/backoffice/catalog-api/internal/core/service"
	"github.com/backoffice/catalog-api/internal/infrastructure/config"
	mongodb "github.com/backoffice/catalog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/backoffice/catalog-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	authRepo := mongodb.NewAuthRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	productCache := redisdb.NewProductCache(rdb, cfg.Cache.TTL)

	authService := service.NewAuthService(authRepo, service.TokenConfig{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
		TTL:      cfg.JWT.TTL(),
	}, log)
	productService := service.NewProductService(productRepo, productCache, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)

	authMiddleware := middleware.Auth(middleware.TokenVerifier{
		Secret:   cfg.JWT.Secret,
		Issuer:   cfg.JWT.Issuer,
		Audience: cfg.JWT.Audience,
	})

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/register", authHandler.Register)

	// --- Product routes (Admin only) ---
	product := e.Group("/api/product", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	product.GET("", productHandler.GetAll)
	product.POST("", productHandler.Create)
	product.GET("/active", productHandler.GetActive)
	product.GET("/categories", productHandler.Categories)
	product.GET("/category/:category", productHandler.GetByCategory)
	product.GET("/search", productHandler.Search)
	product.GET("/price-range", productHandler.GetByPriceRange)
	product.GET("/:id", productHandler.Get)
	product.PUT("/:id", productHandler.Update)
	product.PATCH("/:id", productHandler.Patch)
	product.DELETE("/:id", productHandler.Delete)
	product.PUT("/:id/stock", productHandler.SetStock)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler(db, rdb)
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

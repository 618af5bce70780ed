package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/vouchervault/voucher-vault/docs"
	"github.com/vouchervault/voucher-vault/internal/api/handler"
	"github.com/vouchervault/voucher-vault/internal/api/middleware"
	"github.com/vouchervault/voucher-vault/internal/core/domain"
	"github.com/vouchervault/voucher-vault/internal/core/service"
	"github.com/vouchervault/voucher-vault/internal/core/state"
	"github.com/vouchervault/voucher-vault/internal/infrastructure/ledger"
)

// Dependencies are the wired services and optional stores the router serves.
type Dependencies struct {
	Store         *state.Store
	Sessions      *service.SessionService
	Profiles      *service.ProfileService
	Brands        *service.BrandService
	Browse        *service.BrowseService
	Mint          *service.MintService
	Notifications handler.NotificationDrainer
	Ledger        *ledger.Provider
	// Mongo and Redis are nil when the deployment runs without them.
	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// --- Handlers ---
	sessionHandler := handler.NewSessionHandler(deps.Sessions, deps.Store, deps.JWTSecret)
	profileHandler := handler.NewProfileHandler(deps.Profiles, deps.Store)
	brandHandler := handler.NewBrandHandler(deps.Brands)
	consumerHandler := handler.NewConsumerHandler(deps.Browse, deps.Mint)
	notificationHandler := handler.NewNotificationHandler(deps.Notifications)

	authMiddleware := middleware.Auth(deps.JWTSecret)
	currentSession := middleware.CurrentSession(deps.Store)

	// --- Auth routes ---
	e.POST("/auth/brand", sessionHandler.Brand)
	e.POST("/auth/user", sessionHandler.User)
	e.POST("/auth/logout", sessionHandler.Logout, authMiddleware, currentSession)
	e.GET("/auth/session", sessionHandler.Current, authMiddleware, currentSession)

	// Notifications carry failures of requests that never got a token.
	e.GET("/v1/notifications", notificationHandler.List)

	// --- Authenticated API ---
	v1 := e.Group("/v1", authMiddleware, currentSession)
	v1.GET("/me", profileHandler.Me)
	v1.POST("/me/refetch", profileHandler.Refetch)

	brand := v1.Group("/brand", middleware.RBAC(domain.RoleBrand))
	brand.GET("/collections", brandHandler.List)
	brand.POST("/collections", brandHandler.Create)

	consumer := v1.Group("", middleware.RBAC(domain.RoleUser))
	consumer.GET("/brands", consumerHandler.Brands)
	consumer.GET("/brands/:name/collections", consumerHandler.Collections)
	consumer.POST("/brands/:name/collections/:collection/mint", consumerHandler.Mint)
	consumer.GET("/vouchers", consumerHandler.Vouchers)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis, deps.Ledger)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Ops ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

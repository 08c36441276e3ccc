package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/authcore/auth-service/internal/api/handler"
	"github.com/authcore/auth-service/internal/api/middleware"
	"github.com/authcore/auth-service/internal/core/domain"
	"github.com/authcore/auth-service/internal/core/password"
	"github.com/authcore/auth-service/internal/core/ports"
	"github.com/authcore/auth-service/internal/core/service"
	"github.com/authcore/auth-service/internal/core/token"
	mongostore "github.com/authcore/auth-service/internal/infrastructure/db/mongo"
	redisstore "github.com/authcore/auth-service/internal/infrastructure/db/redis"
	"github.com/authcore/auth-service/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is constructed and started by the caller so its worker
// lifecycle is owned by main.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	userRepo := mongostore.NewUserRepository(db)
	hasher := password.NewHasher(cfg.BcryptCost)
	tokens := token.NewService(cfg.JWTSecret, cfg.TokenTTL)
	attempts := redisstore.NewAttemptTracker(rdb)
	authService := service.NewAuthService(userRepo, hasher, tokens, attempts, audit, log)
	authHandler := handler.NewAuthHandler(authService)
	authenticated := middleware.Authenticate(tokens, log)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/me", authHandler.Me, authenticated)
	e.GET("/auth/admin", authHandler.Admin, authenticated, middleware.RequireRole(domain.RoleAdmin))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

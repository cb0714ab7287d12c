package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/groupchat/messaging-api/internal/api/handler"
	"github.com/groupchat/messaging-api/internal/api/middleware"
	"github.com/groupchat/messaging-api/internal/core/service"
	"github.com/groupchat/messaging-api/internal/infrastructure/config"
	mongodb "github.com/groupchat/messaging-api/internal/infrastructure/db/mongo"
	redisdb "github.com/groupchat/messaging-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("messaging_api"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	groupRepo := mongodb.NewGroupRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	userService := service.NewUserService(userRepo, tokenService, log)
	groupService := service.NewGroupService(groupRepo, userRepo, log)
	messageService := service.NewMessageService(messageRepo, groupRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(userService)
	groupHandler := handler.NewGroupHandler(groupService)
	messageHandler := handler.NewMessageHandler(messageService)

	authRequired := middleware.Auth(tokenService, userRepo)
	adminOnly := middleware.RequireAdmin()

	loginLimiter := redisdb.NewLoginLimiter(rdb, cfg.LoginRateMax, cfg.LoginRateWindow)
	loginThrottle := middleware.LoginRateLimit(loginLimiter, log)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login, loginThrottle)
	auth.POST("/user", authHandler.AddUser, authRequired, adminOnly)
	auth.GET("/user", authHandler.ListUsers, authRequired)
	auth.PUT("/user/:id", authHandler.UpdateUser, authRequired, adminOnly)
	auth.GET("/profile", authHandler.Profile, authRequired)

	// --- Group routes ---
	group := e.Group("/group", authRequired)
	group.POST("", groupHandler.Create)
	group.GET("", groupHandler.List)
	group.GET("/me", groupHandler.ListMine)
	group.GET("/:id", groupHandler.Get)
	group.DELETE("/:id", groupHandler.Delete)
	group.POST("/:id/add-user", groupHandler.AddUser)
	group.POST("/:id/remove-user", groupHandler.RemoveUser)

	// --- Message routes ---
	message := e.Group("/message", authRequired)
	message.POST("", messageHandler.Send)
	message.GET("/:groupId", messageHandler.ListGroup)
	message.DELETE("/:id", messageHandler.Delete)
	message.POST("/:id/like-message", messageHandler.Like)
	message.DELETE("/:id/like-message", messageHandler.Unlike)
	message.GET("/:id/like-message", messageHandler.Likes)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

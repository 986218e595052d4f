package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/Samuel-Pareja-TFA/servidor-TFA/docs"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/api/handler"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/api/middleware"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/ports"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/core/service"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/infrastructure/config"
	mongostore "github.com/Samuel-Pareja-TFA/servidor-TFA/internal/infrastructure/db/mongo"
	redisstore "github.com/Samuel-Pareja-TFA/servidor-TFA/internal/infrastructure/db/redis"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/infrastructure/hash"
	"github.com/Samuel-Pareja-TFA/servidor-TFA/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
//
// Routes fall into two groups. Public routes are reachable without a token:
// registration, login, refresh, profile lookup and the read-only post,
// comment and like listings. Everything else requires a resolved principal.
// The principal middleware itself runs on every request and never rejects;
// rejection is the route group's job.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("social"))

	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Repositories ---
	userRepo := mongostore.NewUserRepository(db)
	roleRepo := mongostore.NewRoleRepository(db)
	postRepo := mongostore.NewPostRepository(db)
	commentRepo := mongostore.NewCommentRepository(db)
	likeRepo := mongostore.NewLikeRepository(db)
	followRepo := mongostore.NewFollowRepository(db)

	// Redis is optional. Without it login throttling is disabled, not broken.
	var throttle ports.LoginThrottle
	if rdb != nil {
		throttle = redisstore.NewLoginThrottle(rdb)
	}

	// --- Services ---
	tokenService := service.NewTokenService(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.RefreshTokenSecret,
		cfg.Auth.AccessTokenTTL(),
		cfg.Auth.RefreshTokenTTL(),
	)
	hasher := hash.NewBcryptHasher()
	authService := service.NewAuthService(userRepo, roleRepo, tokenService, hasher, throttle, log)
	userService := service.NewUserService(userRepo, log)
	postService := service.NewPostService(postRepo, commentRepo, likeRepo, userRepo, followRepo, log)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo, log)
	likeService := service.NewLikeService(likeRepo, postRepo, userRepo, log)
	followService := service.NewFollowService(followRepo, userRepo, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService)
	commentHandler := handler.NewCommentHandler(commentService)
	likeHandler := handler.NewLikeHandler(likeService)
	followHandler := handler.NewFollowHandler(followService)

	// Resolves a principal from the Authorization header when one is present
	// and valid; otherwise the request continues anonymously.
	e.Use(middleware.Principal(tokenService, userRepo, log))

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.GET("/me", authHandler.Me, middleware.RequirePrincipal())

	// --- Public reads ---
	v1 := e.Group("/api/v1")
	v1.GET("/users/by-username/:username", userHandler.GetByUsername)
	v1.GET("/users/:username/followers", followHandler.Followers)
	v1.GET("/users/:username/following", followHandler.Following)
	v1.GET("/posts", postHandler.List)
	v1.GET("/posts/user/:username", postHandler.ListByUser)
	v1.GET("/posts/:id/comments", commentHandler.ListByPost)
	v1.GET("/posts/:id/likes", likeHandler.ListByPost)

	// --- Authenticated routes ---
	private := v1.Group("", middleware.RequirePrincipal())
	private.PATCH("/users/me/username", userHandler.ChangeUsername)
	private.POST("/users/:username/follow", followHandler.Follow)
	private.DELETE("/users/:username/follow", followHandler.Unfollow)
	private.POST("/posts", postHandler.Create)
	private.GET("/posts/feed", postHandler.Feed)
	private.PUT("/posts/:id", postHandler.Update)
	private.DELETE("/posts/:id", postHandler.Delete)
	private.POST("/posts/:id/comments", commentHandler.Add)
	private.DELETE("/posts/:id/comments/:commentId", commentHandler.Delete)
	private.POST("/posts/:id/like", likeHandler.Like)
	private.DELETE("/posts/:id/like", likeHandler.Unlike)

	// --- Operational endpoints ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

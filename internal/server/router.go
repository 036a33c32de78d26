// Package server wires repositories, services and controllers into the HTTP router.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"linkgate/internal/cache"
	"linkgate/internal/config"
	"linkgate/internal/controllers"
	"linkgate/internal/entities"
	"linkgate/internal/jwt"
	"linkgate/internal/logger"
	"linkgate/internal/metrics"
	"linkgate/internal/middleware"
	"linkgate/internal/repository"
	"linkgate/internal/service"
	"linkgate/internal/slug"
)

// Options are the long-lived resources built by main
type Options struct {
	Config    *config.Config
	DB        *gorm.DB
	SlugCache cache.SlugCache // nil disables the slug cache
	Logger    *logger.Logger
	Metrics   *metrics.Metrics
	Clock     entities.Clock
}

// NewRouter builds the gin engine. Rate limiter janitors stop when ctx is done.
func NewRouter(ctx context.Context, opts Options) *gin.Engine {
	cfg := opts.Config
	log := opts.Logger
	clock := opts.Clock
	if clock == nil {
		clock = entities.RealClock{}
	}

	// Initialize repositories
	urlRepo := repository.NewURLRepository(opts.DB)
	userRepo := repository.NewUserRepository(opts.DB)
	clickRepo := repository.NewClickRepository(opts.DB)

	// Initialize services
	jwtService := jwt.NewJWTService(cfg.JWTSecret, cfg.JWTTTLDuration())
	hasher := service.NewPasswordHasher(cfg.BcryptCost)

	genOpts := []slug.Option{slug.WithLength(cfg.SlugLength)}
	if opts.SlugCache != nil {
		genOpts = append(genOpts, slug.WithCache(opts.SlugCache))
	}
	slugs := slug.NewGenerator(urlRepo, genOpts...)

	authService := service.NewAuthService(userRepo, jwtService, hasher)
	clickService := service.NewClickService(urlRepo, clickRepo, clock, opts.Metrics, cfg.MaxPageLimit)
	urlService := service.NewURLService(urlRepo, clickRepo, slugs, hasher, clock, log)
	redirectService := service.NewRedirectService(urlRepo, clickService, hasher, clock, opts.Metrics)

	// Initialize controllers
	shortURLs := controllers.NewShortURLBuilder(cfg.HTTPSMode, cfg.BaseHost)
	authController := controllers.NewAuthController(authService, log)
	shortenerController := controllers.NewShortenerController(urlService, shortURLs, log)
	redirectController := controllers.NewRedirectController(redirectService, log)
	clicksController := controllers.NewClicksController(clickService, log)
	qrcodeController := controllers.NewQRCodeController(urlService, shortURLs, log)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(ctx, "general", rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, log)
	authRateLimiter := middleware.NewRateLimiter(ctx, "auth", rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst, log)
	shortenRateLimiter := middleware.NewRateLimiter(ctx, "shorten", rate.Limit(cfg.RateLimitShortenRPS), cfg.RateLimitShortenBurst, log)
	redirectRateLimiter := middleware.NewRateLimiter(ctx, "redirect", rate.Limit(cfg.RateLimitRedirectRPS), cfg.RateLimitRedirectBurst, log)

	requireAuth := middleware.AuthMiddleware(jwtService)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Metrics(opts.Metrics),
	)

	// Health check and metrics (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	router.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	router.GET("/:slug", redirectRateLimiter.LimitMiddleware(), redirectController.RedirectToURL)

	api := router.Group("/api")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		urls := api.Group("/urls")
		{
			// Creation works with or without a token
			urls.POST("", shortenRateLimiter.LimitMiddleware(), middleware.OptionalAuth(jwtService), shortenerController.CreateShortURL)

			urls.GET("/check/:slug", redirectRateLimiter.LimitMiddleware(), redirectController.CheckURL)
			urls.POST("/:id/access", authRateLimiter.LimitMiddleware(), redirectController.AccessURL)
			urls.POST("/:id/clicks", clicksController.TrackClick)

			urls.GET("", requireAuth, shortenerController.GetUserURLs)
			urls.PUT("/:id", requireAuth, shortenerController.UpdateURL)
			urls.DELETE("/:id", requireAuth, shortenerController.DeleteURL)
			urls.GET("/:id/clicks", requireAuth, clicksController.GetClicks)
		}

		api.GET("/qrcode/:slug", qrcodeController.GenerateQRCode)
	}

	return router
}

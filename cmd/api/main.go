package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/motefuku/motefuku/storefront-api/internal/catalog"
	"github.com/motefuku/motefuku/storefront-api/internal/config"
	"github.com/motefuku/motefuku/storefront-api/internal/domain"
	"github.com/motefuku/motefuku/storefront-api/internal/handler"
	"github.com/motefuku/motefuku/storefront-api/internal/metrics"
	"github.com/motefuku/motefuku/storefront-api/internal/middleware"
	pgrepo "github.com/motefuku/motefuku/storefront-api/internal/repository/postgres"
	redisrepo "github.com/motefuku/motefuku/storefront-api/internal/repository/redis"
	"github.com/motefuku/motefuku/storefront-api/internal/service"
	"github.com/motefuku/motefuku/storefront-api/internal/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Register Prometheus collectors
	metrics.Init()

	// Initialize the session state store
	states, cleanup, err := newStateRepository(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StateBackend).Msg("Failed to initialize state store")
	}
	defer cleanup()
	log.Info().Str("backend", cfg.StateBackend).Msg("State store ready")

	// Upstream recommendation backend client
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)

	// WebSocket hub for live state events
	hub := websocket.NewHub()

	// Initialize services
	cartService := service.NewCartService(states, hub)
	favoritesService := service.NewFavoritesService(states, hub)
	viewedService := service.NewRecentlyViewedService(states, hub)
	upsellService := service.NewUpsellService(states, catalogClient, hub)
	emailService := service.NewEmailService(states, catalogClient)

	// Initialize handlers
	cartHandler := handler.NewCartHandler(cartService)
	favoritesHandler := handler.NewFavoritesHandler(favoritesService)
	viewedHandler := handler.NewRecentlyViewedHandler(viewedService)
	catalogHandler := handler.NewCatalogHandler(catalogClient)
	emailHandler := handler.NewEmailHandler(emailService)
	upsellHandler := handler.NewUpsellHandler(upsellService)
	wsHandler := handler.NewWebSocketHandler(hub, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware (helmet-like)
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		HSTSMaxAge:            31536000,
		ContentSecurityPolicy: "default-src 'self'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	// Anonymous session cookie; every route including /ws needs it
	e.Use(middleware.Session())

	// Per-session rate limiting
	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()
	e.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Request metrics
	e.Use(middleware.Metrics())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Register API routes
	handler.RegisterRoutes(e, cartHandler, favoritesHandler, viewedHandler, catalogHandler, emailHandler, upsellHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// newStateRepository builds the configured state store and returns it
// with a cleanup function for the underlying connection.
func newStateRepository(cfg *config.Config) (domain.StateRepository, func(), error) {
	switch cfg.StateBackend {
	case config.StateBackendRedis:
		opts, err := goredis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		client := goredis.NewClient(opts)
		if err := client.Ping(context.Background()).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return redisrepo.NewStateRepository(client), func() { client.Close() }, nil

	default:
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := pool.Ping(context.Background()); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return pgrepo.NewStateRepository(pool), pool.Close, nil
	}
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}

package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gameday-api/core/cache"
	"gameday-api/core/config"
	"gameday-api/core/database"
	"gameday-api/core/logger"
	"gameday-api/core/middleware"
	"gameday-api/core/queue"
	"gameday-api/core/storage"
	"gameday-api/modules/auth"
	"gameday-api/modules/event"
	"gameday-api/modules/eventtype"
	"gameday-api/modules/notification"
	notificationService "gameday-api/modules/notification/service"
	weatherService "gameday-api/modules/weather/service"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
)

// Run boots the service: config, database, cache, queue, module wiring,
// then serves until SIGINT/SIGTERM.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	defer logger.Sync()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}

	c, err := cache.New(cfg.Redis)
	if err != nil {
		// The cache is an optimization and the oauth state store; the
		// API itself can come up without it.
		logger.Warn("Redis unavailable, continuing without cache", "error", err)
		c = nil
	}

	var queueClient *queue.Client
	var queueServer *queue.Server
	if c != nil {
		queueClient = queue.NewClient(cfg.Redis)
		queueServer = queue.NewServer(cfg.Redis)
	}

	mw := middleware.New()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(mw.RequestLogger())

	// Module wiring. The notification trigger is built first so the
	// event module can hand joins to it.
	var mailer notificationService.Mailer = notificationService.NewSMTPMailer(cfg.SMTP)
	trigger := notification.Init(&db, queueClient, queueServer, mailer)

	var uploader storage.Uploader
	if cfg.S3.Bucket != "" {
		uploader = storage.NewS3Uploader(cfg.S3)
	}

	weather := weatherService.NewWeatherService(cfg.Weather.BaseURL, c)

	auth.Init(e, c, mw)
	eventtype.Init(e, &db, mw)
	event.Init(e, &db, mw, c, uploader, weather, trigger)

	registerHealth(e, &db, c)

	if queueServer != nil {
		if err := queueServer.Start(); err != nil {
			logger.Error("Failed to start queue worker", "error", err)
		}
	}

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		logger.Info("Server starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if queueServer != nil {
		queueServer.Shutdown()
	}
	if queueClient != nil {
		_ = queueClient.Close()
	}
	return e.Shutdown(ctx)
}

// registerHealth reports DB and redis reachability. A DB outage is a 503
// so clients can tell an outage from a business error.
func registerHealth(e *echo.Echo, db database.IDatabase, c *cache.Cache) {
	e.GET("/api/health", func(ctx echo.Context) error {
		reqCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
		defer cancel()

		status := map[string]string{"database": "ok", "cache": "ok"}
		httpStatus := http.StatusOK

		if err := db.PingContext(reqCtx); err != nil {
			status["database"] = "unavailable"
			httpStatus = http.StatusServiceUnavailable
		}
		if c == nil {
			status["cache"] = "disabled"
		} else if err := c.Ping(reqCtx); err != nil {
			status["cache"] = "unavailable"
		}

		return ctx.JSON(httpStatus, status)
	})
}

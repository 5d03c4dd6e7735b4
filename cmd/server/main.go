package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	config "github.com/picturesmile/studio-api/configs"
	"github.com/picturesmile/studio-api/internal/api"
	"github.com/picturesmile/studio-api/internal/api/handlers"
	"github.com/picturesmile/studio-api/internal/api/middleware"
	"github.com/picturesmile/studio-api/internal/repository"
	"github.com/picturesmile/studio-api/internal/service"
	applog "github.com/picturesmile/studio-api/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const brokenMediaTTL = 7 * 24 * time.Hour

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := applog.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	db, err := repository.OpenPostgres(cfg.Postgres.URI, cfg.Postgres.MaxOpenConns)
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	if err := db.PingContext(ctx); err != nil {
		zlog.Fatal("database is unreachable", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.URI != "" {
		opts, err := redis.ParseURL(cfg.Redis.URI)
		if err != nil {
			zlog.Fatal("invalid REDIS_URI", zap.Error(err))
		}
		rdb = redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			zlog.Warn("redis is unreachable, continuing without it", zap.Error(err))
			rdb.Close()
			rdb = nil
		}
	}

	repos := service.Repositories{
		Images:      repository.NewImageRepository(db, cfg.RemoteTimeout),
		Videos:      repository.NewVideoRepository(db, cfg.RemoteTimeout),
		Albums:      repository.NewAlbumRepository(db, cfg.RemoteTimeout),
		Collections: repository.NewCollectionRepository(db, cfg.RemoteTimeout),
		Discounts:   repository.NewDiscountRepository(db, cfg.RemoteTimeout),
		Broken:      repository.NewMemoryBrokenMediaRepository(brokenMediaTTL),
	}
	if rdb != nil {
		repos.Broken = repository.NewRedisBrokenMediaRepository(rdb, brokenMediaTTL)
	}

	r2Service, err := service.NewR2Service(ctx, cfg.R2, cfg.RemoteTimeout)
	if err != nil {
		zlog.Fatal("failed to configure object storage", zap.Error(err))
	}

	buckets := service.Buckets{
		Images:     cfg.R2.Buckets.Images,
		Videos:     cfg.R2.Buckets.Videos,
		Albums:     cfg.R2.Buckets.Albums,
		Thumbnails: cfg.R2.Buckets.Thumbnails,
	}
	limits := service.FileLimits{
		ImageMaxMB: cfg.Upload.ImageMaxMB,
		VideoMaxMB: cfg.Upload.VideoMaxMB,
		AlbumMaxMB: cfg.Upload.AlbumMaxMB,
	}

	authService := service.NewAuthService(cfg.Auth, cfg.SessionTTL, zlog)
	galleryService := service.NewGalleryService(repos, r2Service, buckets, zlog)
	mediaService := service.NewMediaService(repos, r2Service, buckets, limits, cfg.Upload.BulkConcurrency, zlog)
	discountService := service.NewDiscountService(repos, zlog)
	contactService := service.NewContactService(cfg.Contact, repos, cfg.RemoteTimeout, zlog)

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    cfg.App.BodyLimitMB * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			zlog.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
			return api.ErrorHandler(c, err)
		},
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))
	app.Static("/assets", cfg.App.StaticDir+"/assets")

	guards := api.Guards{
		Auth:         middleware.NewAuthMiddleware(cfg.Auth, authService, zlog),
		ContactLimit: middleware.NewIPRateLimiter(ctx, cfg.Contact.RateLimitPerMin, cfg.Contact.RateLimitBurst, zlog).Handler(),
	}
	if rdb != nil {
		guards.LoginLimit = middleware.NewLoginLimiter(rdb, "login", cfg.Auth.LoginAttempts, cfg.LoginWindow, zlog).Handler()
	}

	api.Register(app, api.Handlers{
		Auth:     handlers.NewAuthHandler(cfg.Auth, cfg.IsProduction(), authService),
		Gallery:  handlers.NewGalleryHandler(galleryService),
		Media:    handlers.NewMediaHandler(mediaService, zlog),
		Discount: handlers.NewDiscountHandler(discountService),
		Contact:  handlers.NewContactHandler(contactService),
		Page:     handlers.NewPageHandler(cfg.App.StaticDir),
	}, guards)

	go func() {
		if err := app.Listen(":" + cfg.App.Port); err != nil {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()
	zlog.Info("server is running", zap.String("port", cfg.App.Port))

	gracefulShutdown(app, db, rdb, stop, zlog)
}

func gracefulShutdown(app *fiber.App, db *sql.DB, rdb *redis.Client, stop context.CancelFunc, zlog *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	zlog.Info("shutting down server")

	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		zlog.Error("failed to shut down server", zap.Error(err))
	}
	stop()

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			zlog.Error("failed to close redis", zap.Error(err))
		}
	}
	if err := db.Close(); err != nil {
		zlog.Error("failed to close database", zap.Error(err))
	}
	zlog.Info("server shutdown complete")
}

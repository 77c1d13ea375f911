package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"onboardu/auth"
	"onboardu/config"
	"onboardu/database"
	"onboardu/logger"
	"onboardu/mailer"
	"onboardu/middleware"
	"onboardu/routers"
	"onboardu/scheduler"
	"onboardu/services/account"
	"onboardu/services/catalogue"
	"onboardu/services/seller"
	"onboardu/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	zlog, err := logger.Init(logger.Config{Level: cfg.LogLevel, Dev: cfg.LogDev, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()
	zap.ReplaceGlobals(zlog)

	db, err := database.ConnectDb(cfg, zlog)
	if err != nil {
		zlog.Fatal("database setup failed", zap.Error(err))
	}

	otp, err := mailer.FromConfig(cfg, zlog)
	if err != nil {
		zlog.Fatal("otp sender setup failed", zap.Error(err))
	}
	store, err := storage.FromConfig(cfg)
	if err != nil {
		zlog.Fatal("storage setup failed", zap.Error(err))
	}
	tokens := auth.NewTokenIssuer(cfg.JWTKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	accounts := account.NewService(db, otp, tokens, cfg.SaltRound, zlog)
	deps := routers.Deps{
		DB:      db,
		Tokens:  tokens,
		Account: accounts,
		Seller:  seller.NewService(db, otp, store, zlog),
		Catalogue: catalogue.NewService(db, store, catalogue.Options{
			Policy:      catalogue.ResubmitPolicy(cfg.ProductResubmitPolicy),
			PageSize:    cfg.PageSize,
			MaxPageSize: cfg.MaxPageSize,
		}, zlog),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    20 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	if cfg.StorageDriver == "" || cfg.StorageDriver == "local" {
		app.Static(cfg.MediaURL, cfg.MediaRoot)
	}

	routers.Setup(app, deps)

	cron, err := scheduler.Start(cfg.TokenPurgeSchedule, accounts, zlog)
	if err != nil {
		zlog.Fatal("scheduler setup failed", zap.Error(err))
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit

		zlog.Info("shutting down")
		<-cron.Stop().Done()
		if err := app.Shutdown(); err != nil {
			zlog.Error("server shutdown failed", zap.Error(err))
		}
	}()

	zlog.Info("server is running", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

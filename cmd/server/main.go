package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ibitrepair/workshop/internal/config"
	"github.com/ibitrepair/workshop/internal/db"
	"github.com/ibitrepair/workshop/internal/events"
	"github.com/ibitrepair/workshop/internal/hash"
	"github.com/ibitrepair/workshop/internal/httpserver"
	"github.com/ibitrepair/workshop/internal/logging"
	loggingmw "github.com/ibitrepair/workshop/internal/middleware/logging"
	"github.com/ibitrepair/workshop/internal/repo"
	"github.com/ibitrepair/workshop/internal/search"
	"github.com/ibitrepair/workshop/internal/seed"
	"github.com/ibitrepair/workshop/internal/service"
	"github.com/ibitrepair/workshop/internal/tokens"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	initCtx = logging.IntoContext(initCtx, logger)
	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("db_open_failed", "error", err)
		os.Exit(1)
	}

	hasher := hash.Hasher{Cost: cfg.BcryptCost}

	if cfg.SeedOnStart {
		seeder := &seed.Seeder{DB: gdb, Hasher: &hasher}
		if err := seeder.Run(initCtx); err != nil {
			logger.Error("seed_failed", "error", err)
			os.Exit(1)
		}
	}
	cancel()

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)

	var searchClient *search.Client
	if cfg.ESURL != "" {
		searchClient, err = search.NewClient(cfg)
		if err != nil {
			logger.Error("search_init_failed", "error", err)
			os.Exit(1)
		}
	}

	tm := &tokens.Manager{
		Secret:     cfg.JWTSecret,
		Issuer:     cfg.JWTIssuer,
		Audience:   cfg.JWTAudience,
		AccessTTL:  cfg.AccessTTL,
		RefreshTTL: cfg.RefreshTTL,
	}
	r := repo.New(gdb)

	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.DevMode
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowCredentials: true,
	}))
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		DB:     gdb,
		Tokens: tm,
		Search: searchClient,

		Auth:      &service.AuthService{Repo: r, Tokens: tm, Hasher: hasher, Events: producer},
		Users:     &service.UserService{Repo: r, Hasher: hasher},
		Customers: &service.CustomerService{Repo: r},
		Catalog:   &service.CatalogService{Repo: r, Search: searchClient},
		Parts:     &service.PartsService{Repo: r, Search: searchClient, Events: producer},
		Warranty:  &service.WarrantyService{Repo: r},
		Dashboard: &service.DashboardService{Repo: r},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("server_starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown_started")

	ctx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_failed", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("producer_close_failed", "error", err)
	}
	logger.Info("shutdown_complete")
}

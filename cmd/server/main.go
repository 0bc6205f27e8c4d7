package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/soundhaven/musicstore/internal/cache"
	"github.com/soundhaven/musicstore/internal/config"
	"github.com/soundhaven/musicstore/internal/events"
	"github.com/soundhaven/musicstore/internal/httpserver"
	"github.com/soundhaven/musicstore/internal/logging"
	"github.com/soundhaven/musicstore/internal/middleware"
	"github.com/soundhaven/musicstore/internal/repo"
	"github.com/soundhaven/musicstore/internal/search"
	"github.com/soundhaven/musicstore/internal/seed"
	"github.com/soundhaven/musicstore/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := config.InitDB(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	var producer *events.Producer
	if cfg.KafkaAddress != "" {
		producer = events.NewProducer(strings.Split(cfg.KafkaAddress, ","))
	}

	albumCache, err := cache.NewAlbumCache(cfg.RedisAddr)
	if err != nil {
		log.Fatalf("redis init: %v", err)
	}

	var albumIndex *search.AlbumIndex
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		albumIndex = search.NewAlbumIndex(esClient)
	}

	r := &repo.GormRepo{DB: db}
	catalogSvc := &service.CatalogService{Repo: r, Cache: albumCache, Index: albumIndex}
	cartSvc := &service.CartService{Repo: r, Catalog: catalogSvc}
	orderSvc := &service.OrderService{Repo: r, Catalog: catalogSvc}

	jwtSecret := []byte(cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS())
	e.Use(middleware.RequestLogger(logger))

	httpserver.Register(e, &httpserver.Deps{
		Auth:      &httpserver.AuthHTTP{Repo: r, Carts: cartSvc, JWTSecret: jwtSecret, Producer: producer},
		Cart:      &httpserver.CartHTTP{Svc: cartSvc, Producer: producer},
		Order:     &httpserver.OrderHTTP{Svc: orderSvc, Producer: producer},
		Catalog:   &httpserver.CatalogHTTP{Svc: catalogSvc},
		Seed:      &httpserver.SeedHTTP{Seeder: &seed.Seeder{DB: db}, Catalog: catalogSvc},
		JWTSecret: jwtSecret,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}
	if err := albumCache.Close(); err != nil {
		logger.Error("redis close", "error", err)
	}

	logger.Info("shutdown complete")
}

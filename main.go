package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-api/config"
	"blog-api/database"
	routes "blog-api/internal/app/http"
	"blog-api/internal/app/http/middleware"
	"blog-api/internal/infra/cache"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadEnv()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: config.SlogLevel(),
	})))

	gin.SetMode(config.GIN_MODE)
	database.InitDB()
	setupCache()

	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestLogger())

	// CORS goes in before the routes.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.CORS_ORIGIN},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Cache"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + config.PORT,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "google_login", config.GoogleEnabled())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped gracefully")
}

// setupCache picks the listing cache: Redis when REDIS_URL is set, an
// in-process LRU otherwise. A zero CACHE_TTL disables caching.
func setupCache() {
	if config.CACHE_TTL <= 0 {
		slog.Info("listing cache disabled")
		return
	}

	if config.REDIS_URL != "" {
		client, err := cache.ConnectRedis(config.REDIS_URL)
		if err != nil {
			slog.Error("redis unavailable, falling back to in-process cache", "error", err)
		} else {
			cache.Use(cache.NewRedis(client, config.CACHE_TTL))
			slog.Info("listing cache ready", "backend", "redis", "ttl", config.CACHE_TTL.String())
			return
		}
	}

	store, err := cache.NewLRU(config.CACHE_SIZE, config.CACHE_TTL)
	if err != nil {
		slog.Error("failed to create listing cache", "error", err)
		os.Exit(1)
	}
	cache.Use(store)
	slog.Info("listing cache ready", "backend", "lru", "size", config.CACHE_SIZE, "ttl", config.CACHE_TTL.String())
}

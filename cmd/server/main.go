package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"icebreaker/backend/internal/handler"
	"icebreaker/backend/internal/hub"
	"icebreaker/backend/internal/middleware"
	"icebreaker/backend/internal/repository/gormstore"
	"icebreaker/backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	// Swagger imports
	_ "icebreaker/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Icebreaker API
// @version         1.0
// @description     Catalog of icebreaker game cards with favorites, queues, ratings and moderation.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(configDir string) error {
	cfg, zlog, err := bootstrap(configDir)
	if err != nil {
		return err
	}
	defer zlog.Sync() //nolint:errcheck

	db, err := openDatabase(cfg, zlog)
	if err != nil {
		return err
	}

	store := gormstore.New(db)
	events := hub.NewHub()
	h := handler.New(handler.Services{
		Cards:      service.NewGameCardService(store, events, zlog),
		Catalog:    service.NewCatalogService(store, zlog),
		Categories: service.NewCategoryService(store, zlog),
		Collection: service.NewCollectionService(store, zlog),
		Deletion:   service.NewDeletionService(store, events, zlog),
		Ratings:    service.NewRatingService(store, events, zlog),
		Reports:    service.NewReportService(store, zlog),
		Accounts:   service.NewAccountService(store, cfg.JWTSecret, cfg.JWTTTL, zlog),
	}, events, cfg.JWTSecret, zlog)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Recovery(zlog), middleware.Logger(zlog))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	h.RegisterRoutes(router.Group("/api/v1"))

	// No write timeout: the event stream holds its response open.
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		zlog.Info("server is running",
			zap.String("addr", cfg.Addr()),
			zap.String("swagger", "/swagger/index.html"),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("server forced to shutdown", zap.Error(err))
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	zlog.Info("server exited")
	return nil
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/petruschka/site-api/internal/api"
	"github.com/petruschka/site-api/internal/config"
	"github.com/petruschka/site-api/internal/loaders"
	"github.com/petruschka/site-api/internal/shared"
	"github.com/petruschka/site-api/internal/utils"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := config.LoadEnvFile(); err != nil {
		panic(err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.Environment); err != nil {
		panic(err)
	}
	defer utils.Zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := loaders.NewMongoClient(ctx, cfg.MongoURI, cfg.QueryTimeout)
	if err != nil {
		utils.Zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(
		shared.RequestID(),
		shared.Recovery(),
		shared.RequestLogger(),
		shared.CORS(cfg.AllowedOrigins),
		shared.CacheHeaders(),
		shared.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	stopWorkers, err := api.SetupRoutes(router, db, cfg)
	if err != nil {
		utils.Zlog.Fatal("Failed to set up routes", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Zlog.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.String("service", cfg.ServiceName),
			zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	utils.Zlog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Zlog.Error("Server shutdown failed", zap.Error(err))
	}
	stopWorkers(shutdownCtx)
	if err := db.Close(shutdownCtx); err != nil {
		utils.Zlog.Error("Failed to close MongoDB", zap.Error(err))
	}
	utils.Zlog.Info("Server stopped")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"json-prompt-generator/backend/internal/bootstrap"
	"json-prompt-generator/backend/internal/config"
	config_http "json-prompt-generator/backend/internal/features/config/presentation/http"
	history_app "json-prompt-generator/backend/internal/features/history/application"
	history_infra "json-prompt-generator/backend/internal/features/history/infrastructure"
	history_http "json-prompt-generator/backend/internal/features/history/presentation/http"
	normalization_http "json-prompt-generator/backend/internal/features/normalization/presentation/http"
	"json-prompt-generator/backend/internal/logging"
	"json-prompt-generator/backend/internal/middleware"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pipeline, err := bootstrap.NewPipeline(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize pipeline", zap.Error(err))
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS(cfg.AllowedOrigins))

	var recorder normalization_http.HistoryRecorder
	if cfg.HistoryDB != "" {
		db, err := history_infra.OpenSQLite(cfg.HistoryDB)
		if err != nil {
			logger.Fatal("failed to open history db", zap.Error(err))
		}
		defer db.Close()

		store := history_infra.NewStore(db)
		if err := store.Init(ctx); err != nil {
			logger.Fatal("failed to initialize history db", zap.Error(err))
		}
		historyService := history_app.NewHistoryService(store)
		recorder = historyService
		r.GET("/api/history", history_http.NewHistoryHandler(historyService).ListHistoryHandler)
	}

	handler := normalization_http.NewNormalizationHandler(pipeline.Service, recorder, logger)
	r.GET("/", handler.HealthHandler)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.POST("/generate-prompt", handler.GeneratePromptHandler)
	r.POST("/api/prompts/transform", handler.GeneratePromptHandler)

	// Config API routes
	configGroup := r.Group("/api/config")
	{
		configHandler := config_http.NewAppConfigHandler(pipeline.ConfigService, logger)
		configGroup.GET("/app", configHandler.GetAppConfigHandler)
		configGroup.POST("/app", configHandler.SaveAppConfigHandler)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("server listening",
		zap.String("addr", srv.Addr),
		zap.Bool("ai_enabled", pipeline.Service.AIEnabled()),
		zap.Strings("allowed_origins", cfg.AllowedOrigins))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server failed", zap.Error(err))
	}
}

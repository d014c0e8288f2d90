package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/charankrishna-n/hct-Survival-Prediction/internal/application/usecase"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/infrastructure/config"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/infrastructure/metrics"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/infrastructure/model"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/observability"
	"github.com/charankrishna-n/hct-Survival-Prediction/internal/presentation/rest"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	logger.Info("starting hctd",
		"http_port", cfg.HTTPPort,
		"model_path", cfg.ModelPath,
		"environment", cfg.Environment,
	)

	// The artifact is a startup requirement: refuse to serve without it
	// rather than degrade per request.
	artifact, err := model.Load(cfg.ModelPath)
	if err != nil {
		logger.Error("failed to load model artifact", "path", cfg.ModelPath, "error", err)
		os.Exit(1)
	}
	logger.Info("model loaded",
		"numeric_features", len(artifact.Info().NumericFeatures),
		"categorical_features", len(artifact.Info().CategoricalFeatures),
	)

	state := metrics.NewState()
	predictUC := usecase.NewPredict(artifact, state, logger)
	limiter := rest.NewClientRateLimiter(cfg.RateLimit, time.Minute)

	handler := rest.NewHandler(predictUC, state, true, limiter, logger)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	var root http.Handler = mux
	root = rest.LoggingMiddleware(logger)(root)
	root = rest.CORSMiddleware(cfg.CORSOrigin)(root)
	root = rest.RequestIDMiddleware(root)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      root,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down hctd")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("hctd stopped")
}

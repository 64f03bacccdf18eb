package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forkpoint/forkpoint-service/internal/config"
	"github.com/forkpoint/forkpoint-service/internal/database"
	"github.com/forkpoint/forkpoint-service/internal/handler"
	"github.com/forkpoint/forkpoint-service/internal/logger"
	"github.com/forkpoint/forkpoint-service/internal/middleware"
	"github.com/forkpoint/forkpoint-service/internal/repository"
	"github.com/forkpoint/forkpoint-service/internal/router"
	"github.com/forkpoint/forkpoint-service/internal/server"
	"github.com/forkpoint/forkpoint-service/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	bootstrapLogger := logger.Bootstrap()

	cfg, err := config.Load(&bootstrapLogger)
	if err != nil {
		bootstrapLogger.Fatal().Err(err).Msg("failed to load config")
	}

	appLogger, loggerService, err := logger.New(cfg)
	if err != nil {
		bootstrapLogger.Fatal().Err(err).Msg("failed to initialize logger")
	}

	ctx := context.Background()
	if err := database.Migrate(ctx, appLogger, cfg); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv, err := server.New(cfg, appLogger, loggerService)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialize server")
	}

	if err := database.Seed(ctx, appLogger, srv.DB, cfg); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to seed database")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to initialize services")
	}

	middlewares := middleware.NewMiddlewares(srv, services.Auth)
	handlers := handler.NewHandlers(srv, services)

	e := router.New(srv, handlers, middlewares)
	srv.SetupHTTPServer(e)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
	}

	loggerService.Shutdown(5 * time.Second)
	appLogger.Info().Msg("server stopped")
}

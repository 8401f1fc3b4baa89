package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/vaccine-tracker/internal/config"
	"github.com/deppfellow/vaccine-tracker/internal/database"
	"github.com/deppfellow/vaccine-tracker/internal/handler"
	"github.com/deppfellow/vaccine-tracker/internal/logger"
	"github.com/deppfellow/vaccine-tracker/internal/repository"
	"github.com/deppfellow/vaccine-tracker/internal/router"
	"github.com/deppfellow/vaccine-tracker/internal/server"
	"github.com/deppfellow/vaccine-tracker/internal/service"
	"github.com/rs/zerolog"
)

// DefaultContextTimeout bounds migrations at startup and the graceful shutdown.
const DefaultContextTimeout = 30

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("failed to load config")
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	if err := run(cfg, &log, loggerService); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		loggerService.Shutdown()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zerolog.Logger, loggerService *logger.LoggerService) error {
	migrateCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	err := database.Migrate(migrateCtx, log, cfg)
	cancel()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, log, loggerService)
	if err != nil {
		return err
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err := <-serveErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}

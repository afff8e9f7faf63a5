package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "blogserver/docs"
	"blogserver/internal/config"
	"blogserver/internal/handlers"
	"blogserver/internal/logger"
	"blogserver/internal/repository"
	"blogserver/internal/server"
	"blogserver/internal/service"
	"blogserver/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// @title           Blog Platform API
// @version         1.0
// @description     Blog content platform: users, posts, uploads and JWT auth.

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	// Config first: the process must fail fast on a missing signing secret,
	// before anything else is wired.
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.Get(logger.InfoLevel)
		bootLog.Fatalw("error loading config", "err", err)
	}

	log := logger.Get(cfg.LogLevel)

	// open DB
	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// uploads directory (avatars, thumbnails)
	files, err := storage.NewFileStore(cfg.UploadsDir)
	if err != nil {
		log.Fatalw("failed to init upload store", "err", err)
	}

	// wire dependencies
	repos := repository.NewRepository(db)
	services := service.NewService(repos, files, []byte(cfg.JWTSecret))
	apiHandler := handlers.NewHandler(services, log, files.Dir())

	// start HTTP server
	srv := &server.Server{}
	go func() {
		log.Infow("starting server", "port", cfg.Port)
		if err := srv.Run(cfg.Port, apiHandler.InitRoutes()); err != nil {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	// graceful shutdown
	waitForShutdown(srv, log)
}

// waitForShutdown listens for termination signals and drains in-flight
// requests before exiting.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

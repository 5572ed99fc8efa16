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

	"github.com/AdamBeresnev/padel-draw/internal/config"
	"github.com/AdamBeresnev/padel-draw/internal/db"
	"github.com/AdamBeresnev/padel-draw/internal/draw"
	"github.com/AdamBeresnev/padel-draw/internal/service"
	"github.com/AdamBeresnev/padel-draw/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	database, err := db.InitDB(cfg.DatabasePath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.RunMigrations(database.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	placer := draw.NewPlacer(draw.NewShuffler(cfg.ShuffleSeed), cfg.RandomizeSeedGroups)
	builder := service.NewTournamentBuilder(placer)
	tournamentStore := store.NewTournamentStore(database)
	tournaments := service.NewTournamentService(database, tournamentStore, builder)
	app := &application{
		tournaments:    tournaments,
		matches:        service.NewMatchService(tournaments),
		allowedOrigins: cfg.AllowedOrigins,
	}

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      newRouter(app),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server starting", "address", server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}
	logger.Info("server stopped")
}

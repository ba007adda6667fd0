package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ctchen222/tictactoe-session/internal/api/controller"
	"ctchen222/tictactoe-session/internal/api/service"
	"ctchen222/tictactoe-session/internal/config"
	"ctchen222/tictactoe-session/internal/hub"
	"ctchen222/tictactoe-session/internal/logger"
	"ctchen222/tictactoe-session/internal/server"
	"ctchen222/tictactoe-session/internal/telemetry"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to the YAML config file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize telemetry
	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry)
	if err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("Error shutting down telemetry", "error", err)
		}
	}()

	logger.Init(cfg.LogLevel)

	if err := controller.RegisterBindings(); err != nil {
		slog.Error("failed to register request validations", "error", err)
		os.Exit(1)
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create hub
	h := hub.NewHub(hub.Options{
		TurnSeconds:       cfg.Game.TurnSeconds,
		TickInterval:      cfg.Game.TickInterval,
		AIDelay:           cfg.Game.AIDelay,
		DefaultDifficulty: cfg.Game.DefaultDifficulty,
		IdleTimeout:       cfg.Game.IdleTimeout,
	})
	go h.Run(ctx)

	// Create controllers
	sessionController := controller.NewSessionController(service.NewSessionService(h))

	// Create the Gin-based server
	srv := server.NewServer(h, sessionController, cfg.WebDir)

	httpServer := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: srv.Engine(),
	}

	go func() {
		slog.Info("http server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("ListenAndServe", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	h.Shutdown(shutdownCtx)

	slog.Info("Server exiting")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/c14220110/igd-backend/config"
	"github.com/c14220110/igd-backend/internal/audit"
	"github.com/c14220110/igd-backend/internal/routes"
	"github.com/c14220110/igd-backend/pkg/logger"
	"github.com/c14220110/igd-backend/pkg/storage/mariadb"
	"github.com/c14220110/igd-backend/ws"
)

func main() {
	cfg := config.LoadConfig()

	log, err := logger.NewLogger(cfg.LogLevel, cfg.LogFormat, "igd-backend")
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := mariadb.Connect(ctx, cfg, log)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()

	hub := ws.NewHub(log)
	go hub.Run(ctx)

	store := audit.NewStore(audit.DefaultCapacity)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			}
			if v.Error != nil {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))

	timerService, err := routes.Init(e, cfg, db, hub, store, log)
	if err != nil {
		log.Fatal("Failed to initialise routes", zap.Error(err))
	}
	defer timerService.Close()

	go func() {
		log.Info("Server berjalan", zap.String("port", cfg.Port))
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown failed", zap.Error(err))
	}
}

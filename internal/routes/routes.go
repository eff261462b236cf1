package routes

import (
	"database/sql"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/c14220110/igd-backend/config"
	"github.com/c14220110/igd-backend/internal/audit"
	"github.com/c14220110/igd-backend/internal/triage/controllers"
	triaseRoutes "github.com/c14220110/igd-backend/internal/triage/routes"
	"github.com/c14220110/igd-backend/internal/triage/services"
	"github.com/c14220110/igd-backend/internal/triage/timer"
	"github.com/c14220110/igd-backend/ws"
)

// Init menginisialisasi semua routes menggunakan Echo framework dan
// mengembalikan TimerService agar dapat ditutup saat shutdown.
func Init(e *echo.Echo, cfg *config.Config, db *sql.DB, hub *ws.Hub, store *audit.Store, log *zap.Logger) (*services.TimerService, error) {
	triaseService := services.NewTriaseService(db, log, store)
	staffService := services.NewStaffService(db)
	timerService, err := services.NewTimerService(timer.Config{
		WarningThreshold:  time.Duration(cfg.TriageWarningSeconds) * time.Second,
		CriticalThreshold: time.Duration(cfg.TriageCriticalSeconds) * time.Second,
	}, hub, store, log)
	if err != nil {
		return nil, err
	}

	api := e.Group("/api")
	triaseRoutes.RegisterTriaseRoutes(api, triaseRoutes.Controllers{
		Auth:   controllers.NewAuthController(staffService, cfg.JWTSecret, log),
		Triase: controllers.NewTriaseController(triaseService, hub, log),
		Timer:  controllers.NewTimerController(timerService),
		Audit:  controllers.NewAuditController(store),
	}, cfg.JWTSecret)

	e.GET("/ws", ws.ServeWS(hub))
	return timerService, nil
}

package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/c14220110/igd-backend/internal/common/middlewares"
	"github.com/c14220110/igd-backend/internal/triage/controllers"
)

// Controllers mengelompokkan controller area triase IGD.
type Controllers struct {
	Auth   *controllers.AuthController
	Triase *controllers.TriaseController
	Timer  *controllers.TimerController
	Audit  *controllers.AuditController
}

// RegisterTriaseRoutes mendaftarkan endpoint /igd di bawah grup api.
func RegisterTriaseRoutes(api *echo.Group, ctl Controllers, jwtSecret string) {
	igd := api.Group("/igd")
	igd.POST("/login", ctl.Auth.Login) // Tidak pakai JWT

	auth := middlewares.JWTMiddleware(jwtSecret)
	staff := middlewares.RequireRole("Suster", "Dokter")

	igd.POST("/triase", ctl.Triase.InputTriase, auth, staff)
	igd.GET("/triase", ctl.Triase.GetTriaseByPasienHandler, auth, staff)
	igd.POST("/triase/preview", ctl.Triase.PreviewTriase, auth, staff)
	igd.GET("/vital/deviasi", ctl.Triase.ClassifyDeviationHandler, auth, staff)

	timers := igd.Group("/timer", auth, staff)
	timers.GET("", ctl.Timer.ListHandler)
	timers.GET("/:id_kunjungan", ctl.Timer.GetHandler)
	timers.POST("/:id_kunjungan/start", ctl.Timer.StartHandler)
	timers.POST("/:id_kunjungan/pause", ctl.Timer.PauseHandler)
	timers.POST("/:id_kunjungan/reset", ctl.Timer.ResetHandler)
	timers.DELETE("/:id_kunjungan", ctl.Timer.RemoveHandler)

	igd.GET("/audit", ctl.Audit.ListAuditHandler, auth, middlewares.RequireRole("Dokter"))
}

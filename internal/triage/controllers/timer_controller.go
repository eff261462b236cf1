package controllers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/igd-backend/internal/common/middlewares"
	"github.com/c14220110/igd-backend/internal/triage/services"
	"github.com/c14220110/igd-backend/internal/triage/timer"
)

type TimerController struct {
	Service *services.TimerService
}

func NewTimerController(service *services.TimerService) *TimerController {
	return &TimerController{Service: service}
}

func (tc *TimerController) StartHandler(c echo.Context) error {
	return tc.handle(c, "Timer started", tc.Service.Start)
}

func (tc *TimerController) PauseHandler(c echo.Context) error {
	return tc.handle(c, "Timer paused", tc.Service.Pause)
}

func (tc *TimerController) ResetHandler(c echo.Context) error {
	return tc.handle(c, "Timer reset", tc.Service.Reset)
}

func (tc *TimerController) GetHandler(c echo.Context) error {
	return tc.handle(c, "Timer retrieved", func(id int, _ string) (timer.Snapshot, error) {
		return tc.Service.Get(id)
	})
}

func (tc *TimerController) RemoveHandler(c echo.Context) error {
	id, ok := intParam(c.Param("id_kunjungan"))
	if !ok {
		return respond(c, http.StatusBadRequest, "id_kunjungan must be a number", nil)
	}
	if err := tc.Service.Remove(id, actorOf(c)); err != nil {
		return timerError(c, err)
	}
	return respond(c, http.StatusOK, "Timer removed", nil)
}

func (tc *TimerController) ListHandler(c echo.Context) error {
	return respond(c, http.StatusOK, "Active timers retrieved", tc.Service.List())
}

func (tc *TimerController) handle(c echo.Context, message string, op func(int, string) (timer.Snapshot, error)) error {
	id, ok := intParam(c.Param("id_kunjungan"))
	if !ok {
		return respond(c, http.StatusBadRequest, "id_kunjungan must be a number", nil)
	}
	snap, err := op(id, actorOf(c))
	if err != nil {
		return timerError(c, err)
	}
	return respond(c, http.StatusOK, message, services.EncounterTimer{ID_Kunjungan: id, Snapshot: snap})
}

func timerError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrTimerNotFound) {
		return respond(c, http.StatusNotFound, err.Error(), nil)
	}
	return respond(c, http.StatusInternalServerError, "Timer operation failed: "+err.Error(), nil)
}

func actorOf(c echo.Context) string {
	if claims, ok := middlewares.ClaimsFrom(c); ok {
		return claims.IDKaryawan
	}
	return "anonim"
}

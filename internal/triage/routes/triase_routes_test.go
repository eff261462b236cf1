package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/c14220110/igd-backend/internal/audit"
	"github.com/c14220110/igd-backend/internal/triage/controllers"
	"github.com/c14220110/igd-backend/internal/triage/services"
	"github.com/c14220110/igd-backend/internal/triage/timer"
	"github.com/c14220110/igd-backend/pkg/utils"
)

const secret = "jwt-secret"

type nopPublisher struct{}

func (nopPublisher) Publish(string, interface{}) error { return nil }

func newRouter(t *testing.T) *echo.Echo {
	t.Helper()
	store := audit.NewStore(10)
	timerService, err := services.NewTimerService(timer.Config{}, nopPublisher{}, store, zap.NewNop(), timer.WithTicker(nil))
	require.NoError(t, err)
	t.Cleanup(timerService.Close)

	e := echo.New()
	RegisterTriaseRoutes(e.Group("/api"), Controllers{
		Auth:   controllers.NewAuthController(nil, secret, zap.NewNop()),
		Triase: controllers.NewTriaseController(nil, nopPublisher{}, zap.NewNop()),
		Timer:  controllers.NewTimerController(timerService),
		Audit:  controllers.NewAuditController(store),
	}, secret)
	return e
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := utils.GenerateJWTToken(secret, utils.Claims{IDKaryawan: "12", Role: role}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	return "Bearer " + tok
}

func serve(e *echo.Echo, method, path, body, auth string) int {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}

func TestRegisterTriaseRoutes_Auth(t *testing.T) {
	e := newRouter(t)
	body := `{"systolic":120,"diastolic":80,"heart_rate":90,"respiratory_rate":18,"oxygen_saturation":96,"temperature":37}`

	assert.Equal(t, http.StatusUnauthorized, serve(e, http.MethodPost, "/api/igd/triase/preview", body, ""))
	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/api/igd/triase/preview", body, bearer(t, "Suster")))
	assert.Equal(t, http.StatusForbidden, serve(e, http.MethodPost, "/api/igd/triase/preview", body, bearer(t, "Admin")))

	assert.Equal(t, http.StatusOK, serve(e, http.MethodPost, "/api/igd/timer/3/start", "", bearer(t, "Dokter")))
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/api/igd/timer", "", bearer(t, "Suster")))
	assert.Equal(t, http.StatusOK, serve(e, http.MethodDelete, "/api/igd/timer/3", "", bearer(t, "Suster")))

	assert.Equal(t, http.StatusForbidden, serve(e, http.MethodGet, "/api/igd/audit", "", bearer(t, "Suster")))
	assert.Equal(t, http.StatusOK, serve(e, http.MethodGet, "/api/igd/audit", "", bearer(t, "Dokter")))

	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodPost, "/api/igd/login", `{}`, ""))
}

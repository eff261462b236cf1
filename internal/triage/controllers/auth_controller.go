package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/c14220110/igd-backend/internal/triage/services"
	"github.com/c14220110/igd-backend/pkg/utils"
)

const tokenTTL = 12 * time.Hour

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthController struct {
	Service   *services.StaffService
	JWTSecret string
	Log       *zap.Logger
}

func NewAuthController(service *services.StaffService, jwtSecret string, log *zap.Logger) *AuthController {
	return &AuthController{Service: service, JWTSecret: jwtSecret, Log: log}
}

// Login mengautentikasi suster atau dokter IGD dan mengembalikan token JWT.
func (ac *AuthController) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if req.Username == "" || req.Password == "" {
		return respond(c, http.StatusBadRequest, "Username and Password are required", nil)
	}

	petugas, err := ac.Service.Authenticate(c.Request().Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		return respond(c, http.StatusUnauthorized, "Invalid username or password", nil)
	case errors.Is(err, services.ErrRoleNotAllowed):
		return respond(c, http.StatusForbidden, err.Error(), nil)
	case err != nil:
		ac.Log.Error("Login failed", zap.String("username", req.Username), zap.Error(err))
		return respond(c, http.StatusInternalServerError, "Failed to authenticate: "+err.Error(), nil)
	}

	exp := time.Now().Add(tokenTTL)
	token, err := utils.GenerateJWTToken(ac.JWTSecret, utils.Claims{
		IDKaryawan: strconv.Itoa(petugas.ID_Karyawan),
		Role:       petugas.Role,
		IDRole:     petugas.ID_Role,
		Username:   petugas.Username,
		Nama:       petugas.Nama,
	}, exp)
	if err != nil {
		return respond(c, http.StatusInternalServerError, "Failed to generate token: "+err.Error(), nil)
	}

	return respond(c, http.StatusOK, "Login successful", map[string]interface{}{
		"token":      token,
		"expires_at": exp,
		"petugas":    petugas,
	})
}

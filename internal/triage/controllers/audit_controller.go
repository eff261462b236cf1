package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/c14220110/igd-backend/internal/audit"
)

const defaultAuditLimit = 50

type AuditController struct {
	Store *audit.Store
}

func NewAuditController(store *audit.Store) *AuditController {
	return &AuditController{Store: store}
}

// ListAuditHandler mengembalikan entry audit terbaru, ?limit= opsional.
func (ac *AuditController) ListAuditHandler(c echo.Context) error {
	limit := defaultAuditLimit
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return respond(c, http.StatusBadRequest, "limit must be a non-negative number", nil)
		}
		limit = n
	}
	return respond(c, http.StatusOK, "Audit entries retrieved", ac.Store.Recent(limit))
}

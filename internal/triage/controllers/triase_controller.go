package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/c14220110/igd-backend/internal/common/middlewares"
	"github.com/c14220110/igd-backend/internal/triage/models"
	"github.com/c14220110/igd-backend/internal/triage/scoring"
	"github.com/c14220110/igd-backend/internal/triage/services"
)

type TriaseController struct {
	Service *services.TriaseService
	Hub     services.Publisher
	Log     *zap.Logger
}

func NewTriaseController(service *services.TriaseService, hub services.Publisher, log *zap.Logger) *TriaseController {
	return &TriaseController{Service: service, Hub: hub, Log: log}
}

// validateVitals menolak nilai yang tidak mungkin dari form input.
func validateVitals(v models.VitalsSnapshot) error {
	if v.OxygenSaturation < 0 || v.OxygenSaturation > 100 {
		return errors.New("oxygen_saturation harus 0-100")
	}
	if v.GCS != nil && (*v.GCS < 3 || *v.GCS > 15) {
		return errors.New("gcs harus 3-15")
	}
	if v.PainScore != nil && (*v.PainScore < 0 || *v.PainScore > 10) {
		return errors.New("pain_score harus 0-10")
	}
	return nil
}

func classificationPayload(result models.TriageClassification, v models.VitalsSnapshot) map[string]interface{} {
	meta, _ := models.LevelInfo(result.Level)
	return map[string]interface{}{
		"classification": result,
		"level_info":     meta,
		"flags":          scoring.FlagVitals(v),
	}
}

// PreviewTriase menghitung klasifikasi tanpa menyimpan.
func (tc *TriaseController) PreviewTriase(c echo.Context) error {
	var vitals models.VitalsSnapshot
	if err := c.Bind(&vitals); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := validateVitals(vitals); err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil)
	}
	return respond(c, http.StatusOK, "Triase calculated", classificationPayload(scoring.Score(vitals), vitals))
}

// InputTriase menilai dan menyimpan triase untuk pasien pada query id_pasien
// (dan id_antrian opsional).
func (tc *TriaseController) InputTriase(c echo.Context) error {
	claims, ok := middlewares.ClaimsFrom(c)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Invalid or missing token claims", nil)
	}
	operatorID, ok := intParam(claims.IDKaryawan)
	if !ok {
		return respond(c, http.StatusUnauthorized, "Invalid operator ID in token", nil)
	}

	idPasien, ok := intParam(c.QueryParam("id_pasien"))
	if !ok {
		return respond(c, http.StatusBadRequest, "id_pasien query parameter is required", nil)
	}
	idAntrian := 0
	if raw := c.QueryParam("id_antrian"); raw != "" {
		if idAntrian, ok = intParam(raw); !ok {
			return respond(c, http.StatusBadRequest, "Invalid id_antrian parameter", nil)
		}
	}

	var vitals models.VitalsSnapshot
	if err := c.Bind(&vitals); err != nil {
		return respond(c, http.StatusBadRequest, "Invalid request payload: "+err.Error(), nil)
	}
	if err := validateVitals(vitals); err != nil {
		return respond(c, http.StatusBadRequest, err.Error(), nil)
	}

	triase, err := tc.Service.InputTriase(c.Request().Context(), services.TriaseInput{
		ID_Pasien:   idPasien,
		ID_Antrian:  idAntrian,
		ID_Karyawan: operatorID,
		Vitals:      vitals,
	})
	if errors.Is(err, services.ErrAntrianNotFound) {
		return respond(c, http.StatusNotFound, err.Error(), nil)
	}
	if err != nil {
		return respond(c, http.StatusInternalServerError, "Failed to input triase: "+err.Error(), nil)
	}

	if err := tc.Hub.Publish("triase_update", map[string]interface{}{
		"id_triase":  triase.ID_Triase,
		"id_pasien":  triase.ID_Pasien,
		"id_antrian": triase.ID_Antrian,
		"level":      triase.Level,
		"priority":   triase.Priority,
	}); err != nil {
		tc.Log.Error("Failed to broadcast triase update", zap.Int64("id_triase", triase.ID_Triase), zap.Error(err))
	}

	result := models.TriageClassification{
		Level:            triase.Level,
		Score:            triase.Score,
		CriticalFindings: triase.Findings,
		Recommendations:  scoring.Recommendations(triase.Level),
		Priority:         triase.Priority,
	}
	payload := classificationPayload(result, vitals)
	payload["id_triase"] = triase.ID_Triase
	return respond(c, http.StatusOK, "Triase recorded successfully", payload)
}

// GetTriaseByPasienHandler mengembalikan riwayat triase berdasarkan query id_pasien.
func (tc *TriaseController) GetTriaseByPasienHandler(c echo.Context) error {
	idPasien, ok := intParam(c.QueryParam("id_pasien"))
	if !ok {
		return respond(c, http.StatusBadRequest, "id_pasien parameter is required", nil)
	}

	list, err := tc.Service.GetTriaseByPasien(c.Request().Context(), idPasien)
	if err != nil {
		return respond(c, http.StatusInternalServerError, "Failed to retrieve triase records: "+err.Error(), nil)
	}
	return respond(c, http.StatusOK, "Triase records retrieved successfully", list)
}

// ClassifyDeviationHandler mengecek satu tanda vital: ?nama=heart_rate&nilai=130.
func (tc *TriaseController) ClassifyDeviationHandler(c echo.Context) error {
	name := c.QueryParam("nama")
	normal, ok := scoring.NormalRange(name)
	if !ok {
		return respond(c, http.StatusBadRequest, "nama tanda vital tidak dikenal", nil)
	}
	value, err := strconv.ParseFloat(c.QueryParam("nilai"), 64)
	if err != nil {
		return respond(c, http.StatusBadRequest, "nilai harus berupa angka", nil)
	}

	return respond(c, http.StatusOK, "Deviation classified", map[string]interface{}{
		"nama":         name,
		"nilai":        value,
		"normal_range": normal,
		"deviation":    scoring.ClassifyVitalSignDeviation(name, value),
	})
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultValues(t *testing.T) {
	for _, key := range []string{"APP_ENV", "PORT", "DB_HOST", "DB_PORT", "LOG_LEVEL", "LOG_FORMAT", "TRIAGE_WARNING_SECONDS", "TRIAGE_CRITICAL_SECONDS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "3306", cfg.DBPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 90, cfg.TriageWarningSeconds)
	assert.Equal(t, 120, cfg.TriageCriticalSeconds)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DB_USER", "igd")
	t.Setenv("DB_NAME", "rumahsakit")
	t.Setenv("JWT_SECRET_KEY", "rahasia")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRIAGE_WARNING_SECONDS", "60")
	t.Setenv("TRIAGE_CRITICAL_SECONDS", "bukan-angka")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "igd", cfg.DBUser)
	assert.Equal(t, "rumahsakit", cfg.DBName)
	assert.Equal(t, "rahasia", cfg.JWTSecret)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 60, cfg.TriageWarningSeconds)
	assert.Equal(t, 120, cfg.TriageCriticalSeconds)
}

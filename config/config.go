package config

import (
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string
	LogLevel   string
	LogFormat  string

	// Ambang timer triase dalam detik.
	TriageWarningSeconds  int
	TriageCriticalSeconds int
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig memuat konfigurasi sekali dari .env dan environment variable.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = Load()
	})
	return cfg
}

// Load membaca konfigurasi dari environment variable tanpa cache.
func Load() *Config {
	return &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		Port:                  getEnv("PORT", "8080"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "3306"),
		DBName:                os.Getenv("DB_NAME"),
		JWTSecret:             os.Getenv("JWT_SECRET_KEY"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		TriageWarningSeconds:  getEnvInt("TRIAGE_WARNING_SECONDS", 90),
		TriageCriticalSeconds: getEnvInt("TRIAGE_CRITICAL_SECONDS", 120),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q bukan angka, memakai default %d", key, v, fallback)
		return fallback
	}
	return n
}

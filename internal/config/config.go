package config

import (
	"os"
	"strconv"
)

// StorageConfig holds the on-disk layout used by the upload pipeline.
type StorageConfig struct {
	BaseDir string
	// ServeFiles mounts original/ and converted/ as static routes.
	ServeFiles bool
}

// ConverterConfig selects and configures the grayscale conversion backend.
type ConverterConfig struct {
	// Backend is either "imagemagick" (external tool) or "native" (pure Go).
	Backend    string
	Binary     string
	TimeoutSec int
}

// LogConfig controls the diagnostic logger written to stderr.
type LogConfig struct {
	Level  string
	Format string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost     string
	Port        string
	MaxUploadMB int
	Storage     StorageConfig
	Converter   ConverterConfig
	Log         LogConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:     getEnv("APP_HOST", "localhost:8080"),
		Port:        getEnv("PORT", "8080"),
		MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 32),
		Storage: StorageConfig{
			BaseDir:    getEnv("BASE_DIR", "/var/www/webapp"),
			ServeFiles: getEnvBool("SERVE_FILES", true),
		},
		Converter: ConverterConfig{
			Backend:    getEnv("CONVERTER_BACKEND", "imagemagick"),
			Binary:     getEnv("CONVERTER_BINARY", "convert"),
			TimeoutSec: getEnvInt("CONVERT_TIMEOUT_SEC", 0),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

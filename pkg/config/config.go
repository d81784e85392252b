package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Artifacts ArtifactsConfig
	Uplift    UpliftConfig
	CORS      CORSConfig
}

type AppConfig struct {
	Name        string `validate:"required"`
	Version     string
	Environment string `validate:"oneof=development staging production test"`
}

type ServerConfig struct {
	Port string `validate:"required,numeric"`
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	// empty disables the admin route guard
	SecretKey string
}

type ArtifactsConfig struct {
	Source string `validate:"oneof=file postgres"`
	// bundle file for the file source (.json, .yaml, .yml)
	Path string `validate:"required_if=Source file"`
}

type UpliftConfig struct {
	NormalizationPolicy string  `validate:"oneof=sqrt cap none"`
	CapDivisor          float64 `validate:"gt=0"`
	ZeroFillMissing     bool
}

type CORSConfig struct {
	AllowOrigins []string `validate:"min=1"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	capDivisor, err := strconv.ParseFloat(getEnv("UPLIFT_CAP_DIVISOR", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPLIFT_CAP_DIVISOR: %w", err)
	}

	zeroFill, err := strconv.ParseBool(getEnv("UPLIFT_ZERO_FILL_MISSING", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid UPLIFT_ZERO_FILL_MISSING: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Uplift Service"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "5000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "uplift"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Artifacts: ArtifactsConfig{
			Source: getEnv("ARTIFACT_SOURCE", "file"),
			Path:   getEnv("ARTIFACT_PATH", "artifacts/bundle.json"),
		},
		Uplift: UpliftConfig{
			NormalizationPolicy: strings.ToLower(getEnv("UPLIFT_NORMALIZATION", "sqrt")),
			CapDivisor:          capDivisor,
			ZeroFillMissing:     zeroFill,
		},
		CORS: CORSConfig{
			AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Artifacts.Source == "postgres" && cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

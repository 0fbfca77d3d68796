package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	JWTAccessSecret  string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration

	RedisURL string

	UploadDir     string
	CloudinaryURL string
}

// Load reads configuration from the environment once at startup. Both signing
// secrets are mandatory: starting without them must abort the process.
func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "3001"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:5173"),

		JWTAccessSecret:  os.Getenv("JWT_ACCESS_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),

		RedisURL: os.Getenv("REDIS_URL"),

		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
	}

	for key, val := range map[string]string{
		"JWT_ACCESS_SECRET":  cfg.JWTAccessSecret,
		"JWT_REFRESH_SECRET": cfg.JWTRefreshSecret,
	} {
		if val == "" {
			return nil, fmt.Errorf("missing env: %s", key)
		}
	}

	var err error
	cfg.AccessTokenTTL, err = time.ParseDuration(getEnv("JWT_ACCESS_EXPIRES", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_EXPIRES: %w", err)
	}
	cfg.RefreshTokenTTL, err = time.ParseDuration(getEnv("JWT_REFRESH_EXPIRES", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_EXPIRES: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

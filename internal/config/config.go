package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// TMDB metadata API
	TMDBAPIKey   string
	TMDBBaseURL  string
	TMDBImageURL string
	TMDBTimeout  time.Duration

	// Regions whose movies/series the bulk sync imports (comma-separated
	// ISO 3166-1 country codes).
	SyncRegions string

	// Admin
	AdminEmails   string
	AdminToken    string
	AdminPassword string

	// Server
	Port        string
	CORSOrigins string
	UploadDir   string

	// Logging
	LogFile string
}

func Load() *Config {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "bdcinema"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		TMDBAPIKey:   getEnv("TMDB_API_KEY", ""),
		TMDBBaseURL:  getEnv("TMDB_BASE_URL", "https://api.themoviedb.org/3"),
		TMDBImageURL: getEnv("TMDB_IMAGE_URL", "https://image.tmdb.org/t/p"),
		TMDBTimeout:  parseDuration(getEnv("TMDB_TIMEOUT", "10s")),

		SyncRegions: getEnv("SYNC_REGIONS", "BD"),

		AdminEmails:   getEnv("ADMIN_EMAILS", ""),
		AdminToken:    getEnv("ADMIN_TOKEN", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		UploadDir:   getEnv("UPLOAD_DIR", "./uploads"),

		LogFile: getEnv("LOG_FILE", ""),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}

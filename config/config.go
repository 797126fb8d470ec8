package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything read from the environment. Load is called from main
// after godotenv so .env values are visible.
type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// StorageTimeout bounds every repository call.
	StorageTimeout time.Duration

	JWTSecret     []byte
	JWTExpiration time.Duration

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// BaseURL prefixes URLs of disk-stored uploads.
	BaseURL string
	// UploadDir is where disk intake writes files. Empty switches intake to
	// inline (base64) storage for hosts without a durable disk.
	UploadDir     string
	MaxUploadSize int64
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "cityhub"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		StorageTimeout: getDuration("STORAGE_TIMEOUT", 5*time.Second),

		JWTSecret:     []byte(getEnv("JWT_SECRET", "change-this-in-production")),
		JWTExpiration: getDuration("JWT_EXPIRATION", 24*time.Hour),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		BaseURL:       getEnv("API_BASE_URL", "http://localhost:8080"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize: int64(getInt("MAX_UPLOAD_SIZE_MB", 50)) << 20,
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string
	SessionKey string
	DB         DBConfig
	Storage    StorageConfig
	Google     GoogleConfig
}

type DBConfig struct {
	DSN string
}

type StorageConfig struct {
	// Backend: "local" (файлы в MediaDir) или "minio".
	Backend  string
	MediaDir string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
}

// Enabled: вход через Google включается только когда заданы ключи.
func (g GoogleConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != "" && g.RedirectURL != ""
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Предупреждение: .env не найден, используются системные переменные.")
	}

	return Config{
		HTTPPort:   getEnv("PORT", "8080"),
		SessionKey: getEnv("SESSION_KEY", ""),
		DB: DBConfig{
			DSN: getEnv("DATABASE_URL", ""),
		},
		Storage: StorageConfig{
			Backend:        getEnv("STORAGE_BACKEND", "local"),
			MediaDir:       getEnv("MEDIA_DIR", "./media"),
			MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			MinioBucket:    getEnv("MINIO_BUCKET", "vacation-images"),
			MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Google: GoogleConfig{
			ClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
			ClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
			RedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

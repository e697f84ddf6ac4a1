package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Oracle   OracleConfig
	Session  SessionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type OracleConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxRetries     int
}

type SessionConfig struct {
	PairedListCap    int
	SimilarityK      int
	PersonalListCap  int
	MoviesPageSize   int
	SessionPageSize  int
	CacheTTL         time.Duration
	CachePurgePeriod time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Oracle: OracleConfig{
			BaseURL:        getEnv("ORACLE_BASE_URL", "http://localhost:8501"),
			RequestTimeout: getEnvAsDuration("ORACLE_REQUEST_TIMEOUT", 5*time.Second),
			MaxRetries:     getEnvAsInt("ORACLE_MAX_RETRIES", 3),
		},
		Session: SessionConfig{
			PairedListCap:    getEnvAsInt("SESSION_PAIRED_LIST_CAP", 50),
			SimilarityK:      getEnvAsInt("SESSION_SIMILARITY_K", 20),
			PersonalListCap:  getEnvAsInt("SESSION_PERSONAL_LIST_CAP", 20),
			MoviesPageSize:   getEnvAsInt("MOVIES_PAGE_SIZE", 15),
			SessionPageSize:  getEnvAsInt("SESSION_MOVIES_PAGE_SIZE", 10),
			CacheTTL:         getEnvAsDuration("SESSION_CACHE_TTL", 1*time.Hour),
			CachePurgePeriod: getEnvAsDuration("SESSION_CACHE_PURGE_PERIOD", 10*time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

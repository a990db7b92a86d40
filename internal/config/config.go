package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App struct {
		Port        string
		Debug       bool
		FrontendURL string
		// RemoteUserHeader carries the username set by the auth proxy.
		RemoteUserHeader string
	}
	DB struct {
		Driver   string
		Host     string
		Port     string
		User     string
		Password string
		DBName   string
		SSLMode  string
	}
	Redis struct {
		Enabled  bool
		Host     string
		Port     string
		Password string
		DB       int
		GeneTTL  time.Duration
	}
	Workers struct {
		ReportEnabled  bool
		ReportInterval time.Duration
	}
	RateLimit struct {
		RequestsPerSecond int
		Burst             int
		// GlobalRPS caps all clients together; zero disables it.
		GlobalRPS int
	}
	Export struct {
		// Store is "local" or "s3".
		Store     string
		OutputDir string
		S3        struct {
			Bucket    string
			Region    string
			Endpoint  string
			PathStyle bool
			Prefix    string
		}
	}
}

func Load() *Config {
	cfg := &Config{}

	// App
	cfg.App.Port = getEnv("PORT", "8000")
	cfg.App.Debug = getEnvAsBool("DEBUG", false)
	cfg.App.FrontendURL = getEnv("FRONTEND_URL", "http://localhost:3000")
	cfg.App.RemoteUserHeader = getEnv("REMOTE_USER_HEADER", "X-Remote-User")

	// DB
	cfg.DB.Driver = strings.ToLower(getEnv("DB_DRIVER", "postgres"))
	cfg.DB.Host = getEnv("DB_HOST", "localhost")
	cfg.DB.Port = getEnv("DB_PORT", defaultDBPort(cfg.DB.Driver))
	cfg.DB.User = getEnv("DB_USER", "postgres")
	cfg.DB.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.DB.DBName = getEnv("DB_NAME", "seqrdb")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Redis
	cfg.Redis.Enabled = getEnvAsBool("REDIS_ENABLED", true)
	cfg.Redis.Host = getEnv("REDIS_HOST", "localhost")
	cfg.Redis.Port = getEnv("REDIS_PORT", "6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", 0)
	cfg.Redis.GeneTTL = getEnvAsDuration("REDIS_GENE_TTL", 24*time.Hour)

	// Workers
	cfg.Workers.ReportEnabled = getEnvAsBool("CASE_REVIEW_REPORT_ENABLED", false)
	cfg.Workers.ReportInterval = getEnvAsDuration("CASE_REVIEW_REPORT_INTERVAL", 24*time.Hour)

	// Rate Limit
	cfg.RateLimit.RequestsPerSecond = getEnvAsInt("RATE_LIMIT_RPS", 20)
	cfg.RateLimit.Burst = getEnvAsInt("RATE_LIMIT_BURST", 40)
	cfg.RateLimit.GlobalRPS = getEnvAsInt("RATE_LIMIT_GLOBAL_RPS", 0)

	cfg.Export.Store = strings.ToLower(getEnv("EXPORT_STORE", "local"))
	cfg.Export.OutputDir = getEnv("EXPORT_OUTPUT_DIR", "./data/case_review")
	cfg.Export.S3.Bucket = getEnv("EXPORT_S3_BUCKET", "")
	cfg.Export.S3.Region = getEnv("EXPORT_S3_REGION", "us-east-1")
	cfg.Export.S3.Endpoint = getEnv("EXPORT_S3_ENDPOINT", "")
	cfg.Export.S3.PathStyle = getEnvAsBool("EXPORT_S3_PATH_STYLE", false)
	cfg.Export.S3.Prefix = getEnv("EXPORT_S3_PREFIX", "case_review/")

	return cfg
}

func defaultDBPort(driver string) string {
	if driver == "mysql" {
		return "3306"
	}
	return "5432"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if dur, err := time.ParseDuration(value); err == nil {
			return dur
		}
	}
	return defaultValue
}

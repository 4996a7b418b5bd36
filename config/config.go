// config/config.go
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendDynamo   = "dynamodb"
)

type Config struct {
	Port           string
	AllowedOrigins string

	StoreBackend string
	DatabaseURL  string

	AWSRegion        string
	DynamoEndpoint   string
	CodesTable       string
	UsersTable       string
	ScoresStatsTable string
	ScoresTable      string

	CodeMaxAttempts int

	Archive ArchiveConfig
}

// ArchiveConfig describes the S3-compatible bucket daily exports are copied to.
type ArchiveConfig struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	AccessKeySecret string
	Prefix          string
	Interval        time.Duration
}

// Enabled reports whether a bucket has been configured.
func (a ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] no .env file found, reading environment variables directly")
	}
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "5200"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "*"),

		StoreBackend: strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),

		AWSRegion:        getEnv("AWS_REGION", "eu-west-1"),
		DynamoEndpoint:   os.Getenv("DYNAMODB_ENDPOINT"),
		CodesTable:       getEnv("CODES_TABLE", "codes"),
		UsersTable:       getEnv("USERS_TABLE", "users"),
		ScoresStatsTable: getEnv("SCORES_STATS_TABLE", "scoresStats"),
		ScoresTable:      getEnv("SCORES_TABLE", "scores"),

		CodeMaxAttempts: getEnvAsInt("CODE_MAX_ATTEMPTS", 64),

		Archive: ArchiveConfig{
			Bucket:          os.Getenv("ARCHIVE_BUCKET"),
			Endpoint:        os.Getenv("ARCHIVE_ENDPOINT"),
			Region:          getEnv("ARCHIVE_REGION", "auto"),
			AccessKeyID:     os.Getenv("ARCHIVE_ACCESS_KEY_ID"),
			AccessKeySecret: os.Getenv("ARCHIVE_ACCESS_KEY_SECRET"),
			Prefix:          getEnv("ARCHIVE_PREFIX", "exports"),
			Interval:        getEnvAsDuration("ARCHIVE_INTERVAL", 24*time.Hour),
		},
	}

	switch cfg.StoreBackend {
	case BackendMemory, BackendDynamo:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable not set")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[CONFIG] invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("[CONFIG] invalid duration value for %s: %s, using default: %s", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type QuoteServiceConfig struct {
	Port           string
	BrokerPhone    string
	EstimatorDelay time.Duration
	SessionTTL     time.Duration
	RuleSource     string
	RuleSheetPath  string
	AssetsBucket   string
	ArabicFontKey  string
	ArabicFontPath string
	PostgresCfg    PostgresConfig
	RedisCfg       RedisConfig
	MinioCfg       MinioConfig
	RabbitMQCfg    RabbitMQConfig
}

type PostgresConfig struct {
	DBname   string
	Username string
	Password string
	Host     string
	Port     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type MinioConfig struct {
	MinioURL       string
	MinioAccessKey string
	MinioSecretKey string
	MinioLocation  string
	MinioSecure    string
}

type RabbitMQConfig struct {
	Username string
	Password string
	Host     string
	Port     string
}

func New() *QuoteServiceConfig {
	// Optional .env file for local development; real env vars win either way.
	_ = godotenv.Load()

	return &QuoteServiceConfig{
		Port:           getEnvOrDefault("PORT", "8086"),
		BrokerPhone:    getEnvOrDefault("BROKER_PHONE", "971501234567"),
		EstimatorDelay: time.Duration(getEnvIntOrDefault("ESTIMATOR_DELAY_MS", 1500)) * time.Millisecond,
		SessionTTL:     time.Duration(getEnvIntOrDefault("SESSION_TTL_MIN", 30)) * time.Minute,
		RuleSource:     getEnvOrDefault("PRICING_RULE_SOURCE", "embedded"),
		RuleSheetPath:  getEnvOrDefault("PRICING_RULE_SHEET", ""),
		AssetsBucket:   getEnvOrDefault("ASSETS_BUCKET", "quote-assets"),
		ArabicFontKey:  getEnvOrDefault("ARABIC_FONT_OBJECT", "fonts/NotoNaskhArabic-Regular.ttf"),
		ArabicFontPath: getEnvOrDefault("ARABIC_FONT_PATH", ""),
		PostgresCfg: PostgresConfig{
			DBname:   getEnvOrDefault("POSTGRES_DB", "quote_service"),
			Username: getEnvOrDefault("POSTGRES_USER", "postgres"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		},
		RedisCfg: RedisConfig{
			Host:     getEnvOrDefault("REDIS_HOST", "localhost"),
			Port:     getEnvOrDefault("REDIS_PORT", "6379"),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getEnvIntOrDefault("REDIS_DB", 0),
		},
		MinioCfg: MinioConfig{
			MinioURL:       getEnvOrDefault("MINIO_ENDPOINT", "http://localhost:9000"),
			MinioAccessKey: getEnvOrDefault("MINIO_ACCESS_KEY", "minio"),
			MinioSecretKey: getEnvOrDefault("MINIO_SECRET_KEY", "minio123"),
			MinioLocation:  getEnvOrDefault("MINIO_LOCATION", "us-east-1"),
			MinioSecure:    getEnvOrDefault("MINIO_SECURE", "false"),
		},
		RabbitMQCfg: RabbitMQConfig{
			Username: getEnvOrDefault("RABBITMQ_USER", "admin"),
			Password: getEnvOrDefault("RABBITMQ_PWD", "admin"),
			Host:     getEnvOrDefault("RABBITMQ_HOST", "localhost"),
			Port:     getEnvOrDefault("RABBITMQ_PORT", "5672"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

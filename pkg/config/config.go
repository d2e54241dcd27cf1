package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string

	// Client settings
	APIBaseURL  string
	CachePath   string
	HTTPTimeout time.Duration

	// Store server settings
	StorePort     string
	PostgresURL   string
	MongoURI      string
	MongoDatabase string

	// Media host (S3-compatible object storage)
	MediaBucket   string
	MediaRegion   string
	MediaEndpoint string
	MediaBaseURL  string

	// OTP mail delivery
	OTPEndpoint   string
	OTPServiceID  string
	OTPTemplateID string
	OTPPublicKey  string
}

func Load() *Config {
	// Missing .env is fine, plain environment variables still apply.
	_ = godotenv.Load()

	return &Config{
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		APIBaseURL:  getEnv("PICLY_API_URL", "http://localhost:8080"),
		CachePath:   getEnv("PICLY_CACHE_PATH", "picly.db"),
		HTTPTimeout: getDuration("PICLY_HTTP_TIMEOUT", 15*time.Second),

		StorePort:     getEnv("PORT", "8080"),
		PostgresURL:   getEnv("POSTGRES_CONN_STR", ""),
		MongoURI:      getEnv("MONGO_URI", ""),
		MongoDatabase: getEnv("MONGO_DATABASE", "picly"),

		MediaBucket:   getEnv("MEDIA_BUCKET", ""),
		MediaRegion:   getEnv("MEDIA_REGION", "us-east-1"),
		MediaEndpoint: getEnv("MEDIA_ENDPOINT", ""),
		MediaBaseURL:  getEnv("MEDIA_BASE_URL", ""),

		OTPEndpoint:   getEnv("OTP_ENDPOINT", "https://api.emailjs.com/api/v1.0/email/send"),
		OTPServiceID:  getEnv("OTP_SERVICE_ID", ""),
		OTPTemplateID: getEnv("OTP_TEMPLATE_ID", ""),
		OTPPublicKey:  getEnv("OTP_PUBLIC_KEY", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

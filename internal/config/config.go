package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mkhai207/app-shop-checkout/internal/domain"
	"github.com/mkhai207/app-shop-checkout/internal/pricing"
)

type Config struct {
	HTTPPort        string
	BackendBaseURL  string
	RedisAddr       string
	KafkaBrokers    []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	Pricing pricing.Config
}

// Load reads the environment (plus an optional .env file) into a Config
// with working local defaults.
func Load() *Config {
	_ = godotenv.Load() // missing .env is fine

	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		BackendBaseURL:  getEnv("BACKEND_BASE_URL", "http://localhost:3000/api/v1"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		Pricing: pricing.Config{
			FreeShippingThreshold: getEnvMoney("FREE_SHIPPING_THRESHOLD", pricing.DefaultFreeShippingThreshold),
			StandardShippingFee:   getEnvMoney("STANDARD_SHIPPING_FEE", pricing.DefaultStandardShippingFee),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvMoney(key string, defaultValue domain.Money) domain.Money {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds environment-driven configuration for the API service.
type Config struct {
	Addr        string
	DatabaseURL string

	// Razorpay credentials. KeySecret also signs the checkout callback HMAC.
	RazorpayKeyID     string
	RazorpayKeySecret string

	// Shiprocket integration. Empty email/password means "not configured":
	// shipments are stored locally with a placeholder id instead.
	ShiprocketEmail    string
	ShiprocketPassword string
	ShiprocketAPIURL   string

	// Admin login credentials and the secret used to sign admin tokens.
	AdminEmail    string
	AdminPassword string
	JWTSecret     string

	// Optional Redis rate limiting for checkout/appointment POSTs.
	RedisAddr  string
	RedisDB    int
	RateLimit  int
	RateWindow time.Duration

	// Optional Kafka shipment-task queue. Empty brokers means tasks are
	// dispatched in-process.
	KafkaBrokers []string
	KafkaTopic   string
	KafkaGroupID string

	UploadDir string
}

// Load reads configuration from environment variables, applying defaults
// and validating the values the service cannot run without.
func Load() (Config, error) {
	cfg := Config{
		Addr:               getEnv("ADDR", ":8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		RazorpayKeyID:      os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:  os.Getenv("RAZORPAY_KEY_SECRET"),
		ShiprocketEmail:    os.Getenv("SHIPROCKET_EMAIL"),
		ShiprocketPassword: os.Getenv("SHIPROCKET_PASSWORD"),
		ShiprocketAPIURL:   getEnv("SHIPROCKET_API_URL", "https://apiv2.shiprocket.in/v1/external"),
		AdminEmail:         os.Getenv("ADMIN_EMAIL"),
		AdminPassword:      os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		KafkaBrokers:       splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:         getEnv("KAFKA_SHIPMENT_TOPIC", "shipment-tasks"),
		KafkaGroupID:       getEnv("KAFKA_GROUP_ID", "shipment-worker"),
		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		RateLimit:          30,
		RateWindow:         time.Minute,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is not set")
	}

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return Config{}, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.RedisDB = redisDB

	rateLimit, err := getEnvInt("RATE_LIMIT", cfg.RateLimit)
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	if rateLimit <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT must be > 0")
	}
	cfg.RateLimit = rateLimit

	windowSec, err := getEnvInt("RATE_WINDOW_SEC", int(cfg.RateWindow.Seconds()))
	if err != nil {
		return Config{}, fmt.Errorf("invalid RATE_WINDOW_SEC: %w", err)
	}
	if windowSec <= 0 {
		return Config{}, fmt.Errorf("RATE_WINDOW_SEC must be > 0")
	}
	cfg.RateWindow = time.Duration(windowSec) * time.Second

	return cfg, nil
}

// ShippingConfigured reports whether Shiprocket credentials are present.
func (c Config) ShippingConfigured() bool {
	return c.ShiprocketEmail != "" && c.ShiprocketPassword != ""
}

func getEnv(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func getEnvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	return strconv.Atoi(v)
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	Port string

	MongoConnString string
	MongoDatabase   string

	RazorpayKeyID     string
	RazorpayKeySecret string

	// Sign is the HS256 key for login tokens.
	Sign string

	RedisAddr string

	SMTP SMTPConfig

	NotifyMaxAttempts int
	NotifyBackoff     time.Duration

	RateLimitRPS   float64
	RateLimitBurst int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func GetSecret(key string) (string, error) {
	val, exist := os.LookupEnv(key)
	if exist && val != "" {
		return val, nil
	}
	return "", fmt.Errorf("no env variable with key %v", key)
}

// Load reads a .env file when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using process environment")
	}

	cfg := &Config{
		Port:          getEnvOrDefault("PORT", "80"),
		MongoDatabase: getEnvOrDefault("MONGODB_DATABASE", "travelify"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvAsIntOrDefault("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnvOrDefault("SMTP_FROM", "bookings@travelify.local"),
		},
		NotifyMaxAttempts: getEnvAsIntOrDefault("NOTIFY_MAX_ATTEMPTS", 5),
		NotifyBackoff:     getEnvAsDurationOrDefault("NOTIFY_BACKOFF", 2*time.Second),
		RateLimitRPS:      getEnvAsFloatOrDefault("RATE_LIMIT_RPS", 5),
		RateLimitBurst:    getEnvAsIntOrDefault("RATE_LIMIT_BURST", 10),
	}

	required := []struct {
		key string
		dst *string
	}{
		{"MONGODB_CONNSTRING", &cfg.MongoConnString},
		{"RAZORPAY_KEY_ID", &cfg.RazorpayKeyID},
		{"RAZORPAY_KEY_SECRET", &cfg.RazorpayKeySecret},
		{"SIGN", &cfg.Sign},
	}
	for _, r := range required {
		val, err := GetSecret(r.key)
		if err != nil {
			return nil, err
		}
		*r.dst = val
	}

	if cfg.NotifyMaxAttempts < 1 {
		return nil, fmt.Errorf("NOTIFY_MAX_ATTEMPTS must be at least 1, got %v", cfg.NotifyMaxAttempts)
	}

	return cfg, nil
}

func (c *Config) ListenAddr() string {
	if len(c.Port) > 0 && c.Port[0] == ':' {
		return c.Port
	}
	return ":" + c.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	log.Infof("environment variable %s is not set, using default value", key)
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warnf("environment variable %s is not an integer, using default value", key)
		return defaultValue
	}
	log.Infof("environment variable %s is not set, using default value", key)
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
		log.Warnf("environment variable %s is not a number, using default value", key)
	}
	return defaultValue
}

func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Warnf("environment variable %s is not a duration, using default value", key)
	}
	return defaultValue
}

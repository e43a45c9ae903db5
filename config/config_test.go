package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("MONGODB_CONNSTRING", "mongodb://localhost:27017")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_test_secret")
	t.Setenv("SIGN", "signing-key")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{"PORT", "MONGODB_DATABASE", "REDIS_ADDR", "SMTP_HOST", "SMTP_PORT",
		"NOTIFY_MAX_ATTEMPTS", "NOTIFY_BACKOFF", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "80", cfg.Port)
	assert.Equal(t, ":80", cfg.ListenAddr())
	assert.Equal(t, "travelify", cfg.MongoDatabase)
	assert.Equal(t, "rzp_test_secret", cfg.RazorpayKeySecret)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 5, cfg.NotifyMaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.NotifyBackoff)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", ":8080")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("NOTIFY_MAX_ATTEMPTS", "3")
	t.Setenv("NOTIFY_BACKOFF", "500ms")
	t.Setenv("SMTP_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr())
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.NotifyMaxAttempts)
	assert.Equal(t, 500*time.Millisecond, cfg.NotifyBackoff)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadMissingSecret(t *testing.T) {
	tests := []string{"MONGODB_CONNSTRING", "RAZORPAY_KEY_ID", "RAZORPAY_KEY_SECRET", "SIGN"}

	for _, missing := range tests {
		setRequired(t)
		t.Setenv(missing, "")

		_, err := Load()
		assert.Errorf(t, err, "expected error when %v is missing", missing)
		if err != nil {
			assert.Contains(t, err.Error(), missing)
		}
	}
}

func TestLoadRejectsZeroAttempts(t *testing.T) {
	setRequired(t)
	t.Setenv("NOTIFY_MAX_ATTEMPTS", "0")

	_, err := Load()
	assert.Error(t, err)
}

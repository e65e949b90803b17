package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "HOST", "LOCKER_BASE_URL", "LOCKER_PORT", "LOCKER_TIMEOUT",
		"SMTP_HOST", "SMTP_PORT", "SMTP_SENDER", "SMTP_PASSWORD", "SMTP_RECEIVER",
		"WATCH_ENABLED", "WATCH_SCHEDULE", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	assert.Equal(t, int32(8190), cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 2, cfg.ShutdownTimeoutInSeconds)
	assert.Equal(t, "http://localhost", cfg.Locker.BaseURL)
	assert.Equal(t, 5003, cfg.Locker.Port)
	assert.Equal(t, 10*time.Second, cfg.Locker.Timeout)
	assert.Equal(t, "smtp.yandex.ru", cfg.SMTP.Host)
	assert.Equal(t, 465, cfg.SMTP.Port)
	assert.False(t, cfg.Watch.Enabled)
	assert.Equal(t, "*/5 * * * *", cfg.Watch.Schedule)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.SMTP.MailConfigured())
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LOCKER_BASE_URL", "http://192.168.0.10")
	t.Setenv("LOCKER_PORT", "6000")
	t.Setenv("LOCKER_TIMEOUT", "3s")
	t.Setenv("SMTP_SENDER", "robot@yandex.ru")
	t.Setenv("SMTP_PASSWORD", "app-password")
	t.Setenv("SMTP_RECEIVER", "ops@example.com")
	t.Setenv("WATCH_ENABLED", "true")
	t.Setenv("WATCH_SCHEDULE", "0 * * * *")
	t.Setenv("LOG_FORMAT", "json")

	cfg := NewConfig()

	assert.Equal(t, int32(9000), cfg.HTTP.Port)
	assert.Equal(t, "http://192.168.0.10", cfg.Locker.BaseURL)
	assert.Equal(t, 6000, cfg.Locker.Port)
	assert.Equal(t, 3*time.Second, cfg.Locker.Timeout)
	assert.True(t, cfg.SMTP.MailConfigured())
	assert.True(t, cfg.Watch.Enabled)
	assert.Equal(t, "0 * * * *", cfg.Watch.Schedule)
	assert.Equal(t, "json", cfg.Log.Format)
}

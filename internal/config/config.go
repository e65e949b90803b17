package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Locker
		SMTP
		Watch
		Log
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Locker struct {
		BaseURL string // Scheme and host of the controller, without port
		Port    int
		Timeout time.Duration
	}
	SMTP struct {
		Host     string
		Port     int
		Sender   string // Also the login of the SMTP account
		Password string
		Receiver string // Default recipient of notifications
	}
	Watch struct {
		Enabled  bool
		Schedule string // Cron format: "*/5 * * * *" = every 5 minutes
	}
	Log struct {
		Level     string
		Format    string // "text" or "json"
		AddSource bool
	}
)

// MailConfigured reports whether notifications can be sent.
func (s SMTP) MailConfigured() bool {
	return s.Sender != "" && s.Password != "" && s.Receiver != ""
}

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("locker_base_url", "http://localhost")
	v.SetDefault("locker_port", 5003)
	v.SetDefault("locker_timeout", "10s")

	v.SetDefault("smtp_host", "smtp.yandex.ru")
	v.SetDefault("smtp_port", 465)
	v.SetDefault("smtp_sender", "")
	v.SetDefault("smtp_password", "")
	v.SetDefault("smtp_receiver", "")

	v.SetDefault("watch_enabled", false)
	v.SetDefault("watch_schedule", "*/5 * * * *")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("log_add_source", false)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Locker: Locker{
			BaseURL: v.GetString("LOCKER_BASE_URL"),
			Port:    v.GetInt("LOCKER_PORT"),
			Timeout: v.GetDuration("LOCKER_TIMEOUT"),
		},
		SMTP: SMTP{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Sender:   v.GetString("SMTP_SENDER"),
			Password: v.GetString("SMTP_PASSWORD"),
			Receiver: v.GetString("SMTP_RECEIVER"),
		},
		Watch: Watch{
			Enabled:  v.GetBool("WATCH_ENABLED"),
			Schedule: v.GetString("WATCH_SCHEDULE"),
		},
		Log: Log{
			Level:     v.GetString("LOG_LEVEL"),
			Format:    v.GetString("LOG_FORMAT"),
			AddSource: v.GetBool("LOG_ADD_SOURCE"),
		},
	}
}

package entrypoint

import (
	"github.com/mrlokans/postomat/internal/config"
	"github.com/mrlokans/postomat/internal/locker"
	"github.com/mrlokans/postomat/internal/logging"
	"github.com/mrlokans/postomat/internal/notify"
	"github.com/mrlokans/postomat/internal/scheduler"
)

// SetupLogging installs the configured slog logger as the process default.
func SetupLogging(cfg *config.Config) {
	logging.Setup(nil, logging.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})
}

// NewLockerClient builds the locker client from configuration.
func NewLockerClient(cfg *config.Config) *locker.Client {
	return locker.NewClient(cfg.Locker.BaseURL,
		locker.WithPort(cfg.Locker.Port),
		locker.WithTimeout(cfg.Locker.Timeout))
}

// NewMailer builds the SMTPS mailer, or returns nil when credentials are missing.
func NewMailer(cfg *config.Config) *notify.Mailer {
	if cfg.SMTP.Sender == "" || cfg.SMTP.Password == "" {
		return nil
	}
	return notify.NewMailer(notify.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Sender,
		Password: cfg.SMTP.Password,
	})
}

// NewStatusWatcher builds the watcher, attaching mail notifications when
// both the mailer and a receiver are configured.
func NewStatusWatcher(cfg *config.Config, source scheduler.StatusSource, mailer *notify.Mailer) *scheduler.StatusWatcher {
	var opts []scheduler.WatchOption
	if mailer != nil && cfg.SMTP.Receiver != "" {
		opts = append(opts, scheduler.WithNotifier(mailer, cfg.SMTP.Receiver))
	}
	return scheduler.NewStatusWatcher(source, cfg.Watch.Schedule, opts...)
}

package http

import "github.com/mrlokans/postomat/internal/converter"

// RouterConfig contains all dependencies needed to create the HTTP router.
type RouterConfig struct {
	// Locker access (required)
	Locker LockerClient

	// Converter used to dump cells; converter.Default() when nil
	Converter *converter.Converter

	// Notifications (optional); Receiver is the default recipient
	Mailer   MessageSender
	Receiver string

	// Status watcher (optional)
	Watcher Watcher

	// Application info
	Version string
}

package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/postomat/internal/http"
	"github.com/mrlokans/postomat/internal/locker"
	"github.com/mrlokans/postomat/internal/notify"
	"github.com/mrlokans/postomat/internal/scheduler"
)

// =============================================================================
// Locker Access
// =============================================================================

var _ http.StatusReader = (*locker.Client)(nil)
var _ http.LockerClient = (*locker.Client)(nil)
var _ scheduler.StatusSource = (*locker.Client)(nil)

// =============================================================================
// Notifications
// =============================================================================

var _ http.MessageSender = (*notify.Mailer)(nil)
var _ scheduler.Notifier = (*notify.Mailer)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.Watcher = (*scheduler.StatusWatcher)(nil)

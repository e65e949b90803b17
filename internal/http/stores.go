package http

import (
	"context"

	"github.com/mrlokans/postomat/internal/entities"
	"github.com/mrlokans/postomat/internal/notify"
	"github.com/mrlokans/postomat/internal/scheduler"
)

// This file consolidates the interfaces the controllers depend on.
// Production wiring passes *locker.Client, *notify.Mailer and *scheduler.StatusWatcher.

// StatusReader fetches locker status.
type StatusReader interface {
	GetStatus(ctx context.Context) ([]entities.Cell, error)
}

// LockerClient is the full locker surface used by CellsController.
type LockerClient interface {
	StatusReader
	GetCell(ctx context.Context, cellID int) (*entities.Cell, error)
	OpenCell(ctx context.Context, cellID int) error
}

// MessageSender delivers an email.
type MessageSender interface {
	Send(ctx context.Context, msg notify.Message) error
}

// Watcher exposes the status watcher to the API.
type Watcher interface {
	State() scheduler.WatchState
	RunNow()
}

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/mrlokans/postomat/internal/entities"
	"github.com/mrlokans/postomat/internal/notify"
)

const defaultCheckTimeout = 30 * time.Second

// ErrCheckInProgress is returned by Check when another check has not finished yet.
var ErrCheckInProgress = errors.New("status check already in progress")

// StatusSource fetches the current cell snapshot.
type StatusSource interface {
	GetStatus(ctx context.Context) ([]entities.Cell, error)
}

// Notifier delivers the change summary.
type Notifier interface {
	Send(ctx context.Context, msg notify.Message) error
}

// WatchState is a point-in-time view of the watcher for status endpoints.
type WatchState struct {
	Running     bool         `json:"running"`
	Checking    bool         `json:"checking"`
	Schedule    string       `json:"schedule"`
	Description string       `json:"description"`
	NextRun     *time.Time   `json:"next_run,omitempty"`
	LastRunID   string       `json:"last_run_id,omitempty"`
	LastRunAt   *time.Time   `json:"last_run_at,omitempty"`
	LastError   string       `json:"last_error,omitempty"`
	LastChanges []CellChange `json:"last_changes"`
}

// StatusWatcher polls the locker on a cron schedule and emails a summary
// whenever the set of cells, their active flags or their sessions change.
type StatusWatcher struct {
	source       StatusSource
	notifier     Notifier
	recipient    string
	schedule     string
	checkTimeout time.Duration

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	isChecking bool
	runCtx     context.Context
	cancelFunc context.CancelFunc
	inflight   sync.WaitGroup

	baseline    []entities.Cell
	hasBaseline bool
	lastChanges []CellChange
	lastRunID   string
	lastRunAt   *time.Time
	lastErr     string
}

// WatchOption customises a StatusWatcher.
type WatchOption func(*StatusWatcher)

// WithNotifier sends change summaries to recipient through n.
func WithNotifier(n Notifier, recipient string) WatchOption {
	return func(w *StatusWatcher) {
		w.notifier = n
		w.recipient = recipient
	}
}

// WithCheckTimeout bounds each scheduled check.
func WithCheckTimeout(d time.Duration) WatchOption {
	return func(w *StatusWatcher) {
		w.checkTimeout = d
	}
}

// NewStatusWatcher creates a watcher for the given 5-field cron schedule
func NewStatusWatcher(source StatusSource, schedule string, opts ...WatchOption) *StatusWatcher {
	w := &StatusWatcher{
		source:       source,
		schedule:     schedule,
		checkTimeout: defaultCheckTimeout,
		cron:         cron.New(cron.WithParser(scheduleParser)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start schedules periodic checks. It stops when ctx is cancelled.
func (w *StatusWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return nil
	}

	if err := ValidateCronSchedule(w.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", w.schedule, err)
	}

	entryID, err := w.cron.AddFunc(w.schedule, w.runScheduled)
	if err != nil {
		return fmt.Errorf("failed to schedule status check: %w", err)
	}
	w.entryID = entryID

	cancelCtx, cancel := context.WithCancel(ctx)
	w.runCtx = cancelCtx
	w.cancelFunc = cancel

	w.cron.Start()
	w.isRunning = true

	nextRun, _ := GetNextRunTime(w.schedule)
	slog.Info("status watcher started",
		slog.String("schedule", w.schedule),
		slog.String("description", GetCronDescription(w.schedule)),
		slog.Any("next_run", nextRun))

	go func() {
		<-cancelCtx.Done()
		w.Stop()
	}()

	return nil
}

// Stop cancels in-flight checks, waits for them to return and stops
// scheduling new ones.
func (w *StatusWatcher) Stop() {
	w.mu.Lock()
	if !w.isRunning {
		w.mu.Unlock()
		return
	}
	w.isRunning = false
	w.cron.Remove(w.entryID)
	cancel := w.cancelFunc
	w.cancelFunc = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	<-w.cron.Stop().Done()
	w.inflight.Wait()

	slog.Info("status watcher stopped")
}

// RunNow triggers an immediate check in the background. While the watcher
// is running the check is bound to it and Stop waits for it.
func (w *StatusWatcher) RunNow() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isRunning {
		go w.runCheck(context.Background())
		return
	}
	ctx := w.runCtx
	w.inflight.Add(1)
	go func() {
		defer w.inflight.Done()
		w.runCheck(ctx)
	}()
}

// IsRunning returns whether the watcher is scheduled
func (w *StatusWatcher) IsRunning() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isRunning
}

// IsChecking returns whether a check is in progress
func (w *StatusWatcher) IsChecking() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.isChecking
}

// NextRunTime returns when the next check will occur, or nil when stopped.
func (w *StatusWatcher) NextRunTime() *time.Time {
	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.isRunning {
		return nil
	}
	for _, entry := range w.cron.Entries() {
		if entry.ID == w.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

// LastChanges returns the changes found by the most recent successful check.
func (w *StatusWatcher) LastChanges() []CellChange {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]CellChange(nil), w.lastChanges...)
}

// State snapshots the watcher.
func (w *StatusWatcher) State() WatchState {
	next := w.NextRunTime()

	w.mu.RLock()
	defer w.mu.RUnlock()
	return WatchState{
		Running:     w.isRunning,
		Checking:    w.isChecking,
		Schedule:    w.schedule,
		Description: GetCronDescription(w.schedule),
		NextRun:     next,
		LastRunID:   w.lastRunID,
		LastRunAt:   w.lastRunAt,
		LastError:   w.lastErr,
		LastChanges: append([]CellChange{}, w.lastChanges...),
	}
}

// Check fetches the status once and diffs it against the previous snapshot.
// The first successful check only records the baseline. A failed fetch leaves
// the baseline untouched.
func (w *StatusWatcher) Check(ctx context.Context) ([]CellChange, error) {
	w.mu.Lock()
	if w.isChecking {
		w.mu.Unlock()
		return nil, ErrCheckInProgress
	}
	w.isChecking = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.isChecking = false
		w.mu.Unlock()
	}()

	runID := uuid.NewString()
	logger := slog.With(slog.String("run_id", runID))
	startedAt := time.Now()

	cells, err := w.source.GetStatus(ctx)
	if err != nil {
		w.recordRun(runID, startedAt, nil, err)
		logger.Error("status check failed", slog.Any("error", err))
		return nil, fmt.Errorf("scheduler.Check: %w", err)
	}

	w.mu.Lock()
	first := !w.hasBaseline
	var changes []CellChange
	if !first {
		changes = DiffCells(w.baseline, cells)
	}
	w.baseline = cells
	w.hasBaseline = true
	w.mu.Unlock()

	if first {
		logger.Info("status baseline recorded", slog.Int("cells", len(cells)))
		w.recordRun(runID, startedAt, nil, nil)
		return nil, nil
	}

	w.recordRun(runID, startedAt, changes, nil)
	if len(changes) == 0 {
		logger.Debug("no cell changes", slog.Int("cells", len(cells)))
		return nil, nil
	}

	logger.Info("cell changes detected", slog.Int("changes", len(changes)))
	if err := w.notify(ctx, changes); err != nil {
		logger.Error("change notification failed", slog.Any("error", err))
		w.mu.Lock()
		w.lastErr = err.Error()
		w.mu.Unlock()
		return changes, fmt.Errorf("scheduler.Check: notify: %w", err)
	}
	return changes, nil
}

func (w *StatusWatcher) runScheduled() {
	w.mu.RLock()
	ctx := w.runCtx
	w.mu.RUnlock()
	if ctx == nil {
		ctx = context.Background()
	}
	w.runCheck(ctx)
}

func (w *StatusWatcher) runCheck(parent context.Context) {
	ctx, cancel := context.WithTimeout(parent, w.checkTimeout)
	defer cancel()

	if _, err := w.Check(ctx); errors.Is(err, ErrCheckInProgress) {
		slog.Info("status check skipped (already checking)")
	}
}

func (w *StatusWatcher) notify(ctx context.Context, changes []CellChange) error {
	if w.notifier == nil || w.recipient == "" {
		return nil
	}
	return w.notifier.Send(ctx, notify.Message{
		To:      w.recipient,
		Subject: fmt.Sprintf("Postomat: %d cell change(s)", len(changes)),
		Body:    FormatChanges(changes),
	})
}

func (w *StatusWatcher) recordRun(runID string, at time.Time, changes []CellChange, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastRunID = runID
	w.lastRunAt = &at
	if err != nil {
		w.lastErr = err.Error()
		return
	}
	w.lastErr = ""
	w.lastChanges = changes
}

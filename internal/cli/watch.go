package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mrlokans/postomat/internal/config"
	"github.com/mrlokans/postomat/internal/entrypoint"
	"github.com/mrlokans/postomat/internal/scheduler"
)

type WatchCommand struct {
	Schedule string
	Once     bool

	cfg *config.Config
	Out io.Writer
}

func NewWatchCommand(cfg *config.Config) *WatchCommand {
	return &WatchCommand{cfg: cfg, Out: os.Stdout}
}

func (cmd *WatchCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)

	fs.StringVar(&cmd.Schedule, "schedule", cmd.cfg.Watch.Schedule, "Cron schedule for status checks (5 fields)")
	fs.BoolVar(&cmd.Once, "once", false, "Record the baseline and exit")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s watch [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Poll the locker on a schedule and email a summary when cells change.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := scheduler.ValidateCronSchedule(cmd.Schedule); err != nil {
		return fmt.Errorf("invalid schedule '%s': %w", cmd.Schedule, err)
	}
	return nil
}

func (cmd *WatchCommand) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return cmd.run(ctx)
}

func (cmd *WatchCommand) run(ctx context.Context) error {
	cfg := *cmd.cfg
	cfg.Watch.Schedule = cmd.Schedule

	mailer := entrypoint.NewMailer(&cfg)
	if mailer == nil || cfg.SMTP.Receiver == "" {
		fmt.Fprintln(cmd.Out, "Mail is not configured; changes will only be logged")
	}
	watcher := entrypoint.NewStatusWatcher(&cfg, entrypoint.NewLockerClient(&cfg), mailer)

	if _, err := watcher.Check(ctx); err != nil {
		return fmt.Errorf("failed to record baseline: %w", err)
	}
	fmt.Fprintln(cmd.Out, "Baseline recorded")
	if cmd.Once {
		return nil
	}

	if err := watcher.Start(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Out, "Watching with schedule '%s' (%s)\n", cmd.Schedule, scheduler.GetCronDescription(cmd.Schedule))

	<-ctx.Done()
	watcher.Stop()
	return nil
}

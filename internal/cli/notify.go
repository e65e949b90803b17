package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mrlokans/postomat/internal/config"
	"github.com/mrlokans/postomat/internal/entrypoint"
	"github.com/mrlokans/postomat/internal/notify"
)

const sendTimeout = 30 * time.Second

type NotifyCommand struct {
	Subject string
	Body    string
	To      string

	cfg *config.Config
	In  io.Reader
	Out io.Writer
}

func NewNotifyCommand(cfg *config.Config) *NotifyCommand {
	return &NotifyCommand{cfg: cfg, In: os.Stdin, Out: os.Stdout}
}

func (cmd *NotifyCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("notify", flag.ContinueOnError)

	fs.StringVar(&cmd.Subject, "subject", "", "Email subject (required)")
	fs.StringVar(&cmd.Body, "body", "", "Plain-text body; '-' reads it from stdin (required)")
	fs.StringVar(&cmd.To, "to", cmd.cfg.SMTP.Receiver, "Recipient (defaults to SMTP_RECEIVER)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s notify -subject S -body B [-to R]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Send a plain-text email through the configured SMTPS account.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s notify -subject \"Parcel\" -body \"Cell 3 is ready\"\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  echo report | %s notify -subject \"Report\" -body - -to ops@example.com\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Subject == "" || cmd.Body == "" {
		fs.Usage()
		return fmt.Errorf("subject and body are required")
	}
	if cmd.To == "" {
		return fmt.Errorf("recipient is required (set -to or SMTP_RECEIVER)")
	}
	return nil
}

func (cmd *NotifyCommand) Run() error {
	mailer := entrypoint.NewMailer(cmd.cfg)
	if mailer == nil {
		return fmt.Errorf("%w: set SMTP_SENDER and SMTP_PASSWORD", notify.ErrMailNotConfigured)
	}

	body := cmd.Body
	if body == "-" {
		raw, err := io.ReadAll(cmd.In)
		if err != nil {
			return fmt.Errorf("failed to read body from stdin: %w", err)
		}
		body = string(raw)
	}

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := mailer.Send(ctx, notify.Message{To: cmd.To, Subject: cmd.Subject, Body: body}); err != nil {
		return err
	}

	fmt.Fprintf(cmd.Out, "Sent %q to %s\n", cmd.Subject, cmd.To)
	return nil
}

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/wneessen/go-mail"
)

const (
	DefaultHost = "smtp.yandex.ru"
	DefaultPort = 465

	defaultSendTimeout = 30 * time.Second
)

// ErrMailNotConfigured is returned when sender credentials are missing.
var ErrMailNotConfigured = errors.New("mail is not configured")

// Config describes the SMTPS account used to send notifications.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Message is a single plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// DialFunc opens the connection to the mail server.
type DialFunc func(ctx context.Context, network, addr string) (net.Conn, error)

// Mailer sends plain-text messages over implicit TLS.
type Mailer struct {
	cfg  Config
	dial DialFunc
	now  func() time.Time
}

// Option customises a Mailer.
type Option func(*Mailer)

// WithDialFunc replaces the implicit-TLS dialer. The returned connection is
// used as is, so it must already be encrypted for anything but local servers.
func WithDialFunc(dial DialFunc) Option {
	return func(m *Mailer) {
		m.dial = dial
	}
}

// NewMailer creates a Mailer, filling the Yandex host and port when unset.
func NewMailer(cfg Config, opts ...Option) *Mailer {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	m := &Mailer{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Configured reports whether credentials are present.
func (m *Mailer) Configured() bool {
	return m.cfg.Username != "" && m.cfg.Password != ""
}

// Address returns host:port of the mail server.
func (m *Mailer) Address() string {
	return net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
}

// Send delivers msg. An empty From falls back to the account username.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if !m.Configured() {
		return fmt.Errorf("notify.Send: %w", ErrMailNotConfigured)
	}
	if msg.From == "" {
		msg.From = m.cfg.Username
	}
	if msg.To == "" {
		return errors.New("notify.Send: no recipient")
	}

	email, err := m.compose(msg)
	if err != nil {
		return fmt.Errorf("notify.Send: compose: %w", err)
	}

	client, err := m.client(ctx)
	if err != nil {
		return fmt.Errorf("notify.Send: client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, email); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("notify.Send: %w", ctxErr)
		}
		return fmt.Errorf("notify.Send: %w", err)
	}

	slog.Info("notification sent", slog.String("to", msg.To), slog.String("subject", msg.Subject))
	return nil
}

// client builds an SMTPS client with AUTH PLAIN. The context deadline, when
// set, bounds the whole session.
func (m *Mailer) client(ctx context.Context) (*mail.Client, error) {
	timeout := defaultSendTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	opts := []mail.Option{
		mail.WithSSL(),
		mail.WithPort(m.cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.cfg.Username),
		mail.WithPassword(m.cfg.Password),
		mail.WithTimeout(timeout),
	}
	if m.dial != nil {
		opts = append(opts, mail.WithDialContextFunc(mail.DialContextFunc(m.dial)))
	}
	return mail.NewClient(m.cfg.Host, opts...)
}

// compose renders msg as a single quoted-printable text/plain message.
func (m *Mailer) compose(msg Message) (*mail.Msg, error) {
	email := mail.NewMsg()
	if err := email.From(msg.From); err != nil {
		return nil, fmt.Errorf("from: %w", err)
	}
	if err := email.To(msg.To); err != nil {
		return nil, fmt.Errorf("to: %w", err)
	}
	email.Subject(msg.Subject)
	email.SetDateWithValue(m.now())
	email.SetBodyString(mail.TypeTextPlain, msg.Body)
	return email, nil
}

// SendEmail sends one message from sender to receiver through the default
// Yandex SMTPS endpoint, authenticating as sender.
func SendEmail(ctx context.Context, sender, receiver, password, subject, body string) error {
	m := NewMailer(Config{Username: sender, Password: password})
	return m.Send(ctx, Message{From: sender, To: receiver, Subject: subject, Body: body})
}

package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/postomat/internal/config"
	httpapi "github.com/mrlokans/postomat/internal/http"
	"github.com/mrlokans/postomat/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until ctx is cancelled, then shuts it down
// within the configured timeout.
func Serve(ctx context.Context, router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) error {
	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return serve(ctx, listener, router, time.Duration(cfg.Global.ShutdownTimeoutInSeconds)*time.Second, onShutdown)
}

func serve(ctx context.Context, listener net.Listener, handler http.Handler, timeout time.Duration, onShutdown ShutdownFunc) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting server", slog.String("addr", listener.Addr().String()))
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down server", slog.Duration("timeout", timeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work first so no new upstream calls start mid-shutdown
	if onShutdown != nil {
		onShutdown(shutdownCtx)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server exiting")
	return nil
}

// BuildRouterConfig wires the configured clients into the gateway. The
// watcher is returned separately so the caller can start and stop it.
func BuildRouterConfig(cfg *config.Config, version string) (httpapi.RouterConfig, *scheduler.StatusWatcher) {
	lockerClient := NewLockerClient(cfg)
	mailer := NewMailer(cfg)

	routerCfg := httpapi.RouterConfig{
		Locker:   lockerClient,
		Receiver: cfg.SMTP.Receiver,
		Version:  version,
	}
	if mailer != nil {
		routerCfg.Mailer = mailer
	} else {
		slog.Warn("SMTP credentials are not set; notifications are disabled. Set SMTP_SENDER and SMTP_PASSWORD to enable.")
	}

	var watcher *scheduler.StatusWatcher
	if cfg.Watch.Enabled {
		watcher = NewStatusWatcher(cfg, lockerClient, mailer)
		routerCfg.Watcher = watcher
	}
	return routerCfg, watcher
}

// Run starts the gateway and, when enabled, the status watcher. It blocks
// until SIGINT or SIGTERM.
func Run(cfg *config.Config, version string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("postomat gateway", slog.String("version", version), slog.String("locker", cfg.Locker.BaseURL), slog.Int("locker_port", cfg.Locker.Port))

	routerCfg, watcher := BuildRouterConfig(cfg, version)

	if watcher != nil {
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("start status watcher: %w", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := httpapi.NewRouter(routerCfg)

	onShutdown := func(context.Context) {
		if watcher != nil {
			watcher.Stop()
		}
	}

	return Serve(ctx, router, cfg, onShutdown)
}

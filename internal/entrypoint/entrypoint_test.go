package entrypoint

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/postomat/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTP:   config.HTTP{Host: "127.0.0.1", Port: 0},
		Global: config.Global{ShutdownTimeoutInSeconds: 1},
		Locker: config.Locker{BaseURL: "http://127.0.0.1", Port: 5003, Timeout: time.Second},
		SMTP:   config.SMTP{Host: "smtp.yandex.ru", Port: 465},
		Watch:  config.Watch{Schedule: "*/5 * * * *"},
	}
}

func TestBuildRouterConfig(t *testing.T) {
	t.Run("mail and watcher disabled by default", func(t *testing.T) {
		routerCfg, watcher := BuildRouterConfig(testConfig(), "test")

		assert.NotNil(t, routerCfg.Locker)
		assert.Nil(t, routerCfg.Mailer)
		assert.Nil(t, routerCfg.Watcher)
		assert.Nil(t, watcher)
		assert.Equal(t, "test", routerCfg.Version)
	})

	t.Run("mail and watcher enabled by configuration", func(t *testing.T) {
		cfg := testConfig()
		cfg.SMTP.Sender = "robot@yandex.ru"
		cfg.SMTP.Password = "secret"
		cfg.SMTP.Receiver = "ops@example.com"
		cfg.Watch.Enabled = true

		routerCfg, watcher := BuildRouterConfig(cfg, "test")

		assert.NotNil(t, routerCfg.Mailer)
		assert.Equal(t, "ops@example.com", routerCfg.Receiver)
		require.NotNil(t, watcher)
		assert.NotNil(t, routerCfg.Watcher)
		assert.False(t, watcher.IsRunning())
	})
}

func TestNewMailer(t *testing.T) {
	cfg := testConfig()
	assert.Nil(t, NewMailer(cfg))

	cfg.SMTP.Sender = "robot@yandex.ru"
	cfg.SMTP.Password = "secret"
	mailer := NewMailer(cfg)
	require.NotNil(t, mailer)
	assert.Equal(t, "smtp.yandex.ru:465", mailer.Address())
}

func TestNewLockerClient(t *testing.T) {
	client := NewLockerClient(testConfig())
	assert.Equal(t, "http://127.0.0.1", client.BaseURL())
}

func TestServe_GracefulShutdown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	shutdownCalled := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, listener, router, time.Second, func(context.Context) { close(shutdownCalled) })
	}()

	resp, err := http.Get("http://" + listener.Addr().String() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	select {
	case <-shutdownCalled:
	default:
		t.Fatal("shutdown callback was not called")
	}
}

func TestServe_ListenError(t *testing.T) {
	occupied, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer occupied.Close()

	cfg := testConfig()
	cfg.HTTP.Port = int32(occupied.Addr().(*net.TCPAddr).Port)

	err = Serve(context.Background(), gin.New(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen")
}

// Command mock_locker serves a fake locker controller for local development.
// Usage: go run ./cmd/mock_locker [-host 127.0.0.1] [-port 5003]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/postomat/internal/locker"
	"github.com/mrlokans/postomat/internal/logging"
	"github.com/mrlokans/postomat/internal/mocklocker"
)

func main() {
	host := flag.String("host", "127.0.0.1", "address to listen on")
	port := flag.Int("port", locker.DefaultPort, "port to listen on")
	logLevel := flag.String("log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	logging.Setup(nil, logging.Config{Level: *logLevel})
	gin.SetMode(gin.ReleaseMode)

	server, err := mocklocker.New()
	if err != nil {
		slog.Error("failed to seed mock locker", slog.Any("error", err))
		os.Exit(1)
	}

	addr := fmt.Sprintf("%s:%d", *host, *port)
	slog.Info("mock locker listening", slog.String("addr", addr))
	if err := server.Router().Run(addr); err != nil {
		slog.Error("mock locker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

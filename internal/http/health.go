package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const lockerCheckTimeout = 3 * time.Second

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version,omitempty"`
	Checks  map[string]string `json:"checks"`
}

type HealthController struct {
	locker  StatusReader
	mailer  MessageSender
	watcher Watcher
	version string
}

func NewHealthController(locker StatusReader, mailer MessageSender, watcher Watcher, version string) *HealthController {
	return &HealthController{
		locker:  locker,
		mailer:  mailer,
		watcher: watcher,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	// Locker reachability
	if h.locker != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), lockerCheckTimeout)
		defer cancel()
		if _, err := h.locker.GetStatus(ctx); err != nil {
			checks["locker"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["locker"] = "ok"
		}
	} else {
		checks["locker"] = "not configured"
	}

	if h.mailer != nil {
		checks["mail"] = "configured"
	} else {
		checks["mail"] = "not configured"
	}

	switch {
	case h.watcher == nil:
		checks["watcher"] = "disabled"
	case h.watcher.State().Running:
		checks["watcher"] = "running"
	default:
		checks["watcher"] = "stopped"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

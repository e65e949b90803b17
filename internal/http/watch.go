package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/postomat/internal/scheduler"
)

// WatchResponse reports the status watcher; Enabled is false when the
// gateway runs without one.
type WatchResponse struct {
	Enabled bool `json:"enabled"`
	scheduler.WatchState
}

type WatchController struct {
	watcher Watcher
}

func NewWatchController(watcher Watcher) *WatchController {
	return &WatchController{watcher: watcher}
}

func (h *WatchController) Status(c *gin.Context) {
	if h.watcher == nil {
		c.JSON(http.StatusOK, WatchResponse{WatchState: scheduler.WatchState{LastChanges: []scheduler.CellChange{}}})
		return
	}
	c.JSON(http.StatusOK, WatchResponse{Enabled: true, WatchState: h.watcher.State()})
}

// RunNow triggers an immediate status check.
func (h *WatchController) RunNow(c *gin.Context) {
	if h.watcher == nil {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "status watcher is disabled", Code: "watch_disabled"})
		return
	}
	h.watcher.RunNow()
	c.JSON(http.StatusAccepted, SuccessResponse{Message: "status check started"})
}

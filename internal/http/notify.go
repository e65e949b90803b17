package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/postomat/internal/notify"
)

// NotifyRequest is the body of POST /api/notify.
type NotifyRequest struct {
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
	To      string `json:"to" binding:"omitempty,email"`
}

type NotifyController struct {
	mailer   MessageSender
	receiver string
}

func NewNotifyController(mailer MessageSender, receiver string) *NotifyController {
	return &NotifyController{mailer: mailer, receiver: receiver}
}

// Send emails the configured receiver, or req.To when given.
func (h *NotifyController) Send(c *gin.Context) {
	var req NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "bad_request", Details: err.Error()})
		return
	}

	to := req.To
	if to == "" {
		to = h.receiver
	}
	if h.mailer == nil || to == "" {
		respondMailNotConfigured(c)
		return
	}

	err := h.mailer.Send(c.Request.Context(), notify.Message{To: to, Subject: req.Subject, Body: req.Body})
	switch {
	case errors.Is(err, notify.ErrMailNotConfigured):
		respondMailNotConfigured(c)
	case err != nil:
		slog.Warn("notification failed", slog.Any("error", err), slog.String("request_id", requestID(c)))
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "failed to send email", Code: "mail_failed"})
	default:
		c.JSON(http.StatusOK, SuccessResponse{Message: "notification sent", Data: gin.H{"to": to}})
	}
}

func respondMailNotConfigured(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "mail is not configured", Code: "mail_not_configured"})
}

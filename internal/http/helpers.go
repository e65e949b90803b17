package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/postomat/internal/converter"
	"github.com/mrlokans/postomat/internal/locker"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (upstream status, field problems)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: "bad_request"})
}

func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found", Code: "not_found"})
}

// respondInternalError logs the error and sends a 500 without exposing it.
func respondInternalError(c *gin.Context, err error, op string) {
	slog.Error("internal error", slog.String("op", op), slog.Any("error", err), slog.String("request_id", requestID(c)))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
}

// respondLockerError maps a locker client failure onto a gateway response.
func respondLockerError(c *gin.Context, err error) {
	slog.Warn("locker request failed", slog.Any("error", err), slog.String("request_id", requestID(c)))

	var httpErr *locker.HTTPError
	var structErr *converter.StructuringError
	switch {
	case errors.Is(err, locker.ErrCellNotFound):
		respondNotFound(c, "cell")
	case errors.As(err, &structErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "locker returned an unexpected payload",
			Code:    "invalid_locker_response",
			Details: structErr.Problems,
		})
	case errors.As(err, &httpErr):
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "locker request failed",
			Code:    "locker_error",
			Details: gin.H{"status": httpErr.StatusCode, "message": httpErr.Message},
		})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "locker did not respond in time", Code: "locker_timeout"})
	default:
		c.JSON(http.StatusBadGateway, ErrorResponse{Error: "locker is unreachable", Code: "locker_unreachable"})
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts a non-negative integer from URL parameters.
// Responds with 400 and returns false when invalid.
func parseIDParam(c *gin.Context, paramName string) (int, bool) {
	id, err := strconv.Atoi(c.Param(paramName))
	if err != nil || id < 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return id, true
}

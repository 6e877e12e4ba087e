package handlers

import (
	"errors"
	"net/http"
	"strings"

	"task_manager/internal/service"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Error string `json:"error" example:"Task not found"`
}

const internalErrorMessage = "internal server error"

// serviceErrorStatus maps service sentinels to a status code and client message.
func serviceErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
	case errors.Is(err, service.ErrUsernameTaken):
		return http.StatusBadRequest, "Username already registered"
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusBadRequest, "Email already registered"
	case errors.Is(err, service.ErrConflict):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Incorrect username or password"
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "Not authorized to access these tasks"
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound, "Task not found"
	default:
		return http.StatusInternalServerError, internalErrorMessage
	}
}

// writeServiceError writes the mapped error. Unmapped errors become a
// generic 500 and are logged with the request id.
func (h *Handler) writeServiceError(c *gin.Context, err error) {
	status, msg := serviceErrorStatus(err)
	switch status {
	case http.StatusInternalServerError:
		h.log.Errorw("request_failed",
			"path", c.Request.URL.Path,
			"request_id", c.GetString(ctxRequestID),
			"err", err,
		)
	case http.StatusUnauthorized:
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.JSON(status, errorResponse{Error: msg})
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "path", c.Request.URL.Path, "err", err)
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

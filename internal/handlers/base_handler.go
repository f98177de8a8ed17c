package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pensacomp/lms-service/internal/services"
	"github.com/pensacomp/lms-service/internal/utils"
)

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the envelope for failed responses.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// BaseHandler carries the shared handler plumbing.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs with the request-scoped logger when available.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c, h.logger).Info(msg, args...)
}

// LogError logs an error with the request-scoped logger.
func (h *BaseHandler) LogError(c *gin.Context, msg string, err error, args ...any) {
	utils.FromContext(c, h.logger).Error(msg, append(args, "error", err)...)
}

// parseIDParam parses a numeric path parameter; on failure it writes the
// 400 response and returns 0.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Parâmetro inválido: " + name,
		})
		return 0
	}
	return uint(id)
}

// handleServiceError maps service error codes onto HTTP statuses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var svcErr *services.ServiceError
	if !errors.As(err, &svcErr) {
		h.LogError(c, "unexpected error", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Erro interno do servidor",
		})
		return
	}

	status := http.StatusInternalServerError
	switch svcErr.Code {
	case services.CodeNotFound:
		status = http.StatusNotFound
	case services.CodeForbidden:
		status = http.StatusForbidden
	case services.CodeConflict:
		status = http.StatusConflict
	case services.CodeInvalidReference, services.CodeInvalidCode, services.CodeValidation:
		status = http.StatusBadRequest
	case services.CodeInvalidCredentials, services.CodeTokenInvalid, services.CodeSessionExpired:
		status = http.StatusUnauthorized
	}

	if status == http.StatusInternalServerError {
		h.LogError(c, "service error", err)
	}

	resp := ErrorResponse{Message: svcErr.Message}
	if svcErr.Code == services.CodeValidation && svcErr.Err != nil {
		resp.Details = svcErr.Err.Error()
	}
	c.JSON(status, resp)
}

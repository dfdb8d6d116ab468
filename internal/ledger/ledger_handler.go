package ledger

import (
	"net/http"

	"go-attendance/internal/middleware"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("ledger.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("ledger request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) TotalDays(c *gin.Context) {
	employeeID := c.Param("numeric_id")
	if !middleware.CanAccessEmployee(c, employeeID) {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	total, err := h.service.TotalDaysFor(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, TotalDaysResponse{EmployeeID: employeeID, TotalDays: total}, nil)
}

func (h *Handler) ListForEmployee(c *gin.Context) {
	employeeID := c.Param("numeric_id")
	if !middleware.CanAccessEmployee(c, employeeID) {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	resp, err := h.service.ListFor(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	start, end, meta := response.PageBounds(c, len(resp))
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

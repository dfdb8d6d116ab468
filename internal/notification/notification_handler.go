package notification

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
	l := zap.L().Named("notification.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("notification request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) writeBindError(c *gin.Context, err error) {
	h.logger.Warn("notification validation failed", zap.Error(err))
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
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

func (h *Handler) UnreadCount(c *gin.Context) {
	employeeID := c.Param("numeric_id")
	if !middleware.CanAccessEmployee(c, employeeID) {
		h.writeServiceError(c, apperror.ErrForbidden)
		return
	}

	count, err := h.service.UnreadCount(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, UnreadCountResponse{EmployeeID: employeeID, Unread: count}, nil)
}

func (h *Handler) MarkRead(c *gin.Context) {
	ownerID := c.GetString(middleware.ContextEmployeeID)
	if middleware.IsAdmin(c) {
		ownerID = ""
	}

	if err := h.service.MarkRead(c.Request.Context(), c.Param("id"), ownerID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"read": true}, nil)
}

func (h *Handler) Notify(c *gin.Context) {
	var req NotifyEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	resp, err := h.service.Notify(c.Request.Context(), req.EmployeeID, Message{
		Text:    req.Message,
		Type:    Type(req.Type),
		EventID: req.EventID,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	status := http.StatusOK
	if resp.Delivery == DeliveryCreated {
		status = http.StatusCreated
	}
	response.Success(c, status, resp, nil)
}

func (h *Handler) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeBindError(c, err)
		return
	}

	report, err := h.service.NotifyAll(c.Request.Context(), Message{
		Text:    req.Message,
		Type:    Type(req.Type),
		EventID: req.EventID,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, report, nil)
}

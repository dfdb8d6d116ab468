package attendance

import (
	"net/http"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/middleware"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func writeBindError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// targetEmployee resolves whose attendance the caller acts on.
func targetEmployee(c *gin.Context, requested string) (string, bool) {
	actor := c.GetString(middleware.ContextEmployeeID)
	if requested == "" || requested == actor {
		return actor, true
	}
	return requested, middleware.IsAdmin(c)
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	employeeID, ok := targetEmployee(c, req.EmployeeID)
	if !ok {
		writeServiceError(c, apperror.ErrForbidden)
		return
	}

	resp, err := h.service.CheckIn(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) CheckOut(c *gin.Context) {
	var req CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	employeeID, ok := targetEmployee(c, req.EmployeeID)
	if !ok {
		writeServiceError(c, apperror.ErrForbidden)
		return
	}

	resp, err := h.service.CheckOut(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	filter := ListFilter{
		EmployeeID: c.Query("employee_id"),
		Date:       c.Query("date"),
	}
	if !middleware.IsAdmin(c) {
		filter.EmployeeID = c.GetString(middleware.ContextEmployeeID)
	}

	resp, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	start, end, meta := response.PageBounds(c, len(resp))
	response.Success(c, http.StatusOK, resp[start:end], &meta)
}

func (h *Handler) SendReminders(c *gin.Context) {
	date := time.Now().UTC()
	if v := c.Query("date"); v != "" {
		d, err := time.Parse(dateLayout, v)
		if err != nil {
			writeServiceError(c, attendanceerrors.ErrInvalidDateFormat)
			return
		}
		date = d
	}

	report, err := h.service.SendReminders(c.Request.Context(), date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, report, nil)
}

package attendance_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-attendance/internal/attendance"
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	checkInFn       func(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error)
	checkOutFn      func(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error)
	listFn          func(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error)
	sendRemindersFn func(ctx context.Context, date time.Time) (attendance.ReminderReport, error)
}

func (f *fakeService) CheckIn(ctx context.Context, employeeID string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	return f.checkInFn(ctx, employeeID, req)
}
func (f *fakeService) CheckOut(ctx context.Context, employeeID string, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return f.checkOutFn(ctx, employeeID, req)
}
func (f *fakeService) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	return f.listFn(ctx, filter)
}
func (f *fakeService) SendReminders(ctx context.Context, date time.Time) (attendance.ReminderReport, error) {
	return f.sendRemindersFn(ctx, date)
}

func newContext(method, target, body, actor, role string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextEmployeeID, actor)
	c.Set(middleware.ContextRole, role)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestHandler_CheckInAndList(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkInFn: func(ctx context.Context, eid string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			assert.Equal(t, "5", eid)
			return attendance.AttendanceResponse{ID: uuid.New().String(), EmployeeID: eid}, nil
		},
		listFn: func(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
			assert.Equal(t, "5", filter.EmployeeID)
			return []attendance.AttendanceResponse{{ID: uuid.New().String()}, {ID: uuid.New().String()}}, nil
		},
	}
	h := attendance.NewHandler(svc)

	c, w := newContext(http.MethodPost, "/attendances/check-in", `{"external_ref":"face-tx-1"}`, "5", "employee")
	h.CheckIn(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Employees only ever see their own rows.
	c2, w2 := newContext(http.MethodGet, "/attendances?employee_id=9&page=1&page_size=1", "", "5", "employee")
	h.List(c2)
	assert.Equal(t, http.StatusOK, w2.Code)
	assert.Contains(t, w2.Body.String(), "\"meta\"")
}

func TestHandler_CheckInForSomeoneElse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkInFn: func(ctx context.Context, eid string, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
			return attendance.AttendanceResponse{EmployeeID: eid}, nil
		},
	}
	h := attendance.NewHandler(svc)

	c, w := newContext(http.MethodPost, "/attendances/check-in", `{"employee_id":"9"}`, "5", "employee")
	h.CheckIn(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c2, w2 := newContext(http.MethodPost, "/attendances/check-in", `{"employee_id":"9"}`, "1", "admin")
	h.CheckIn(c2)
	assert.Equal(t, http.StatusCreated, w2.Code)
	assert.Contains(t, w2.Body.String(), `"employee_id":"9"`)
}

func TestHandler_CheckInBadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := attendance.NewHandler(&fakeService{})

	c, w := newContext(http.MethodPost, "/attendances/check-in", `{"employee_id":"abc"}`, "5", "employee")
	h.CheckIn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SendReminders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		sendRemindersFn: func(ctx context.Context, date time.Time) (attendance.ReminderReport, error) {
			assert.Equal(t, "2024-03-04", date.Format("2006-01-02"))
			return attendance.ReminderReport{Date: "2024-03-04", Recipients: 3, Delivered: 3}, nil
		},
	}
	h := attendance.NewHandler(svc)

	c, w := newContext(http.MethodPost, "/attendances/reminders?date=2024-03-04", "", "1", "admin")
	h.SendReminders(c)
	assert.Equal(t, http.StatusOK, w.Code)

	c2, w2 := newContext(http.MethodPost, "/attendances/reminders?date=tomorrow", "", "1", "admin")
	h.SendReminders(c2)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}

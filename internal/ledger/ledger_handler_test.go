package ledger_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-attendance/internal/leave"
	"go-attendance/internal/ledger"
	"go-attendance/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLedgerService struct {
	totalFn func(ctx context.Context, employeeID string) (int64, error)
	listFn  func(ctx context.Context, employeeID string) ([]ledger.EntryResponse, error)
}

func (f *fakeLedgerService) RecordApproval(ctx context.Context, req leave.LeaveRequest) (bool, error) {
	return false, nil
}
func (f *fakeLedgerService) TotalDaysFor(ctx context.Context, employeeID string) (int64, error) {
	return f.totalFn(ctx, employeeID)
}
func (f *fakeLedgerService) ListFor(ctx context.Context, employeeID string) ([]ledger.EntryResponse, error) {
	return f.listFn(ctx, employeeID)
}
func (f *fakeLedgerService) RemoveFor(ctx context.Context, leaveRequestID uuid.UUID) error {
	return nil
}

func newLedgerContext(target, numericID, actor, role string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = gin.Params{{Key: "numeric_id", Value: numericID}}
	c.Set(middleware.ContextEmployeeID, actor)
	c.Set(middleware.ContextRole, role)
	return c, w
}

func TestLedgerHandler_TotalDays(t *testing.T) {
	svc := &fakeLedgerService{
		totalFn: func(ctx context.Context, employeeID string) (int64, error) {
			return 3, nil
		},
	}
	h := ledger.NewHandler(svc)

	t.Run("own total", func(t *testing.T) {
		c, w := newLedgerContext("/api/v1/employees/7/leave-days", "7", "7", "employee")

		h.TotalDays(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"total_days":3`)
	})

	t.Run("admin reads any employee", func(t *testing.T) {
		c, w := newLedgerContext("/api/v1/employees/7/leave-days", "7", "1", "admin")

		h.TotalDays(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("other employee forbidden", func(t *testing.T) {
		c, w := newLedgerContext("/api/v1/employees/7/leave-days", "7", "8", "employee")

		h.TotalDays(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLedgerHandler_ListForEmployee(t *testing.T) {
	svc := &fakeLedgerService{
		listFn: func(ctx context.Context, employeeID string) ([]ledger.EntryResponse, error) {
			return []ledger.EntryResponse{{EmployeeID: employeeID, LeaveDays: 2}}, nil
		},
	}
	h := ledger.NewHandler(svc)
	c, w := newLedgerContext("/api/v1/employees/7/leave-ledger", "7", "7", "employee")

	h.ListForEmployee(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"leave_days":2`)
}

package leavelifecycle_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-attendance/internal/leave"
	leaveerrors "go-attendance/internal/leave/errors"
	"go-attendance/internal/leavelifecycle"
	"go-attendance/internal/leavelifecycle/mock"
	"go-attendance/internal/middleware"
	"go-attendance/internal/notification"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newAdminContext(method, target, id string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	c.Params = gin.Params{{Key: "id", Value: id}}
	c.Set(middleware.ContextEmployeeID, "1")
	c.Set(middleware.ContextRole, "admin")
	return c, w
}

func TestLifecycleHandler_Approve(t *testing.T) {
	id := uuid.NewString()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		h := leavelifecycle.NewHandler(svc)
		c, w := newAdminContext(http.MethodPost, "/api/v1/leave-requests/"+id+"/approve", id)

		svc.EXPECT().Approve(gomock.Any(), id).Return(leavelifecycle.DecisionResponse{
			Leave:          leave.LeaveResponse{ID: id, Status: "Approved"},
			LedgerRecorded: true,
			Notification:   notification.DeliveryCreated,
		}, nil)

		h.Approve(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"ledger_recorded":true`)
		assert.Contains(t, w.Body.String(), `"notification":"created"`)
	})

	t.Run("already decided", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mock.NewMockService(ctrl)
		h := leavelifecycle.NewHandler(svc)
		c, w := newAdminContext(http.MethodPost, "/api/v1/leave-requests/"+id+"/approve", id)

		svc.EXPECT().Approve(gomock.Any(), id).Return(leavelifecycle.DecisionResponse{}, leaveerrors.ErrStatusAlreadyApplied)

		h.Approve(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"INVALID_STATE"`)
	})
}

func TestLifecycleHandler_Reject(t *testing.T) {
	id := uuid.NewString()
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := leavelifecycle.NewHandler(svc)
	c, w := newAdminContext(http.MethodPost, "/api/v1/leave-requests/"+id+"/reject", id)

	svc.EXPECT().Reject(gomock.Any(), id).Return(leavelifecycle.DecisionResponse{}, leaveerrors.ErrLeaveNotFound)

	h.Reject(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLifecycleHandler_Delete(t *testing.T) {
	id := uuid.NewString()
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)
	h := leavelifecycle.NewHandler(svc)
	c, w := newAdminContext(http.MethodDelete, "/api/v1/leave-requests/"+id, id)

	svc.EXPECT().Remove(gomock.Any(), id).Return(leavelifecycle.RemovalResponse{LeaveRequestID: id, Deleted: true}, nil)

	h.Delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"deleted":true`)
}

package employee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-attendance/internal/employee"
	employeeerrors "go-attendance/internal/employee/errors"
	employeeMock "go-attendance/internal/employee/mock"
	"go-attendance/internal/identity"
	identityerrors "go-attendance/internal/identity/errors"
	identityMock "go-attendance/internal/identity/mock"
	"go-attendance/internal/shared/apperror"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service   employee.Service
	repo      *employeeMock.MockRepository
	identity  *identityMock.MockService
	redismock redismock.ClientMock
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	rdb, redisMock := redismock.NewClientMock()
	repo := employeeMock.NewMockRepository(ctrl)
	identitySvc := identityMock.NewMockService(ctrl)

	return &serviceDeps{
		service:   employee.NewService(repo, identitySvc, rdb),
		repo:      repo,
		identity:  identitySvc,
		redismock: redisMock,
	}
}

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - numeric id from counter, preferences on", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{FullName: " Dewi Lestari ", Email: "Dewi@Example.com"}

		deps.identity.EXPECT().NextID(ctx).Return(5, nil)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, 5, e.NumericID)
				assert.Equal(t, "Dewi Lestari", e.FullName)
				assert.Equal(t, "dewi@example.com", e.Email)
				assert.Equal(t, employee.RoleEmployee, e.Role)
				assert.True(t, e.NotifyLeaveStatus)
				assert.True(t, e.NotifySystemAnnouncements)
				assert.True(t, e.NotifyAttendanceReminders)
				return nil
			})
		deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(1)

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, 5, resp.NumericID)
		assert.True(t, resp.Preferences.LeaveStatus)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("administrator gets numeric id 1", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindAdmin(ctx).Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, e *employee.Employee) error {
				assert.Equal(t, identity.AdminNumericID, e.NumericID)
				return nil
			})
		deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(0)

		resp, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{FullName: "Admin", Email: "admin@example.com", Role: employee.RoleAdmin})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.NumericID)
	})

	t.Run("second administrator rejected", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindAdmin(ctx).Return(&employee.Employee{ID: uuid.New(), NumericID: 1, Role: employee.RoleAdmin}, nil)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{FullName: "Admin 2", Email: "a2@example.com", Role: employee.RoleAdmin})

		assert.ErrorIs(t, err, employeeerrors.ErrAdministratorExists)
	})

	t.Run("counter unavailable", func(t *testing.T) {
		deps := setupServiceTest(t)
		counterErr := apperror.Wrap(errors.New("timeout"), identityerrors.ErrCounterUnavailable.Code, identityerrors.ErrCounterUnavailable.Message, identityerrors.ErrCounterUnavailable.HTTPStatus)

		deps.identity.EXPECT().NextID(ctx).Return(0, counterErr)

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{FullName: "X", Email: "x@example.com"})

		assert.True(t, apperror.IsStoreUnavailable(err))
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.identity.EXPECT().NextID(ctx).Return(6, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"})

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{FullName: "X", Email: "x@example.com"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeAlreadyExists)
	})
}

func TestEmployeeService_EnsureAdministrator(t *testing.T) {
	ctx := context.Background()

	t.Run("existing administrator is returned untouched", func(t *testing.T) {
		deps := setupServiceTest(t)
		admin := &employee.Employee{ID: uuid.New(), NumericID: 1, FullName: "Admin", Role: employee.RoleAdmin}

		deps.repo.EXPECT().FindAdmin(ctx).Return(admin, nil)

		resp, err := deps.service.EnsureAdministrator(ctx, "Admin", "admin@example.com")

		assert.NoError(t, err)
		assert.Equal(t, admin.ID.String(), resp.ID)
	})

	t.Run("seeds when missing", func(t *testing.T) {
		deps := setupServiceTest(t)

		deps.repo.EXPECT().FindAdmin(ctx).Return(nil, gorm.ErrRecordNotFound).Times(2)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(0)

		resp, err := deps.service.EnsureAdministrator(ctx, "Admin", "admin@example.com")

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.NumericID)
		assert.Equal(t, employee.RoleAdmin, resp.Role)
	})
}

func TestEmployeeService_GetByNumericID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByNumericID(ctx, 4).Return(&employee.Employee{ID: uuid.New(), NumericID: 4, FullName: "Budi"}, nil)

		resp, err := deps.service.GetByNumericID(ctx, "4")

		assert.NoError(t, err)
		assert.Equal(t, "Budi", resp.FullName)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByNumericID(ctx, 9).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByNumericID(ctx, "9")

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.GetByNumericID(ctx, "abc")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidNumericID)
	})
}

func TestEmployeeService_UpdatePreferences(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	off := false

	current := &employee.Employee{
		ID:                        uuid.New(),
		NumericID:                 3,
		NotifyLeaveStatus:         true,
		NotifySystemAnnouncements: true,
		NotifyAttendanceReminders: true,
		CreatedAt:                 time.Now(),
	}
	deps.repo.EXPECT().FindByNumericID(ctx, 3).Return(current, nil)
	deps.repo.EXPECT().
		UpdatePreferences(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, e *employee.Employee) error {
			assert.False(t, e.NotifySystemAnnouncements)
			assert.True(t, e.NotifyLeaveStatus)
			return nil
		})
	deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(1)

	resp, err := deps.service.UpdatePreferences(ctx, "3", employee.UpdatePreferencesRequest{SystemAnnouncements: &off})

	assert.NoError(t, err)
	assert.False(t, resp.Preferences.SystemAnnouncements)
	assert.True(t, resp.Preferences.AttendanceReminders)
	assert.NoError(t, deps.redismock.ExpectationsWereMet())
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success renumbers the rest", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		deps.repo.EXPECT().FindByID(ctx, id).Return(&employee.Employee{ID: id, NumericID: 4, Role: employee.RoleEmployee}, nil)
		deps.repo.EXPECT().Delete(ctx, id).Return(nil)
		deps.identity.EXPECT().Resequence(ctx, 4).Return(identity.ResequenceReport{Checked: 4, Reassigned: 2, MaxID: 5}, nil)
		deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(1)
		deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(0)

		resp, err := deps.service.Delete(ctx, id.String())

		assert.NoError(t, err)
		assert.Equal(t, employee.DeleteEmployeeResponse{Deleted: true, Checked: 4, Reassigned: 2}, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("administrator cannot be deleted", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		deps.repo.EXPECT().FindByID(ctx, id).Return(&employee.Employee{ID: id, NumericID: 1, Role: employee.RoleAdmin}, nil)

		_, err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrCannotDeleteAdministrator)
	})

	t.Run("renumbering failure keeps the deletion", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()
		seqErr := apperror.Wrap(errors.New("write timeout"), identityerrors.ErrResequenceIncomplete.Code, identityerrors.ErrResequenceIncomplete.Message, identityerrors.ErrResequenceIncomplete.HTTPStatus)

		deps.repo.EXPECT().FindByID(ctx, id).Return(&employee.Employee{ID: id, NumericID: 2}, nil)
		deps.repo.EXPECT().Delete(ctx, id).Return(nil)
		deps.identity.EXPECT().Resequence(ctx, 2).Return(identity.ResequenceReport{Checked: 3, Reassigned: 1}, seqErr)
		deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(1)
		deps.redismock.ExpectDel(employee.RosterCacheKey).SetVal(0)

		resp, err := deps.service.Delete(ctx, id.String())

		assert.Error(t, err)
		assert.True(t, resp.Deleted)
		assert.Equal(t, 1, resp.Reassigned)
	})

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Delete(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.New()

		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Delete(ctx, id.String())

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

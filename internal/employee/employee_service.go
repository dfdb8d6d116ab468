package employee

import (
	"context"
	"errors"
	"strconv"
	"strings"

	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/identity"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	EnsureAdministrator(ctx context.Context, fullName, email string) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByNumericID(ctx context.Context, numericID string) (EmployeeResponse, error)
	UpdatePreferences(ctx context.Context, numericID string, req UpdatePreferencesRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) (DeleteEmployeeResponse, error)
	Resequence(ctx context.Context) (identity.ResequenceReport, error)
}

type service struct {
	repo     Repository
	identity identity.Service
	rdb      *redis.Client
	logger   *zap.Logger
}

func NewService(repo Repository, identitySvc identity.Service, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:     repo,
		identity: identitySvc,
		rdb:      rdb,
		logger:   l,
	}
}

func (s *service) invalidateRoster(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, RosterCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee roster cache",
			zap.Error(err),
			zap.String("key", RosterCacheKey),
		)
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
		zap.String("role", req.Role),
	)

	role := req.Role
	if role == "" {
		role = RoleEmployee
	}

	empl := &Employee{
		ID:                        uuid.New(),
		FullName:                  strings.TrimSpace(req.FullName),
		Email:                     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:                      role,
		DepartmentName:            strings.TrimSpace(req.DepartmentName),
		NotifyLeaveStatus:         true,
		NotifySystemAnnouncements: true,
		NotifyAttendanceReminders: true,
	}

	if role == RoleAdmin {
		_, err := s.repo.FindAdmin(ctx)
		if err == nil {
			s.logger.Warn("create employee administrator already exists", zap.String("request_id", rid))
			return EmployeeResponse{}, employeeerrors.ErrAdministratorExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("create employee find administrator failed", zap.Error(err))
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		empl.NumericID = identity.AdminNumericID
	} else {
		next, err := s.identity.NextID(ctx)
		if err != nil {
			s.logger.Error("create employee generate numeric id failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		empl.NumericID = next
	}

	if err := s.repo.Create(ctx, empl); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateRoster(ctx)

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.Int("numeric_id", empl.NumericID),
	)
	return mapToResponse(*empl), nil
}

// EnsureAdministrator seeds the administrator on first boot and is a no-op afterwards.
func (s *service) EnsureAdministrator(ctx context.Context, fullName, email string) (EmployeeResponse, error) {
	existing, err := s.repo.FindAdmin(ctx)
	if err == nil {
		return mapToResponse(*existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	resp, err := s.Create(ctx, CreateEmployeeRequest{FullName: fullName, Email: email, Role: RoleAdmin})
	if errors.Is(err, employeeerrors.ErrAdministratorExists) {
		existing, err := s.repo.FindAdmin(ctx)
		if err != nil {
			return EmployeeResponse{}, mapRepositoryError(err)
		}
		return mapToResponse(*existing), nil
	}
	return resp, err
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested")
	rows, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func parseNumericID(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < identity.AdminNumericID {
		return 0, employeeerrors.ErrInvalidNumericID
	}
	return n, nil
}

func (s *service) GetByNumericID(ctx context.Context, numericID string) (EmployeeResponse, error) {
	n, err := parseNumericID(numericID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByNumericID(ctx, n)
	if err != nil {
		s.logger.Warn("get employee by numeric id failed", zap.Int("numeric_id", n), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*empl), nil
}

func (s *service) UpdatePreferences(ctx context.Context, numericID string, req UpdatePreferencesRequest) (EmployeeResponse, error) {
	n, err := parseNumericID(numericID)
	if err != nil {
		return EmployeeResponse{}, err
	}

	empl, err := s.repo.FindByNumericID(ctx, n)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if req.LeaveStatus != nil {
		empl.NotifyLeaveStatus = *req.LeaveStatus
	}
	if req.SystemAnnouncements != nil {
		empl.NotifySystemAnnouncements = *req.SystemAnnouncements
	}
	if req.AttendanceReminders != nil {
		empl.NotifyAttendanceReminders = *req.AttendanceReminders
	}

	if err := s.repo.UpdatePreferences(ctx, empl); err != nil {
		s.logger.Error("update preferences persist failed", zap.Int("numeric_id", n), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateRoster(ctx)

	s.logger.Info("update preferences success",
		zap.Int("numeric_id", n),
		zap.Bool("leave_status", empl.NotifyLeaveStatus),
		zap.Bool("system_announcements", empl.NotifySystemAnnouncements),
		zap.Bool("attendance_reminders", empl.NotifyAttendanceReminders),
	)
	return mapToResponse(*empl), nil
}

// Delete removes the employee and closes the gap it leaves in the numeric id range.
// When renumbering fails the deletion stands; Resequence can be rerun to finish it.
func (s *service) Delete(ctx context.Context, id string) (DeleteEmployeeResponse, error) {
	s.logger.Debug("delete employee requested", zap.String("employee_id", id))

	employeeID, err := uuid.Parse(id)
	if err != nil {
		return DeleteEmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, employeeID)
	if err != nil {
		return DeleteEmployeeResponse{}, mapRepositoryError(err)
	}
	if empl.IsAdmin() {
		return DeleteEmployeeResponse{}, employeeerrors.ErrCannotDeleteAdministrator
	}

	if err := s.repo.Delete(ctx, employeeID); err != nil {
		s.logger.Error("delete employee failed", zap.Error(err))
		return DeleteEmployeeResponse{}, mapRepositoryError(err)
	}
	s.invalidateRoster(ctx)

	report, err := s.identity.Resequence(ctx, empl.NumericID)
	s.invalidateRoster(ctx)
	if err != nil {
		s.logger.Error("delete employee renumbering incomplete",
			zap.String("employee_id", id),
			zap.Int("numeric_id", empl.NumericID),
			zap.Int("reassigned", report.Reassigned),
			zap.Error(err),
		)
		return DeleteEmployeeResponse{Deleted: true, Checked: report.Checked, Reassigned: report.Reassigned}, err
	}

	s.logger.Info("delete employee success",
		zap.String("employee_id", id),
		zap.Int("numeric_id", empl.NumericID),
		zap.Int("reassigned", report.Reassigned),
	)
	return DeleteEmployeeResponse{Deleted: true, Checked: report.Checked, Reassigned: report.Reassigned}, nil
}

func (s *service) Resequence(ctx context.Context) (identity.ResequenceReport, error) {
	report, err := s.identity.Resequence(ctx, 0)
	s.invalidateRoster(ctx)
	return report, err
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             empl.ID.String(),
		NumericID:      empl.NumericID,
		FullName:       empl.FullName,
		Email:          empl.Email,
		Role:           empl.Role,
		DepartmentName: empl.DepartmentName,
		Preferences: PreferencesResponse{
			LeaveStatus:         empl.NotifyLeaveStatus,
			SystemAnnouncements: empl.NotifySystemAnnouncements,
			AttendanceReminders: empl.NotifyAttendanceReminders,
		},
	}
}

func mapToListResponse(rows []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(rows))
	for i, e := range rows {
		res[i] = mapToResponse(e)
	}
	return res
}

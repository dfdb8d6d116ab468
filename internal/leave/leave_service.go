package leave

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	leaveerrors "go-attendance/internal/leave/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmployeeNames resolves the display name snapshotted onto a request.
type EmployeeNames interface {
	FullName(ctx context.Context, numericID string) (string, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, filter ListFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	Find(ctx context.Context, id string) (LeaveRequest, error)
	SetStatus(ctx context.Context, id string, status Status) (LeaveRequest, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	names  EmployeeNames
	now    func() time.Time
	logger *zap.Logger
}

// NewService builds the leave request store. names may be nil, in which case
// the caller-supplied employee name is kept as is.
func NewService(repo Repository, names EmployeeNames, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		repo:   repo,
		names:  names,
		now:    func() time.Time { return time.Now().UTC() },
		logger: l,
	}
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseLeaveID(id string) (uuid.UUID, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, leaveerrors.ErrInvalidLeaveID
	}
	return leaveID, nil
}

func validateSubmitRequest(req SubmitLeaveRequest) (time.Time, time.Time, error) {
	if strings.TrimSpace(req.EmployeeID) == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrEmployeeIDRequired
	}
	if n, err := strconv.Atoi(req.EmployeeID); err != nil || n < 1 {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	if !LeaveType(req.LeaveType).Valid() {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidLeaveType
	}
	if strings.TrimSpace(req.StartDate) == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrStartDateRequired
	}
	if strings.TrimSpace(req.EndDate) == "" {
		return time.Time{}, time.Time{}, leaveerrors.ErrEndDateRequired
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if endDate.Before(startDate) {
		return time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return startDate, endDate, nil
}

func (s *service) Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	startDate, endDate, err := validateSubmitRequest(req)
	if err != nil {
		s.logger.Warn("submit leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	leaveDays := InclusiveDays(startDate, endDate)
	if req.LeaveDays != nil && *req.LeaveDays != leaveDays {
		s.logger.Warn("submit leave ignoring caller leave_days",
			zap.String("employee_id", req.EmployeeID),
			zap.Int("supplied", *req.LeaveDays),
			zap.Int("computed", leaveDays),
		)
	}

	name := strings.TrimSpace(req.EmployeeName)
	if s.names != nil {
		resolved, err := s.names.FullName(ctx, req.EmployeeID)
		if err != nil {
			var appErr *apperror.AppError
			if errors.As(err, &appErr) && appErr.Code == apperror.CodeNotFound {
				return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
			}
			s.logger.Error("submit leave resolve employee failed", zap.Error(err))
			return LeaveResponse{}, apperror.StoreUnavailable(err)
		}
		name = resolved
	}

	now := s.now()
	l := &LeaveRequest{
		ID:           uuid.New(),
		EmployeeID:   req.EmployeeID,
		EmployeeName: name,
		LeaveType:    LeaveType(req.LeaveType),
		StartDate:    startDate,
		EndDate:      endDate,
		LeaveDays:    leaveDays,
		Reason:       strings.TrimSpace(req.Reason),
		Status:       StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, apperror.StoreUnavailable(err)
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", l.EmployeeID),
		zap.Int("leave_days", l.LeaveDays),
	)
	return s.mapToResponse(*l), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]LeaveResponse, error) {
	if filter.Status != "" && filter.Status != StatusPending && !filter.Status.Decided() {
		return nil, leaveerrors.ErrInvalidStatusFilter
	}

	rows, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list leave failed", zap.Error(err))
		return nil, apperror.StoreUnavailable(err)
	}

	resp := make([]LeaveResponse, len(rows))
	for i, l := range rows {
		resp[i] = s.mapToResponse(l)
	}
	return resp, nil
}

func (s *service) Find(ctx context.Context, id string) (LeaveRequest, error) {
	leaveID, err := parseLeaveID(id)
	if err != nil {
		return LeaveRequest{}, err
	}

	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveRequest{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("find leave failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequest{}, apperror.StoreUnavailable(err)
	}
	return *l, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	l, err := s.Find(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	return s.mapToResponse(l), nil
}

// SetStatus moves a Pending request to Approved or Rejected. Exactly one caller
// wins a concurrent decision; the others get ErrInvalidStatusTransition, or
// ErrStatusAlreadyApplied together with the record when they asked for the
// status it already has.
func (s *service) SetStatus(ctx context.Context, id string, status Status) (LeaveRequest, error) {
	s.logger.Debug("set leave status requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("leave_id", id),
		zap.String("status", string(status)),
	)

	if !status.Decided() {
		return LeaveRequest{}, leaveerrors.ErrInvalidTargetStatus
	}
	leaveID, err := parseLeaveID(id)
	if err != nil {
		return LeaveRequest{}, err
	}

	applied, err := s.repo.UpdateStatusIfPending(ctx, leaveID, status, s.now())
	if err != nil {
		s.logger.Error("set leave status persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveRequest{}, apperror.StoreUnavailable(err)
	}

	current, err := s.Find(ctx, id)
	if err != nil {
		return LeaveRequest{}, err
	}

	if applied {
		s.logger.Info("set leave status success",
			zap.String("leave_id", id),
			zap.String("employee_id", current.EmployeeID),
			zap.String("status", string(status)),
		)
		return current, nil
	}

	if current.Status == status {
		s.logger.Info("set leave status already applied",
			zap.String("leave_id", id),
			zap.String("status", string(status)),
		)
		return current, leaveerrors.ErrStatusAlreadyApplied
	}

	s.logger.Warn("set leave status invalid transition",
		zap.String("leave_id", id),
		zap.String("from_status", string(current.Status)),
		zap.String("to_status", string(status)),
	)
	return current, leaveerrors.ErrInvalidStatusTransition
}

func (s *service) Delete(ctx context.Context, id string) error {
	leaveID, err := parseLeaveID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, leaveID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("delete leave failed", zap.String("leave_id", id), zap.Error(err))
		return apperror.StoreUnavailable(err)
	}

	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) mapToResponse(l LeaveRequest) LeaveResponse {
	return NewLeaveResponse(l, s.now())
}

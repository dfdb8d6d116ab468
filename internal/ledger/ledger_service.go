package ledger

import (
	"context"
	"strconv"
	"time"

	"go-attendance/internal/leave"
	ledgererrors "go-attendance/internal/ledger/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/dberr"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	RecordApproval(ctx context.Context, req leave.LeaveRequest) (bool, error)
	TotalDaysFor(ctx context.Context, employeeID string) (int64, error)
	ListFor(ctx context.Context, employeeID string) ([]EntryResponse, error)
	RemoveFor(ctx context.Context, leaveRequestID uuid.UUID) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	return &service{repo: repo, logger: l}
}

func validateEmployeeID(employeeID string) error {
	if n, err := strconv.Atoi(employeeID); err != nil || n < 1 {
		return ledgererrors.ErrInvalidEmployeeID
	}
	return nil
}

// RecordApproval writes the ledger entry for an approved request. It reports
// whether a new entry was created; an existing entry makes the call a no-op.
func (s *service) RecordApproval(ctx context.Context, req leave.LeaveRequest) (bool, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("record approval requested",
		zap.String("request_id", rid),
		zap.String("leave_id", req.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)

	if req.ID == uuid.Nil {
		return false, ledgererrors.ErrInvalidLeaveRequestID
	}
	if req.Status != leave.StatusApproved {
		s.logger.Warn("record approval rejected",
			zap.String("leave_id", req.ID.String()),
			zap.String("status", string(req.Status)),
		)
		return false, ledgererrors.ErrRequestNotApproved
	}

	exists, err := s.repo.ExistsForRequest(ctx, req.ID)
	if err != nil {
		s.logger.Error("record approval lookup failed", zap.String("leave_id", req.ID.String()), zap.Error(err))
		return false, apperror.StoreUnavailable(err)
	}
	if exists {
		s.logger.Info("record approval already recorded", zap.String("leave_id", req.ID.String()))
		return false, nil
	}

	approvedAt := req.UpdatedAt
	if approvedAt.IsZero() {
		approvedAt = time.Now().UTC()
	}
	entry := &LeaveDaysTaken{
		ID:             uuid.New(),
		EmployeeID:     req.EmployeeID,
		EmployeeName:   req.EmployeeName,
		LeaveRequestID: req.ID,
		LeaveDays:      req.LeaveDays,
		LeaveType:      req.LeaveType,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		ApprovedAt:     approvedAt,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		if dberr.IsUniqueViolation(err, requestConstraint) {
			s.logger.Info("record approval lost insert race", zap.String("leave_id", req.ID.String()))
			return false, nil
		}
		s.logger.Error("record approval persist failed", zap.String("leave_id", req.ID.String()), zap.Error(err))
		return false, apperror.StoreUnavailable(err)
	}

	s.logger.Info("record approval success",
		zap.String("request_id", rid),
		zap.String("leave_id", req.ID.String()),
		zap.String("employee_id", entry.EmployeeID),
		zap.Int("leave_days", entry.LeaveDays),
	)
	return true, nil
}

func (s *service) TotalDaysFor(ctx context.Context, employeeID string) (int64, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return 0, err
	}

	total, err := s.repo.SumDaysByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("total leave days failed", zap.String("employee_id", employeeID), zap.Error(err))
		return 0, apperror.StoreUnavailable(err)
	}
	return total, nil
}

func (s *service) ListFor(ctx context.Context, employeeID string) ([]EntryResponse, error) {
	if err := validateEmployeeID(employeeID); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list ledger failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, apperror.StoreUnavailable(err)
	}

	resp := make([]EntryResponse, len(rows))
	for i, e := range rows {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

// RemoveFor deletes the entry of a leave request. A missing entry is not an error.
func (s *service) RemoveFor(ctx context.Context, leaveRequestID uuid.UUID) error {
	if leaveRequestID == uuid.Nil {
		return ledgererrors.ErrInvalidLeaveRequestID
	}

	removed, err := s.repo.DeleteByRequest(ctx, leaveRequestID)
	if err != nil {
		s.logger.Error("remove ledger entry failed", zap.String("leave_id", leaveRequestID.String()), zap.Error(err))
		return apperror.StoreUnavailable(err)
	}

	s.logger.Info("remove ledger entry",
		zap.String("leave_id", leaveRequestID.String()),
		zap.Int64("removed", removed),
	)
	return nil
}

func mapToResponse(e LeaveDaysTaken) EntryResponse {
	return EntryResponse{
		ID:             e.ID.String(),
		EmployeeID:     e.EmployeeID,
		EmployeeName:   e.EmployeeName,
		LeaveRequestID: e.LeaveRequestID.String(),
		LeaveDays:      e.LeaveDays,
		LeaveType:      string(e.LeaveType),
		StartDate:      e.StartDate.Format(leave.DateLayout),
		EndDate:        e.EndDate.Format(leave.DateLayout),
		ApprovedAt:     e.ApprovedAt.Format(time.RFC3339),
	}
}

package leavelifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-attendance/internal/leave"
	leaveerrors "go-attendance/internal/leave/errors"
	"go-attendance/internal/ledger"
	"go-attendance/internal/notification"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=leavelifecycle_service.go -destination=mock/leavelifecycle_service_mock.go -package=mock
type Service interface {
	Approve(ctx context.Context, id string) (DecisionResponse, error)
	Reject(ctx context.Context, id string) (DecisionResponse, error)
	Remove(ctx context.Context, id string) (RemovalResponse, error)
}

// service sequences the store, the ledger and the notifier. Steps run in that
// order and a failed step never undoes an earlier one; every step is safe to
// repeat, so retrying the same call converges.
type service struct {
	leaves   leave.Service
	ledger   ledger.Service
	notifier notification.Service
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(leaves leave.Service, ledgerService ledger.Service, notifier notification.Service, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavelifecycle.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavelifecycle.service")
	}
	return &service{
		leaves:   leaves,
		ledger:   ledgerService,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		logger:   l,
	}
}

// EventID is the idempotency event of a decision notification.
func EventID(leaveID string, status leave.Status) string {
	return fmt.Sprintf("leave:%s:%s", leaveID, status)
}

func decisionMessage(l leave.LeaveRequest) string {
	verb := "approved"
	if l.Status == leave.StatusRejected {
		verb = "rejected"
	}
	return fmt.Sprintf("Your %s request from %s to %s has been %s.",
		l.LeaveType,
		l.StartDate.Format(leave.DateLayout),
		l.EndDate.Format(leave.DateLayout),
		verb,
	)
}

func (s *service) Approve(ctx context.Context, id string) (DecisionResponse, error) {
	return s.decide(ctx, id, leave.StatusApproved)
}

func (s *service) Reject(ctx context.Context, id string) (DecisionResponse, error) {
	return s.decide(ctx, id, leave.StatusRejected)
}

func (s *service) decide(ctx context.Context, id string, status leave.Status) (DecisionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("leave_id", id))
	log.Debug("leave decision requested", zap.String("status", string(status)))

	l, err := s.leaves.SetStatus(ctx, id, status)
	// A repeated decision re-runs the later steps so an earlier partial
	// failure is repaired, then still reports the repeat to the caller.
	var repeated error
	if errors.Is(err, leaveerrors.ErrStatusAlreadyApplied) {
		repeated = err
	} else if err != nil {
		return DecisionResponse{}, err
	}

	resp := DecisionResponse{Leave: leave.NewLeaveResponse(l, s.now())}

	if status == leave.StatusApproved {
		created, err := s.ledger.RecordApproval(ctx, l)
		if err != nil {
			log.Error("leave decision ledger step failed", zap.Error(err))
			return resp, err
		}
		resp.LedgerRecorded = true
		if !created {
			log.Debug("leave decision ledger entry already present")
		}
	}

	msgType := notification.TypeLeaveApproved
	if status == leave.StatusRejected {
		msgType = notification.TypeLeaveRejected
	}
	delivery, err := s.notifier.Notify(ctx, l.EmployeeID, notification.Message{
		Text:    decisionMessage(l),
		Type:    msgType,
		EventID: EventID(l.ID.String(), status),
	})
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperror.CodeNotFound {
			log.Error("leave decision notify step failed", zap.Error(err))
			return resp, err
		}
		// The employee left after filing; the decision itself stands.
		log.Warn("leave decision recipient missing", zap.String("employee_id", l.EmployeeID))
		delivery.Delivery = notification.DeliverySkipped
	}
	resp.Notification = delivery.Delivery

	log.Info("leave decision complete",
		zap.String("status", string(status)),
		zap.Bool("repeated", repeated != nil),
		zap.String("notification", string(resp.Notification)),
	)
	return resp, repeated
}

// Remove deletes a leave request together with its ledger entry. The ledger is
// cleared even when the request is already gone, so a retry after a partial
// failure finishes the job.
func (s *service) Remove(ctx context.Context, id string) (RemovalResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("leave_id", id))
	log.Debug("leave removal requested")

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return RemovalResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	resp := RemovalResponse{LeaveRequestID: leaveID.String()}

	_, findErr := s.leaves.Find(ctx, id)
	if findErr != nil && !errors.Is(findErr, leaveerrors.ErrLeaveNotFound) {
		return resp, findErr
	}

	if findErr == nil {
		err := s.leaves.Delete(ctx, id)
		switch {
		case err == nil:
			resp.Deleted = true
		case errors.Is(err, leaveerrors.ErrLeaveNotFound):
			findErr = err
		default:
			log.Error("leave removal store step failed", zap.Error(err))
			return resp, err
		}
	}

	if err := s.ledger.RemoveFor(ctx, leaveID); err != nil {
		log.Error("leave removal ledger step failed",
			zap.Bool("deleted", resp.Deleted),
			zap.Error(err),
		)
		return resp, err
	}

	if findErr != nil {
		log.Info("leave removal found no request, ledger cleared")
		return resp, findErr
	}

	log.Info("leave removal complete")
	return resp, nil
}

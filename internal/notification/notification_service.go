package notification

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	notificationerrors "go-attendance/internal/notification/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"
	"go-attendance/internal/shared/dberr"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const DefaultFanoutConcurrency = 8

// idNamespace derives notification ids from their idempotency key.
var idNamespace = uuid.MustParse("6f1c3a52-4d0e-4f57-9a39-2f3c9a6d8e11")

// RecipientDirectory resolves employees and their notification preferences.
type RecipientDirectory interface {
	FindRecipient(ctx context.Context, numericID string) (Recipient, error)
	ListRecipients(ctx context.Context) ([]Recipient, error)
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	Notify(ctx context.Context, employeeID string, msg Message) (DeliveryResponse, error)
	NotifyAll(ctx context.Context, msg Message) (FanoutReport, error)
	ListFor(ctx context.Context, employeeID string) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, id, ownerID string) error
	UnreadCount(ctx context.Context, employeeID string) (int64, error)
}

type service struct {
	repo        Repository
	directory   RecipientDirectory
	concurrency int
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(repo Repository, directory RecipientDirectory, concurrency int, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	if concurrency <= 0 {
		concurrency = DefaultFanoutConcurrency
	}
	return &service{
		repo:        repo,
		directory:   directory,
		concurrency: concurrency,
		now:         func() time.Time { return time.Now().UTC() },
		logger:      l,
	}
}

func validateMessage(msg Message) error {
	if !msg.Type.Valid() {
		return notificationerrors.ErrInvalidType
	}
	if strings.TrimSpace(msg.Text) == "" {
		return notificationerrors.ErrEmptyMessage
	}
	return nil
}

func (s *service) Notify(ctx context.Context, employeeID string, msg Message) (DeliveryResponse, error) {
	s.logger.Debug("notify requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", employeeID),
		zap.String("type", string(msg.Type)),
	)

	if err := validateMessage(msg); err != nil {
		return DeliveryResponse{}, err
	}
	if msg.EventID == "" {
		msg.EventID = uuid.NewString()
	}

	recipient, err := s.directory.FindRecipient(ctx, employeeID)
	if err != nil {
		s.logger.Warn("notify recipient lookup failed",
			zap.String("employee_id", employeeID),
			zap.Error(err),
		)
		return DeliveryResponse{}, err
	}

	return s.deliver(ctx, recipient, msg)
}

func (s *service) deliver(ctx context.Context, recipient Recipient, msg Message) (DeliveryResponse, error) {
	resp := DeliveryResponse{EmployeeID: recipient.NumericID, EventID: msg.EventID}

	category, _ := msg.Type.Category()
	if !recipient.Preferences.Allows(category) {
		s.logger.Debug("notify skipped by preference",
			zap.String("employee_id", recipient.NumericID),
			zap.String("type", string(msg.Type)),
		)
		resp.Delivery = DeliverySkipped
		return resp, nil
	}

	key := idempotencyKey(msg.EventID, recipient.NumericID)
	n := &Notification{
		ID:             uuid.NewSHA1(idNamespace, []byte(key)),
		EmployeeID:     recipient.NumericID,
		Message:        msg.Text,
		Type:           msg.Type,
		IsRead:         false,
		IdempotencyKey: key,
		CreatedAt:      s.now(),
	}

	if err := s.repo.Create(ctx, n); err != nil {
		if dberr.IsUniqueViolation(err, "") {
			s.logger.Info("notify already delivered",
				zap.String("employee_id", recipient.NumericID),
				zap.String("idempotency_key", key),
			)
			resp.Delivery = DeliveryDuplicate
			return resp, nil
		}
		s.logger.Error("notify persist failed",
			zap.String("employee_id", recipient.NumericID),
			zap.String("type", string(msg.Type)),
			zap.Error(err),
		)
		return DeliveryResponse{}, apperror.StoreUnavailable(err)
	}

	s.logger.Info("notify success",
		zap.String("notification_id", n.ID.String()),
		zap.String("employee_id", recipient.NumericID),
		zap.String("type", string(msg.Type)),
	)
	resp.Delivery = DeliveryCreated
	return resp, nil
}

// NotifyAll delivers msg to every non-admin employee. Recipients are handled
// independently and in no particular order; one failure never stops the rest.
func (s *service) NotifyAll(ctx context.Context, msg Message) (FanoutReport, error) {
	if err := validateMessage(msg); err != nil {
		return FanoutReport{}, err
	}
	if msg.EventID == "" {
		msg.EventID = uuid.NewString()
	}

	s.logger.Debug("notify all requested",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("event_id", msg.EventID),
		zap.String("type", string(msg.Type)),
	)

	recipients, err := s.directory.ListRecipients(ctx)
	if err != nil {
		s.logger.Error("notify all roster failed", zap.Error(err))
		return FanoutReport{}, apperror.StoreUnavailable(err)
	}

	var delivered, duplicates, skipped, failed atomic.Int64
	report := FanoutReport{EventID: msg.EventID}

	g := new(errgroup.Group)
	g.SetLimit(s.concurrency)
	for _, r := range recipients {
		if r.IsAdmin {
			continue
		}
		report.Recipients++
		recipient := r
		g.Go(func() error {
			resp, err := s.deliver(ctx, recipient, msg)
			if err != nil {
				failed.Add(1)
				s.logger.Warn("notify all recipient failed",
					zap.String("event_id", msg.EventID),
					zap.String("employee_id", recipient.NumericID),
					zap.Error(err),
				)
				return nil
			}
			switch resp.Delivery {
			case DeliveryCreated:
				delivered.Add(1)
			case DeliveryDuplicate:
				duplicates.Add(1)
			case DeliverySkipped:
				skipped.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	report.Delivered = int(delivered.Load())
	report.Duplicates = int(duplicates.Load())
	report.Skipped = int(skipped.Load())
	report.Failed = int(failed.Load())

	s.logger.Info("notify all finished",
		zap.String("event_id", report.EventID),
		zap.String("type", string(msg.Type)),
		zap.Int("recipients", report.Recipients),
		zap.Int("delivered", report.Delivered),
		zap.Int("duplicates", report.Duplicates),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *service) ListFor(ctx context.Context, employeeID string) ([]NotificationResponse, error) {
	rows, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("list notifications failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, apperror.StoreUnavailable(err)
	}
	return mapToListResponse(rows), nil
}

// MarkRead is idempotent. A non-empty ownerID restricts the call to that recipient.
func (s *service) MarkRead(ctx context.Context, id, ownerID string) error {
	notificationID, err := uuid.Parse(id)
	if err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}

	n, err := s.repo.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notificationerrors.ErrNotificationNotFound
		}
		return apperror.StoreUnavailable(err)
	}
	if ownerID != "" && n.EmployeeID != ownerID {
		return notificationerrors.ErrNotificationNotFound
	}
	if n.IsRead {
		return nil
	}

	if err := s.repo.MarkRead(ctx, notificationID, s.now()); err != nil {
		s.logger.Error("mark notification read failed", zap.String("notification_id", id), zap.Error(err))
		return apperror.StoreUnavailable(err)
	}
	return nil
}

func (s *service) UnreadCount(ctx context.Context, employeeID string) (int64, error) {
	count, err := s.repo.CountUnread(ctx, employeeID)
	if err != nil {
		return 0, apperror.StoreUnavailable(err)
	}
	return count, nil
}

func mapToResponse(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:         n.ID.String(),
		EmployeeID: n.EmployeeID,
		Message:    n.Message,
		Type:       string(n.Type),
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		v := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	return resp
}

func mapToListResponse(rows []Notification) []NotificationResponse {
	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapToResponse(n)
	}
	return resp
}

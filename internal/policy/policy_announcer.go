package policy

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka"
	"go-attendance/internal/notification"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Announcement is one company-wide notice produced by a policy change.
type Announcement struct {
	EventID       string
	AggregateType string
	AggregateID   string
	Type          notification.Type
	Message       string
}

// Announcer delivers announcements. Stage runs inside the change's
// transaction; Publish runs after it commits.
type Announcer interface {
	Stage(ctx context.Context, tx *sql.Tx, a Announcement) error
	Publish(ctx context.Context, a Announcement)
}

// DirectAnnouncer fans out in-process once the change is committed.
type DirectAnnouncer struct {
	notifier notification.Service
	logger   *zap.Logger
}

func NewDirectAnnouncer(notifier notification.Service, logger ...*zap.Logger) *DirectAnnouncer {
	l := zap.L().Named("policy.announcer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.announcer")
	}
	return &DirectAnnouncer{notifier: notifier, logger: l}
}

func (d *DirectAnnouncer) Stage(ctx context.Context, tx *sql.Tx, a Announcement) error {
	return nil
}

func (d *DirectAnnouncer) Publish(ctx context.Context, a Announcement) {
	report, err := d.notifier.NotifyAll(ctx, notification.Message{
		Text:    a.Message,
		Type:    a.Type,
		EventID: a.EventID,
	})
	if err != nil {
		d.logger.Error("announce failed",
			zap.String("event_id", a.EventID),
			zap.String("type", string(a.Type)),
			zap.Error(err),
		)
		return
	}
	d.logger.Info("announce delivered",
		zap.String("event_id", a.EventID),
		zap.Int("delivered", report.Delivered),
		zap.Int("failed", report.Failed),
	)
}

// OutboxAnnouncer writes the announcement to the outbox in the same
// transaction as the change; the worker publishes it to Kafka.
type OutboxAnnouncer struct {
	outbox kafka.OutboxRepository
	now    func() time.Time
}

func NewOutboxAnnouncer(outbox kafka.OutboxRepository) *OutboxAnnouncer {
	return &OutboxAnnouncer{outbox: outbox, now: func() time.Time { return time.Now().UTC() }}
}

func (o *OutboxAnnouncer) Stage(ctx context.Context, tx *sql.Tx, a Announcement) error {
	requestID := contextutil.GetRequestID(ctx)
	payload, err := json.Marshal(events.PolicyChangedEvent{
		EventType:        events.PolicyChangedEventType,
		EventID:          a.EventID,
		NotificationType: string(a.Type),
		Message:          a.Message,
		RequestID:        requestID,
		OccurredAt:       o.now(),
	})
	if err != nil {
		return err
	}

	repo := o.outbox
	if tx != nil {
		repo = repo.WithTx(tx)
	}
	return repo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: a.AggregateType,
		AggregateID:   a.AggregateID,
		EventType:     events.PolicyChangedEventType,
		Topic:         events.PolicyChangedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (o *OutboxAnnouncer) Publish(ctx context.Context, a Announcement) {}

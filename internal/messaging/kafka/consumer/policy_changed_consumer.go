package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-attendance/internal/events"
	"go-attendance/internal/notification"
	"go-attendance/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// FanoutAttempts bounds the in-process retries of a fan-out that left some
// recipients undelivered. Delivery is idempotent, so retries only fill gaps.
const FanoutAttempts = 3

var RetryDelay = 2 * time.Second

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumePolicyChanged fans every policy change out to the roster. Delivery is
// keyed by the event id, so a redelivered message does not notify twice.
func ConsumePolicyChanged(
	ctx context.Context,
	reader MessageReader,
	notifier notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.policy_changed")
	log.Info("policy changed consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("policy changed consumer stopped")
				return
			}
			log.Error("fetch policy changed message failed", zap.Error(err))
			continue
		}

		handlePolicyChanged(ctx, reader, msg, notifier, log)
	}
}

func handlePolicyChanged(
	ctx context.Context,
	reader MessageReader,
	msg kafkago.Message,
	notifier notification.Service,
	log *zap.Logger,
) {
	var event events.PolicyChangedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode policy changed event failed", zap.Error(err))
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	message := notification.Message{
		Text:    event.Message,
		Type:    notification.Type(event.NotificationType),
		EventID: event.EventID,
	}
	var (
		report notification.FanoutReport
		err    error
	)
	for attempt := 1; ; attempt++ {
		report, err = notifier.NotifyAll(ctx, message)
		if err != nil || report.Failed == 0 || attempt == FanoutAttempts {
			break
		}
		log.Warn("policy change fan out incomplete, retrying",
			zap.String("event_id", event.EventID),
			zap.Int("failed", report.Failed),
			zap.Int("attempt", attempt),
		)
		select {
		case <-ctx.Done():
			return
		case <-time.After(RetryDelay * time.Duration(attempt)):
		}
	}
	if err != nil {
		if !apperror.IsStoreUnavailable(err) {
			// A malformed event never becomes deliverable.
			log.Warn("policy changed event rejected, skipping",
				zap.String("event_id", event.EventID),
				zap.String("notification_type", event.NotificationType),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			return
		}
		log.Error("fan out policy change failed",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return
	}

	if report.Failed > 0 {
		log.Warn("policy change fan out incomplete, leaving message uncommitted",
			zap.String("event_id", event.EventID),
			zap.Int("recipients", report.Recipients),
			zap.Int("delivered", report.Delivered),
			zap.Int("failed", report.Failed),
		)
		return
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit policy changed message failed", zap.Error(err))
		return
	}

	log.Info("policy change fanned out",
		zap.String("event_id", event.EventID),
		zap.String("notification_type", event.NotificationType),
		zap.Int("recipients", report.Recipients),
		zap.Int("delivered", report.Delivered),
		zap.Int("failed", report.Failed),
	)
}

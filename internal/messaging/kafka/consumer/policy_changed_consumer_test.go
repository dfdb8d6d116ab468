package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka/consumer"
	"go-attendance/internal/notification"
	notificationerrors "go-attendance/internal/notification/errors"
	"go-attendance/internal/notification/mock"
	"go-attendance/internal/shared/apperror"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// fakeReader replays msgs once and then cancels the consumer.
type fakeReader struct {
	msgs      []kafkago.Message
	cancel    context.CancelFunc
	committed []kafkago.Message
}

func (f *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(f.msgs) == 0 {
		f.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	m := f.msgs[0]
	f.msgs = f.msgs[1:]
	return m, nil
}

func (f *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.committed = append(f.committed, msgs...)
	return nil
}

func policyMessage(t *testing.T, eventID, notificationType string) kafkago.Message {
	body, err := json.Marshal(events.PolicyChangedEvent{
		EventType:        events.PolicyChangedEventType,
		EventID:          eventID,
		NotificationType: notificationType,
		Message:          "Office closed on 2024-12-25.",
		OccurredAt:       time.Now().UTC(),
	})
	assert.NoError(t, err)
	return kafkago.Message{Topic: events.PolicyChangedTopic, Value: body}
}

func TestConsumePolicyChanged(t *testing.T) {
	t.Run("fans out and commits", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock.NewMockService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{msgs: []kafkago.Message{policyMessage(t, "evt-1", "holiday_updated")}, cancel: cancel}

		notifier.EXPECT().NotifyAll(gomock.Any(), notification.Message{
			Text:    "Office closed on 2024-12-25.",
			Type:    notification.TypeHolidayUpdated,
			EventID: "evt-1",
		}).Return(notification.FanoutReport{EventID: "evt-1", Recipients: 3, Delivered: 3}, nil)

		consumer.ConsumePolicyChanged(ctx, reader, notifier, zap.NewNop())

		assert.Len(t, reader.committed, 1)
	})

	t.Run("undecodable payload is committed and skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock.NewMockService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{msgs: []kafkago.Message{{Value: []byte("not json")}}, cancel: cancel}

		consumer.ConsumePolicyChanged(ctx, reader, notifier, zap.NewNop())

		assert.Len(t, reader.committed, 1)
	})

	t.Run("unknown type is committed and skipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock.NewMockService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{msgs: []kafkago.Message{policyMessage(t, "evt-2", "birthday")}, cancel: cancel}

		notifier.EXPECT().NotifyAll(gomock.Any(), gomock.Any()).Return(notification.FanoutReport{}, notificationerrors.ErrInvalidType)

		consumer.ConsumePolicyChanged(ctx, reader, notifier, zap.NewNop())

		assert.Len(t, reader.committed, 1)
	})

	t.Run("store outage leaves message uncommitted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock.NewMockService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{msgs: []kafkago.Message{policyMessage(t, "evt-3", "working_hours_changed")}, cancel: cancel}

		notifier.EXPECT().NotifyAll(gomock.Any(), gomock.Any()).
			Return(notification.FanoutReport{}, apperror.StoreUnavailable(errors.New("db down")))

		consumer.ConsumePolicyChanged(ctx, reader, notifier, zap.NewNop())

		assert.Empty(t, reader.committed)
	})
	t.Run("failed recipients are retried before commit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock.NewMockService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{msgs: []kafkago.Message{policyMessage(t, "evt-4", "holiday_deleted")}, cancel: cancel}
		shortRetryDelay(t)

		gomock.InOrder(
			notifier.EXPECT().NotifyAll(gomock.Any(), gomock.Any()).
				Return(notification.FanoutReport{EventID: "evt-4", Recipients: 3, Delivered: 2, Failed: 1}, nil),
			notifier.EXPECT().NotifyAll(gomock.Any(), gomock.Any()).
				Return(notification.FanoutReport{EventID: "evt-4", Recipients: 3, Delivered: 1, Duplicates: 2}, nil),
		)

		consumer.ConsumePolicyChanged(ctx, reader, notifier, zap.NewNop())

		assert.Len(t, reader.committed, 1)
	})

	t.Run("persistent recipient failures leave message uncommitted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		notifier := mock.NewMockService(ctrl)
		ctx, cancel := context.WithCancel(context.Background())
		reader := &fakeReader{msgs: []kafkago.Message{policyMessage(t, "evt-5", "holiday_deleted")}, cancel: cancel}
		shortRetryDelay(t)

		notifier.EXPECT().NotifyAll(gomock.Any(), gomock.Any()).
			Return(notification.FanoutReport{EventID: "evt-5", Recipients: 3, Delivered: 2, Failed: 1}, nil).
			Times(consumer.FanoutAttempts)

		consumer.ConsumePolicyChanged(ctx, reader, notifier, zap.NewNop())

		assert.Empty(t, reader.committed)
	})
}

func shortRetryDelay(t *testing.T) {
	prev := consumer.RetryDelay
	consumer.RetryDelay = time.Millisecond
	t.Cleanup(func() { consumer.RetryDelay = prev })
}

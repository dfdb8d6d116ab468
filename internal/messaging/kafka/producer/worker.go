package producer

import (
	"context"
	"time"

	"go-attendance/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	DefaultBatchSize    = 50
	DefaultPollInterval = 3 * time.Second
	// DefaultRetention keeps published rows around for replay and debugging.
	DefaultRetention = 7 * 24 * time.Hour
	purgeInterval    = time.Hour
)

// BatchResult counts what one Flush did with the rows it picked up.
type BatchResult struct {
	Sent     int
	Retrying int
	Dead     int
}

// Relay moves outbox rows onto Kafka. Rows are published in creation order,
// and a row that keeps failing is parked as dead after
// kafka.MaxPublishAttempts.
type Relay struct {
	repo      kafka.OutboxRepository
	writer    MessageWriter
	logger    *zap.Logger
	batchSize int
	retention time.Duration
	now       func() time.Time
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, logger ...*zap.Logger) *Relay {
	l := zap.L().Named("kafka.producer.relay")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("kafka.producer.relay")
	}
	return &Relay{
		repo:      repo,
		writer:    writer,
		logger:    l,
		batchSize: DefaultBatchSize,
		retention: DefaultRetention,
		now:       time.Now,
	}
}

// Run flushes every pollInterval and purges old published rows hourly until
// ctx is cancelled.
func (r *Relay) Run(ctx context.Context, pollInterval time.Duration) {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	poll := time.NewTicker(pollInterval)
	defer poll.Stop()
	purge := time.NewTicker(purgeInterval)
	defer purge.Stop()

	r.logger.Info("outbox relay started", zap.Duration("poll_interval", pollInterval))
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("outbox relay stopped")
			return
		case <-poll.C:
			if _, err := r.Flush(ctx); err != nil {
				r.logger.Error("outbox flush failed", zap.Error(err))
			}
		case <-purge.C:
			if _, err := r.Purge(ctx); err != nil {
				r.logger.Error("outbox purge failed", zap.Error(err))
			}
		}
	}
}

// Flush publishes one batch. A failed publish is recorded on its row and the
// batch moves on; only a failure to list the batch is returned.
func (r *Relay) Flush(ctx context.Context) (BatchResult, error) {
	var res BatchResult

	events, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil || len(events) == 0 {
		return res, err
	}
	r.logger.Debug("flushing outbox batch", zap.Int("count", len(events)))

	for _, event := range events {
		log := r.logger.With(
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)

		if pubErr := publishEvent(ctx, r.writer, event); pubErr != nil {
			dead, markErr := r.repo.MarkFailed(ctx, event.ID, pubErr.Error())
			switch {
			case markErr != nil:
				log.Error("outbox publish failed and could not be recorded", zap.Error(pubErr), zap.NamedError("mark_error", markErr))
			case dead:
				res.Dead++
				log.Error("outbox event dead lettered", zap.Int("attempts", event.RetryCount+1), zap.Error(pubErr))
			default:
				res.Retrying++
				log.Warn("outbox publish failed, retry scheduled", zap.Int("attempts", event.RetryCount+1), zap.Error(pubErr))
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			// Published but not marked: the row is sent again next poll and
			// consumers dedupe on event_id.
			log.Error("mark outbox sent failed", zap.Error(err))
			continue
		}
		res.Sent++
		log.Info("outbox event sent")
	}
	return res, nil
}

// Purge deletes published rows older than the retention window.
func (r *Relay) Purge(ctx context.Context) (int64, error) {
	n, err := r.repo.PurgeSent(ctx, r.now().Add(-r.retention))
	if err == nil && n > 0 {
		r.logger.Info("outbox purged", zap.Int64("rows", n))
	}
	return n, err
}

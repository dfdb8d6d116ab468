package producer

import (
	"context"
	"strconv"

	"go-attendance/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafkago.Writer the relay needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func header(key, value string) kafkago.Header {
	return kafkago.Header{Key: key, Value: []byte(value)}
}

// publishEvent keys the message by aggregate so events about one holiday or
// setting land on one partition in order.
func publishEvent(ctx context.Context, writer MessageWriter, event kafka.OutboxEvent) error {
	return writer.WriteMessages(ctx, kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			header("outbox_id", event.ID),
			header("event_type", event.EventType),
			header("aggregate_type", event.AggregateType),
			header("request_id", event.RequestID),
			header("attempt", strconv.Itoa(event.RetryCount+1)),
		},
	})
}

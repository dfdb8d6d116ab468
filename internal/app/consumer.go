package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go-attendance/internal/events"
	"go-attendance/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const policyChangedGroupID = "go-attendance-policy"

// RunConsumer turns policy change events into notifications until SIGINT or SIGTERM.
func RunConsumer(cfg Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	in, err := connectInfra(cfg)
	if err != nil {
		return err
	}
	defer in.Close()

	svc := buildServices(cfg, in, true, zap.L())

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.PolicyChangedTopic,
		GroupID:        policyChangedGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePolicyChanged(ctx, reader, svc.notifier, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}

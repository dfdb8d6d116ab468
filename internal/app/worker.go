package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-attendance/internal/messaging/kafka/producer"
	"go-attendance/internal/shared/connection"

	"go.uber.org/zap"
)

const holidayExpiryInterval = time.Hour

// RunWorker publishes the outbox, expires past holidays and sends the daily
// attendance reminders until SIGINT or SIGTERM.
func RunWorker(cfg Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	in, err := connectInfra(cfg)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := migrate(in.gormDB); err != nil {
		return err
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	svc := buildServices(cfg, in, true, zap.L())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	relay := producer.NewRelay(svc.outbox, kafkaWriter, zap.L())
	go relay.Run(ctx, cfg.WorkerPollInterval)

	go runEvery(ctx, logger, "holiday_expiry", holidayExpiryInterval, func(ctx context.Context) error {
		_, err := svc.policies.ExpireDue(ctx, time.Now().UTC())
		return err
	})

	go runDaily(ctx, logger, "attendance_reminders", cfg.AttendanceReminderHour, func(ctx context.Context, day time.Time) error {
		_, err := svc.attendance.SendReminders(ctx, day)
		return err
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

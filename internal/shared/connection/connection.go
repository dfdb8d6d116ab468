// Package connection opens the backing stores, retrying while they come up
// alongside the service.
package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var (
	retryBaseDelay = 2 * time.Second
	retryMaxDelay  = 15 * time.Second
)

// withRetry calls dial up to maxRetries times, waiting a linearly growing
// delay between attempts, and returns the last error when every attempt fails.
func withRetry(log *zap.Logger, what string, maxRetries int, dial func() error) error {
	if maxRetries < 1 {
		maxRetries = 1
	}
	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if lastErr = dial(); lastErr == nil {
			return nil
		}
		log.Warn(what+" not ready",
			zap.Int("attempt", attempt),
			zap.Int("max", maxRetries),
			zap.Error(lastErr),
		)
		if attempt < maxRetries {
			time.Sleep(min(retryBaseDelay*time.Duration(attempt), retryMaxDelay))
		}
	}
	return fmt.Errorf("%s unavailable after %d attempts: %w", what, maxRetries, lastErr)
}

func ConnectGORMWithRetry(host, user, password, dbname, port, sslmode string, maxRetries int) (*gorm.DB, error) {
	log := zap.L().Named("connection.postgres")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode)

	var db *gorm.DB
	err := withRetry(log, "postgres", maxRetries, func() error {
		opened, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		if err != nil {
			return err
		}
		sqlDB, err := opened.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			_ = sqlDB.Close()
			return err
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(time.Hour)
		db = opened
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("connected to postgres", zap.String("host", host), zap.String("db", dbname))
	return db, nil
}

func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	log := zap.L().Named("connection.redis")
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	err := withRetry(log, "redis", maxRetries, func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	log.Info("connected to redis", zap.String("addr", addr))
	return rdb, nil
}

// ConnectKafkaWithRetry dials the broker until it answers and returns a writer
// whose topic is chosen per message. Messages are hashed by key so one
// aggregate stays on one partition.
func ConnectKafkaWithRetry(broker string, maxRetries int) (*kafkago.Writer, error) {
	log := zap.L().Named("connection.kafka")

	err := withRetry(log, "kafka", maxRetries, func() error {
		conn, err := kafkago.Dial("tcp", broker)
		if err != nil {
			return err
		}
		return conn.Close()
	})
	if err != nil {
		return nil, err
	}
	log.Info("connected to kafka", zap.String("broker", broker))
	return &kafkago.Writer{
		Addr:                   kafkago.TCP(broker),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}, nil
}

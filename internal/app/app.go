package app

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure, migrates the schema and mounts every
// module on router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg Config) (func(), error) {
	logger := zap.L().Named("app")

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	in, err := connectInfra(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	if err := migrate(in.gormDB); err != nil {
		in.Close()
		return nil, err
	}

	svc := buildServices(cfg, in, cfg.KafkaBroker != "", zap.L())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := svc.seedAdministrator(ctx, cfg); err != nil {
		in.Close()
		return nil, err
	}

	if err := registerModules(ctx, router, cfg, in, svc); err != nil {
		in.Close()
		return nil, err
	}

	return in.Close, nil
}

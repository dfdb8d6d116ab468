package employee

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go-attendance/internal/middleware"
	"go-attendance/internal/notification"
	notificationerrors "go-attendance/internal/notification/errors"
	"go-attendance/internal/shared/apperror"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	RosterCacheKey   = "employees:roster"
	DefaultRosterTTL = 10 * time.Minute
)

// Directory serves notification recipients from a Redis-cached roster.
type Directory struct {
	repo   Repository
	rdb    *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	logger *zap.Logger
}

func NewDirectory(repo Repository, rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) *Directory {
	l := zap.L().Named("employee.directory")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.directory")
	}
	if ttl <= 0 {
		ttl = DefaultRosterTTL
	}
	return &Directory{repo: repo, rdb: rdb, ttl: ttl, logger: l}
}

func (d *Directory) ListRecipients(ctx context.Context) ([]notification.Recipient, error) {
	if d.rdb != nil {
		cached, err := d.rdb.Get(ctx, RosterCacheKey).Bytes()
		if err == nil {
			var roster []notification.Recipient
			if json.Unmarshal(cached, &roster) == nil {
				return roster, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			d.logger.Warn("roster cache read failed", zap.Error(err))
		}
	}

	v, err, _ := d.sf.Do(RosterCacheKey, func() (interface{}, error) {
		rows, err := d.repo.FindAll(ctx)
		if err != nil {
			return nil, apperror.StoreUnavailable(err)
		}

		roster := make([]notification.Recipient, len(rows))
		for i, e := range rows {
			roster[i] = toRecipient(e)
		}

		if d.rdb != nil {
			if data, err := json.Marshal(roster); err == nil {
				if err := d.rdb.Set(ctx, RosterCacheKey, data, d.ttl).Err(); err != nil {
					d.logger.Warn("roster cache write failed", zap.Error(err))
				}
			}
		}
		return roster, nil
	})
	if err != nil {
		d.logger.Error("roster load failed", zap.Error(err))
		return nil, err
	}

	return v.([]notification.Recipient), nil
}

func (d *Directory) FindRecipient(ctx context.Context, numericID string) (notification.Recipient, error) {
	n, err := strconv.Atoi(numericID)
	if err != nil {
		return notification.Recipient{}, notificationerrors.ErrRecipientNotFound
	}

	roster, err := d.ListRecipients(ctx)
	if err == nil {
		for _, r := range roster {
			if r.NumericID == numericID {
				return r, nil
			}
		}
	}

	e, err := d.repo.FindByNumericID(ctx, n)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notification.Recipient{}, notificationerrors.ErrRecipientNotFound
		}
		return notification.Recipient{}, apperror.StoreUnavailable(err)
	}
	return toRecipient(*e), nil
}

// FullName satisfies the leave store's name lookup.
func (d *Directory) FullName(ctx context.Context, numericID string) (string, error) {
	r, err := d.FindRecipient(ctx, numericID)
	if err != nil {
		return "", err
	}
	return r.FullName, nil
}

// ResolveActor reads the caller's current numeric id and role. It bypasses
// the roster cache because a resequence may have just renumbered the caller.
func (d *Directory) ResolveActor(ctx context.Context, employeeID uuid.UUID) (middleware.Actor, error) {
	e, err := d.repo.FindByID(ctx, employeeID)
	if err != nil {
		return middleware.Actor{}, mapRepositoryError(err)
	}
	return middleware.Actor{NumericID: strconv.Itoa(e.NumericID), Role: e.Role}, nil
}

func toRecipient(e Employee) notification.Recipient {
	return notification.Recipient{
		NumericID: strconv.Itoa(e.NumericID),
		FullName:  e.FullName,
		IsAdmin:   e.IsAdmin(),
		Preferences: notification.Preferences{
			LeaveStatus:         e.NotifyLeaveStatus,
			SystemAnnouncements: e.NotifySystemAnnouncements,
			AttendanceReminders: e.NotifyAttendanceReminders,
		},
	}
}

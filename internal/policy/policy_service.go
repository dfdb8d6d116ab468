package policy

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-attendance/internal/notification"
	policyerrors "go-attendance/internal/policy/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Service interface {
	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	UpdateHoliday(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
	ListHolidays(ctx context.Context) ([]HolidayResponse, error)
	ExpireDue(ctx context.Context, today time.Time) (ExpireReport, error)
	GetWorkingHours(ctx context.Context) (WorkingHours, error)
	UpdateWorkingHours(ctx context.Context, req WorkingHoursRequest) (WorkingHours, error)
	GetAttendanceRules(ctx context.Context) (AttendanceRules, error)
	UpdateAttendanceRules(ctx context.Context, req AttendanceRulesRequest) (AttendanceRules, error)
	AnnounceVacation(ctx context.Context, req VacationAnnouncementRequest) (AnnouncementResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	announcer Announcer
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, announcer Announcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		announcer: announcer,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

// change applies fn and stages a in one transaction, then publishes a.
func (s *service) change(ctx context.Context, a func() Announcement, fn func(repo Repository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperror.StoreUnavailable(err)
	}
	defer tx.Rollback()

	if err := fn(s.repo.WithTx(tx)); err != nil {
		return err
	}

	ann := a()
	if err := s.announcer.Stage(ctx, tx, ann); err != nil {
		s.logger.Error("stage announcement failed", zap.String("event_id", ann.EventID), zap.Error(err))
		return apperror.StoreUnavailable(err)
	}
	if err := tx.Commit(); err != nil {
		return apperror.StoreUnavailable(err)
	}

	s.announcer.Publish(ctx, ann)
	return nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, policyerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseHolidayID(id string) (uuid.UUID, error) {
	holidayID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, policyerrors.ErrInvalidHolidayID
	}
	return holidayID, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return policyerrors.ErrHolidayNotFound
	}
	return apperror.StoreUnavailable(err)
}

func (s *service) CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create holiday requested", zap.String("request_id", rid), zap.String("date", req.Date))

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return HolidayResponse{}, policyerrors.ErrHolidayNameRequired
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return HolidayResponse{}, err
	}

	now := s.now()
	h := &Holiday{
		ID:          uuid.New(),
		Name:        name,
		Date:        date,
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.change(ctx, func() Announcement {
		return Announcement{
			EventID:       uuid.NewString(),
			AggregateType: "holiday",
			AggregateID:   h.ID.String(),
			Type:          notification.TypeHolidayUpdated,
			Message:       fmt.Sprintf("Holiday added: %s on %s.", h.Name, h.Date.Format(DateLayout)),
		}
	}, func(repo Repository) error {
		if err := repo.CreateHoliday(ctx, h); err != nil {
			return apperror.StoreUnavailable(err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("create holiday failed", zap.String("request_id", rid), zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("create holiday success", zap.String("holiday_id", h.ID.String()))
	return mapHoliday(*h), nil
}

func (s *service) UpdateHoliday(ctx context.Context, id string, req UpdateHolidayRequest) (HolidayResponse, error) {
	holidayID, err := parseHolidayID(id)
	if err != nil {
		return HolidayResponse{}, err
	}

	var h *Holiday
	err = s.change(ctx, func() Announcement {
		return Announcement{
			EventID:       uuid.NewString(),
			AggregateType: "holiday",
			AggregateID:   h.ID.String(),
			Type:          notification.TypeHolidayUpdated,
			Message:       fmt.Sprintf("Holiday updated: %s is on %s.", h.Name, h.Date.Format(DateLayout)),
		}
	}, func(repo Repository) error {
		found, err := repo.FindHoliday(ctx, holidayID)
		if err != nil {
			return mapRepositoryError(err)
		}
		if found.Expired {
			return policyerrors.ErrHolidayExpired
		}
		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if name == "" {
				return policyerrors.ErrHolidayNameRequired
			}
			found.Name = name
		}
		if req.Date != nil {
			date, err := parseDate(*req.Date)
			if err != nil {
				return err
			}
			found.Date = date
		}
		if req.Description != nil {
			found.Description = strings.TrimSpace(*req.Description)
		}
		found.UpdatedAt = s.now()
		if err := repo.SaveHoliday(ctx, found); err != nil {
			return apperror.StoreUnavailable(err)
		}
		h = found
		return nil
	})
	if err != nil {
		s.logger.Warn("update holiday failed", zap.String("holiday_id", id), zap.Error(err))
		return HolidayResponse{}, err
	}

	s.logger.Info("update holiday success", zap.String("holiday_id", id))
	return mapHoliday(*h), nil
}

func (s *service) DeleteHoliday(ctx context.Context, id string) error {
	holidayID, err := parseHolidayID(id)
	if err != nil {
		return err
	}

	var h *Holiday
	err = s.change(ctx, func() Announcement {
		return Announcement{
			EventID:       uuid.NewString(),
			AggregateType: "holiday",
			AggregateID:   h.ID.String(),
			Type:          notification.TypeHolidayDeleted,
			Message:       fmt.Sprintf("Holiday removed: %s on %s.", h.Name, h.Date.Format(DateLayout)),
		}
	}, func(repo Repository) error {
		found, err := repo.FindHoliday(ctx, holidayID)
		if err != nil {
			return mapRepositoryError(err)
		}
		if err := repo.DeleteHoliday(ctx, holidayID); err != nil {
			return mapRepositoryError(err)
		}
		h = found
		return nil
	})
	if err != nil {
		s.logger.Warn("delete holiday failed", zap.String("holiday_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete holiday success", zap.String("holiday_id", id))
	return nil
}

func (s *service) ListHolidays(ctx context.Context) ([]HolidayResponse, error) {
	rows, err := s.repo.ListHolidays(ctx)
	if err != nil {
		s.logger.Error("list holidays failed", zap.Error(err))
		return nil, apperror.StoreUnavailable(err)
	}
	resp := make([]HolidayResponse, len(rows))
	for i, h := range rows {
		resp[i] = mapHoliday(h)
	}
	return resp, nil
}

// ExpireDue marks every holiday dated before today as expired and announces
// each one exactly once. Holidays are handled independently.
func (s *service) ExpireDue(ctx context.Context, today time.Time) (ExpireReport, error) {
	due, err := s.repo.ListDueHolidays(ctx, today)
	if err != nil {
		s.logger.Error("list due holidays failed", zap.Error(err))
		return ExpireReport{}, apperror.StoreUnavailable(err)
	}

	report := ExpireReport{Checked: len(due)}
	for _, h := range due {
		holiday := h
		var won bool
		err := s.change(ctx, func() Announcement {
			return Announcement{
				EventID:       fmt.Sprintf("holiday:%s:expired", holiday.ID),
				AggregateType: "holiday",
				AggregateID:   holiday.ID.String(),
				Type:          notification.TypeHolidayExpired,
				Message:       fmt.Sprintf("Holiday %s on %s has passed.", holiday.Name, holiday.Date.Format(DateLayout)),
			}
		}, func(repo Repository) error {
			ok, err := repo.MarkHolidayExpired(ctx, holiday.ID, s.now())
			if err != nil {
				return apperror.StoreUnavailable(err)
			}
			if !ok {
				return errAlreadyExpired
			}
			won = true
			return nil
		})
		if errors.Is(err, errAlreadyExpired) {
			continue
		}
		if err != nil {
			s.logger.Error("expire holiday failed", zap.String("holiday_id", holiday.ID.String()), zap.Error(err))
			continue
		}
		if won {
			report.Expired++
		}
	}

	s.logger.Info("expire holidays finished",
		zap.String("today", today.Format(DateLayout)),
		zap.Int("checked", report.Checked),
		zap.Int("expired", report.Expired),
	)
	return report, nil
}

var errAlreadyExpired = errors.New("holiday already expired")

// readSetting decodes key into dst. A missing row leaves dst untouched.
func (s *service) readSetting(ctx context.Context, key string, dst any) error {
	setting, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return apperror.StoreUnavailable(err)
	}
	if err := json.Unmarshal(setting.Value, dst); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "stored setting is corrupt", http.StatusInternalServerError)
	}
	return nil
}

func (s *service) writeSetting(ctx context.Context, key string, value any, a Announcement) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.change(ctx, func() Announcement { return a }, func(repo Repository) error {
		if err := repo.UpsertSetting(ctx, &CompanySetting{Key: key, Value: raw, UpdatedAt: s.now()}); err != nil {
			return apperror.StoreUnavailable(err)
		}
		return nil
	})
}

func (s *service) GetWorkingHours(ctx context.Context) (WorkingHours, error) {
	wh := DefaultWorkingHours()
	if err := s.readSetting(ctx, SettingWorkingHours, &wh); err != nil {
		return WorkingHours{}, err
	}
	return wh, nil
}

func parseClock(v string) (time.Time, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, policyerrors.ErrInvalidClock
	}
	return t, nil
}

func (s *service) UpdateWorkingHours(ctx context.Context, req WorkingHoursRequest) (WorkingHours, error) {
	start, err := parseClock(req.Start)
	if err != nil {
		return WorkingHours{}, err
	}
	end, err := parseClock(req.End)
	if err != nil {
		return WorkingHours{}, err
	}
	if !end.After(start) {
		return WorkingHours{}, policyerrors.ErrInvalidWorkingHours
	}

	wh, err := s.GetWorkingHours(ctx)
	if err != nil {
		return WorkingHours{}, err
	}
	wh.Start = start.Format("15:04")
	wh.End = end.Format("15:04")
	if req.GraceMinutes != nil {
		wh.GraceMinutes = *req.GraceMinutes
	}

	err = s.writeSetting(ctx, SettingWorkingHours, wh, Announcement{
		EventID:       uuid.NewString(),
		AggregateType: "company_setting",
		AggregateID:   SettingWorkingHours,
		Type:          notification.TypeWorkingHoursChanged,
		Message: fmt.Sprintf("Working hours are now %s to %s with a %d minute grace period.",
			wh.Start, wh.End, wh.GraceMinutes),
	})
	if err != nil {
		s.logger.Error("update working hours failed", zap.Error(err))
		return WorkingHours{}, err
	}

	s.logger.Info("update working hours success", zap.String("start", wh.Start), zap.String("end", wh.End))
	return wh, nil
}

func (s *service) GetAttendanceRules(ctx context.Context) (AttendanceRules, error) {
	rules := DefaultAttendanceRules()
	if err := s.readSetting(ctx, SettingAttendanceRules, &rules); err != nil {
		return AttendanceRules{}, err
	}
	return rules, nil
}

func (s *service) UpdateAttendanceRules(ctx context.Context, req AttendanceRulesRequest) (AttendanceRules, error) {
	rules, err := s.GetAttendanceRules(ctx)
	if err != nil {
		return AttendanceRules{}, err
	}
	rules.LateAfterMinutes = req.LateAfterMinutes
	rules.HalfDayAfterHours = req.HalfDayAfterHours
	if req.RequireFaceCheckIn != nil {
		rules.RequireFaceCheckIn = *req.RequireFaceCheckIn
	}

	err = s.writeSetting(ctx, SettingAttendanceRules, rules, Announcement{
		EventID:       uuid.NewString(),
		AggregateType: "company_setting",
		AggregateID:   SettingAttendanceRules,
		Type:          notification.TypeAttendanceRulesChanged,
		Message: fmt.Sprintf("Attendance rules updated: late after %d minutes, half day after %d hours.",
			rules.LateAfterMinutes, rules.HalfDayAfterHours),
	})
	if err != nil {
		s.logger.Error("update attendance rules failed", zap.Error(err))
		return AttendanceRules{}, err
	}

	s.logger.Info("update attendance rules success")
	return rules, nil
}

func (s *service) AnnounceVacation(ctx context.Context, req VacationAnnouncementRequest) (AnnouncementResponse, error) {
	text := strings.TrimSpace(req.Message)
	if text == "" {
		return AnnouncementResponse{}, policyerrors.ErrEmptyAnnouncement
	}
	if req.StartDate != "" || req.EndDate != "" {
		start, err := parseDate(req.StartDate)
		if err != nil {
			return AnnouncementResponse{}, err
		}
		end, err := parseDate(req.EndDate)
		if err != nil {
			return AnnouncementResponse{}, err
		}
		if end.Before(start) {
			return AnnouncementResponse{}, policyerrors.ErrInvalidDateRange
		}
		text = fmt.Sprintf("%s (%s to %s)", text, start.Format(DateLayout), end.Format(DateLayout))
	}

	ann := Announcement{
		EventID:       uuid.NewString(),
		AggregateType: "announcement",
		AggregateID:   "vacation",
		Type:          notification.TypeVacationAnnouncement,
		Message:       text,
	}
	if err := s.change(ctx, func() Announcement { return ann }, func(Repository) error { return nil }); err != nil {
		s.logger.Error("announce vacation failed", zap.Error(err))
		return AnnouncementResponse{}, err
	}

	s.logger.Info("announce vacation success", zap.String("event_id", ann.EventID))
	return AnnouncementResponse{EventID: ann.EventID, Type: string(ann.Type), Message: ann.Message}, nil
}

func mapHoliday(h Holiday) HolidayResponse {
	resp := HolidayResponse{
		ID:          h.ID.String(),
		Name:        h.Name,
		Date:        h.Date.Format(DateLayout),
		Description: h.Description,
		Expired:     h.Expired,
	}
	if h.ExpiredAt != nil {
		v := h.ExpiredAt.Format(time.RFC3339)
		resp.ExpiredAt = &v
	}
	return resp
}

package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/notification"
	"go-attendance/internal/policy"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PolicySource supplies the company rules a check-in is judged against.
type PolicySource interface {
	GetWorkingHours(ctx context.Context) (policy.WorkingHours, error)
	GetAttendanceRules(ctx context.Context) (policy.AttendanceRules, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
	SendReminders(ctx context.Context, date time.Time) (ReminderReport, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	directory notification.RecipientDirectory
	policies  PolicySource
	notifier  notification.Service
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	directory notification.RecipientDirectory,
	policies PolicySource,
	notifier notification.Service,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		directory: directory,
		policies:  policies,
		notifier:  notifier,
		now:       func() time.Time { return time.Now().UTC() },
		logger:    l,
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func normalizeSource(source string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(source)) {
	case "", SourceFace:
		return SourceFace, nil
	case SourceManual:
		return SourceManual, nil
	default:
		return "", attendanceerrors.ErrInvalidSource
	}
}

// checkInStatus is LATE once the grace period after the working day start has passed.
func checkInStatus(wh policy.WorkingHours, at time.Time) (string, error) {
	start, err := wh.StartsAt(at)
	if err != nil {
		return "", err
	}
	if at.After(start.Add(time.Duration(wh.GraceMinutes) * time.Minute)) {
		return StatusLate, nil
	}
	return StatusPresent, nil
}

func (s *service) CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("check in requested", zap.String("request_id", rid), zap.String("employee_id", employeeID))

	if employeeID == "" {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	source, err := normalizeSource(req.Source)
	if err != nil {
		return AttendanceResponse{}, err
	}

	rules, err := s.policies.GetAttendanceRules(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if rules.RequireFaceCheckIn && source != SourceFace {
		return AttendanceResponse{}, attendanceerrors.ErrFaceCheckInRequired
	}
	wh, err := s.policies.GetWorkingHours(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}

	recipient, err := s.directory.FindRecipient(ctx, employeeID)
	if err != nil {
		return AttendanceResponse{}, err
	}

	now := s.now()
	status, err := checkInStatus(wh, now)
	if err != nil {
		return AttendanceResponse{}, apperror.Wrap(err, apperror.CodeInternalError, "stored working hours are invalid", http.StatusInternalServerError)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, apperror.StoreUnavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	today := dayOf(now)

	_, err = qtx.FindByEmployeeAndDate(ctx, employeeID, today)
	if err == nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return AttendanceResponse{}, apperror.StoreUnavailable(err)
	}

	row := &Attendance{
		ID:             uuid.New(),
		EmployeeID:     employeeID,
		EmployeeName:   recipient.FullName,
		AttendanceDate: today,
		CheckIn:        now,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         status,
		Source:         source,
		ExternalRef:    req.ExternalRef,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := qtx.Create(ctx, row); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedIn
		}
		s.logger.Error("check in failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, apperror.StoreUnavailable(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, apperror.StoreUnavailable(err)
	}

	s.logger.Info("check in success",
		zap.String("employee_id", employeeID),
		zap.String("status", status),
		zap.String("source", source),
	)
	return mapToResponse(*row), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (AttendanceResponse, error) {
	if employeeID == "" {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidEmployeeID
	}
	rules, err := s.policies.GetAttendanceRules(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AttendanceResponse{}, apperror.StoreUnavailable(err)
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now()

	row, err := qtx.FindByEmployeeAndDate(ctx, employeeID, dayOf(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AttendanceResponse{}, attendanceerrors.ErrNotCheckedIn
		}
		return AttendanceResponse{}, apperror.StoreUnavailable(err)
	}
	if row.CheckOut != nil {
		return AttendanceResponse{}, attendanceerrors.ErrAlreadyCheckedOut
	}

	row.CheckOut = &now
	row.UpdatedAt = now
	if req.Latitude != nil {
		row.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		row.Longitude = req.Longitude
	}
	if req.Notes != nil {
		row.Notes = req.Notes
	}
	if rules.HalfDayAfterHours > 0 && now.Sub(row.CheckIn) < time.Duration(rules.HalfDayAfterHours)*time.Hour {
		row.Status = StatusHalfDay
	}

	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("check out failed", zap.String("employee_id", employeeID), zap.Error(err))
		return AttendanceResponse{}, apperror.StoreUnavailable(err)
	}
	if err := tx.Commit(); err != nil {
		return AttendanceResponse{}, apperror.StoreUnavailable(err)
	}

	s.logger.Info("check out success", zap.String("employee_id", employeeID), zap.String("status", row.Status))
	return mapToResponse(*row), nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error) {
	var date *time.Time
	if filter.Date != "" {
		d, err := time.Parse(dateLayout, filter.Date)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidDateFormat
		}
		date = &d
	}

	rows, err := s.repo.List(ctx, filter.EmployeeID, date)
	if err != nil {
		s.logger.Error("list attendances failed", zap.Error(err))
		return nil, apperror.StoreUnavailable(err)
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// SendReminders notifies every non-admin employee without a check-in on date.
// The event id is derived from the date, so a rerun on the same day delivers nothing new.
func (s *service) SendReminders(ctx context.Context, date time.Time) (ReminderReport, error) {
	day := dayOf(date)
	report := ReminderReport{Date: day.Format(dateLayout)}

	recipients, err := s.directory.ListRecipients(ctx)
	if err != nil {
		return report, apperror.StoreUnavailable(err)
	}
	checkedIn, err := s.repo.CheckedInEmployeeIDs(ctx, day)
	if err != nil {
		return report, apperror.StoreUnavailable(err)
	}
	present := make(map[string]struct{}, len(checkedIn))
	for _, id := range checkedIn {
		present[id] = struct{}{}
	}

	msg := notification.Message{
		Text:    fmt.Sprintf("You have not checked in for %s yet.", report.Date),
		Type:    notification.TypeAttendanceReminder,
		EventID: "attendance:" + report.Date,
	}
	for _, r := range recipients {
		if r.IsAdmin {
			continue
		}
		if _, ok := present[r.NumericID]; ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Recipients++

		resp, err := s.notifier.Notify(ctx, r.NumericID, msg)
		if err != nil {
			report.Failed++
			s.logger.Warn("attendance reminder failed", zap.String("employee_id", r.NumericID), zap.Error(err))
			continue
		}
		switch resp.Delivery {
		case notification.DeliveryCreated:
			report.Delivered++
		case notification.DeliveryDuplicate:
			report.Duplicates++
		case notification.DeliverySkipped:
			report.Skipped++
		}
	}

	s.logger.Info("attendance reminders sent",
		zap.String("date", report.Date),
		zap.Int("recipients", report.Recipients),
		zap.Int("delivered", report.Delivered),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		EmployeeID:     a.EmployeeID,
		EmployeeName:   a.EmployeeName,
		AttendanceDate: a.AttendanceDate.Format(dateLayout),
		CheckIn:        a.CheckIn.Format(time.RFC3339),
		Latitude:       a.Latitude,
		Longitude:      a.Longitude,
		Status:         a.Status,
		Source:         a.Source,
		ExternalRef:    a.ExternalRef,
		Notes:          a.Notes,
	}
	if a.CheckOut != nil {
		v := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}

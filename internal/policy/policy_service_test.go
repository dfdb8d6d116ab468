package policy_test

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"go-attendance/internal/notification"
	"go-attendance/internal/policy"
	policyerrors "go-attendance/internal/policy/errors"
	"go-attendance/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createHolidayFn      func(ctx context.Context, h *policy.Holiday) error
	saveHolidayFn        func(ctx context.Context, h *policy.Holiday) error
	findHolidayFn        func(ctx context.Context, id uuid.UUID) (*policy.Holiday, error)
	deleteHolidayFn      func(ctx context.Context, id uuid.UUID) error
	listHolidaysFn       func(ctx context.Context) ([]policy.Holiday, error)
	listDueHolidaysFn    func(ctx context.Context, today time.Time) ([]policy.Holiday, error)
	markHolidayExpiredFn func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	getSettingFn         func(ctx context.Context, key string) (*policy.CompanySetting, error)
	upsertSettingFn      func(ctx context.Context, setting *policy.CompanySetting) error
	boundTx              int
}

func (f *fakeRepo) WithTx(tx *sql.Tx) policy.Repository {
	f.boundTx++
	return f
}
func (f *fakeRepo) CreateHoliday(ctx context.Context, h *policy.Holiday) error {
	return f.createHolidayFn(ctx, h)
}
func (f *fakeRepo) SaveHoliday(ctx context.Context, h *policy.Holiday) error {
	return f.saveHolidayFn(ctx, h)
}
func (f *fakeRepo) FindHoliday(ctx context.Context, id uuid.UUID) (*policy.Holiday, error) {
	return f.findHolidayFn(ctx, id)
}
func (f *fakeRepo) DeleteHoliday(ctx context.Context, id uuid.UUID) error {
	return f.deleteHolidayFn(ctx, id)
}
func (f *fakeRepo) ListHolidays(ctx context.Context) ([]policy.Holiday, error) {
	return f.listHolidaysFn(ctx)
}
func (f *fakeRepo) ListDueHolidays(ctx context.Context, today time.Time) ([]policy.Holiday, error) {
	return f.listDueHolidaysFn(ctx, today)
}
func (f *fakeRepo) MarkHolidayExpired(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	return f.markHolidayExpiredFn(ctx, id, at)
}
func (f *fakeRepo) GetSetting(ctx context.Context, key string) (*policy.CompanySetting, error) {
	if f.getSettingFn == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.getSettingFn(ctx, key)
}
func (f *fakeRepo) UpsertSetting(ctx context.Context, setting *policy.CompanySetting) error {
	return f.upsertSettingFn(ctx, setting)
}

type recordingAnnouncer struct {
	mu        sync.Mutex
	staged    []policy.Announcement
	published []policy.Announcement
	stageErr  error
}

func (r *recordingAnnouncer) Stage(ctx context.Context, tx *sql.Tx, a policy.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stageErr != nil {
		return r.stageErr
	}
	r.staged = append(r.staged, a)
	return nil
}

func (r *recordingAnnouncer) Publish(ctx context.Context, a policy.Announcement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, a)
}

func date(s string) time.Time {
	t, _ := time.Parse(policy.DateLayout, s)
	return t
}

func TestPolicyService_CreateHoliday(t *testing.T) {
	ctx := context.Background()

	t.Run("commits and announces", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{createHolidayFn: func(ctx context.Context, h *policy.Holiday) error { return nil }}
		ann := &recordingAnnouncer{}
		svc := policy.NewService(db, repo, ann)

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.CreateHoliday(ctx, policy.CreateHolidayRequest{Name: "Christmas", Date: "2024-12-25"})

		require.NoError(t, err)
		assert.Equal(t, "2024-12-25", resp.Date)
		assert.Equal(t, 1, repo.boundTx)
		require.Len(t, ann.published, 1)
		assert.Equal(t, notification.TypeHolidayUpdated, ann.published[0].Type)
		assert.Equal(t, "Holiday added: Christmas on 2024-12-25.", ann.published[0].Message)
		assert.Equal(t, ann.staged, ann.published)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("store failure rolls back without announcing", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{createHolidayFn: func(ctx context.Context, h *policy.Holiday) error { return errors.New("db down") }}
		ann := &recordingAnnouncer{}
		svc := policy.NewService(db, repo, ann)

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.CreateHoliday(ctx, policy.CreateHolidayRequest{Name: "Christmas", Date: "2024-12-25"})

		assert.True(t, apperror.IsStoreUnavailable(err))
		assert.Empty(t, ann.published)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stage failure rolls back", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{createHolidayFn: func(ctx context.Context, h *policy.Holiday) error { return nil }}
		ann := &recordingAnnouncer{stageErr: errors.New("outbox insert failed")}
		svc := policy.NewService(db, repo, ann)

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.CreateHoliday(ctx, policy.CreateHolidayRequest{Name: "Christmas", Date: "2024-12-25"})

		assert.True(t, apperror.IsStoreUnavailable(err))
		assert.Empty(t, ann.published)
	})

	t.Run("bad date", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := policy.NewService(db, &fakeRepo{}, &recordingAnnouncer{})

		_, err := svc.CreateHoliday(ctx, policy.CreateHolidayRequest{Name: "Christmas", Date: "25-12-2024"})

		assert.ErrorIs(t, err, policyerrors.ErrInvalidDateFormat)
	})
}

func TestPolicyService_UpdateAndDeleteHoliday(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	stored := func() *policy.Holiday {
		return &policy.Holiday{ID: id, Name: "New Year", Date: date("2025-01-01")}
	}

	t.Run("update moves the date", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{
			findHolidayFn: func(ctx context.Context, got uuid.UUID) (*policy.Holiday, error) { return stored(), nil },
			saveHolidayFn: func(ctx context.Context, h *policy.Holiday) error { return nil },
		}
		ann := &recordingAnnouncer{}
		svc := policy.NewService(db, repo, ann)
		newDate := "2025-01-02"

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.UpdateHoliday(ctx, id.String(), policy.UpdateHolidayRequest{Date: &newDate})

		require.NoError(t, err)
		assert.Equal(t, "2025-01-02", resp.Date)
		require.Len(t, ann.published, 1)
		assert.Equal(t, "Holiday updated: New Year is on 2025-01-02.", ann.published[0].Message)
	})

	t.Run("expired holiday cannot change", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{
			findHolidayFn: func(ctx context.Context, got uuid.UUID) (*policy.Holiday, error) {
				h := stored()
				h.Expired = true
				return h, nil
			},
		}
		svc := policy.NewService(db, repo, &recordingAnnouncer{})
		name := "Renamed"

		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.UpdateHoliday(ctx, id.String(), policy.UpdateHolidayRequest{Name: &name})

		assert.ErrorIs(t, err, policyerrors.ErrHolidayExpired)
	})

	t.Run("delete announces removal", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{
			findHolidayFn:   func(ctx context.Context, got uuid.UUID) (*policy.Holiday, error) { return stored(), nil },
			deleteHolidayFn: func(ctx context.Context, got uuid.UUID) error { return nil },
		}
		ann := &recordingAnnouncer{}
		svc := policy.NewService(db, repo, ann)

		mock.ExpectBegin()
		mock.ExpectCommit()

		require.NoError(t, svc.DeleteHoliday(ctx, id.String()))
		require.Len(t, ann.published, 1)
		assert.Equal(t, notification.TypeHolidayDeleted, ann.published[0].Type)
	})

	t.Run("delete missing holiday", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		repo := &fakeRepo{
			findHolidayFn: func(ctx context.Context, got uuid.UUID) (*policy.Holiday, error) { return nil, gorm.ErrRecordNotFound },
		}
		svc := policy.NewService(db, repo, &recordingAnnouncer{})

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.ErrorIs(t, svc.DeleteHoliday(ctx, id.String()), policyerrors.ErrHolidayNotFound)
	})
}

func TestPolicyService_ExpireDue(t *testing.T) {
	ctx := context.Background()
	first := policy.Holiday{ID: uuid.New(), Name: "Labour Day", Date: date("2024-05-01")}
	second := policy.Holiday{ID: uuid.New(), Name: "Ascension", Date: date("2024-05-09")}

	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := &fakeRepo{
		listDueHolidaysFn: func(ctx context.Context, today time.Time) ([]policy.Holiday, error) {
			return []policy.Holiday{first, second}, nil
		},
		markHolidayExpiredFn: func(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
			// The second holiday was expired by a concurrent run.
			return id == first.ID, nil
		},
	}
	ann := &recordingAnnouncer{}
	svc := policy.NewService(db, repo, ann)

	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectRollback()

	report, err := svc.ExpireDue(ctx, date("2024-05-20"))

	require.NoError(t, err)
	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 1, report.Expired)
	require.Len(t, ann.published, 1)
	assert.Equal(t, "holiday:"+first.ID.String()+":expired", ann.published[0].EventID)
	assert.Equal(t, notification.TypeHolidayExpired, ann.published[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyService_WorkingHours(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults when unset", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := policy.NewService(db, &fakeRepo{}, &recordingAnnouncer{})

		wh, err := svc.GetWorkingHours(ctx)

		require.NoError(t, err)
		assert.Equal(t, policy.DefaultWorkingHours(), wh)
	})

	t.Run("update persists and announces", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		var saved *policy.CompanySetting
		repo := &fakeRepo{upsertSettingFn: func(ctx context.Context, s *policy.CompanySetting) error {
			saved = s
			return nil
		}}
		ann := &recordingAnnouncer{}
		svc := policy.NewService(db, repo, ann)
		grace := 10

		mock.ExpectBegin()
		mock.ExpectCommit()

		wh, err := svc.UpdateWorkingHours(ctx, policy.WorkingHoursRequest{Start: "08:30", End: "16:30", GraceMinutes: &grace})

		require.NoError(t, err)
		assert.Equal(t, policy.WorkingHours{Start: "08:30", End: "16:30", GraceMinutes: 10}, wh)
		require.NotNil(t, saved)
		assert.Equal(t, policy.SettingWorkingHours, saved.Key)
		assert.JSONEq(t, `{"start":"08:30","end":"16:30","grace_minutes":10}`, string(saved.Value))
		require.Len(t, ann.published, 1)
		assert.Equal(t, notification.TypeWorkingHoursChanged, ann.published[0].Type)
	})

	t.Run("end before start", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := policy.NewService(db, &fakeRepo{}, &recordingAnnouncer{})

		_, err := svc.UpdateWorkingHours(ctx, policy.WorkingHoursRequest{Start: "17:00", End: "09:00"})

		assert.ErrorIs(t, err, policyerrors.ErrInvalidWorkingHours)
	})
}

func TestPolicyService_AttendanceRules(t *testing.T) {
	ctx := context.Background()
	db, mock, _ := sqlmock.New()
	defer db.Close()
	repo := &fakeRepo{
		getSettingFn: func(ctx context.Context, key string) (*policy.CompanySetting, error) {
			return &policy.CompanySetting{Key: key, Value: []byte(`{"late_after_minutes":5,"half_day_after_hours":4,"require_face_check_in":false}`)}, nil
		},
		upsertSettingFn: func(ctx context.Context, s *policy.CompanySetting) error { return nil },
	}
	ann := &recordingAnnouncer{}
	svc := policy.NewService(db, repo, ann)

	mock.ExpectBegin()
	mock.ExpectCommit()

	rules, err := svc.UpdateAttendanceRules(ctx, policy.AttendanceRulesRequest{LateAfterMinutes: 20, HalfDayAfterHours: 5})

	require.NoError(t, err)
	assert.Equal(t, 20, rules.LateAfterMinutes)
	assert.False(t, rules.RequireFaceCheckIn)
	require.Len(t, ann.published, 1)
	assert.Equal(t, "Attendance rules updated: late after 20 minutes, half day after 5 hours.", ann.published[0].Message)
}

func TestPolicyService_AnnounceVacation(t *testing.T) {
	ctx := context.Background()

	t.Run("with period", func(t *testing.T) {
		db, mock, _ := sqlmock.New()
		defer db.Close()
		ann := &recordingAnnouncer{}
		svc := policy.NewService(db, &fakeRepo{}, ann)

		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.AnnounceVacation(ctx, policy.VacationAnnouncementRequest{
			Message:   "Office closes for the year end break",
			StartDate: "2024-12-24",
			EndDate:   "2024-12-31",
		})

		require.NoError(t, err)
		assert.Equal(t, "vacation_announcement", resp.Type)
		assert.Equal(t, "Office closes for the year end break (2024-12-24 to 2024-12-31)", resp.Message)
		require.Len(t, ann.published, 1)
	})

	t.Run("reversed period", func(t *testing.T) {
		db, _, _ := sqlmock.New()
		defer db.Close()
		svc := policy.NewService(db, &fakeRepo{}, &recordingAnnouncer{})

		_, err := svc.AnnounceVacation(ctx, policy.VacationAnnouncementRequest{
			Message:   "Break",
			StartDate: "2024-12-31",
			EndDate:   "2024-12-24",
		})

		assert.ErrorIs(t, err, policyerrors.ErrInvalidDateRange)
	})
}

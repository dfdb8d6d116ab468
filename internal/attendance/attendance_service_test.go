package attendance

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	attendanceerrors "go-attendance/internal/attendance/errors"
	"go-attendance/internal/notification"
	"go-attendance/internal/policy"
	"go-attendance/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn                func(ctx context.Context, a *Attendance) error
	findByEmployeeAndDateFn func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	listFn                  func(ctx context.Context, employeeID string, date *time.Time) ([]Attendance, error)
	updateFn                func(ctx context.Context, a *Attendance) error
	checkedInFn             func(ctx context.Context, date time.Time) ([]string, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) Repository                    { return f }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error { return f.createFn(ctx, a) }
func (f *fakeRepo) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	return f.findByEmployeeAndDateFn(ctx, employeeID, date)
}
func (f *fakeRepo) List(ctx context.Context, employeeID string, date *time.Time) ([]Attendance, error) {
	return f.listFn(ctx, employeeID, date)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error { return f.updateFn(ctx, a) }
func (f *fakeRepo) CheckedInEmployeeIDs(ctx context.Context, date time.Time) ([]string, error) {
	return f.checkedInFn(ctx, date)
}

type fakeDirectory struct {
	recipients []notification.Recipient
}

func (f *fakeDirectory) FindRecipient(ctx context.Context, numericID string) (notification.Recipient, error) {
	for _, r := range f.recipients {
		if r.NumericID == numericID {
			return r, nil
		}
	}
	return notification.Recipient{}, apperror.ErrNotFound
}

func (f *fakeDirectory) ListRecipients(ctx context.Context) ([]notification.Recipient, error) {
	return f.recipients, nil
}

type fakePolicies struct {
	hours policy.WorkingHours
	rules policy.AttendanceRules
}

func (f fakePolicies) GetWorkingHours(ctx context.Context) (policy.WorkingHours, error) {
	return f.hours, nil
}

func (f fakePolicies) GetAttendanceRules(ctx context.Context) (policy.AttendanceRules, error) {
	return f.rules, nil
}

type fakeNotifier struct {
	notification.Service
	notifyFn func(ctx context.Context, employeeID string, msg notification.Message) (notification.DeliveryResponse, error)
	calls    []string
}

func (f *fakeNotifier) Notify(ctx context.Context, employeeID string, msg notification.Message) (notification.DeliveryResponse, error) {
	f.calls = append(f.calls, employeeID)
	return f.notifyFn(ctx, employeeID, msg)
}

var allOn = notification.Preferences{LeaveStatus: true, SystemAnnouncements: true, AttendanceReminders: true}

func newTestService(t *testing.T, repo Repository, notifier notification.Service, at time.Time) (*service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	dir := &fakeDirectory{recipients: []notification.Recipient{
		{NumericID: "1", FullName: "Admin", IsAdmin: true},
		{NumericID: "2", FullName: "Budi", Preferences: allOn},
		{NumericID: "3", FullName: "Sari", Preferences: allOn},
	}}
	policies := fakePolicies{
		hours: policy.DefaultWorkingHours(),
		rules: policy.AttendanceRules{HalfDayAfterHours: 4},
	}
	svc := NewService(db, repo, dir, policies, notifier).(*service)
	svc.now = func() time.Time { return at }
	return svc, mock
}

func TestService_CheckInAndCheckOut(t *testing.T) {
	ctx := context.Background()
	morning := time.Date(2024, 3, 4, 9, 10, 0, 0, time.UTC)

	var saved Attendance
	repo := &fakeRepo{}
	repo.createFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.updateFn = func(ctx context.Context, a *Attendance) error { saved = *a; return nil }
	repo.findByEmployeeAndDateFn = func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
		if saved.EmployeeID == "" {
			return nil, gorm.ErrRecordNotFound
		}
		return &saved, nil
	}

	svc, mock := newTestService(t, repo, nil, morning)

	mock.ExpectBegin()
	mock.ExpectCommit()
	inResp, err := svc.CheckIn(ctx, "2", CheckInRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusPresent, inResp.Status)
	assert.Equal(t, SourceFace, inResp.Source)
	assert.Equal(t, "Budi", inResp.EmployeeName)
	assert.Equal(t, "2024-03-04", inResp.AttendanceDate)

	svc.now = func() time.Time { return morning.Add(8 * time.Hour) }
	mock.ExpectBegin()
	mock.ExpectCommit()
	outResp, err := svc.CheckOut(ctx, "2", CheckOutRequest{})
	require.NoError(t, err)
	require.NotNil(t, outResp.CheckOut)
	assert.Equal(t, StatusPresent, outResp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_CheckIn_LateAfterGrace(t *testing.T) {
	repo := &fakeRepo{
		findByEmployeeAndDateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, a *Attendance) error { return nil },
	}
	svc, mock := newTestService(t, repo, nil, time.Date(2024, 3, 4, 9, 16, 0, 0, time.UTC))

	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.CheckIn(context.Background(), "3", CheckInRequest{Source: "manual"})

	require.NoError(t, err)
	assert.Equal(t, StatusLate, resp.Status)
	assert.Equal(t, SourceManual, resp.Source)
}

func TestService_CheckIn_Duplicate(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	t.Run("existing row", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
				return &Attendance{EmployeeID: employeeID}, nil
			},
		}
		svc, mock := newTestService(t, repo, nil, at)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.CheckIn(ctx, "2", CheckInRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})

	t.Run("lost the insert race", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
				return nil, gorm.ErrRecordNotFound
			},
			createFn: func(ctx context.Context, a *Attendance) error { return gorm.ErrDuplicatedKey },
		}
		svc, mock := newTestService(t, repo, nil, at)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.CheckIn(ctx, "2", CheckInRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedIn)
	})
}

func TestService_CheckIn_Rejections(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

	t.Run("unknown source", func(t *testing.T) {
		svc, _ := newTestService(t, &fakeRepo{}, nil, at)
		_, err := svc.CheckIn(ctx, "2", CheckInRequest{Source: "BADGE"})
		assert.ErrorIs(t, err, attendanceerrors.ErrInvalidSource)
	})

	t.Run("face required", func(t *testing.T) {
		svc, _ := newTestService(t, &fakeRepo{}, nil, at)
		svc.policies = fakePolicies{hours: policy.DefaultWorkingHours(), rules: policy.AttendanceRules{RequireFaceCheckIn: true}}
		_, err := svc.CheckIn(ctx, "2", CheckInRequest{Source: SourceManual})
		assert.ErrorIs(t, err, attendanceerrors.ErrFaceCheckInRequired)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, _ := newTestService(t, &fakeRepo{}, nil, at)
		_, err := svc.CheckIn(ctx, "99", CheckInRequest{})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestService_CheckOut(t *testing.T) {
	ctx := context.Background()
	checkIn := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("short day becomes half day", func(t *testing.T) {
		row := &Attendance{EmployeeID: "2", CheckIn: checkIn, Status: StatusPresent}
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
				return row, nil
			},
			updateFn: func(ctx context.Context, a *Attendance) error { return nil },
		}
		svc, mock := newTestService(t, repo, nil, checkIn.Add(3*time.Hour))
		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.CheckOut(ctx, "2", CheckOutRequest{})

		require.NoError(t, err)
		assert.Equal(t, StatusHalfDay, resp.Status)
	})

	t.Run("twice", func(t *testing.T) {
		out := checkIn.Add(8 * time.Hour)
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
				return &Attendance{EmployeeID: "2", CheckIn: checkIn, CheckOut: &out}, nil
			},
		}
		svc, mock := newTestService(t, repo, nil, out.Add(time.Hour))
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.CheckOut(ctx, "2", CheckOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrAlreadyCheckedOut)
	})

	t.Run("without check in", func(t *testing.T) {
		repo := &fakeRepo{
			findByEmployeeAndDateFn: func(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		svc, mock := newTestService(t, repo, nil, checkIn)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.CheckOut(ctx, "2", CheckOutRequest{})

		assert.ErrorIs(t, err, attendanceerrors.ErrNotCheckedIn)
	})
}

func TestService_List(t *testing.T) {
	var gotEmployee string
	var gotDate *time.Time
	repo := &fakeRepo{
		listFn: func(ctx context.Context, employeeID string, date *time.Time) ([]Attendance, error) {
			gotEmployee, gotDate = employeeID, date
			return []Attendance{{EmployeeID: "2", Status: StatusLate}}, nil
		},
	}
	svc, _ := newTestService(t, repo, nil, time.Now())

	resp, err := svc.List(context.Background(), ListFilter{EmployeeID: "2", Date: "2024-03-04"})

	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, "2", gotEmployee)
	require.NotNil(t, gotDate)
	assert.Equal(t, "2024-03-04", gotDate.Format(dateLayout))

	_, err = svc.List(context.Background(), ListFilter{Date: "04/03/2024"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDateFormat)
}

func TestService_SendReminders(t *testing.T) {
	day := time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)
	repo := &fakeRepo{
		checkedInFn: func(ctx context.Context, date time.Time) ([]string, error) {
			assert.Equal(t, "2024-03-04", date.Format(dateLayout))
			return []string{"2"}, nil
		},
	}
	notifier := &fakeNotifier{
		notifyFn: func(ctx context.Context, employeeID string, msg notification.Message) (notification.DeliveryResponse, error) {
			assert.Equal(t, "attendance:2024-03-04", msg.EventID)
			assert.Equal(t, notification.TypeAttendanceReminder, msg.Type)
			return notification.DeliveryResponse{EmployeeID: employeeID, Delivery: notification.DeliveryCreated}, nil
		},
	}
	svc, _ := newTestService(t, repo, notifier, day)

	report, err := svc.SendReminders(context.Background(), day)

	require.NoError(t, err)
	assert.Equal(t, []string{"3"}, notifier.calls)
	assert.Equal(t, ReminderReport{Date: "2024-03-04", Recipients: 1, Delivered: 1}, report)
}

func TestService_SendReminders_CountsFailures(t *testing.T) {
	repo := &fakeRepo{
		checkedInFn: func(ctx context.Context, date time.Time) ([]string, error) { return nil, nil },
	}
	notifier := &fakeNotifier{
		notifyFn: func(ctx context.Context, employeeID string, msg notification.Message) (notification.DeliveryResponse, error) {
			if employeeID == "2" {
				return notification.DeliveryResponse{}, errors.New("db down")
			}
			return notification.DeliveryResponse{Delivery: notification.DeliveryDuplicate}, nil
		},
	}
	svc, _ := newTestService(t, repo, notifier, time.Now())

	report, err := svc.SendReminders(context.Background(), time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 2, report.Recipients)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.Duplicates)
}

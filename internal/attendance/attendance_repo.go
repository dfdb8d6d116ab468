package attendance

import (
	"context"
	"database/sql"
	"time"

	"go-attendance/internal/shared/dberr"

	"gorm.io/gorm"
)

const (
	dateLayout        = "2006-01-02"
	checkInConstraint = "uq_attendances_employee_date"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	List(ctx context.Context, employeeID string, date *time.Time) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	CheckedInEmployeeIDs(ctx context.Context, date time.Time) ([]string, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.Session(&gorm.Session{Context: ctx, SkipDefaultTransaction: true})
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	err := r.conn(ctx).Create(a).Error
	if dberr.IsUniqueViolation(err, checkInConstraint) {
		return gorm.ErrDuplicatedKey
	}
	return err
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("attendance_date = ?", date.Format(dateLayout)).
		First(&a).Error
	return &a, err
}

func (r *repository) List(ctx context.Context, employeeID string, date *time.Time) ([]Attendance, error) {
	var rows []Attendance
	q := r.conn(ctx)
	if employeeID != "" {
		q = q.Where("employee_id = ?", employeeID)
	}
	if date != nil {
		q = q.Where("attendance_date = ?", date.Format(dateLayout))
	}
	err := q.Order("attendance_date DESC, check_in DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) CheckedInEmployeeIDs(ctx context.Context, date time.Time) ([]string, error) {
	var ids []string
	err := r.conn(ctx).
		Model(&Attendance{}).
		Where("attendance_date = ?", date.Format(dateLayout)).
		Pluck("employee_id", &ids).Error
	return ids, err
}

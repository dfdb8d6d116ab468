package employee

import (
	"context"
	"strconv"

	"go-attendance/internal/identity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, e *Employee) error
	FindAll(ctx context.Context) ([]Employee, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByNumericID(ctx context.Context, numericID int) (*Employee, error)
	FindAdmin(ctx context.Context) (*Employee, error)
	UpdatePreferences(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Employee, error) {
	var rows []Employee
	err := r.db.WithContext(ctx).
		Order("numeric_id ASC, created_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

// FindByNumericID returns the oldest holder when a counter race produced a collision.
func (r *repository) FindByNumericID(ctx context.Context, numericID int) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("numeric_id = ?", numericID).
		Order("created_at ASC").
		First(&e).Error
	return &e, err
}

func (r *repository) FindAdmin(ctx context.Context) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).
		Where("role = ?", RoleAdmin).
		First(&e).Error
	return &e, err
}

func (r *repository) UpdatePreferences(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"notify_leave_status":         e.NotifyLeaveStatus,
			"notify_system_announcements": e.NotifySystemAnnouncements,
			"notify_attendance_reminders": e.NotifyAttendanceReminders,
		}).Error
}

// Delete removes the employee and detaches the rows it owned, unless another
// employee still holds the same numeric id after a collision.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e Employee
		if err := tx.Select("id, numeric_id").First(&e, "id = ?", id).Error; err != nil {
			return err
		}

		res := tx.Delete(&Employee{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		var holders int64
		if err := tx.Model(&Employee{}).Where("numeric_id = ?", e.NumericID).Count(&holders).Error; err != nil {
			return err
		}
		if holders > 0 {
			return nil
		}
		return identity.ReassignOwned(tx, strconv.Itoa(e.NumericID), identity.DetachedOwner(id))
	})
}

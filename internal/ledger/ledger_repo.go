package ledger

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// requestConstraint keeps one ledger row per leave request.
const requestConstraint = "uq_leave_days_taken_request"

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, entry *LeaveDaysTaken) error
	ExistsForRequest(ctx context.Context, leaveRequestID uuid.UUID) (bool, error)
	SumDaysByEmployee(ctx context.Context, employeeID string) (int64, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]LeaveDaysTaken, error)
	DeleteByRequest(ctx context.Context, leaveRequestID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *LeaveDaysTaken) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) ExistsForRequest(ctx context.Context, leaveRequestID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&LeaveDaysTaken{}).
		Where("leave_request_id = ?", leaveRequestID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) SumDaysByEmployee(ctx context.Context, employeeID string) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&LeaveDaysTaken{}).
		Select("COALESCE(SUM(leave_days), 0)").
		Where("employee_id = ?", employeeID).
		Scan(&total).Error
	return total, err
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]LeaveDaysTaken, error) {
	var rows []LeaveDaysTaken
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("start_date DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) DeleteByRequest(ctx context.Context, leaveRequestID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&LeaveDaysTaken{}, "leave_request_id = ?", leaveRequestID)
	return res.RowsAffected, res.Error
}

package counter

import (
	"context"
	"time"

	"gorm.io/gorm"
)

const EmployeeNumericID = "employee_numeric_id"

// Counter is the single-record-per-type collection holding the last value issued.
type Counter struct {
	CounterType string    `gorm:"column:counter_type;type:varchar(50);primaryKey"`
	LastValue   int64     `gorm:"column:last_value;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Counter) TableName() string {
	return "counters"
}

//go:generate mockgen -destination=mock/counter_repo_mock.go -package=mock . Repository
type Repository interface {
	// GetNextValue increments and returns the counter in a single statement.
	// A missing record starts at floor; the result is never below floor.
	GetNextValue(ctx context.Context, counterType string, floor int64) (int64, error)
	GetValue(ctx context.Context, counterType string) (int64, error)
	SetValue(ctx context.Context, counterType string, value int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetNextValue(ctx context.Context, counterType string, floor int64) (int64, error) {
	var nextValue int64

	// one UPSERT so concurrent callers are serialized on the row lock
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO counters (counter_type, last_value, updated_at)
		VALUES (?, ?, now())
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = GREATEST(counters.last_value + 1, EXCLUDED.last_value), updated_at = now()
		RETURNING last_value
	`, counterType, floor).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

func (r *repository) GetValue(ctx context.Context, counterType string) (int64, error) {
	var c Counter
	err := r.db.WithContext(ctx).
		Where("counter_type = ?", counterType).
		Limit(1).
		Find(&c).Error
	return c.LastValue, err
}

func (r *repository) SetValue(ctx context.Context, counterType string, value int64) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO counters (counter_type, last_value, updated_at)
		VALUES (?, ?, now())
		ON CONFLICT (counter_type) DO UPDATE
		SET last_value = EXCLUDED.last_value, updated_at = now()
	`, counterType, value).Error
}

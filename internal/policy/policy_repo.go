package policy

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateHoliday(ctx context.Context, h *Holiday) error
	SaveHoliday(ctx context.Context, h *Holiday) error
	FindHoliday(ctx context.Context, id uuid.UUID) (*Holiday, error)
	DeleteHoliday(ctx context.Context, id uuid.UUID) error
	ListHolidays(ctx context.Context) ([]Holiday, error)
	ListDueHolidays(ctx context.Context, today time.Time) ([]Holiday, error)
	MarkHolidayExpired(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	GetSetting(ctx context.Context, key string) (*CompanySetting, error)
	UpsertSetting(ctx context.Context, setting *CompanySetting) error
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

// conn runs statements on the bound *sql.Tx when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.Session(&gorm.Session{Context: ctx, SkipDefaultTransaction: true})
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) CreateHoliday(ctx context.Context, h *Holiday) error {
	return r.conn(ctx).Create(h).Error
}

func (r *repository) SaveHoliday(ctx context.Context, h *Holiday) error {
	return r.conn(ctx).Save(h).Error
}

func (r *repository) FindHoliday(ctx context.Context, id uuid.UUID) (*Holiday, error) {
	var h Holiday
	err := r.conn(ctx).First(&h, "id = ?", id).Error
	return &h, err
}

func (r *repository) DeleteHoliday(ctx context.Context, id uuid.UUID) error {
	res := r.conn(ctx).Delete(&Holiday{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ListHolidays(ctx context.Context) ([]Holiday, error) {
	var rows []Holiday
	err := r.conn(ctx).Order("date ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) ListDueHolidays(ctx context.Context, today time.Time) ([]Holiday, error) {
	var rows []Holiday
	err := r.conn(ctx).
		Where("date < ? AND expired = ?", today.Format(DateLayout), false).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}

// MarkHolidayExpired flips expired once and reports whether this call did it.
func (r *repository) MarkHolidayExpired(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	res := r.conn(ctx).
		Model(&Holiday{}).
		Where("id = ? AND expired = ?", id, false).
		Updates(map[string]any{"expired": true, "expired_at": at, "updated_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) GetSetting(ctx context.Context, key string) (*CompanySetting, error) {
	var s CompanySetting
	err := r.conn(ctx).First(&s, "key = ?", key).Error
	return &s, err
}

func (r *repository) UpsertSetting(ctx context.Context, setting *CompanySetting) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(setting).Error
}

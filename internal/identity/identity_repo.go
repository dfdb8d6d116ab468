package identity

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	FindNonAdmin(ctx context.Context) ([]NumberedEmployee, error)
	// Renumber moves one employee from one numeric id to another. With
	// moveOwned the rows in OwnedTables follow in the same transaction.
	Renumber(ctx context.Context, id uuid.UUID, from, to int, moveOwned bool) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindNonAdmin(ctx context.Context) ([]NumberedEmployee, error) {
	var rows []NumberedEmployee
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id, numeric_id, created_at").
		Where("role <> ?", RoleAdmin).
		Order("numeric_id ASC, created_at ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Renumber(ctx context.Context, id uuid.UUID, from, to int, moveOwned bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Table("employees").
			Where("id = ?", id).
			Updates(map[string]any{
				"numeric_id": to,
				"updated_at": gorm.Expr("now()"),
			}).Error
		if err != nil || !moveOwned {
			return err
		}
		return ReassignOwned(tx, strconv.Itoa(from), strconv.Itoa(to))
	})
}

// ReassignOwned rewrites employee_id from one owner to another across OwnedTables.
func ReassignOwned(tx *gorm.DB, from, to string) error {
	for _, table := range OwnedTables {
		err := tx.Table(table).
			Where("employee_id = ?", from).
			Update("employee_id", to).Error
		if err != nil {
			return err
		}
	}
	return nil
}

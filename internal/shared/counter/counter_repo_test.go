package counter_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"go-attendance/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupCounterRepo(t *testing.T) (counter.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	return counter.NewRepository(gormDB), mock
}

func TestCounterRepository_GetNextValue(t *testing.T) {
	ctx := context.Background()

	t.Run("success returns upserted value", func(t *testing.T) {
		repo, mock := setupCounterRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO counters")).
			WithArgs(counter.EmployeeNumericID, int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(7))

		got, err := repo.GetNextValue(ctx, counter.EmployeeNumericID, 2)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative store error", func(t *testing.T) {
		repo, mock := setupCounterRepo(t)

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO counters")).
			WillReturnError(errors.New("connection reset"))

		got, err := repo.GetNextValue(ctx, counter.EmployeeNumericID, 2)

		assert.Error(t, err)
		assert.Equal(t, int64(0), got)
	})
}

func TestCounterRepository_SetValue(t *testing.T) {
	repo, mock := setupCounterRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO counters")).
		WithArgs(counter.EmployeeNumericID, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetValue(context.Background(), counter.EmployeeNumericID, 5)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

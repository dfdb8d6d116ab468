package ledger_test

import (
	"context"
	"regexp"
	"testing"

	"go-attendance/internal/ledger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupLedgerRepo(t *testing.T) (ledger.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)

	return ledger.NewRepository(gormDB), mock
}

func TestLedgerRepository_SumDaysByEmployee(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupLedgerRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COALESCE(SUM(leave_days), 0) FROM "leave_days_taken" WHERE employee_id = $1`)).
		WithArgs("7").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(8))

	total, err := repo.SumDaysByEmployee(ctx, "7")

	assert.NoError(t, err)
	assert.Equal(t, int64(8), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_DeleteByRequest(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupLedgerRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "leave_days_taken" WHERE leave_request_id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	removed, err := repo.DeleteByRequest(ctx, id)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLedgerRepository_ExistsForRequest(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupLedgerRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "leave_days_taken" WHERE leave_request_id = $1`)).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsForRequest(ctx, id)

	assert.NoError(t, err)
	assert.True(t, exists)
}

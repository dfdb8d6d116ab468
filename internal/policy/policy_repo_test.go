package policy_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-attendance/internal/policy"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupPolicyRepo(t *testing.T) (policy.Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return policy.NewRepository(gormDB), mock
}

func TestPolicyRepository_MarkHolidayExpired(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	at := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`UPDATE "holidays" SET "expired"=$1,"expired_at"=$2,"updated_at"=$3 WHERE id = $4 AND expired = $5`)

	t.Run("first caller wins", func(t *testing.T) {
		repo, mock := setupPolicyRepo(t)
		mock.ExpectExec(query).
			WithArgs(true, at, at, id, false).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.MarkHolidayExpired(ctx, id, at)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already expired", func(t *testing.T) {
		repo, mock := setupPolicyRepo(t)
		mock.ExpectExec(query).
			WithArgs(true, at, at, id, false).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.MarkHolidayExpired(ctx, id, at)

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestPolicyRepository_ListDueHolidays(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupPolicyRepo(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "holidays" WHERE date < $1 AND expired = $2 ORDER BY date ASC`)).
		WithArgs("2024-05-20", false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "date", "expired"}).
			AddRow(id, "Labour Day", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), false))

	rows, err := repo.ListDueHolidays(ctx, time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Labour Day", rows[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyRepository_DeleteHolidayMissing(t *testing.T) {
	ctx := context.Background()
	repo, mock := setupPolicyRepo(t)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "holidays" WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteHoliday(ctx, id)

	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPolicyRepository_UpsertSettingInsideTx(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	repo := policy.NewRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "company_settings" ("key","value","updated_at") VALUES ($1,$2,$3) ON CONFLICT ("key") DO UPDATE SET "value"="excluded"."value","updated_at"="excluded"."updated_at"`)).
		WithArgs(policy.SettingWorkingHours, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	err = repo.WithTx(tx).UpsertSetting(ctx, &policy.CompanySetting{
		Key:       policy.SettingWorkingHours,
		Value:     []byte(`{"start":"09:00","end":"17:00","grace_minutes":15}`),
		UpdatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

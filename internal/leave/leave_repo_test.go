package leave_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"go-attendance/internal/leave"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gdb, mock
}

func TestLeaveRepository_UpdateStatusIfPending(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	at := time.Date(2024, 1, 11, 9, 0, 0, 0, time.UTC)
	query := regexp.QuoteMeta(`UPDATE "leave_requests" SET "status"=$1,"updated_at"=$2 WHERE id = $3 AND status = $4`)

	t.Run("wins the transition", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := leave.NewRepository(gdb)

		mock.ExpectExec(query).
			WithArgs(leave.StatusApproved, at, id, leave.StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		ok, err := repo.UpdateStatusIfPending(ctx, id, leave.StatusApproved, at)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already decided", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		repo := leave.NewRepository(gdb)

		mock.ExpectExec(query).
			WithArgs(leave.StatusRejected, at, id, leave.StatusPending).
			WillReturnResult(sqlmock.NewResult(0, 0))

		ok, err := repo.UpdateStatusIfPending(ctx, id, leave.StatusRejected, at)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLeaveRepository_Delete(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	query := regexp.QuoteMeta(`DELETE FROM "leave_requests" WHERE id = $1`)

	t.Run("deleted", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectExec(query).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, leave.NewRepository(gdb).Delete(ctx, id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row", func(t *testing.T) {
		gdb, mock := newGormMock(t)
		mock.ExpectExec(query).WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, leave.NewRepository(gdb).Delete(ctx, id), gorm.ErrRecordNotFound)
	})
}

package identity

import (
	"context"
	"slices"
	"sort"

	identityerrors "go-attendance/internal/identity/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service issues dense numeric employee ids and keeps them contiguous.
//
//go:generate mockgen -source=identity_service.go -destination=mock/identity_service_mock.go -package=mock
type Service interface {
	NextID(ctx context.Context) (int, error)
	Resequence(ctx context.Context, deletedNumericID int) (ResequenceReport, error)
}

type service struct {
	repo    Repository
	counter counter.Repository
	logger  *zap.Logger
}

func NewService(repo Repository, counterRepo counter.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("identity.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("identity.service")
	}
	return &service{repo: repo, counter: counterRepo, logger: l}
}

func (s *service) NextID(ctx context.Context) (int, error) {
	next, err := s.counter.GetNextValue(ctx, counter.EmployeeNumericID, AdminNumericID+1)
	if err != nil {
		s.logger.Error("next numeric id failed", zap.Error(err))
		return 0, apperror.Wrap(err, identityerrors.ErrCounterUnavailable.Code, identityerrors.ErrCounterUnavailable.Message, identityerrors.ErrCounterUnavailable.HTTPStatus)
	}

	s.logger.Debug("numeric id issued", zap.Int64("numeric_id", next))
	return int(next), nil
}

// Resequence recomputes the whole range from current state, so a run that
// stopped half way is repaired by the next one.
func (s *service) Resequence(ctx context.Context, deletedNumericID int) (ResequenceReport, error) {
	s.logger.Debug("resequence requested", zap.Int("deleted_numeric_id", deletedNumericID))

	rows, err := s.repo.FindNonAdmin(ctx)
	if err != nil {
		s.logger.Error("resequence load employees failed", zap.Error(err))
		return ResequenceReport{}, apperror.StoreUnavailable(err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].NumericID != rows[j].NumericID {
			return rows[i].NumericID < rows[j].NumericID
		}
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.Before(rows[j].CreatedAt)
		}
		return rows[i].ID.String() < rows[j].ID.String()
	})

	report := ResequenceReport{Checked: len(rows), MaxID: AdminNumericID + len(rows)}
	holders := make(map[int]int, len(rows))
	for _, row := range rows {
		holders[row.NumericID]++
	}

	for _, mv := range planMoves(rows) {
		// Rows owned by a collided number cannot be attributed, so they stay put.
		moveOwned := holders[mv.from] == 1
		if !moveOwned {
			s.logger.Warn("resequence collided numeric id, owned rows stay with the remaining holder",
				zap.String("employee_id", mv.id.String()),
				zap.Int("from", mv.from),
			)
		}
		if err := s.repo.Renumber(ctx, mv.id, mv.from, mv.to, moveOwned); err != nil {
			s.logger.Error("resequence update failed",
				zap.String("employee_id", mv.id.String()),
				zap.Int("from", mv.from),
				zap.Int("to", mv.to),
				zap.Int("reassigned_so_far", report.Reassigned),
				zap.Error(err),
			)
			return report, apperror.Wrap(err, identityerrors.ErrResequenceIncomplete.Code, identityerrors.ErrResequenceIncomplete.Message, identityerrors.ErrResequenceIncomplete.HTTPStatus)
		}
		holders[mv.from]--
		holders[mv.to]++
		report.Reassigned++
	}

	if err := s.counter.SetValue(ctx, counter.EmployeeNumericID, int64(report.MaxID)); err != nil {
		s.logger.Error("resequence reset counter failed", zap.Int("max_id", report.MaxID), zap.Error(err))
		return report, apperror.Wrap(err, identityerrors.ErrResequenceIncomplete.Code, identityerrors.ErrResequenceIncomplete.Message, identityerrors.ErrResequenceIncomplete.HTTPStatus)
	}

	s.logger.Info("resequence success",
		zap.Int("checked", report.Checked),
		zap.Int("reassigned", report.Reassigned),
		zap.Int("max_id", report.MaxID),
	)
	return report, nil
}

type move struct {
	id       uuid.UUID
	from, to int
}

// planMoves orders the writes so a number is always vacated before it is
// taken: upward moves (only after a collision) highest first, then downward
// moves lowest first.
func planMoves(sorted []NumberedEmployee) []move {
	var up, down []move
	for i, row := range sorted {
		want := AdminNumericID + 1 + i
		switch {
		case row.NumericID < want:
			up = append(up, move{id: row.ID, from: row.NumericID, to: want})
		case row.NumericID > want:
			down = append(down, move{id: row.ID, from: row.NumericID, to: want})
		}
	}
	slices.Reverse(up)
	return append(up, down...)
}

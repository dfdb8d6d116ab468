package identityerrors

import "go-attendance/internal/shared/apperror"

var (
	ErrCounterUnavailable   = apperror.New(apperror.CodeServiceUnavailable, "numeric id counter is unavailable", 0)
	ErrResequenceIncomplete = apperror.New(apperror.CodeServiceUnavailable, "employee renumbering did not complete, it will be repaired on the next run", 0)
)

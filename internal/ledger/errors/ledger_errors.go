package ledgererrors

import "go-attendance/internal/shared/apperror"

var (
	ErrInvalidEmployeeID     = apperror.New(apperror.CodeInvalidInput, "invalid employee id", 0)
	ErrInvalidLeaveRequestID = apperror.New(apperror.CodeInvalidInput, "invalid leave request id", 0)
	ErrRequestNotApproved    = apperror.New(apperror.CodeInvalidState, "only approved leave requests are recorded in the ledger", 0)
)

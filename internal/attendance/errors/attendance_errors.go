package attendanceerrors

import "go-attendance/internal/shared/apperror"

var (
	ErrInvalidEmployeeID   = apperror.New(apperror.CodeInvalidInput, "invalid employee id", 0)
	ErrInvalidSource       = apperror.New(apperror.CodeInvalidInput, "source must be FACE or MANUAL", 0)
	ErrFaceCheckInRequired = apperror.New(apperror.CodeInvalidInput, "check-in must come from face recognition", 0)
	ErrInvalidDateFormat   = apperror.New(apperror.CodeInvalidInput, "date must use YYYY-MM-DD", 0)
	ErrAlreadyCheckedIn    = apperror.New(apperror.CodeConflict, "already checked in for today", 0)
	ErrNotCheckedIn        = apperror.New(apperror.CodeInvalidState, "no check-in found for today", 0)
	ErrAlreadyCheckedOut   = apperror.New(apperror.CodeInvalidState, "already checked out for today", 0)
)

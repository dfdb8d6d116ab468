package leaveerrors

import "go-attendance/internal/shared/apperror"

var (
	ErrInvalidLeaveID          = apperror.New(apperror.CodeInvalidInput, "invalid leave request id", 0)
	ErrEmployeeIDRequired      = apperror.New(apperror.CodeInvalidInput, "employee_id is required", 0)
	ErrInvalidEmployeeID       = apperror.New(apperror.CodeInvalidInput, "invalid employee id", 0)
	ErrEmployeeNotFound        = apperror.New(apperror.CodeNotFound, "employee not found", 0)
	ErrInvalidLeaveType        = apperror.New(apperror.CodeInvalidInput, "leave_type must be one of Sick Leave, Vacation Leave, Personal Leave, Maternity Leave, Paternity Leave", 0)
	ErrStartDateRequired       = apperror.New(apperror.CodeInvalidInput, "start_date is required", 0)
	ErrEndDateRequired         = apperror.New(apperror.CodeInvalidInput, "end_date is required", 0)
	ErrInvalidDateFormat       = apperror.New(apperror.CodeInvalidInput, "invalid date format, expected YYYY-MM-DD", 0)
	ErrInvalidDateRange        = apperror.New(apperror.CodeInvalidInput, "start_date must be before or equal end_date", 0)
	ErrInvalidStatusFilter     = apperror.New(apperror.CodeInvalidInput, "status must be one of Pending, Approved, Rejected", 0)
	ErrInvalidTargetStatus     = apperror.New(apperror.CodeInvalidInput, "a leave request can only be set to Approved or Rejected", 0)
	ErrLeaveNotFound           = apperror.New(apperror.CodeNotFound, "leave request not found", 0)
	ErrInvalidStatusTransition = apperror.New(apperror.CodeInvalidState, "leave request has already been decided", 0)
	// ErrStatusAlreadyApplied signals a repeated decision. It matches
	// ErrInvalidStatusTransition under errors.Is.
	ErrStatusAlreadyApplied = apperror.Wrap(ErrInvalidStatusTransition, apperror.CodeInvalidState, "leave request already has this status", 0)
)

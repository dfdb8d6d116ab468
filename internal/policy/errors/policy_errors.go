package policyerrors

import "go-attendance/internal/shared/apperror"

var (
	ErrInvalidHolidayID    = apperror.New(apperror.CodeInvalidInput, "invalid holiday id", 0)
	ErrHolidayNameRequired = apperror.New(apperror.CodeInvalidInput, "name is required", 0)
	ErrInvalidDateFormat   = apperror.New(apperror.CodeInvalidInput, "invalid date format, expected YYYY-MM-DD", 0)
	ErrInvalidDateRange    = apperror.New(apperror.CodeInvalidInput, "start_date must be before or equal end_date", 0)
	ErrHolidayNotFound     = apperror.New(apperror.CodeNotFound, "holiday not found", 0)
	ErrHolidayExpired      = apperror.New(apperror.CodeInvalidState, "holiday has already passed", 0)
	ErrInvalidClock        = apperror.New(apperror.CodeInvalidInput, "working hours must use HH:MM", 0)
	ErrInvalidWorkingHours = apperror.New(apperror.CodeInvalidInput, "working hours must end after they start", 0)
	ErrEmptyAnnouncement   = apperror.New(apperror.CodeInvalidInput, "message is required", 0)
)

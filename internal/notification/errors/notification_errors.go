package notificationerrors

import "go-attendance/internal/shared/apperror"

var (
	ErrInvalidType           = apperror.New(apperror.CodeInvalidInput, "invalid notification type", 0)
	ErrEmptyMessage          = apperror.New(apperror.CodeInvalidInput, "notification message is required", 0)
	ErrInvalidNotificationID = apperror.New(apperror.CodeInvalidInput, "invalid notification id", 0)
	ErrNotificationNotFound  = apperror.New(apperror.CodeNotFound, "notification not found", 0)
	ErrRecipientNotFound     = apperror.New(apperror.CodeNotFound, "recipient employee not found", 0)
)

package apperror

import "errors"

// Shared sentinels. Feature packages wrap these to add context while keeping
// the code and status.
var (
	ErrNotFound         = New(CodeNotFound, "Resource not found", 0)
	ErrForbidden        = New(CodeForbidden, "You do not have permission to access this resource", 0)
	ErrInternal         = New(CodeInternalError, "Internal server error", 0)
	ErrUnauthorized     = New(CodeUnauthorized, "Authentication is required", 0)
	ErrInvalidInput     = New(CodeInvalidInput, "The provided input is invalid", 0)
	ErrStoreUnavailable = New(CodeServiceUnavailable, "Data store is unavailable, please retry", 0)
)

func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, field+" is required", 0)
}

func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, field+" is invalid", 0)
}

// StoreUnavailable wraps a backend failure so callers can tell a store fault
// apart from a domain rejection. Application errors pass through untouched.
func StoreUnavailable(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	return Wrap(err, CodeServiceUnavailable, ErrStoreUnavailable.Message, 0)
}

// IsStoreUnavailable reports whether err carries the SERVICE_UNAVAILABLE code.
func IsStoreUnavailable(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == CodeServiceUnavailable
}

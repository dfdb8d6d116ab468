package apperror

import (
	"errors"
	"net/http"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP turns any error into the payload written by response.Error.
// Errors that are not *AppError are reported as a generic 500 without
// leaking their text.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return HTTPError{
			Status:  http.StatusInternalServerError,
			Code:    CodeInternalError,
			Message: ErrInternal.Message,
		}
	}
	return HTTPError{
		Status:  appErr.Status(),
		Code:    appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	}
}

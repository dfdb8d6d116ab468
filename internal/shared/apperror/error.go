package apperror

import "fmt"

// AppError is the error type every service returns to its handler. Sentinels
// are compared by pointer, so derived errors wrap them instead of copying.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	// Details is echoed to the client as error.details.
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }

// Status falls back to the code's conventional status when none was set.
func (e *AppError) Status() int {
	if e.HTTPStatus != 0 {
		return e.HTTPStatus
	}
	return StatusFor(e.Code)
}

// WithDetails returns a copy of e that wraps e and carries details.
func (e *AppError) WithDetails(details any) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		HTTPStatus: e.HTTPStatus,
		Details:    details,
		Err:        e,
	}
}

// New builds a sentinel. A zero httpStatus is resolved from code.
func New(code, message string, httpStatus int) *AppError {
	if httpStatus == 0 {
		httpStatus = StatusFor(code)
	}
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap attaches code and message to err. It returns nil for a nil err.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	appErr := New(code, message, httpStatus)
	appErr.Err = err
	return appErr
}

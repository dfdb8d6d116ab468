package employeeerrors

import "go-attendance/internal/shared/apperror"

var (
	ErrEmployeeNotFound          = apperror.New(apperror.CodeNotFound, "Employee not found", 0)
	ErrEmployeeAlreadyExists     = apperror.New(apperror.CodeConflict, "Employee with the same email already exists", 0)
	ErrAdministratorExists       = apperror.New(apperror.CodeConflict, "An administrator already exists", 0)
	ErrCannotDeleteAdministrator = apperror.New(apperror.CodeInvalidState, "The administrator cannot be deleted", 0)
	ErrInvalidEmployeeID         = apperror.New(apperror.CodeInvalidInput, "Invalid employee ID", 0)
	ErrInvalidNumericID          = apperror.New(apperror.CodeInvalidInput, "Invalid employee numeric ID", 0)
)

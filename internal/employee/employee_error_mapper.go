package employee

import (
	"errors"

	employeeerrors "go-attendance/internal/employee/errors"
	"go-attendance/internal/shared/apperror"
	"go-attendance/internal/shared/dberr"

	"gorm.io/gorm"
)

const emailConstraint = "uq_employee_email"

// mapRepositoryError translates gorm and driver failures into employee errors.
// Anything unrecognized is reported as a store outage.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return employeeerrors.ErrEmployeeNotFound
	case dberr.IsUniqueViolation(err, emailConstraint):
		return employeeerrors.ErrEmployeeAlreadyExists
	default:
		return apperror.StoreUnavailable(err)
	}
}

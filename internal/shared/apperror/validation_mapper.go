package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var fieldCaser = cases.Title(language.English)

// humanField turns a json field name such as leave_type into "Leave Type".
func humanField(name string) string {
	return fieldCaser.String(strings.ReplaceAll(name, "_", " "))
}

// FieldViolation names one rejected request field.
type FieldViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// MapValidationError converts a validator failure into INVALID_INPUT. The
// message names the first offending field and details list all of them.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		appErr := New(CodeInvalidInput, "Invalid input", 0)
		if err != nil {
			appErr.Details = err.Error()
		}
		return appErr
	}

	violations := make([]FieldViolation, 0, len(errs))
	for _, fe := range errs {
		violations = append(violations, FieldViolation{Field: fe.Field(), Rule: fe.Tag()})
	}

	first := errs[0]
	var appErr *AppError
	if first.Tag() == "required" {
		appErr = RequiredField(humanField(first.Field()))
	} else {
		appErr = InvalidField(humanField(first.Field()))
	}
	appErr.Details = violations
	return appErr
}

package model

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/review-board/internal/apperror"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under their JSON names ("employeeId", not "EmployeeID").
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks an input struct against its validate tags and returns an
// *apperror.AppError listing every failed field.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("model: validating %T: %w", in, err)
	}

	violations := make([]apperror.FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, apperror.FieldViolation{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		})
	}
	return apperror.Invalid(violations)
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "min":
		return fmt.Sprintf("%q is not allowed to be empty", fe.Field())
	default:
		return fmt.Sprintf("%q failed on %s", fe.Field(), fe.Tag())
	}
}

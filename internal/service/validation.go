package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/thoas/go-funk"
)

// newValidator builds a validator that reports fields by their json names.
func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return validate
}

var violationMessages = map[string]string{
	"email/email":        "Invalid email",
	"email/required":     "Invalid email",
	"password/min":       "Password must be at least 6 characters",
	"password/required":  "Password is required",
	"firstName/required": "First name is required",
	"lastName/required":  "Last name is required",
}

func violationMessage(fieldError validator.FieldError) string {
	if message, found := violationMessages[fieldError.Field()+"/"+fieldError.Tag()]; found {
		return message
	}

	return fmt.Sprintf("%s is invalid", fieldError.Field())
}

// validateStruct runs the validator over a request DTO and converts the
// result into a ValidationError listing every violated field.
func validateStruct(validate *validator.Validate, request interface{}) error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	violations := funk.Map(
		[]validator.FieldError(validationErrors),
		func(fieldError validator.FieldError) FieldViolation {
			return FieldViolation{
				Field:   fieldError.Field(),
				Message: violationMessage(fieldError),
			}
		},
	).([]FieldViolation)

	return &ValidationError{Violations: violations}
}

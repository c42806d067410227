// Package validation wraps go-playground/validator with a process-wide
// instance and translates its field errors into apperror values.
//
// Struct info is cached by the validator, so the instance is built once and
// shared; validator.Validate is safe for concurrent use.
//
// Usage:
//
//	type CreatePlanetInput struct {
//	    Name string `json:"name" validate:"required,max=120"`
//	}
//
//	if err := validation.Struct(in); err != nil {
//	    return nil, err // *apperror.AppError wrapping ErrValidation
//	}
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/starwars-api/internal/apperror"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Get returns the shared validator instance.
func Get() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// Report fields by their JSON name so messages match the request body
		// the client actually sent ("last_name", not "LastName").
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Struct validates s and returns nil or an *apperror.AppError describing the
// first failing field.
func Struct(s any) error {
	err := Get().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return apperror.ValidationFailed(fe.Field(), message(fe))
	}

	// InvalidValidationError: a programming error (nil or non-struct input).
	return fmt.Errorf("validation: %w", err)
}

// message renders a FieldError the way the API reports it.
func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

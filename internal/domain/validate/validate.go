// Package validate wraps go-playground/validator with the field-error
// shape the API handlers return to clients. Validation runs before any
// handler logic; a failure short-circuits the request with a 400.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/gatherkit/server/internal/domain/ids"
	"github.com/go-playground/validator/v10"
)

var instance = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("ulid", func(fl validator.FieldLevel) bool {
		return ids.IsULID(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register ulid validation: %v", err))
	}
	return v
}

// FieldErrors maps input field names to human-readable messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return strings.Join(parts, "; ")
}

// Struct validates the tagged struct and converts validator failures
// into FieldErrors keyed by the json field name.
func Struct(value any) error {
	err := instance.Struct(value)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(FieldErrors, len(verrs))
	for _, verr := range verrs {
		fields[fieldName(verr)] = message(verr)
	}
	return fields
}

func fieldName(verr validator.FieldError) string {
	if name := verr.Field(); name != "" {
		return name
	}
	return verr.StructField()
}

func message(verr validator.FieldError) string {
	switch verr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "ulid":
		return "must be a valid ULID"
	case "min":
		return "must not be empty"
	case "max":
		return fmt.Sprintf("must be at most %s characters", verr.Param())
	default:
		return "is invalid"
	}
}

// Package validate checks inbound payloads against per-resource field rules
// and turns failures into ordered, human-readable messages.
//
// Rules are declared as `validate` struct tags on the payload types; the
// package translates validator failures into a format API clients can
// understand. Validation is purely structural, there are no cross-field or
// uniqueness checks here.
package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()

	// Report fields by their JSON name so messages match the wire format.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return val
}

// Struct validates a payload struct and returns one message per failing
// field, in declaration order. A nil return means the payload is valid.
func Struct(payload interface{}) []string {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		messages = append(messages, message(fieldErr))
	}
	return messages
}

func message(err validator.FieldError) string {
	// Strip the struct type prefix, keeping nested paths like contact.email.
	field := err.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch err.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		if err.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, err.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, err.Param())
	case "max":
		if err.Type().Kind() == reflect.String {
			return fmt.Sprintf("%s must not exceed %s characters", field, err.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", field, err.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(err.Param(), " ", ", "))
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s failed validation: %s=%s", field, err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s failed validation: %s", field, err.Tag())
	}
}

package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mwhitfield/quill/internal/core/service"
)

// Report validation failures under the form field names, not the Go
// struct field names.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("form"), ",")
			if name == "" || name == "-" {
				return field.Name
			}
			return name
		})
	}
}

// fieldErrors maps a binding failure to one message per offending form
// field. A failure that is not a validation error gets a single entry
// under the "form" key, which templates show above the fields.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["form"] = "Please check the form and try again."
		return out
	}

	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = fieldErrorMessage(fe)
	}
	return out
}

// duplicateFieldErrors pins a uniqueness violation on the offending
// field. Nil for any other error.
func duplicateFieldErrors(err error) map[string]string {
	switch {
	case errors.Is(err, service.ErrDuplicateUsername):
		return map[string]string{"username": "That username is taken. Please choose a different one."}
	case errors.Is(err, service.ErrDuplicateEmail):
		return map[string]string{"email": "That email is taken. Please choose a different one."}
	}
	return nil
}

func fieldErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Invalid email address."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	case "eqfield":
		return "Field must be equal to password."
	default:
		return "Invalid value."
	}
}

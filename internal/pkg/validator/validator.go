package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "mapstructure"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
}

// Validate checks s against its validate tags
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// FieldErrors flattens a validation error into field -> message pairs,
// keyed by the json/mapstructure name of the field.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value is at least %s", fe.Param())
	case "url":
		return "Enter a valid URL"
	case "email":
		return "Enter a valid email address"
	case "oneof":
		return fmt.Sprintf("Select one of: %s", fe.Param())
	case "gtefield":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("Failed on the '%s' rule", fe.Tag())
	}
}

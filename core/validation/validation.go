package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Detail describes one failed field.
type Detail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a validator that reports fields by their JSON names.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Details flattens a validation error into field messages.
// Errors that are not validation errors produce a single entry without a field.
func Details(err error) []Detail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Detail{{Message: err.Error()}}
	}

	out := make([]Detail, 0, len(verrs))
	for _, e := range verrs {
		out = append(out, Detail{Field: e.Field(), Message: message(e)})
	}
	return out
}

// Summary joins Details into one line.
func Summary(err error) string {
	var parts []string
	for _, d := range Details(err) {
		if d.Field == "" {
			parts = append(parts, d.Message)
			continue
		}
		parts = append(parts, d.Field+": "+d.Message)
	}
	return strings.Join(parts, "; ")
}

func message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "gt":
		return "Must be greater than " + e.Param()
	case "gtmin":
		return "Must be greater than min"
	default:
		return "Invalid value"
	}
}

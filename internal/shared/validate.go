package shared

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/stockroom/stockroom/internal/platform/httpx"
)

// NewValidator builds the validator instance used by all handlers. Field names
// in error detail come from the json tag rather than the Go field name.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// CheckStruct validates a DTO and converts validator errors into the
// field-level validation error the response layer understands.
func CheckStruct(v *validator.Validate, payload any) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return httpx.ErrValidation
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		fields[fieldErr.Field()] = ruleMessage(fieldErr)
	}
	return httpx.NewFieldErrors(fields)
}

func ruleMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "gte", "min":
		return "must be at least " + fieldErr.Param()
	case "lte", "max":
		return "must be at most " + fieldErr.Param()
	case "gt":
		return "must be greater than " + fieldErr.Param()
	case "oneof":
		return "must be one of: " + fieldErr.Param()
	case "ltefield":
		return "must be at most " + fieldErr.Param()
	default:
		return "is invalid"
	}
}

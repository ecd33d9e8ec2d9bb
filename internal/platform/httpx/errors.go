package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors for domain layer.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// FieldErrors carries per-field validation detail. It wraps ErrValidation so
// errors.Is still matches the sentinel.
type FieldErrors struct {
	Fields map[string]string
}

// NewFieldErrors builds a FieldErrors from field -> message pairs.
func NewFieldErrors(fields map[string]string) *FieldErrors {
	return &FieldErrors{Fields: fields}
}

func (e *FieldErrors) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(names, ", "))
}

func (e *FieldErrors) Unwrap() error {
	return ErrValidation
}

// RespondError maps domain errors to HTTP responses using RFC7807.
func RespondError(w http.ResponseWriter, err error) {
	var fieldErrs *FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		ProblemFields(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error(), fieldErrs.Fields)
	case errors.Is(err, ErrValidation):
		Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
	case errors.Is(err, ErrNotFound):
		Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrConflict):
		Problem(w, http.StatusConflict, "Conflict", err.Error())
	default:
		Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

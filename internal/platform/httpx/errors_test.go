package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", fmt.Errorf("%w: item 7", ErrNotFound), 404},
		{"conflict", fmt.Errorf("%w: items_sku_key", ErrConflict), 409},
		{"validation", fmt.Errorf("%w: quantity", ErrValidation), 422},
		{"unclassified", errors.New("connection reset"), 500},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			RespondError(rec, tc.err)
			require.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var problem ProblemDetail
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
			assert.Equal(t, tc.status, problem.Status)
		})
	}
}

func TestRespondErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Empty(t, problem.Detail)
}

func TestRespondErrorFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, NewFieldErrors(map[string]string{
		"name": "is required",
		"sku":  "is required",
	}))

	require.Equal(t, 422, rec.Code)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, "is required", problem.Errors["name"])
	assert.Equal(t, "is required", problem.Errors["sku"])
}

func TestFieldErrorsMatchesSentinel(t *testing.T) {
	err := NewFieldErrors(map[string]string{"delta": "must be non-zero"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "validation failed: delta", err.Error())
}

package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-payroll/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps its status and code", func(t *testing.T) {
		out := apperror.ToHTTP(apperror.RequiredField("Reason"))
		assert.Equal(t, http.StatusBadRequest, out.Status)
		assert.Equal(t, apperror.CodeInvalidInput, out.Code)
		assert.Equal(t, "Reason is required", out.Message)
	})

	t.Run("wrapped app error is found", func(t *testing.T) {
		err := fmt.Errorf("approve: %w", apperror.ErrNotFound)
		out := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusNotFound, out.Status)
	})

	t.Run("store error hides its cause", func(t *testing.T) {
		err := apperror.Store("create payroll record", errors.New("pq: connection reset"))
		out := apperror.ToHTTP(err)
		assert.Equal(t, http.StatusInternalServerError, out.Status)
		assert.Equal(t, apperror.CodeStoreError, out.Code)
		assert.NotContains(t, out.Message, "connection reset")
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		out := apperror.ToHTTP(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, out.Status)
		assert.Equal(t, apperror.CodeInternalError, out.Code)
	})
}

func TestWithCauseMatchesSentinel(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := apperror.ErrInvalidInput.WithCause(cause)

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.ErrorIs(t, err, cause)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvalidInput))
	assert.Nil(t, apperror.Store("noop", nil))
}

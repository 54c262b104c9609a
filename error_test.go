package animalloo_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/animalloo/animalloo"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := animalloo.Errorf(animalloo.ENOTFOUND, "facility %q not found", "f-1")
		assert.Equal(t, animalloo.ENOTFOUND, animalloo.ErrorCode(err))
	})

	t.Run("wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("reading catalog: %w", animalloo.Errorf(animalloo.EUNAVAILABLE, "catalog unavailable"))
		assert.Equal(t, animalloo.EUNAVAILABLE, animalloo.ErrorCode(err))
	})

	t.Run("foreign error maps to internal", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, animalloo.EINTERNAL, animalloo.ErrorCode(errors.New("boom")))
	})

	t.Run("nil error has no code", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", animalloo.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("application error", func(t *testing.T) {
		t.Parallel()
		err := animalloo.Errorf(animalloo.EINVALID, "query is required")
		assert.Equal(t, "query is required", animalloo.ErrorMessage(err))
	})

	t.Run("foreign error is not leaked", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", animalloo.ErrorMessage(errors.New("sql: driver bad")))
	})

	t.Run("nil error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", animalloo.ErrorMessage(nil))
	})
}

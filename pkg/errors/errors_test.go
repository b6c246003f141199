package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	pkgerrors "github.com/subjectlab/boardmerge/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "category",
			ID:       "hardware",
		}
		assert.Equal(t, "category with ID hardware not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("subject", "graphene")
		assert.Equal(t, "subject with ID graphene not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "name",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field name: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "file too large"}
		assert.Equal(t, "validation failed: file too large", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestDuplicateNameError(t *testing.T) {
	t.Run("with location", func(t *testing.T) {
		err := pkgerrors.NewDuplicateNameError("subject", "Graphene", "Materials")
		assert.Equal(t, `subject "Graphene" already exists in Materials`, err.Error())
		assert.True(t, pkgerrors.IsAlreadyExists(err))
	})

	t.Run("without location", func(t *testing.T) {
		err := pkgerrors.NewDuplicateNameError("category", "Hardware", "")
		assert.Equal(t, `category "Hardware" already exists`, err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrAlreadyExists))
	})
}

func TestPreconditionError(t *testing.T) {
	err := pkgerrors.NewPreconditionError("apply", "2 conflicts still unresolved")
	assert.Equal(t, "precondition violated in apply: 2 conflicts still unresolved", err.Error())
	assert.True(t, pkgerrors.IsInvalidState(err))
	assert.False(t, pkgerrors.IsValidationError(err))
}

func TestParseError(t *testing.T) {
	t.Run("with line", func(t *testing.T) {
		err := &pkgerrors.ParseError{
			Format:  "csv",
			File:    "subjects.csv",
			Line:    4,
			Message: "row has no subject name",
		}
		assert.Contains(t, err.Error(), "subjects.csv")
		assert.Contains(t, err.Error(), "line 4")
		assert.True(t, pkgerrors.IsValidationError(err))
	})

	t.Run("wrapping", func(t *testing.T) {
		base := errors.New("unexpected EOF")
		err := pkgerrors.WrapParse("csv", "subjects.csv", base)
		assert.True(t, errors.Is(err, base))
	})
}

func TestIOError(t *testing.T) {
	base := errors.New("permission denied")
	err := pkgerrors.WrapIO("read", "/tmp/board.yaml", base)
	assert.Contains(t, err.Error(), "read")
	assert.Contains(t, err.Error(), "/tmp/board.yaml")
	assert.True(t, errors.Is(err, base))

	assert.Nil(t, pkgerrors.WrapIO("read", "x", nil))
}

func TestUnresolvedConflictsError(t *testing.T) {
	err := &pkgerrors.UnresolvedConflictsError{
		Stage: "stage 2",
		Names: []string{"Silicon", "Quantum"},
	}
	assert.Equal(t, "stage 2 has 2 unresolved conflicts: Silicon, Quantum", err.Error())
	assert.True(t, pkgerrors.IsConflict(err))

	wrapped := fmt.Errorf("import blocked: %w", err)
	assert.True(t, pkgerrors.IsConflict(wrapped))
}

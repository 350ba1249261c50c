package errors_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/dictcheck/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestLoadError(t *testing.T) {
	t.Run("whole source", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := pkgerrors.NewLoadError("neo4j:default", "neo4j", "running graph query", cause)
		assert.Equal(t, "load neo4j:default (neo4j): running graph query: connection refused", err.Error())
		assert.True(t, pkgerrors.IsLoadError(err))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("record and field", func(t *testing.T) {
		err := &pkgerrors.LoadError{Source: "dict.csv", Kind: "csv", Record: 4, Field: "category", Message: "unknown category"}
		assert.Equal(t, "load dict.csv (csv) record 4 field category: unknown category", err.Error())
	})

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "load x: unknown error", (&pkgerrors.LoadError{Source: "x"}).Error())
	})
}

func TestWrapLoad(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapLoad("a", "json", nil))

	ve := &pkgerrors.ValidationError{Field: "term", Record: 3, Message: "is required"}
	err := pkgerrors.WrapLoad("a.json", "json", ve)

	var le *pkgerrors.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 3, le.Record)
	assert.Equal(t, "term", le.Field)
	assert.True(t, pkgerrors.IsValidationError(err))

	// An existing LoadError is not wrapped twice.
	again := pkgerrors.WrapLoad("b.json", "json", err)
	assert.Same(t, err, again)
}

func TestDuplicateKeyError(t *testing.T) {
	err := pkgerrors.NewDuplicateKeyError("dict.json", []pkgerrors.DuplicateKey{
		{Term: "X", Category: "components", Indexes: []int{0, 2}},
		{Term: "Y", Category: "causes", Indexes: []int{1, 3, 5}},
	})
	assert.Equal(t, "duplicate keys in dict.json (2): components/X@[0 2], causes/Y@[1 3 5]", err.Error())
	assert.True(t, pkgerrors.IsDuplicateKey(err))
	assert.False(t, pkgerrors.IsLoadError(err))

	joined := errors.Join(errors.New("other"), err)
	assert.True(t, pkgerrors.IsDuplicateKey(joined))
}

func TestValidationError(t *testing.T) {
	err := pkgerrors.NewValidationError("category", "weather", "unknown category")
	assert.Equal(t, "validation failed: field category: unknown category", err.Error())

	err.Record = 2
	assert.Equal(t, "validation failed for record 2: field category: unknown category", err.Error())
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestAPIError(t *testing.T) {
	tests := []struct {
		status      int
		notFound    bool
		unavailable bool
	}{
		{404, true, false},
		{503, false, true},
		{401, false, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			err := pkgerrors.NewAPIError("http://kg/api/dictionary", tt.status, "nope")
			assert.Equal(t, tt.notFound, pkgerrors.IsNotFound(err))
			assert.Equal(t, tt.unavailable, errors.Is(err, pkgerrors.ErrUnavailable))
			assert.Contains(t, err.Error(), fmt.Sprintf("status %d", tt.status))
		})
	}
}

func TestConfigError(t *testing.T) {
	err := pkgerrors.NewConfigError("neo4j", "creating driver", errors.New("bad uri"))
	assert.Equal(t, "configuration error in neo4j: creating driver: bad uri", err.Error())
	assert.ErrorIs(t, err, pkgerrors.ErrInvalidInput)
}

func TestIsTimeout(t *testing.T) {
	err := pkgerrors.NewLoadError("http://kg", "http", "fetching page 1", context.DeadlineExceeded)
	assert.True(t, pkgerrors.IsTimeout(err))
	assert.True(t, pkgerrors.IsTimeout(pkgerrors.ErrTimeout))
	assert.False(t, pkgerrors.IsTimeout(errors.New("x")))
}

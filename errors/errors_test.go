package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New("test error")
	require.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestWrap(t *testing.T) {
	original := New("original")
	wrapped := Wrap(original, "wrapped")

	assert.Contains(t, wrapped.Error(), "wrapped")
	assert.Contains(t, wrapped.Error(), "original")
	assert.True(t, Is(wrapped, original))
}

func TestWrapf(t *testing.T) {
	original := New("original")
	wrapped := Wrapf(original, "wrapped: %d", 42)

	assert.Contains(t, wrapped.Error(), "wrapped: 42")
	assert.Contains(t, wrapped.Error(), "original")
}

func TestSentinels(t *testing.T) {
	t.Run("state corrupt", func(t *testing.T) {
		err := Wrap(ErrStateCorrupt, "loading pipeline_state.json")
		assert.True(t, IsStateCorrupt(err))
		assert.False(t, IsSourceUnavailable(err))
	})

	t.Run("source unavailable", func(t *testing.T) {
		err := Wrapf(ErrSourceUnavailable, "scan collection %q", "recipes")
		assert.True(t, IsSourceUnavailable(err))
		assert.False(t, IsStoreFailure(err))
	})

	t.Run("store failure", func(t *testing.T) {
		err := Wrap(ErrStoreFailure, "insert recipes")
		assert.True(t, IsStoreFailure(err))
		assert.False(t, IsStateCorrupt(err))
	})

	t.Run("nil is never a sentinel", func(t *testing.T) {
		assert.False(t, IsStateCorrupt(nil))
		assert.False(t, IsSourceUnavailable(nil))
		assert.False(t, IsStoreFailure(nil))
	})
}

type customError struct {
	msg string
}

func (e *customError) Error() string {
	return e.msg
}

func TestAs(t *testing.T) {
	original := &customError{msg: "custom"}
	wrapped := Wrap(original, "wrapped")

	var target *customError
	require.True(t, As(wrapped, &target))
	assert.Equal(t, "custom", target.msg)
}

func TestStackTraces(t *testing.T) {
	err := New("with stack")
	assert.NotNil(t, GetStack(err), "errors should carry stack traces")
}

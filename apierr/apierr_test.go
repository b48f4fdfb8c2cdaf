package apierr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, KindUnknownSource.Status())
	assert.Equal(t, http.StatusNotFound, KindUnknownSprite.Status())
	assert.Equal(t, http.StatusBadRequest, KindMalformedQuery.Status())
	assert.Equal(t, http.StatusBadRequest, KindUnmergeableTiles.Status())
	assert.Equal(t, http.StatusInternalServerError, KindBackendFailure.Status())
}

func TestLoggableOnlyFor5xx(t *testing.T) {
	assert.False(t, KindUnknownSource.Loggable())
	assert.True(t, KindBackendFailure.Loggable())
}

func TestAsExtractsWrappedError(t *testing.T) {
	cause := errors.New("boom")
	wrapped := Wrap(KindBackendFailure, cause, "doing a thing")

	e, ok := As(wrapped)
	require := assert.New(t)
	require.True(ok)
	require.Equal(KindBackendFailure, e.Kind)
}

func TestStatusOfPlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestStatusOfTypedError(t *testing.T) {
	err := New(KindUnknownFont, "nope")
	assert.Equal(t, http.StatusNotFound, StatusOf(err))
}

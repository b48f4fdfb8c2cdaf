package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tileserve/apierr"
	"tileserve/entities"
	"tileserve/tilejson"
	"tileserve/tilesource"
)

func newTestRegistry() *Registry {
	a := NewMemorySource("a", tilejson.TileJSON{}, entities.TileInfo{Format: entities.FormatMVT}, 0, 10)
	b := NewMemorySource("b", tilejson.TileJSON{}, entities.TileInfo{Format: entities.FormatMVT}, 5, 14)
	return NewRegistry([]tilesource.Source{a, b})
}

func TestGetSourcesRejectsReservedKeyword(t *testing.T) {
	r := newTestRegistry()
	_, _, _, err := r.GetSources("catalog", nil)
	require.Error(t, err)
	e, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, apierr.KindUnknownSource, e.Kind)
}

func TestGetSourcesRejectsUnknownID(t *testing.T) {
	r := newTestRegistry()
	_, _, _, err := r.GetSources("nonexistent", nil)
	require.Error(t, err)
	e, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, apierr.KindUnknownSource, e.Kind)
}

func TestGetSourcesRejectsOutOfRangeZoom(t *testing.T) {
	r := newTestRegistry()
	zoom := 20
	_, _, _, err := r.GetSources("a", &zoom)
	require.Error(t, err)
	e, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, apierr.KindUnknownSource, e.Kind)
}

func TestGetSourcesSingleSourceForwardsQuery(t *testing.T) {
	r := newTestRegistry()
	srcs, forward, _, err := r.GetSources("a", nil)
	require.NoError(t, err)
	require.Len(t, srcs, 1)
	assert.True(t, forward)
}

func TestGetSourcesCompositeDoesNotForwardQuery(t *testing.T) {
	r := newTestRegistry()
	zoom := 7
	srcs, forward, _, err := r.GetSources("a,b", &zoom)
	require.NoError(t, err)
	require.Len(t, srcs, 2)
	assert.False(t, forward)
}

func TestCatalogListsAllSources(t *testing.T) {
	r := newTestRegistry()
	cat := r.Catalog()
	assert.Len(t, cat, 2)
	assert.Contains(t, cat, "a")
	assert.Contains(t, cat, "b")
}

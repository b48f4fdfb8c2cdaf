package fanout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tileserve/apierr"
	"tileserve/entities"
	"tileserve/tilejson"
	"tileserve/tilesource"
)

type stubSource struct {
	id   string
	data []byte
	err  error
}

func (s *stubSource) ID() string                   { return s.id }
func (s *stubSource) TileJSON() tilejson.TileJSON   { return tilejson.TileJSON{} }
func (s *stubSource) TileInfo() entities.TileInfo   { return entities.TileInfo{} }
func (s *stubSource) MinZoom() int                  { return 0 }
func (s *stubSource) MaxZoom() int                  { return 22 }
func (s *stubSource) Fetch(_ context.Context, _ entities.TileCoord, _ tilesource.UrlQuery) ([]byte, error) {
	return s.data, s.err
}

var _ tilesource.Source = (*stubSource)(nil)

func coord() entities.TileCoord { return entities.TileCoord{Z: 1, X: 0, Y: 0} }

func TestAssembleEmptyWhenAllSourcesEmpty(t *testing.T) {
	info := entities.TileInfo{Format: entities.FormatMVT, Encoding: entities.EncodingUncompressed}
	srcs := []tilesource.Source{&stubSource{id: "a"}, &stubSource{id: "b"}}

	tile, err := Assemble(context.Background(), srcs, info, coord(), nil)
	require.NoError(t, err)
	assert.True(t, tile.Empty())
}

func TestAssembleSingleNonEmptyAdoptedDirectly(t *testing.T) {
	info := entities.TileInfo{Format: entities.FormatPNG, Encoding: entities.EncodingUncompressed}
	srcs := []tilesource.Source{
		&stubSource{id: "a"},
		&stubSource{id: "b", data: []byte("png-bytes")},
	}

	tile, err := Assemble(context.Background(), srcs, info, coord(), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), tile.Data)
}

func TestAssembleConcatenatesMVTUncompressed(t *testing.T) {
	info := entities.TileInfo{Format: entities.FormatMVT, Encoding: entities.EncodingUncompressed}
	srcs := []tilesource.Source{
		&stubSource{id: "a", data: []byte("AAA")},
		&stubSource{id: "b", data: []byte("BBB")},
	}

	tile, err := Assemble(context.Background(), srcs, info, coord(), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("AAABBB"), tile.Data)
}

func TestAssembleConcatenatesMVTGzip(t *testing.T) {
	info := entities.TileInfo{Format: entities.FormatMVT, Encoding: entities.EncodingGzip}
	srcs := []tilesource.Source{
		&stubSource{id: "a", data: []byte("AAA")},
		&stubSource{id: "b", data: []byte("BBB")},
	}

	tile, err := Assemble(context.Background(), srcs, info, coord(), nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("AAABBB"), tile.Data)
}

func TestAssembleRefusesMultiplePNGTiles(t *testing.T) {
	info := entities.TileInfo{Format: entities.FormatPNG, Encoding: entities.EncodingUncompressed}
	srcs := []tilesource.Source{
		&stubSource{id: "a", data: []byte("AAA")},
		&stubSource{id: "b", data: []byte("BBB")},
	}

	_, err := Assemble(context.Background(), srcs, info, coord(), nil)
	require.Error(t, err)
	e, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, apierr.KindUnmergeableTiles, e.Kind)
}

func TestAssemblePropagatesSourceFailure(t *testing.T) {
	info := entities.TileInfo{Format: entities.FormatMVT, Encoding: entities.EncodingUncompressed}
	srcs := []tilesource.Source{
		&stubSource{id: "a", err: assert.AnError},
	}

	_, err := Assemble(context.Background(), srcs, info, coord(), nil)
	require.Error(t, err)
	e, ok := apierr.As(err)
	require.True(t, ok)
	assert.Equal(t, apierr.KindBackendFailure, e.Kind)
}

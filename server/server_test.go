package server

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tileserve/catalog"
	"tileserve/config"
	"tileserve/entities"
	"tileserve/fonts"
	"tileserve/sources"
	"tileserve/sprites"
	"tileserve/tilejson"
	"tileserve/tilesource"
)

// newTestServer builds a Server wired to an in-memory source named "a", an
// empty sprite catalog and an empty font catalog, exercised entirely through
// Echo's ServeHTTP (no real socket), the same way the reference server's
// own integration tests drive requests straight at the router.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	name := "Test Source"
	mem := sources.NewMemorySource("a", tilejson.TileJSON{Name: &name}, entities.TileInfo{
		Format:   entities.FormatPNG,
		Encoding: entities.EncodingUncompressed,
	}, 0, 10)
	mem.PutTile(entities.TileCoord{Z: 1, X: 0, Y: 0}, []byte("fake png bytes"))

	registry := sources.NewRegistry([]tilesource.Source{mem})
	cfg := &config.Config{ListenAddresses: []string{"127.0.0.1:0"}}

	return New(cfg, zap.NewNop(), registry, sprites.NewCatalog(), fonts.NewCatalog())
}

func TestHandleIndexBanner(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "/catalog")
}

func TestHandleHealthSetsNoCache(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/health", nil)
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
}

func TestHandleCatalogListsRegisteredSource(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/catalog", nil)
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var cat catalog.Catalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cat))
	assert.Contains(t, cat.Tiles, "a")
}

func TestHandleTileReturnsStoredBytes(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/a/1/0/0", nil)
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, "fake png bytes", string(body))
}

func TestHandleTileEmptyCoordReturnsNoContent(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/a/1/1/1", nil)
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, 204, rec.Code)
}

func TestHandleTileUnknownSourceRespondsNotFoundWithCause(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/nope/1/0/0", nil)
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
	assert.Contains(t, rec.Body.String(), "nope")
}

func TestHandleTileJSONBuildsAbsoluteURL(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/a?x=1", nil)
	req.Host = "example.com"
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var doc tilejson.TileJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Tiles, 1)
	assert.Equal(t, "http://example.com/a/{z}/{x}/{y}?x=1", doc.Tiles[0])
}

func TestHandleTileJSONHonorsXRewriteURL(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/a", nil)
	req.Host = "internal.local"
	req.Header.Set("X-Rewrite-URL", "/prefix/a")
	s.echo.ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	var doc tilejson.TileJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	require.Len(t, doc.Tiles, 1)
	assert.Equal(t, "http://internal.local/prefix/a/{z}/{x}/{y}", doc.Tiles[0])
}

func TestHandleSpriteUnknownSuffixReturnsNotFound(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/sprite/a.gif", nil)
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
}

func TestHandleSpriteUnknownIDReturnsNotFoundWithCause(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/sprite/missing.json", nil)
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing")
}

func TestHandleFontMalformedRangeReturnsBadRequest(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/font/Arial/not-a-range", nil)
	s.echo.ServeHTTP(rec, req)

	assert.Equal(t, 400, rec.Code)
}

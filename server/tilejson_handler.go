package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v5"

	"tileserve/tilejson"
)

// handleTileJSON implements spec §4.2: resolve the composite source id with
// no zoom constraint, merge each source's TileJSON descriptor, and point the
// merged "tiles" field at this same path so a client's next request round-
// trips back through the tile endpoint.
func (s *Server) handleTileJSON(c echo.Context) error {
	srcs, _, _, err := s.tiles.GetSources(c.PathParam("source_ids"), nil)
	if err != nil {
		return err
	}

	docs := make([]tilejson.TileJSON, len(srcs))
	for i, src := range srcs {
		docs[i] = src.TileJSON()
	}

	merged := tilejson.Merge(docs, tilesURL(c))
	return c.JSON(http.StatusOK, merged)
}

// tilesURL reconstructs the absolute, externally-visible URL for this
// request's tile endpoint, templated with {z}/{x}/{y}, per spec §4.2's
// "{scheme}://{authority}{base_path}/{z}/{x}/{y}[?{query}]". Scheme and host
// come from the connection info the same way the original Rust server's
// git_source_info reads req.connection_info(); a reverse proxy may run this
// server behind a path or host rewrite it can't see directly, so
// X-Rewrite-URL lets it advertise the public-facing path instead. The header
// is purely advisory, so any parse trouble falls back to the request's own
// path rather than failing the request.
func tilesURL(c echo.Context) string {
	path := c.Request().URL.Path
	if rewrite := c.Request().Header.Get("X-Rewrite-URL"); rewrite != "" {
		if u, err := parseRewriteURL(rewrite); err == nil {
			path = u
		}
	}
	path = strings.TrimSuffix(path, "/")

	tiles := c.Scheme() + "://" + c.Request().Host + path + "/{z}/{x}/{y}"
	if q := c.Request().URL.RawQuery; q != "" {
		tiles += "?" + q
	}
	return tiles
}

// parseRewriteURL extracts just the path component of an X-Rewrite-URL
// header value, which may be a bare path or a full URL.
func parseRewriteURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	return u.Path, nil
}

package server

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v5"

	"tileserve/apierr"
	"tileserve/entities"
	"tileserve/fanout"
	"tileserve/negotiator"
	"tileserve/tilesource"
)

// handleTile implements spec §4.3 end to end: resolve sources for this
// zoom, fan out the fetch, assemble/validate the result, negotiate its
// encoding, and write the response.
func (s *Server) handleTile(c echo.Context) error {
	coord, err := parseTileCoord(c)
	if err != nil {
		return err
	}

	zoom := int(coord.Z)
	srcs, forwardQuery, info, err := s.tiles.GetSources(c.PathParam("source_ids"), &zoom)
	if err != nil {
		return err
	}

	var query tilesource.UrlQuery
	if forwardQuery {
		query, err = parseURLQuery(c.QueryString())
		if err != nil {
			return err
		}
	}

	tile, err := fanout.Assemble(c.Request().Context(), srcs, info, coord, query)
	if err != nil {
		return err
	}

	if tile.Empty() {
		return c.NoContent(http.StatusNoContent)
	}

	accept := negotiator.Parse(c.Request().Header.Get("Accept-Encoding"))
	tile, err = negotiator.Negotiate(tile, accept)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentType, tile.Info.Format.ContentType())
	if enc := tile.Info.Encoding.ContentEncoding(); enc != "" {
		c.Response().Header().Set("Content-Encoding", enc)
	}
	return c.Blob(http.StatusOK, tile.Info.Format.ContentType(), tile.Data)
}

func parseTileCoord(c echo.Context) (entities.TileCoord, error) {
	z, err := strconv.ParseUint(c.PathParam("z"), 10, 8)
	if err != nil {
		return entities.TileCoord{}, apierr.New(apierr.KindMalformedQuery, "invalid zoom: "+c.PathParam("z"))
	}
	x, err := strconv.ParseUint(c.PathParam("x"), 10, 32)
	if err != nil {
		return entities.TileCoord{}, apierr.New(apierr.KindMalformedQuery, "invalid x: "+c.PathParam("x"))
	}
	y, err := strconv.ParseUint(c.PathParam("y"), 10, 32)
	if err != nil {
		return entities.TileCoord{}, apierr.New(apierr.KindMalformedQuery, "invalid y: "+c.PathParam("y"))
	}

	coord := entities.TileCoord{Z: uint8(z), X: uint32(x), Y: uint32(y)}
	if !coord.Valid() {
		return entities.TileCoord{}, apierr.New(apierr.KindMalformedQuery, "tile coordinate out of range: "+coord.String())
	}
	return coord, nil
}

// parseURLQuery turns a raw query string into the forwarding map sources
// receive. Malformed query strings fail with KindMalformedQuery (spec §7)
// rather than being silently dropped, since the registry explicitly opted
// this group into query forwarding.
func parseURLQuery(raw string) (tilesource.UrlQuery, error) {
	if raw == "" {
		return nil, nil
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindMalformedQuery, err, "parsing query string")
	}
	out := make(tilesource.UrlQuery, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out, nil
}

package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"

	"tileserve/apierr"
)

// handleFont implements spec §4.6's glyph range endpoint: :range is the
// Mapbox convention "start-end" (e.g. "0-255"), both inclusive.
func (s *Server) handleFont(c echo.Context) error {
	start, end, err := parseGlyphRange(c.PathParam("range"))
	if err != nil {
		return err
	}

	data, err := s.fonts.GetFontRange(c.PathParam("fontstack"), start, end)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/x-protobuf", data)
}

func parseGlyphRange(raw string) (start, end uint32, err error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return 0, 0, apierr.New(apierr.KindInvalidFontRange, "malformed font range: "+raw)
	}
	s, err1 := strconv.ParseUint(parts[0], 10, 32)
	e, err2 := strconv.ParseUint(parts[1], 10, 32)
	if err1 != nil || err2 != nil {
		return 0, 0, apierr.New(apierr.KindInvalidFontRange, "malformed font range: "+raw)
	}
	return uint32(s), uint32(e), nil
}

package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
)

// handleSprite implements spec §4.6's sprite endpoint: the same composite id
// serves either the PNG sheet or its JSON index, distinguished only by the
// file extension on :filename, mirroring the teacher's wildcard-then-manual-
// suffix-strip pattern in apiHandlers for MVT requests.
func (s *Server) handleSprite(c echo.Context) error {
	filename := c.PathParam("filename")

	switch {
	case strings.HasSuffix(filename, ".png"):
		id := strings.TrimSuffix(filename, ".png")
		sheet, err := s.sprites.GetSprites(c.Request().Context(), id)
		if err != nil {
			return err
		}
		png, err := sheet.EncodePNG()
		if err != nil {
			return err
		}
		return c.Blob(http.StatusOK, "image/png", png)

	case strings.HasSuffix(filename, ".json"):
		id := strings.TrimSuffix(filename, ".json")
		sheet, err := s.sprites.GetSprites(c.Request().Context(), id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, sheet.Index)

	default:
		return c.NoContent(http.StatusNotFound)
	}
}

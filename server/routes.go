package server

import (
	"net/http"

	"github.com/labstack/echo/v5"
)

// registerRoutes installs the fixed URL grammar of spec §4.1. Registration
// order matters only in that echo already prioritizes static routes (/,
// /health, /catalog, /sprite/..., /font/...) over the param routes
// (/:source_ids, /:source_ids/:z/:x/:y): the reserved-keyword set exists
// precisely so a source id can never collide with one of these fixed paths.
func (s *Server) registerRoutes() {
	e := s.echo

	e.GET("/", s.handleIndex)
	e.HEAD("/", s.handleIndex)

	e.GET("/health", s.handleHealth)
	e.HEAD("/health", s.handleHealth)

	e.GET("/catalog", compress(s.handleCatalog))
	e.HEAD("/catalog", compress(s.handleCatalog))

	e.GET("/sprite/:filename", compress(s.handleSprite))
	e.HEAD("/sprite/:filename", compress(s.handleSprite))

	e.GET("/font/:fontstack/:range", compress(s.handleFont))

	e.GET("/:source_ids/:z/:x/:y", s.handleTile)
	e.HEAD("/:source_ids/:z/:x/:y", s.handleTile)

	e.GET("/:source_ids", compress(s.handleTileJSON))
	e.HEAD("/:source_ids", compress(s.handleTileJSON))
}

const indexBanner = "tileserve is running.\n\nA list of all available sources is at /catalog\n"

func (s *Server) handleIndex(c echo.Context) error {
	return c.String(http.StatusOK, indexBanner)
}

func (s *Server) handleHealth(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleCatalog(c echo.Context) error {
	return c.JSON(http.StatusOK, s.currentCatalog())
}

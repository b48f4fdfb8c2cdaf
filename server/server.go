// Package server implements the HTTP route surface and lifecycle of
// spec §4.1 and §4.7: a fixed URL grammar dispatched through echo, and a
// multi-address, worker-scaled listener with the documented keep-alive and
// shutdown-timeout defaults.
package server

import (
	"net"

	"github.com/labstack/echo/v5"
	"go.uber.org/zap"

	"tileserve/catalog"
	"tileserve/config"
	"tileserve/fonts"
	"tileserve/sprites"
	"tileserve/tilesource"
)

// Server wires the route surface to its collaborators. Every field here is
// shared across all workers once New returns and is never reassigned. Hot
// reload happens inside the collaborators: the sources Registry swaps an
// atomic pointer (spec §5), while the sprite and font catalogs update their
// maps in place under a sync.RWMutex.
type Server struct {
	echo *echo.Echo
	log  *zap.Logger
	cfg  *config.Config

	tiles   tilesource.Registry
	sprites *sprites.Catalog
	fonts   *fonts.Catalog

	listeners []net.Listener
}

// New builds a Server with every route registered and ready to serve.
func New(cfg *config.Config, log *zap.Logger, tiles tilesource.Registry, spriteCatalog *sprites.Catalog, fontCatalog *fonts.Catalog) *Server {
	s := &Server{
		echo:    echo.New(),
		log:     log,
		cfg:     cfg,
		tiles:   tiles,
		sprites: spriteCatalog,
		fonts:   fontCatalog,
	}
	s.echo.HideBanner = true
	s.echo.HidePort = true
	s.echo.HTTPErrorHandler = s.httpErrorHandler
	installMiddleware(s.echo, log)
	s.registerRoutes()
	return s
}

func (s *Server) currentCatalog() catalog.Catalog {
	return catalog.Build(s.tiles, s.sprites, s.fonts)
}
